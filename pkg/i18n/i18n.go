// Package i18n resolves the storefront's user-facing strings. Lookup is static:
// messages live in embedded yaml files, one per language.
package i18n

import (
	"embed"
	"fmt"
	"path"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

type Translator struct {
	bundle   *goi18n.Bundle
	fallback string
}

// New loads every embedded locale. defaultLocale is used when a request names none
// or names a language without translations.
func New(defaultLocale string) (*Translator, error) {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("invalid default locale %q: %w", defaultLocale, err)
	}

	bundle := goi18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		data, err := localeFS.ReadFile(path.Join("locales", e.Name()))
		if err != nil {
			return nil, err
		}
		if _, err := bundle.ParseMessageFileBytes(data, e.Name()); err != nil {
			return nil, fmt.Errorf("parse %s: %w", e.Name(), err)
		}
	}

	return &Translator{bundle: bundle, fallback: tag.String()}, nil
}

// T returns the message for id. langs are tried in order (values such as "ne" or a raw
// Accept-Language header both work). Unknown ids come back verbatim.
func (t *Translator) T(id string, data map[string]any, langs ...string) string {
	return t.localize(&goi18n.LocalizeConfig{MessageID: id, TemplateData: data}, langs)
}

func (t *Translator) Plural(id string, count int, langs ...string) string {
	return t.localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	}, langs)
}

func (t *Translator) localize(cfg *goi18n.LocalizeConfig, langs []string) string {
	localizer := goi18n.NewLocalizer(t.bundle, append(langs, t.fallback)...)
	msg, err := localizer.Localize(cfg)
	if err != nil {
		return cfg.MessageID
	}
	return msg
}
