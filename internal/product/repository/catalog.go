package repository

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fekuna/kiwi-storefront-service/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog is the parsed catalog file: products in display order plus the
// category keyword table used by the search filter.
type Catalog struct {
	Products   []model.Product
	Categories []model.Category
}

type catalogFile struct {
	Products   []model.Product  `yaml:"products"`
	Categories []model.Category `yaml:"categories"`
}

// LoadCatalog reads the catalog at path, or the built-in farm catalog when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return ParseCatalog(bytes.NewReader(defaultCatalog))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	return ParseCatalog(f)
}

func ParseCatalog(r io.Reader) (*Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	c := &Catalog{
		Products:   make([]model.Product, 0, len(file.Products)),
		Categories: make([]model.Category, 0, len(file.Categories)),
	}

	seen := make(map[string]bool, len(file.Products))
	for i, p := range file.Products {
		if err := validateProduct(&p); err != nil {
			return nil, fmt.Errorf("%w: product #%d: %v", ErrInvalidCatalog, i+1, err)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: duplicate product id %q", ErrInvalidCatalog, p.ID)
		}
		seen[p.ID] = true
		c.Products = append(c.Products, p)
	}

	seenCat := make(map[string]bool, len(file.Categories))
	for i, cat := range file.Categories {
		if cat.ID == "" || len(cat.Keywords) == 0 {
			return nil, fmt.Errorf("%w: category #%d needs an id and keywords", ErrInvalidCatalog, i+1)
		}
		if seenCat[cat.ID] {
			return nil, fmt.Errorf("%w: duplicate category id %q", ErrInvalidCatalog, cat.ID)
		}
		seenCat[cat.ID] = true
		for k, kw := range cat.Keywords {
			cat.Keywords[k] = strings.ToLower(kw)
		}
		c.Categories = append(c.Categories, cat)
	}

	return c, nil
}

func validateProduct(p *model.Product) error {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return errors.New("missing id")
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("product %q: missing name", p.ID)
	case len(p.Images) == 0:
		return fmt.Errorf("product %q: at least one image is required", p.ID)
	case p.Price.IsNegative():
		return fmt.Errorf("product %q: negative price", p.ID)
	case p.Rating < 0 || p.Rating > 5:
		return fmt.Errorf("product %q: rating must be within 0..5", p.ID)
	}
	return nil
}
