package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslator(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)

	assert.Equal(t, "Login successful!", tr.T("LoginSuccess", nil))
	assert.Equal(t, "लगइन सफल भयो!", tr.T("LoginSuccess", nil, "ne"))
	assert.Equal(t, "Login successful!", tr.T("LoginSuccess", nil, "fr-FR"))
	assert.Equal(t, "Login successful!", tr.T("LoginSuccess", nil, "fr-FR,en;q=0.8"))
	assert.Equal(t, `Search Results for "kiwi"`, tr.T("SearchResultsFor", map[string]any{"Term": "kiwi"}))
	assert.Equal(t, "NoSuchMessage", tr.T("NoSuchMessage", nil))
}

func TestTranslator_Plural(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)

	assert.Equal(t, "1 product found", tr.Plural("ProductsFound", 1))
	assert.Equal(t, "4 products found", tr.Plural("ProductsFound", 4))
	assert.Equal(t, "0 products found", tr.Plural("ProductsFound", 0))
}

func TestNew_InvalidLocale(t *testing.T) {
	_, err := New("???")
	assert.Error(t, err)
}
