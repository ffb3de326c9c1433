package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog_Default(t *testing.T) {
	c, err := LoadCatalog("")
	require.NoError(t, err)

	require.Len(t, c.Products, 6)
	assert.Equal(t, "Fresh Kiwi", c.Products[0].Name)
	assert.Equal(t, "120", c.Products[0].Price.String())
	assert.Equal(t, "/assets/kiwi-1.jpg", c.Products[0].Image())
	assert.Contains(t, c.Products[0].Benefits, "High in Vitamin C")

	require.Len(t, c.Categories, 7)
	assert.Equal(t, "processed", c.Categories[1].ID)
	assert.Contains(t, c.Categories[1].Keywords, "dried")
}

func TestLoadCatalog_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
products:
  - id: a
    name: Gold Kiwi
    price: 12.5
    images: [a.jpg]
`), 0o600))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, c.Products, 1)
	assert.Equal(t, "12.5", c.Products[0].Price.String())
}

func TestParseCatalog_PriceKeepsEveryDigit(t *testing.T) {
	c, err := ParseCatalog(strings.NewReader(`
products:
  - {id: a, name: A, price: 0.12345678901234567891, images: [a.jpg]}
  - {id: b, name: B, price: "19.99", images: [b.jpg]}`))
	require.NoError(t, err)
	require.Len(t, c.Products, 2)
	assert.Equal(t, "0.12345678901234567891", c.Products[0].Price.String())
	assert.Equal(t, "19.99", c.Products[1].Price.String())
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParseCatalog_Invalid(t *testing.T) {
	cases := map[string]string{
		"duplicate id": `
products:
  - {id: a, name: A, price: 1, images: [a.jpg]}
  - {id: a, name: B, price: 2, images: [b.jpg]}`,
		"no images": `
products:
  - {id: a, name: A, price: 1, images: []}`,
		"negative price": `
products:
  - {id: a, name: A, price: -1, images: [a.jpg]}`,
		"missing id": `
products:
  - {name: A, price: 1, images: [a.jpg]}`,
		"rating out of range": `
products:
  - {id: a, name: A, price: 1, rating: 7, images: [a.jpg]}`,
		"category without keywords": `
categories:
  - {id: jam, name: Jams}`,
		"price not a number": `
products:
  - {id: a, name: A, price: cheap, images: [a.jpg]}`,
		"unknown field": `
products:
  - {id: a, name: A, price: 1, images: [a.jpg], stock: 3}`,
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCatalog(strings.NewReader(doc))
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestStaticRepository(t *testing.T) {
	c, err := LoadCatalog("")
	require.NoError(t, err)
	repo := NewStaticRepository(c.Products)
	ctx := context.Background()

	p, err := repo.FindByID(ctx, "4")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Kiwi Juice", p.Name)

	missing, err := repo.FindByID(ctx, "404")
	require.NoError(t, err)
	assert.Nil(t, missing)

	// callers get copies
	p.Images[0] = "mutated"
	again, _ := repo.FindByID(ctx, "4")
	assert.Equal(t, "/assets/kiwi-juice.png", again.Image())

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 6)
}
