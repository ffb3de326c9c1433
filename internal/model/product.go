package model

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog record. Catalog products are immutable once loaded.
type Product struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Price       decimal.Decimal `json:"price" yaml:"price"`
	Images      []string        `json:"images" yaml:"images"`
	Description string          `json:"description" yaml:"description"`
	Benefits    []string        `json:"benefits" yaml:"benefits"`
	Colors      []string        `json:"colors" yaml:"colors"`
	Rating      float64         `json:"rating" yaml:"rating"`
}

// Image is the default display image.
func (p *Product) Image() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Clone deep-copies the slices so callers can't mutate catalog state.
func (p Product) Clone() Product {
	p.Images = append([]string(nil), p.Images...)
	p.Benefits = append([]string(nil), p.Benefits...)
	p.Colors = append([]string(nil), p.Colors...)
	return p
}
