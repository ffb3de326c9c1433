package dto

import "github.com/fekuna/kiwi-storefront-service/internal/model"

// Product is the wire view of a catalog product. Money travels as fixed two-decimal strings.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Image       string   `json:"image"`
	Images      []string `json:"images"`
	Description string   `json:"description"`
	Benefits    []string `json:"benefits"`
	Colors      []string `json:"colors"`
	Rating      float64  `json:"rating"`
}

type ListProductsRequest struct{}

type ListProductsResponse struct {
	Products []Product `json:"products"`
	Total    int32     `json:"total"`
}

type GetProductRequest struct {
	ID string `json:"id"`
}

type ProductResponse struct {
	Product Product `json:"product"`
}

func FromModel(m *model.Product) Product {
	return Product{
		ID:          m.ID,
		Name:        m.Name,
		Price:       m.Price.StringFixed(2),
		Image:       m.Image(),
		Images:      m.Images,
		Description: m.Description,
		Benefits:    m.Benefits,
		Colors:      m.Colors,
		Rating:      m.Rating,
	}
}

func FromModels(ms []model.Product) []Product {
	out := make([]Product, len(ms))
	for i := range ms {
		out[i] = FromModel(&ms[i])
	}
	return out
}
