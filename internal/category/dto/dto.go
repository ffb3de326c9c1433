package dto

import "github.com/fekuna/kiwi-storefront-service/internal/model"

type Category struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

type ListCategoriesRequest struct{}

type ListCategoriesResponse struct {
	Categories []Category `json:"categories"`
}

func FromModels(ms []model.Category) []Category {
	out := make([]Category, len(ms))
	for i, m := range ms {
		out[i] = Category{ID: m.ID, Name: m.Name, Keywords: m.Keywords}
	}
	return out
}
