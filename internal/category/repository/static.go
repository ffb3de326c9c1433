package repository

import (
	"context"
	"sort"

	"github.com/fekuna/kiwi-storefront-service/internal/model"
)

type StaticRepository struct {
	categories []model.Category
}

func NewStaticRepository(categories []model.Category) *StaticRepository {
	sorted := make([]model.Category, len(categories))
	copy(sorted, categories)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SortOrder < sorted[j].SortOrder
	})
	return &StaticRepository{categories: sorted}
}

func (r *StaticRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	out := make([]model.Category, len(r.categories))
	for i, c := range r.categories {
		c.Keywords = append([]string(nil), c.Keywords...)
		out[i] = c
	}
	return out, nil
}

func (r *StaticRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	for _, c := range r.categories {
		if c.ID == id {
			c.Keywords = append([]string(nil), c.Keywords...)
			return &c, nil
		}
	}
	return nil, nil
}
