package repository

import (
	"context"

	"github.com/fekuna/kiwi-storefront-service/internal/model"
)

type StaticRepository struct {
	products []model.Product
	byID     map[string]int
}

func NewStaticRepository(products []model.Product) *StaticRepository {
	r := &StaticRepository{
		products: make([]model.Product, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for i, p := range products {
		r.products[i] = p.Clone()
		r.byID[p.ID] = i
	}
	return r
}

func (r *StaticRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	out := make([]model.Product, len(r.products))
	for i, p := range r.products {
		out[i] = p.Clone()
	}
	return out, nil
}

func (r *StaticRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	p := r.products[i].Clone()
	return &p, nil
}
