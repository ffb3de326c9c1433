package product

import (
	"context"

	"github.com/fekuna/kiwi-storefront-service/internal/model"
)

// Repository is read-only: the catalog is fully loaded at startup and never mutated.
type Repository interface {
	FindAll(ctx context.Context) ([]model.Product, error)
	// FindByID returns (nil, nil) when no product has the id.
	FindByID(ctx context.Context, id string) (*model.Product, error)
}
