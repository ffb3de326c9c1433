package category

import (
	"context"

	"github.com/fekuna/kiwi-storefront-service/internal/model"
)

type Repository interface {
	// FindAll returns categories ordered by SortOrder.
	FindAll(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id string) (*model.Category, error)
}
