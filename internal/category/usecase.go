package category

import (
	"context"
	"errors"

	"github.com/fekuna/kiwi-storefront-service/internal/model"
)

var ErrCategoryNotFound = errors.New("category not found")

type UseCase interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id string) (*model.Category, error)
	// ResolveCategories maps ids to categories, failing on the first unknown id.
	ResolveCategories(ctx context.Context, ids []string) ([]model.Category, error)
}
