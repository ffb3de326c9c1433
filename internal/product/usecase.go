package product

import (
	"context"
	"errors"

	"github.com/fekuna/kiwi-storefront-service/internal/model"
)

var ErrProductNotFound = errors.New("product not found")

type UseCase interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
}
