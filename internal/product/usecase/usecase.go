package usecase

import (
	"context"

	"github.com/fekuna/kiwi-storefront-service/internal/model"
	"github.com/fekuna/kiwi-storefront-service/internal/product"
	"github.com/fekuna/kiwi-storefront-service/pkg/logger"
	"go.uber.org/zap"
)

type productUseCase struct {
	repo   product.Repository
	logger logger.ZapLogger
}

func NewProductUseCase(repo product.Repository, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *productUseCase) ListProducts(ctx context.Context) ([]model.Product, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		uc.logger.Debug("product lookup missed", zap.String("product_id", id))
		return nil, product.ErrProductNotFound
	}
	return p, nil
}
