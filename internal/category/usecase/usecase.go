package usecase

import (
	"context"
	"fmt"

	"github.com/fekuna/kiwi-storefront-service/internal/category"
	"github.com/fekuna/kiwi-storefront-service/internal/model"
	"github.com/fekuna/kiwi-storefront-service/pkg/logger"
)

type categoryUseCase struct {
	repo   category.Repository
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *categoryUseCase) ListCategories(ctx context.Context) ([]model.Category, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, category.ErrCategoryNotFound
	}
	return c, nil
}

func (uc *categoryUseCase) ResolveCategories(ctx context.Context, ids []string) ([]model.Category, error) {
	out := make([]model.Category, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		c, err := uc.GetCategory(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", err, id)
		}
		out = append(out, *c)
	}
	return out, nil
}
