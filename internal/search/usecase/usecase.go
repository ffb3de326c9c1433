package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/kiwi-storefront-service/internal/category"
	"github.com/fekuna/kiwi-storefront-service/internal/product"
	"github.com/fekuna/kiwi-storefront-service/internal/search"
	"github.com/fekuna/kiwi-storefront-service/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type searchUseCase struct {
	products   product.UseCase
	categories category.UseCase
	opts       search.Options
	logger     logger.ZapLogger
}

func NewSearchUseCase(products product.UseCase, categories category.UseCase, opts search.Options, log logger.ZapLogger) search.UseCase {
	return &searchUseCase{
		products:   products,
		categories: categories,
		opts:       opts,
		logger:     log,
	}
}

func (uc *searchUseCase) QuickSearch(ctx context.Context, term string) (search.Result, error) {
	products, err := uc.products.ListProducts(ctx)
	if err != nil {
		return search.Result{}, err
	}

	res := search.Quick(products, term, uc.opts)
	uc.logger.Debug("quick search",
		zap.String("term", term),
		zap.Stringer("state", res.State),
		zap.Int("total", res.Total),
	)
	return res, nil
}

func (uc *searchUseCase) FullSearch(ctx context.Context, params search.FullSearchParams) (search.FullResult, error) {
	q, err := uc.buildQuery(ctx, params)
	if err != nil {
		return search.FullResult{}, err
	}

	products, err := uc.products.ListProducts(ctx)
	if err != nil {
		return search.FullResult{}, err
	}

	res, err := search.Filter(products, q)
	if err != nil {
		return search.FullResult{}, err
	}

	uc.logger.Debug("full search",
		zap.String("term", q.Term),
		zap.Strings("categories", params.CategoryIDs),
		zap.String("sort_by", string(q.SortBy)),
		zap.String("order", string(q.Order)),
		zap.Int("results", len(res.Products)),
	)
	return res, nil
}

func (uc *searchUseCase) NewQuickSession(ctx context.Context, onResults func(search.SessionState)) (*search.QuickSession, error) {
	products, err := uc.products.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return search.NewQuickSession(products, uc.opts, onResults), nil
}

func (uc *searchUseCase) buildQuery(ctx context.Context, params search.FullSearchParams) (search.FullQuery, error) {
	q := search.DefaultFullQuery()
	q.Term = strings.TrimSpace(params.Term)

	if s := strings.TrimSpace(params.SortBy); s != "" {
		q.SortBy = search.SortKey(strings.ToLower(s))
	}
	if s := strings.TrimSpace(params.Order); s != "" {
		q.Order = search.SortOrder(strings.ToLower(s))
	}

	var err error
	if q.Price.Min, err = parsePrice(params.MinPrice, q.Price.Min); err != nil {
		return q, err
	}
	if q.Price.Max, err = parsePrice(params.MaxPrice, q.Price.Max); err != nil {
		return q, err
	}

	if len(params.CategoryIDs) > 0 {
		if q.Categories, err = uc.categories.ResolveCategories(ctx, params.CategoryIDs); err != nil {
			return q, err
		}
	}
	return q, q.Validate()
}

func parsePrice(raw string, fallback decimal.Decimal) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fallback, fmt.Errorf("%w: %q is not a price", search.ErrInvalidPriceRange, raw)
	}
	return d, nil
}
