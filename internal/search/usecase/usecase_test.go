package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/kiwi-storefront-service/internal/category"
	categoryrepo "github.com/fekuna/kiwi-storefront-service/internal/category/repository"
	categoryuc "github.com/fekuna/kiwi-storefront-service/internal/category/usecase"
	"github.com/fekuna/kiwi-storefront-service/internal/model"
	productrepo "github.com/fekuna/kiwi-storefront-service/internal/product/repository"
	productuc "github.com/fekuna/kiwi-storefront-service/internal/product/usecase"
	"github.com/fekuna/kiwi-storefront-service/internal/search"
	"github.com/fekuna/kiwi-storefront-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase(t *testing.T) search.UseCase {
	t.Helper()

	c, err := productrepo.LoadCatalog("")
	require.NoError(t, err)

	log := logger.NewNop()
	products := productuc.NewProductUseCase(productrepo.NewStaticRepository(c.Products), log)
	categories := categoryuc.NewCategoryUseCase(categoryrepo.NewStaticRepository(c.Categories), log)

	opts := search.DefaultOptions()
	opts.Debounce = 10 * time.Millisecond
	return NewSearchUseCase(products, categories, opts, log)
}

func productIDs(ps []model.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestQuickSearch(t *testing.T) {
	uc := newUseCase(t)

	res, err := uc.QuickSearch(context.Background(), "cheap")
	require.NoError(t, err)
	assert.Equal(t, search.StateResults, res.State)
	assert.Equal(t, []string{"4", "1"}, productIDs(res.Products))

	res, err = uc.QuickSearch(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, search.StateIdle, res.State)
}

func TestFullSearch(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		params search.FullSearchParams
		want   []string
	}{
		{
			name:   "defaults browse everything by name",
			params: search.FullSearchParams{},
			want:   []string{"3", "1", "6", "2", "4", "5"},
		},
		{
			name:   "categories are OR-ed",
			params: search.FullSearchParams{CategoryIDs: []string{"jam", "juice"}, SortBy: "price"},
			want:   []string{"4", "2"},
		},
		{
			name:   "processed matches descriptions too",
			params: search.FullSearchParams{CategoryIDs: []string{"processed"}},
			want:   []string{"3", "6", "2", "4", "5"},
		},
		{
			name:   "price bounds and case-insensitive sort params",
			params: search.FullSearchParams{MinPrice: "100", MaxPrice: "200", SortBy: "PRICE", Order: "Desc"},
			want:   []string{"3", "5", "1"},
		},
		{
			name:   "term",
			params: search.FullSearchParams{Term: "  vitamin c ", SortBy: "rating", Order: "desc"},
			want:   []string{"1", "4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := uc.FullSearch(ctx, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, productIDs(res.Products))
		})
	}
}

func TestFullSearch_Errors(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	_, err := uc.FullSearch(ctx, search.FullSearchParams{MinPrice: "abc"})
	assert.ErrorIs(t, err, search.ErrInvalidPriceRange)

	_, err = uc.FullSearch(ctx, search.FullSearchParams{MinPrice: "300", MaxPrice: "100"})
	assert.ErrorIs(t, err, search.ErrInvalidPriceRange)

	_, err = uc.FullSearch(ctx, search.FullSearchParams{SortBy: "popularity"})
	assert.ErrorIs(t, err, search.ErrInvalidSortKey)

	_, err = uc.FullSearch(ctx, search.FullSearchParams{Order: "up"})
	assert.ErrorIs(t, err, search.ErrInvalidSortOrder)

	_, err = uc.FullSearch(ctx, search.FullSearchParams{CategoryIDs: []string{"soap"}})
	assert.ErrorIs(t, err, category.ErrCategoryNotFound)
}

func TestNewQuickSession(t *testing.T) {
	uc := newUseCase(t)

	published := make(chan search.SessionState, 1)
	s, err := uc.NewQuickSession(context.Background(), func(st search.SessionState) {
		published <- st
	})
	require.NoError(t, err)
	defer s.Close()

	s.Open()
	s.Type("pickle")

	select {
	case st := <-published:
		require.Len(t, st.Result.Products, 1)
		assert.Equal(t, "Kiwi Pickle", st.Result.Products[0].Name)
	case <-time.After(time.Second):
		t.Fatal("no results published")
	}
}
