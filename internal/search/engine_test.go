package search

import (
	"testing"

	"github.com/fekuna/kiwi-storefront-service/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id, name string, price int64, rating float64, desc string, benefits ...string) model.Product {
	return model.Product{
		ID:          id,
		Name:        name,
		Price:       decimal.NewFromInt(price),
		Images:      []string{id + ".jpg"},
		Description: desc,
		Benefits:    benefits,
		Rating:      rating,
	}
}

func ptr(p model.Product) *model.Product { return &p }

func farmCatalog() []model.Product {
	return []model.Product{
		product("1", "Fresh Kiwi", 120, 4.9, "Delicious, organic kiwis grown on our sustainable farm.", "High in Vitamin C"),
		product("2", "Kiwi Jam", 250, 4.7, "Homemade kiwi jam with a sweet and tangy flavor."),
		product("3", "Dried Kiwi Slices", 180, 4.6, "Healthy dried kiwi slices, perfect for snacking.", "Rich in Fiber"),
		product("4", "Kiwi Juice", 90, 4.8, "Refreshing kiwi juice, packed with vitamins."),
		product("5", "Kiwi Pickle", 160, 4.5, "Spicy farmhouse pickle."),
		product("6", "Kiwi Cream", 320, 5.0, "Premium cream for skincare and wellness."),
	}
}

func ids(ps []model.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestMatch_Rules(t *testing.T) {
	opts := DefaultOptions()
	cat := farmCatalog()
	fresh, jam, dried, juice, pickle, cream := &cat[0], &cat[1], &cat[2], &cat[3], &cat[4], &cat[5]

	tests := []struct {
		name  string
		p     *model.Product
		term  string
		match bool
	}{
		{"name substring", fresh, "kiwi", true},
		{"name case-insensitive", fresh, "FRESH KIWI", true},
		{"description substring", jam, "tangy", true},
		{"benefit substring", dried, "fiber", true},
		{"cheap below threshold", juice, "cheap", true},
		{"cheap above threshold", jam, "cheap stuff", false},
		{"expensive", cream, "something expensive", true},
		{"expensive at threshold", ptr(product("x", "X", 200, 0, "")), "expensive", false},
		{"under N", dried, "under 200", true},
		{"under N is strict", fresh, "under 120", false},
		{"below N", juice, "below 100", true},
		{"under without number", juice, "under", false},
		{"category token in name", pickle, "spicy pickles please", true},
		{"category token not in name", ptr(product("y", "Gift Box", 500, 0, "contains jam")), "jam box deal", false},
		{"no rule", cream, "mango", false},
		{"blank", fresh, "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.match, Match(tt.p, tt.term, opts))
		})
	}
}

func TestQuick_CaseInsensitive(t *testing.T) {
	cat := farmCatalog()
	lower := Quick(cat, "kiwi", DefaultOptions())
	upper := Quick(cat, "KIWI", DefaultOptions())

	assert.Equal(t, StateResults, lower.State)
	assert.Equal(t, ids(lower.Products), ids(upper.Products))
	assert.Contains(t, ids(lower.Products), "1")
}

func TestQuick_RankingPrefixThenPrice(t *testing.T) {
	res := Quick(farmCatalog(), "kiwi", Options{Limit: 10})

	// "Kiwi ..." names first by price, then the rest by price
	assert.Equal(t, []string{"4", "5", "2", "6", "1", "3"}, ids(res.Products))
	assert.Equal(t, 6, res.Total)
}

func TestQuick_PriceTieBreakWithoutPrefix(t *testing.T) {
	cat := []model.Product{
		product("jam", "Kiwi Jam", 250, 0, ""),
		product("juice", "Kiwi Juice", 90, 0, ""),
	}

	res := Quick(cat, "iwi", DefaultOptions())
	assert.Equal(t, []string{"juice", "jam"}, ids(res.Products))
}

func TestQuick_Limit(t *testing.T) {
	res := Quick(farmCatalog(), "kiwi", DefaultOptions())
	assert.Len(t, res.Products, 5)
	assert.Equal(t, 6, res.Total)
}

func TestQuick_EmptyAndNoMatches(t *testing.T) {
	empty := Quick(farmCatalog(), "", DefaultOptions())
	assert.Equal(t, StateIdle, empty.State)
	assert.Empty(t, empty.Products)

	none := Quick(farmCatalog(), "durian", DefaultOptions())
	assert.Equal(t, StateNoMatches, none.State)
	assert.Empty(t, none.Products)

	assert.NotEqual(t, empty.State, none.State)
}

func TestFilter_Defaults(t *testing.T) {
	res, err := Filter(farmCatalog(), DefaultFullQuery())
	require.NoError(t, err)

	assert.Equal(t, StateResults, res.State)
	assert.Equal(t, []string{"3", "1", "6", "2", "4", "5"}, ids(res.Products))
}

func TestFilter_PriceRangeInclusive(t *testing.T) {
	q := DefaultFullQuery()
	q.Price = PriceRange{Min: decimal.NewFromInt(90), Max: decimal.NewFromInt(180)}
	q.SortBy = SortByPrice

	res, err := Filter(farmCatalog(), q)
	require.NoError(t, err)
	assert.Equal(t, []string{"4", "1", "5", "3"}, ids(res.Products))
}

func TestFilter_Categories(t *testing.T) {
	q := DefaultFullQuery()
	q.Categories = []model.Category{
		{ID: "jam", Keywords: []string{"jam"}},
		{ID: "juice", Keywords: []string{"juice"}},
	}
	q.SortBy = SortByPrice

	res, err := Filter(farmCatalog(), q)
	require.NoError(t, err)
	assert.Equal(t, []string{"4", "2"}, ids(res.Products))
}

func TestFilter_TermAndSortDesc(t *testing.T) {
	q := DefaultFullQuery()
	q.Term = "Kiwi"
	q.SortBy = SortByPrice
	q.Order = Desc

	res, err := Filter(farmCatalog(), q)
	require.NoError(t, err)
	assert.Equal(t, []string{"6", "2", "3", "5", "1", "4"}, ids(res.Products))
}

func TestFilter_RatingIsDeterministic(t *testing.T) {
	cat := []model.Product{
		product("b", "Banana", 10, 4.5, ""),
		product("a", "Apple", 10, 4.5, ""),
		product("c", "Cherry", 10, 5, ""),
	}
	q := DefaultFullQuery()
	q.SortBy = SortByRating
	q.Order = Desc

	for i := 0; i < 5; i++ {
		res, err := Filter(cat, q)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a", "b"}, ids(res.Products))
	}
}

func TestFilter_States(t *testing.T) {
	q := DefaultFullQuery()
	q.Term = "durian"
	res, err := Filter(farmCatalog(), q)
	require.NoError(t, err)
	assert.Equal(t, StateNoMatches, res.State)

	q = DefaultFullQuery()
	q.Price = PriceRange{Min: decimal.NewFromInt(1000), Max: decimal.NewFromInt(2000)}
	res, err = Filter(farmCatalog(), q)
	require.NoError(t, err)
	assert.Empty(t, res.Products)
	assert.Equal(t, StateNoMatches, res.State)

	q = DefaultFullQuery()
	q.Categories = []model.Category{{ID: "cream", Keywords: []string{"cream"}}}
	res, err = Filter(farmCatalog()[:1], q)
	require.NoError(t, err)
	assert.Empty(t, res.Products)
	assert.Equal(t, StateNoMatches, res.State)

	// nothing typed, nothing filtered, nothing to browse
	res, err = Filter(nil, DefaultFullQuery())
	require.NoError(t, err)
	assert.Equal(t, StateIdle, res.State)
}

func TestFilter_Validation(t *testing.T) {
	q := DefaultFullQuery()
	q.SortBy = "popularity"
	_, err := Filter(farmCatalog(), q)
	assert.ErrorIs(t, err, ErrInvalidSortKey)

	q = DefaultFullQuery()
	q.Order = "sideways"
	_, err = Filter(farmCatalog(), q)
	assert.ErrorIs(t, err, ErrInvalidSortOrder)

	q = DefaultFullQuery()
	q.Price = PriceRange{Min: decimal.NewFromInt(300), Max: decimal.NewFromInt(100)}
	_, err = Filter(farmCatalog(), q)
	assert.ErrorIs(t, err, ErrInvalidPriceRange)
}
