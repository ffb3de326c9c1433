package repository

import (
	"context"
	"testing"

	"github.com/fekuna/kiwi-storefront-service/internal/cart"
	"github.com/fekuna/kiwi-storefront-service/internal/model"
	"github.com/fekuna/kiwi-storefront-service/pkg/kvstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewKVRepository(kvstore.NewMemoryStore())
	key := cart.StorageKey("s1")

	items, err := repo.Load(ctx, key)
	require.NoError(t, err)
	assert.Empty(t, items)

	saved := []model.CartItem{
		{Product: model.Product{ID: "1", Name: "Fresh Kiwi", Price: decimal.NewFromInt(120), Images: []string{"a.jpg"}}, Quantity: 3},
		{Product: model.Product{ID: "4", Name: "Kiwi Juice", Price: decimal.RequireFromString("90.50"), Images: []string{"b.jpg"}}, Quantity: 1},
	}
	require.NoError(t, repo.Save(ctx, key, saved))

	loaded, err := repo.Load(ctx, key)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "1", loaded[0].ID)
	assert.Equal(t, 3, loaded[0].Quantity)
	assert.True(t, loaded[1].Price.Equal(decimal.RequireFromString("90.5")))
}

func TestKVRepository_SnapshotLayout(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	repo := NewKVRepository(store)

	require.NoError(t, repo.Save(ctx, "kiwi-cart:s1", []model.CartItem{
		{Product: model.Product{ID: "2", Name: "Kiwi Jam", Price: decimal.NewFromInt(250)}, Quantity: 2},
	}))

	raw, err := store.Get(ctx, "kiwi-cart:s1")
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"id": "2", "name": "Kiwi Jam", "price": "250", "images": null,
		"description": "", "benefits": null, "colors": null, "rating": 0,
		"quantity": 2
	}]`, string(raw))

	require.NoError(t, repo.Save(ctx, "kiwi-cart:s1", nil))
	raw, err = store.Get(ctx, "kiwi-cart:s1")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestKVRepository_Malformed(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "kiwi-cart:s1", []byte(`{not json`)))

	_, err := NewKVRepository(store).Load(ctx, "kiwi-cart:s1")
	assert.ErrorIs(t, err, cart.ErrMalformedSnapshot)
}
