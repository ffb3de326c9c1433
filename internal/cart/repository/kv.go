package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fekuna/kiwi-storefront-service/internal/cart"
	"github.com/fekuna/kiwi-storefront-service/internal/model"
	"github.com/fekuna/kiwi-storefront-service/pkg/kvstore"
)

// KVRepository stores each cart as one JSON array of line items.
type KVRepository struct {
	store kvstore.Store
}

func NewKVRepository(store kvstore.Store) *KVRepository {
	return &KVRepository{store: store}
}

func (r *KVRepository) Load(ctx context.Context, key string) ([]model.CartItem, error) {
	data, err := r.store.Get(ctx, key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return []model.CartItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart %s: %w", key, err)
	}

	var items []model.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", cart.ErrMalformedSnapshot, err)
	}
	if items == nil {
		items = []model.CartItem{}
	}
	return items, nil
}

func (r *KVRepository) Save(ctx context.Context, key string, items []model.CartItem) error {
	if items == nil {
		items = []model.CartItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := r.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("save cart %s: %w", key, err)
	}
	return nil
}
