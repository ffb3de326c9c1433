package cart

import (
	"context"

	"github.com/fekuna/kiwi-storefront-service/internal/model"
)

// KeyPrefix namespaces cart snapshots in the durable store.
const KeyPrefix = "kiwi-cart"

// StorageKey is the durable key of the cart owned by session.
func StorageKey(session string) string {
	return KeyPrefix + ":" + session
}

// Repository loads and saves whole cart snapshots. Load returns an empty slice when
// nothing was ever saved under key.
type Repository interface {
	Load(ctx context.Context, key string) ([]model.CartItem, error)
	Save(ctx context.Context, key string, items []model.CartItem) error
}
