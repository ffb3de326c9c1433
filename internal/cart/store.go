// Package cart holds the shopping cart: the Store that owns one cart and mirrors it
// to durable storage, and the contracts of the session-scoped cart use case.
package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/fekuna/kiwi-storefront-service/internal/model"
	"github.com/fekuna/kiwi-storefront-service/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrMalformedSnapshot = errors.New("malformed cart snapshot")
	ErrEmptyCart         = errors.New("cart is empty")
)

// MinQuantity is the smallest quantity a cart line can hold.
const MinQuantity = 1

// Store is the single owner of one cart. Every mutation is applied in memory and then
// written through to the repository before the call returns.
type Store struct {
	mu     sync.Mutex
	items  []model.CartItem
	repo   Repository
	key    string
	logger logger.ZapLogger
}

// NewStore rehydrates the cart saved under key. A malformed snapshot starts the cart
// empty and is replaced on the first mutation. Any other load failure is returned so
// an unreachable backend never passes for an empty cart.
func NewStore(ctx context.Context, repo Repository, key string, log logger.ZapLogger) (*Store, error) {
	s := &Store{
		repo:   repo,
		key:    key,
		logger: log.With(zap.String("cart_key", key)),
	}

	items, err := repo.Load(ctx, key)
	switch {
	case errors.Is(err, ErrMalformedSnapshot):
		s.logger.Warn("cart snapshot malformed, starting empty", zap.Error(err))
		items = nil
	case err != nil:
		return nil, fmt.Errorf("rehydrate cart: %w", err)
	}
	s.items = normalize(items)
	return s, nil
}

// normalize drops lines that would break the cart invariants: duplicate ids are merged
// and quantities below MinQuantity are raised.
func normalize(items []model.CartItem) []model.CartItem {
	out := make([]model.CartItem, 0, len(items))
	index := make(map[string]int, len(items))
	for _, it := range items {
		if it.Quantity < MinQuantity {
			it.Quantity = MinQuantity
		}
		if i, ok := index[it.ID]; ok {
			out[i].Quantity += it.Quantity
			continue
		}
		index[it.ID] = len(out)
		out = append(out, it)
	}
	return out
}

// AddToCart increments the quantity of p's line, or appends a new line with quantity 1.
func (s *Store) AddToCart(ctx context.Context, p model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(p.ID); i >= 0 {
		s.items[i].Quantity++
	} else {
		s.items = append(s.items, model.CartItem{Product: p.Clone(), Quantity: 1})
	}
	return s.persist(ctx, "add")
}

// RemoveFromCart deletes the line for id. Removing an absent id is a no-op.
func (s *Store) RemoveFromCart(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return s.persist(ctx, "remove")
}

// UpdateQuantity sets the quantity of id's line, clamped to MinQuantity.
// Updating an absent id is a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	if quantity < MinQuantity {
		s.logger.Debug("quantity clamped", zap.String("product_id", id), zap.Int("requested", quantity))
		quantity = MinQuantity
	}
	if s.items[i].Quantity == quantity {
		return nil
	}
	s.items[i].Quantity = quantity
	return s.persist(ctx, "update")
}

func (s *Store) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = s.items[:0]
	return s.persist(ctx, "clear")
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []model.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.CartItem, len(s.items))
	for i, it := range s.items {
		out[i] = model.CartItem{Product: it.Product.Clone(), Quantity: it.Quantity}
	}
	return out
}

// Snapshot reads lines, total and unit count under one lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{Items: make([]model.CartItem, len(s.items)), Total: model.CartTotal(s.items)}
	for i, it := range s.items {
		snap.Items[i] = model.CartItem{Product: it.Product.Clone(), Quantity: it.Quantity}
		snap.Count += it.Quantity
	}
	return snap
}

// Len is the number of distinct lines.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Count is the number of units across all lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}

// Total is recomputed from the current lines on every call.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CartTotal(s.items)
}

func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// persist must be called with s.mu held. A failed write leaves the in-memory change in place.
func (s *Store) persist(ctx context.Context, op string) error {
	if err := s.repo.Save(ctx, s.key, s.items); err != nil {
		s.logger.Error("failed to persist cart", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}
