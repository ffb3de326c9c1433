package usecase

import (
	"context"
	"sync"

	"github.com/fekuna/kiwi-storefront-service/internal/cart"
	"github.com/fekuna/kiwi-storefront-service/internal/product"
	"github.com/fekuna/kiwi-storefront-service/pkg/logger"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentConfig is the gateway the checkout form posts to.
type PaymentConfig struct {
	GatewayURL  string
	ProductCode string
	SuccessURL  string
	FailureURL  string
}

type cartUseCase struct {
	repo     cart.Repository
	products product.UseCase
	payment  PaymentConfig
	logger   logger.ZapLogger

	// Loaded carts, bounded because session ids are client supplied. An evicted cart
	// is rehydrated from its durable snapshot on the next request.
	mu     sync.Mutex
	stores *lru.Cache[string, *cart.Store]
}

// DefaultSessionCacheSize bounds the loaded carts when no size is configured.
const DefaultSessionCacheSize = 10000

func NewCartUseCase(repo cart.Repository, products product.UseCase, payment PaymentConfig, sessions int, log logger.ZapLogger) cart.UseCase {
	if sessions <= 0 {
		sessions = DefaultSessionCacheSize
	}
	stores, _ := lru.New[string, *cart.Store](sessions) // errors only on a non-positive size
	return &cartUseCase{
		repo:     repo,
		products: products,
		payment:  payment,
		logger:   log,
		stores:   stores,
	}
}

// store returns the session's cart, rehydrating it on first use. A failed load is not
// cached, so the next request retries against durable storage.
func (uc *cartUseCase) store(ctx context.Context, session string) (*cart.Store, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if s, ok := uc.stores.Get(session); ok {
		return s, nil
	}
	// Rehydration outlives the request that triggered it.
	s, err := cart.NewStore(context.WithoutCancel(ctx), uc.repo, cart.StorageKey(session), uc.logger.With(zap.String("session_id", session)))
	if err != nil {
		uc.logger.Error("failed to load cart", zap.String("session_id", session), zap.Error(err))
		return nil, err
	}
	uc.stores.Add(session, s)
	return s, nil
}

func (uc *cartUseCase) GetCart(ctx context.Context, session string) (cart.Snapshot, error) {
	s, err := uc.store(ctx, session)
	if err != nil {
		return cart.Snapshot{}, err
	}
	return s.Snapshot(), nil
}

func (uc *cartUseCase) AddToCart(ctx context.Context, session, productID string) (cart.Snapshot, error) {
	p, err := uc.products.GetProduct(ctx, productID)
	if err != nil {
		return cart.Snapshot{}, err
	}

	s, err := uc.store(ctx, session)
	if err != nil {
		return cart.Snapshot{}, err
	}
	if err := s.AddToCart(ctx, *p); err != nil {
		return s.Snapshot(), err
	}
	uc.logger.Debug("added to cart", zap.String("session_id", session), zap.String("product_id", productID))
	return s.Snapshot(), nil
}

func (uc *cartUseCase) RemoveFromCart(ctx context.Context, session, productID string) (cart.Snapshot, error) {
	s, err := uc.store(ctx, session)
	if err != nil {
		return cart.Snapshot{}, err
	}
	err = s.RemoveFromCart(ctx, productID)
	return s.Snapshot(), err
}

func (uc *cartUseCase) UpdateQuantity(ctx context.Context, session, productID string, quantity int) (cart.Snapshot, error) {
	s, err := uc.store(ctx, session)
	if err != nil {
		return cart.Snapshot{}, err
	}
	err = s.UpdateQuantity(ctx, productID, quantity)
	return s.Snapshot(), err
}

func (uc *cartUseCase) ClearCart(ctx context.Context, session string) error {
	s, err := uc.store(ctx, session)
	if err != nil {
		return err
	}
	return s.ClearCart(ctx)
}

func (uc *cartUseCase) Checkout(ctx context.Context, session string) (*cart.PaymentForm, error) {
	s, err := uc.store(ctx, session)
	if err != nil {
		return nil, err
	}
	snap := s.Snapshot()
	if snap.IsEmpty() {
		return nil, cart.ErrEmptyCart
	}

	orderID := uuid.NewString()
	amount := snap.Total.StringFixed(2)
	form := &cart.PaymentForm{
		GatewayURL: uc.payment.GatewayURL,
		OrderID:    orderID,
		Amount:     snap.Total,
		Fields: []cart.PaymentField{
			{Name: "amount", Value: amount},
			{Name: "tax_amount", Value: decimal.Zero.StringFixed(2)},
			{Name: "total_amount", Value: amount},
			{Name: "transaction_uuid", Value: orderID},
			{Name: "product_code", Value: uc.payment.ProductCode},
			{Name: "success_url", Value: uc.payment.SuccessURL},
			{Name: "failure_url", Value: uc.payment.FailureURL},
		},
	}

	uc.logger.Info("checkout handed off to payment gateway",
		zap.String("session_id", session),
		zap.String("order_id", orderID),
		zap.String("amount", amount),
		zap.Int("lines", len(snap.Items)),
	)
	return form, nil
}
