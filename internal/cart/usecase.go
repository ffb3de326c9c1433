package cart

import (
	"context"

	"github.com/fekuna/kiwi-storefront-service/internal/model"
	"github.com/shopspring/decimal"
)

// Snapshot is a read of one session's cart.
type Snapshot struct {
	Items []model.CartItem
	Total decimal.Decimal
	Count int
}

func (s Snapshot) IsEmpty() bool {
	return len(s.Items) == 0
}

// PaymentField is one hidden input of the gateway form, kept in posting order.
type PaymentField struct {
	Name  string
	Value string
}

// PaymentForm describes the form post that hands the cart over to the payment gateway.
type PaymentForm struct {
	GatewayURL string
	OrderID    string
	Amount     decimal.Decimal
	Fields     []PaymentField
}

// UseCase scopes carts to sessions. Product ids are resolved against the catalog.
type UseCase interface {
	GetCart(ctx context.Context, session string) (Snapshot, error)
	AddToCart(ctx context.Context, session, productID string) (Snapshot, error)
	RemoveFromCart(ctx context.Context, session, productID string) (Snapshot, error)
	UpdateQuantity(ctx context.Context, session, productID string, quantity int) (Snapshot, error)
	ClearCart(ctx context.Context, session string) error
	// Checkout builds the gateway hand-off for a non-empty cart. The cart is left intact.
	Checkout(ctx context.Context, session string) (*PaymentForm, error)
}
