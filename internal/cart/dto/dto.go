package dto

import (
	"github.com/fekuna/kiwi-storefront-service/internal/cart"
	productdto "github.com/fekuna/kiwi-storefront-service/internal/product/dto"
)

type CartItem struct {
	Product  productdto.Product `json:"product"`
	Quantity int32              `json:"quantity"`
	Subtotal string             `json:"subtotal"`
}

type CartResponse struct {
	Items []CartItem `json:"items"`
	Total string     `json:"total"`
	Count int32      `json:"count"`
	Empty bool       `json:"empty"`
}

type GetCartRequest struct{}

type AddItemRequest struct {
	ProductID string `json:"productId"`
}

type RemoveItemRequest struct {
	ProductID string `json:"productId"`
}

type UpdateQuantityRequest struct {
	ProductID string `json:"productId"`
	Quantity  int32  `json:"quantity"`
}

type CheckoutRequest struct{}

type PaymentField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type CheckoutResponse struct {
	GatewayURL string         `json:"gatewayUrl"`
	OrderID    string         `json:"orderId"`
	Amount     string         `json:"amount"`
	Fields     []PaymentField `json:"fields"`
}

func FromSnapshot(s cart.Snapshot) *CartResponse {
	items := make([]CartItem, len(s.Items))
	for i := range s.Items {
		it := &s.Items[i]
		items[i] = CartItem{
			Product:  productdto.FromModel(&it.Product),
			Quantity: int32(it.Quantity),
			Subtotal: it.Subtotal().StringFixed(2),
		}
	}
	return &CartResponse{
		Items: items,
		Total: s.Total.StringFixed(2),
		Count: int32(s.Count),
		Empty: s.IsEmpty(),
	}
}

func FromPaymentForm(f *cart.PaymentForm) *CheckoutResponse {
	fields := make([]PaymentField, len(f.Fields))
	for i, pf := range f.Fields {
		fields[i] = PaymentField{Name: pf.Name, Value: pf.Value}
	}
	return &CheckoutResponse{
		GatewayURL: f.GatewayURL,
		OrderID:    f.OrderID,
		Amount:     f.Amount.StringFixed(2),
		Fields:     fields,
	}
}
