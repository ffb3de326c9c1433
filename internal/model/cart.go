package model

import "github.com/shopspring/decimal"

// CartItem is a product plus the requested quantity; its identity is the product id.
// The json layout is the persisted snapshot format: product fields flattened with quantity.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartTotal sums price × quantity over items.
func CartTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}
