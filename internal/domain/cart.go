package domain

import "github.com/shopspring/decimal"

// CartLine is one product in the cart. The product is embedded in full so the
// cart survives restarts even when the catalog could not be fetched.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
