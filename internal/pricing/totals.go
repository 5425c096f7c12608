package pricing

import (
	"github.com/shopspring/decimal"
)

// Totals is the monetary breakdown of an order. All values are unrounded;
// rounding happens only when amounts are serialized for display.
type Totals struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Compute derives tax and the grand total from the item subtotal and the
// shipping cost. Tax applies to the item subtotal only; shipping is passed
// through untaxed.
func Compute(subtotal, shipping, taxRate decimal.Decimal) Totals {
	tax := subtotal.Mul(taxRate)
	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}
