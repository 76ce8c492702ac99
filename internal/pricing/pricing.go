// Package pricing computes order totals from a cart snapshot. Every function
// here is pure: the checkout workflow re-invokes it server-side so that
// client-submitted totals are never trusted.
package pricing

import (
	"record-store/internal/domain"

	"github.com/shopspring/decimal"
)

var taxRate = decimal.RequireFromString("0.08")

// Flat-rate shipping policy, keyed by method.
var shippingRates = map[domain.ShippingMethod]decimal.Decimal{
	domain.ShippingStandard: decimal.Zero,
	domain.ShippingExpress:  decimal.RequireFromString("15.00"),
}

type Totals struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	ShippingCost decimal.Decimal `json:"shippingCost"`
	Total        decimal.Decimal `json:"total"`
}

// ShippingCost returns the flat rate for a method. Unknown methods cost zero;
// the workflow validates the method before pricing runs.
func ShippingCost(method domain.ShippingMethod) decimal.Decimal {
	if rate, ok := shippingRates[method]; ok {
		return rate
	}
	return decimal.Zero
}

// ComputeTotals derives subtotal, tax, shipping and total from the cart's
// price snapshots. Tax is a flat 8% of the pre-shipping subtotal, rounded to
// two decimals half away from zero (decimal.Round semantics).
func ComputeTotals(items []domain.CartItem, method domain.ShippingMethod) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)))
	}
	subtotal = subtotal.Round(2)

	tax := subtotal.Mul(taxRate).Round(2)
	shipping := ShippingCost(method)

	return Totals{
		Subtotal:     subtotal,
		Tax:          tax,
		ShippingCost: shipping,
		Total:        subtotal.Add(tax).Add(shipping).Round(2),
	}
}
