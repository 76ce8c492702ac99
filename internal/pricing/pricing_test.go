package pricing

import (
	"testing"

	"record-store/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func cartItem(productID uint64, qty int64, price string) domain.CartItem {
	return domain.CartItem{
		ProductID: productID,
		Quantity:  qty,
		UnitPrice: decimal.RequireFromString(price),
	}
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name     string
		items    []domain.CartItem
		method   domain.ShippingMethod
		subtotal string
		tax      string
		shipping string
		total    string
	}{
		{
			name: "two items standard shipping",
			items: []domain.CartItem{
				cartItem(1, 2, "25.00"),
				cartItem(2, 1, "12.00"),
			},
			method:   domain.ShippingStandard,
			subtotal: "62.00",
			tax:      "4.96",
			shipping: "0.00",
			total:    "66.96",
		},
		{
			name: "two items express shipping",
			items: []domain.CartItem{
				cartItem(1, 2, "25.00"),
				cartItem(2, 1, "12.00"),
			},
			method:   domain.ShippingExpress,
			subtotal: "62.00",
			tax:      "4.96",
			shipping: "15.00",
			total:    "81.96",
		},
		{
			name:     "empty cart",
			items:    nil,
			method:   domain.ShippingStandard,
			subtotal: "0.00",
			tax:      "0.00",
			shipping: "0.00",
			total:    "0.00",
		},
		{
			name: "tax rounds down below the half",
			// 12.31 * 0.08 = 0.9848 -> 0.98
			items: []domain.CartItem{
				cartItem(3, 1, "12.31"),
			},
			method:   domain.ShippingStandard,
			subtotal: "12.31",
			tax:      "0.98",
			shipping: "0.00",
			total:    "13.29",
		},
		{
			name: "tax rounds up past the half",
			// 58.59 * 0.08 = 4.6872 -> 4.69
			items: []domain.CartItem{
				cartItem(4, 1, "58.59"),
			},
			method:   domain.ShippingStandard,
			subtotal: "58.59",
			tax:      "4.69",
			shipping: "0.00",
			total:    "63.28",
		},
		{
			name: "quantity multiplies snapshot price",
			items: []domain.CartItem{
				cartItem(5, 3, "19.99"),
			},
			method:   domain.ShippingExpress,
			subtotal: "59.97",
			tax:      "4.80",
			shipping: "15.00",
			total:    "79.77",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.items, tt.method)

			assert.True(t, decimal.RequireFromString(tt.subtotal).Equal(got.Subtotal),
				"subtotal: want %s got %s", tt.subtotal, got.Subtotal)
			assert.True(t, decimal.RequireFromString(tt.tax).Equal(got.Tax),
				"tax: want %s got %s", tt.tax, got.Tax)
			assert.True(t, decimal.RequireFromString(tt.shipping).Equal(got.ShippingCost),
				"shipping: want %s got %s", tt.shipping, got.ShippingCost)
			assert.True(t, decimal.RequireFromString(tt.total).Equal(got.Total),
				"total: want %s got %s", tt.total, got.Total)

			// total must always balance
			assert.True(t, got.Subtotal.Add(got.Tax).Add(got.ShippingCost).Equal(got.Total))
		})
	}
}

func TestComputeTotalsIsPure(t *testing.T) {
	items := []domain.CartItem{cartItem(1, 2, "25.00")}

	first := ComputeTotals(items, domain.ShippingExpress)
	second := ComputeTotals(items, domain.ShippingExpress)

	assert.True(t, first.Total.Equal(second.Total))
	assert.True(t, decimal.RequireFromString("25.00").Equal(items[0].UnitPrice))
	assert.Equal(t, int64(2), items[0].Quantity)
}

func TestShippingCost(t *testing.T) {
	assert.True(t, ShippingCost(domain.ShippingStandard).IsZero())
	assert.True(t, decimal.RequireFromString("15.00").Equal(ShippingCost(domain.ShippingExpress)))
	assert.True(t, ShippingCost(domain.ShippingMethod("carrier-pigeon")).IsZero())
}
