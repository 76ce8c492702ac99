package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"pending to processing", StatusPending, StatusProcessing, true},
		{"processing to shipped", StatusProcessing, StatusShipped, true},
		{"shipped to delivered", StatusShipped, StatusDelivered, true},
		{"pending straight to shipped", StatusPending, StatusShipped, true},
		{"cancel from pending", StatusPending, StatusCancelled, true},
		{"cancel from processing", StatusProcessing, StatusCancelled, true},
		{"cancel from shipped", StatusShipped, StatusCancelled, true},
		{"cancel from delivered", StatusDelivered, StatusCancelled, false},
		{"backwards to pending", StatusProcessing, StatusPending, false},
		{"out of delivered", StatusDelivered, StatusShipped, false},
		{"out of cancelled", StatusCancelled, StatusProcessing, false},
		{"same status is a no-op", StatusCancelled, StatusCancelled, true},
		{"unknown target", StatusPending, OrderStatus("lost"), false},
		{"unknown source", OrderStatus("lost"), StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range OrderStatuses {
		assert.True(t, s.Valid(), "%s should be valid", s)
	}
	assert.False(t, OrderStatus("confirmed").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestItemsSubtotal(t *testing.T) {
	order := &Order{
		Items: []OrderItem{
			{ProductID: 1, Quantity: 2, UnitPrice: decimal.RequireFromString("25.00")},
			{ProductID: 2, Quantity: 1, UnitPrice: decimal.RequireFromString("12.00")},
		},
	}
	assert.True(t, decimal.RequireFromString("62.00").Equal(order.ItemsSubtotal()))

	empty := &Order{}
	assert.True(t, empty.ItemsSubtotal().IsZero())
}
