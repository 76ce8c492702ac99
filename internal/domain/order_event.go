package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderPlacedEvent struct {
	OrderID   uint64          `json:"orderId"`
	UserID    uint64          `json:"userId"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
	CreatedAt time.Time       `json:"createdAt"`
}

type OrderStatusUpdatedEvent struct {
	OrderID   uint64      `json:"orderId"`
	NewStatus OrderStatus `json:"newStatus"`
	Restocked bool        `json:"restocked"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
