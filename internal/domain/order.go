package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every legal status, in progression order.
var OrderStatuses = []OrderStatus{
	StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal statuses admit no further transition.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

var statusRank = map[OrderStatus]int{
	StatusPending:    0,
	StatusProcessing: 1,
	StatusShipped:    2,
	StatusDelivered:  3,
}

// CanTransition reports whether an order may move from one status to another.
// The happy path only moves forward (pending -> processing -> shipped -> delivered);
// cancellation is reachable from any non-terminal status. Re-applying the current
// status is allowed and treated as a no-op by the workflow.
func CanTransition(from, to OrderStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	if from.Terminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return statusRank[to] > statusRank[from]
}

type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
)

func (m ShippingMethod) Valid() bool {
	return m == ShippingStandard || m == ShippingExpress
}

// Address is an immutable snapshot taken at checkout time. It is persisted as a
// JSON blob on the order row, never normalized, so later profile edits cannot
// rewrite order history.
type Address struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	AddressLine string `json:"addressLine"`
	Apartment   string `json:"apartment,omitempty"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Phone       string `json:"phone,omitempty"`
}

// Order is the aggregate root of a completed checkout. Everything except Status
// (and UpdatedAt) is immutable once created; the row is written together with
// its items and the stock decrements in a single transaction.
type Order struct {
	ID              uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID          uint64          `json:"userId" gorm:"not null;index"`
	Status          OrderStatus     `json:"status" gorm:"type:enum('pending','processing','shipped','delivered','cancelled');default:'pending'"`
	PaymentMethod   string          `json:"paymentMethod" gorm:"not null;default:'credit_card';type:varchar(50)"`
	ShippingMethod  ShippingMethod  `json:"shippingMethod" gorm:"not null;default:'standard';type:varchar(20)"`
	Subtotal        decimal.Decimal `json:"subtotal" gorm:"not null;type:decimal(10,2)"`
	Tax             decimal.Decimal `json:"tax" gorm:"not null;type:decimal(10,2)"`
	ShippingCost    decimal.Decimal `json:"shippingCost" gorm:"not null;type:decimal(10,2)"`
	Total           decimal.Decimal `json:"total" gorm:"not null;type:decimal(10,2)"`
	CardLastFour    string          `json:"cardLastFour" gorm:"type:varchar(4)"`
	ShippingAddress Address         `json:"shippingAddress" gorm:"type:json;serializer:json"`
	BillingAddress  Address         `json:"billingAddress" gorm:"type:json;serializer:json"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time       `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `json:"updatedAt" gorm:"autoUpdateTime"`
}

// ItemsSubtotal recomputes the subtotal from the line items. Must equal
// Subtotal for any order this service created.
func (o *Order) ItemsSubtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return sum
}

// OrderItem is a line-item snapshot. ProductID is a weak reference: the product
// may be edited or removed later without touching the historical record, so
// there is no DB-level foreign key to products.
type OrderItem struct {
	ID        uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   uint64          `json:"orderId" gorm:"not null;index"`
	ProductID uint64          `json:"productId" gorm:"not null;index"`
	Quantity  int64           `json:"quantity" gorm:"not null"`
	UnitPrice decimal.Decimal `json:"unitPrice" gorm:"not null;type:decimal(10,2)"`
}
