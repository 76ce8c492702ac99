package repository

import (
	"context"

	"record-store/internal/domain"
)

// OrderRepository owns the transactional boundary of the order workflow.
// CreateOrder persists the order, its items and the stock decrements as one
// atomic unit; UpdateStatus serializes the status write with any restock.
type OrderRepository interface {
	// CreateOrder inserts the order with its items and decrements stock for
	// every line item. A decrement that would drive quantity negative fails
	// the whole transaction with domain.ErrInsufficientStock.
	CreateOrder(ctx context.Context, order *domain.Order) error

	// FindByID returns (nil, nil) when no such order exists.
	FindByID(ctx context.Context, id uint64) (*domain.Order, error)

	FindByUserID(ctx context.Context, userID uint64) ([]domain.Order, error)

	// List returns all orders, optionally filtered by status ("" means all),
	// newest first.
	List(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)

	CountByStatus(ctx context.Context) (map[domain.OrderStatus]int64, error)

	// UpdateStatus moves an order to newStatus under a row lock. Transition
	// legality is checked against the locked row. The status the order held
	// before the write is returned so callers can tell a real transition from
	// a no-op re-apply; inventory is returned on the first transition into
	// cancelled only.
	UpdateStatus(ctx context.Context, id uint64, newStatus domain.OrderStatus) (order *domain.Order, oldStatus domain.OrderStatus, err error)
}

// CartStore holds the session-scoped cart aggregate. Clear is invoked exactly
// once, by the checkout workflow, after a successful commit.
type CartStore interface {
	// Get returns an empty cart (never nil) for an unknown session.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Clear(ctx context.Context, sessionID string) error
}

// CatalogRepository serves read-only product data for cart building and
// display. Stock mutations never go through here.
type CatalogRepository interface {
	// GetProduct returns (nil, nil) when no such product exists. The album and
	// artist are preloaded for display metadata.
	GetProduct(ctx context.Context, id uint64) (*domain.Product, error)

	LowStock(ctx context.Context, threshold int64) ([]domain.Product, error)
}
