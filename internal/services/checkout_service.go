package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"record-store/internal/domain"
	rabbit "record-store/internal/infra/rabbitmq"
	"record-store/internal/pricing"
	"record-store/internal/repository"
)

// CheckoutService is the order workflow: it turns a session cart into a
// persisted order atomically, and drives admin status transitions with their
// compensating restocks.
type CheckoutService struct {
	orders    repository.OrderRepository
	carts     repository.CartStore
	publisher rabbit.PublisherInterface
}

func NewCheckoutService(orders repository.OrderRepository, carts repository.CartStore, pub rabbit.PublisherInterface) *CheckoutService {
	return &CheckoutService{
		orders:    orders,
		carts:     carts,
		publisher: pub,
	}
}

// PlaceOrder validates the checkout form, recomputes totals from the
// server-side cart snapshot, persists the order with its items and stock
// decrements in one transaction, and clears the cart only after the commit
// succeeded. On any failure the cart is left untouched and nothing persists.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID uint64, sessionID string, in CheckoutInput) (*domain.Order, error) {
	if verr := in.validate(); verr != nil {
		return nil, verr
	}

	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}

	totals := pricing.ComputeTotals(cart.Items, in.ShippingMethod)

	shippingAddr := in.Shipping.toAddress()
	billingAddr := shippingAddr
	if !in.UseSameBilling {
		billingAddr = in.Billing.toAddress()
	}

	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, ci := range cart.Items {
		items = append(items, domain.OrderItem{
			ProductID: ci.ProductID,
			Quantity:  ci.Quantity,
			UnitPrice: ci.UnitPrice,
		})
	}

	order := &domain.Order{
		UserID:          userID,
		Status:          domain.StatusPending,
		PaymentMethod:   "credit_card",
		ShippingMethod:  in.ShippingMethod,
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		ShippingCost:    totals.ShippingCost,
		Total:           totals.Total,
		CardLastFour:    in.lastFour(),
		ShippingAddress: shippingAddr,
		BillingAddress:  billingAddr,
		Items:           items,
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	// the order is committed; a failed clear must not fail the checkout
	if err := s.carts.Clear(ctx, sessionID); err != nil {
		log.Printf("failed to clear cart for session %s: %v", sessionID, err)
	}

	go s.publishOrderPlacedEvent(context.Background(), order)

	return order, nil
}

// UpdateStatus performs an admin-driven status transition. The repository
// serializes the old-status read with the write, so cancelling twice restocks
// exactly once.
func (s *CheckoutService) UpdateStatus(ctx context.Context, orderID uint64, newStatus domain.OrderStatus) (*domain.Order, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, newStatus)
	}

	order, oldStatus, err := s.orders.UpdateStatus(ctx, orderID, newStatus)
	if err != nil {
		return nil, err
	}

	// re-applying the current status changed nothing, so there is nothing
	// to announce
	if oldStatus == newStatus {
		return order, nil
	}

	restocked := newStatus == domain.StatusCancelled
	go s.publishStatusUpdatedEvent(context.Background(), order, restocked)

	return order, nil
}

// GetOrder returns an order scoped to the requesting user. Admins see every
// order; anyone else gets not-found for orders that are not theirs.
func (s *CheckoutService) GetOrder(ctx context.Context, orderID, requesterID uint64, admin bool) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	if !admin && order.UserID != requesterID {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

func (s *CheckoutService) ListOrders(ctx context.Context, userID uint64) ([]domain.Order, error) {
	return s.orders.FindByUserID(ctx, userID)
}

// AdminListOrders returns all orders (optionally filtered by status) plus
// per-status counts for the back-office filter badges.
func (s *CheckoutService) AdminListOrders(ctx context.Context, status domain.OrderStatus) ([]domain.Order, map[domain.OrderStatus]int64, error) {
	if status != "" && !status.Valid() {
		return nil, nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	orders, err := s.orders.List(ctx, status)
	if err != nil {
		return nil, nil, err
	}

	counts, err := s.orders.CountByStatus(ctx)
	if err != nil {
		return nil, nil, err
	}
	return orders, counts, nil
}

func (s *CheckoutService) publishOrderPlacedEvent(ctx context.Context, order *domain.Order) {
	evt := domain.OrderPlacedEvent{
		OrderID:   order.ID,
		UserID:    order.UserID,
		Total:     order.Total,
		ItemCount: len(order.Items),
		CreatedAt: order.CreatedAt,
	}

	if err := s.publisher.Publish(ctx, "order.created", evt); err != nil {
		log.Printf("Failed to publish order.created event: %v", err)
	}
}

func (s *CheckoutService) publishStatusUpdatedEvent(ctx context.Context, order *domain.Order, restocked bool) {
	evt := domain.OrderStatusUpdatedEvent{
		OrderID:   order.ID,
		NewStatus: order.Status,
		Restocked: restocked,
		UpdatedAt: time.Now(),
	}

	pattern := "order.status_updated"
	if restocked {
		pattern = "order.cancelled"
	}

	if err := s.publisher.Publish(ctx, pattern, evt); err != nil {
		log.Printf("Failed to publish %s event: %v", pattern, err)
	}
}
