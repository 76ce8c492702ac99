package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"record-store/internal/domain"
	"record-store/internal/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCheckoutService_PlaceOrder(t *testing.T) {
	tests := []struct {
		name          string
		input         func() CheckoutInput
		setupMocks    func(*mocks.MockOrderRepository, *mocks.MockCartStore, *mocks.MockPublisher)
		expectedErr   error
		checkValErr   func(*testing.T, error)
		checkOrder    func(*testing.T, *domain.Order)
	}{
		{
			name:  "successful checkout persists totals and clears cart",
			input: validCheckoutInput,
			setupMocks: func(repo *mocks.MockOrderRepository, carts *mocks.MockCartStore, pub *mocks.MockPublisher) {
				carts.On("Get", mock.Anything, testSessionID).Return(testCart(testSessionID,
					testCartItem(1, 2, "25.00"),
					testCartItem(2, 1, "12.00"),
				), nil)
				repo.On("CreateOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).
					Return(nil).
					Run(func(args mock.Arguments) {
						order := args.Get(1).(*domain.Order)
						order.ID = 1
					})
				carts.On("Clear", mock.Anything, testSessionID).Return(nil)
				pub.On("Publish", mock.Anything, "order.created", mock.Anything).Return(nil).Maybe()
			},
			checkOrder: func(t *testing.T, order *domain.Order) {
				assert.Equal(t, uint64(1), order.ID)
				assert.Equal(t, testUserID, order.UserID)
				assert.Equal(t, domain.StatusPending, order.Status)
				assert.Equal(t, "credit_card", order.PaymentMethod)
				assert.Equal(t, "4242", order.CardLastFour)
				assert.True(t, decimal.RequireFromString("62.00").Equal(order.Subtotal), "subtotal %s", order.Subtotal)
				assert.True(t, decimal.RequireFromString("4.96").Equal(order.Tax), "tax %s", order.Tax)
				assert.True(t, order.ShippingCost.IsZero(), "shipping %s", order.ShippingCost)
				assert.True(t, decimal.RequireFromString("66.96").Equal(order.Total), "total %s", order.Total)
				assert.Len(t, order.Items, 2)
				assert.True(t, order.ItemsSubtotal().Equal(order.Subtotal))
				assert.Equal(t, order.ShippingAddress, order.BillingAddress)
			},
		},
		{
			name: "express shipping adds the flat rate",
			input: func() CheckoutInput {
				in := validCheckoutInput()
				in.ShippingMethod = domain.ShippingExpress
				return in
			},
			setupMocks: func(repo *mocks.MockOrderRepository, carts *mocks.MockCartStore, pub *mocks.MockPublisher) {
				carts.On("Get", mock.Anything, testSessionID).Return(testCart(testSessionID,
					testCartItem(1, 2, "25.00"),
					testCartItem(2, 1, "12.00"),
				), nil)
				repo.On("CreateOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)
				carts.On("Clear", mock.Anything, testSessionID).Return(nil)
				pub.On("Publish", mock.Anything, "order.created", mock.Anything).Return(nil).Maybe()
			},
			checkOrder: func(t *testing.T, order *domain.Order) {
				assert.True(t, decimal.RequireFromString("15.00").Equal(order.ShippingCost))
				assert.True(t, decimal.RequireFromString("81.96").Equal(order.Total), "total %s", order.Total)
			},
		},
		{
			name: "separate billing address is snapshotted independently",
			input: func() CheckoutInput {
				in := validCheckoutInput()
				in.UseSameBilling = false
				in.Billing = &AddressInput{
					FirstName:   "Miles",
					LastName:    "Davis",
					AddressLine: "9 Blue Lane",
					City:        "Alton",
					Country:     "USA",
				}
				return in
			},
			setupMocks: func(repo *mocks.MockOrderRepository, carts *mocks.MockCartStore, pub *mocks.MockPublisher) {
				carts.On("Get", mock.Anything, testSessionID).Return(testCart(testSessionID,
					testCartItem(1, 1, "30.00"),
				), nil)
				repo.On("CreateOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)
				carts.On("Clear", mock.Anything, testSessionID).Return(nil)
				pub.On("Publish", mock.Anything, "order.created", mock.Anything).Return(nil).Maybe()
			},
			checkOrder: func(t *testing.T, order *domain.Order) {
				assert.Equal(t, "Nina", order.ShippingAddress.FirstName)
				assert.Equal(t, "Miles", order.BillingAddress.FirstName)
				assert.NotEqual(t, order.ShippingAddress, order.BillingAddress)
			},
		},
		{
			name:  "empty cart is rejected before any write",
			input: validCheckoutInput,
			setupMocks: func(repo *mocks.MockOrderRepository, carts *mocks.MockCartStore, pub *mocks.MockPublisher) {
				carts.On("Get", mock.Anything, testSessionID).Return(testCart(testSessionID), nil)
			},
			expectedErr: domain.ErrEmptyCart,
		},
		{
			name: "validation failure touches nothing",
			input: func() CheckoutInput {
				in := validCheckoutInput()
				in.Shipping.FirstName = ""
				in.ShippingMethod = "overnight"
				return in
			},
			setupMocks: func(repo *mocks.MockOrderRepository, carts *mocks.MockCartStore, pub *mocks.MockPublisher) {},
			checkValErr: func(t *testing.T, err error) {
				var verr *ValidationError
				assert.ErrorAs(t, err, &verr)
				assert.Contains(t, verr.Fields, "first_name")
				assert.Contains(t, verr.Fields, "shipping_method")
			},
		},
		{
			name: "missing billing block when not reusing shipping",
			input: func() CheckoutInput {
				in := validCheckoutInput()
				in.UseSameBilling = false
				in.Billing = nil
				return in
			},
			setupMocks: func(repo *mocks.MockOrderRepository, carts *mocks.MockCartStore, pub *mocks.MockPublisher) {},
			checkValErr: func(t *testing.T, err error) {
				var verr *ValidationError
				assert.ErrorAs(t, err, &verr)
				assert.Contains(t, verr.Fields, "billing_address")
			},
		},
		{
			name:  "insufficient stock fails checkout and keeps cart",
			input: validCheckoutInput,
			setupMocks: func(repo *mocks.MockOrderRepository, carts *mocks.MockCartStore, pub *mocks.MockPublisher) {
				carts.On("Get", mock.Anything, testSessionID).Return(testCart(testSessionID,
					testCartItem(1, 5, "25.00"),
				), nil)
				repo.On("CreateOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).
					Return(domain.ErrInsufficientStock)
			},
			expectedErr: domain.ErrInsufficientStock,
		},
		{
			name:  "transaction failure leaves cart untouched",
			input: validCheckoutInput,
			setupMocks: func(repo *mocks.MockOrderRepository, carts *mocks.MockCartStore, pub *mocks.MockPublisher) {
				carts.On("Get", mock.Anything, testSessionID).Return(testCart(testSessionID,
					testCartItem(1, 1, "25.00"),
				), nil)
				repo.On("CreateOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).
					Return(errors.New("database error"))
			},
			expectedErr: nil, // matched by message below
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockOrderRepository)
			carts := new(mocks.MockCartStore)
			pub := new(mocks.MockPublisher)

			tt.setupMocks(repo, carts, pub)

			service := NewCheckoutService(repo, carts, pub)
			order, err := service.PlaceOrder(context.Background(), testUserID, testSessionID, tt.input())

			switch {
			case tt.checkValErr != nil:
				assert.Error(t, err)
				assert.Nil(t, order)
				tt.checkValErr(t, err)
				// a pure rejection: no cart read, no repo call
				carts.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
				repo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, order)
				carts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
			case tt.checkOrder != nil:
				assert.NoError(t, err)
				assert.NotNil(t, order)
				tt.checkOrder(t, order)
				time.Sleep(50 * time.Millisecond) // let the async publish land
			default:
				assert.Error(t, err)
				assert.Nil(t, order)
				carts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
			}

			repo.AssertExpectations(t)
			carts.AssertExpectations(t)
			pub.AssertExpectations(t)
		})
	}
}

func TestCheckoutService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name        string
		newStatus   domain.OrderStatus
		setupMocks  func(*mocks.MockOrderRepository, *mocks.MockPublisher)
		expectedErr error
		wantStatus  domain.OrderStatus
		wantSilent  bool
	}{
		{
			name:      "plain forward transition",
			newStatus: domain.StatusProcessing,
			setupMocks: func(repo *mocks.MockOrderRepository, pub *mocks.MockPublisher) {
				repo.On("UpdateStatus", mock.Anything, uint64(1), domain.StatusProcessing).
					Return(&domain.Order{ID: 1, Status: domain.StatusProcessing}, domain.StatusPending, nil)
				pub.On("Publish", mock.Anything, "order.status_updated", mock.Anything).Return(nil).Maybe()
			},
			wantStatus: domain.StatusProcessing,
		},
		{
			name:      "cancellation publishes the cancel pattern",
			newStatus: domain.StatusCancelled,
			setupMocks: func(repo *mocks.MockOrderRepository, pub *mocks.MockPublisher) {
				repo.On("UpdateStatus", mock.Anything, uint64(1), domain.StatusCancelled).
					Return(&domain.Order{ID: 1, Status: domain.StatusCancelled}, domain.StatusShipped, nil)
				pub.On("Publish", mock.Anything, "order.cancelled", mock.Anything).Return(nil).Maybe()
			},
			wantStatus: domain.StatusCancelled,
		},
		{
			name:      "re-applying the current status publishes nothing",
			newStatus: domain.StatusCancelled,
			setupMocks: func(repo *mocks.MockOrderRepository, pub *mocks.MockPublisher) {
				repo.On("UpdateStatus", mock.Anything, uint64(1), domain.StatusCancelled).
					Return(&domain.Order{ID: 1, Status: domain.StatusCancelled}, domain.StatusCancelled, nil)
			},
			wantStatus: domain.StatusCancelled,
			wantSilent: true,
		},
		{
			name:        "unknown status rejected before any repository call",
			newStatus:   domain.OrderStatus("teleported"),
			setupMocks:  func(repo *mocks.MockOrderRepository, pub *mocks.MockPublisher) {},
			expectedErr: domain.ErrInvalidStatus,
		},
		{
			name:      "illegal transition surfaces the repository error",
			newStatus: domain.StatusPending,
			setupMocks: func(repo *mocks.MockOrderRepository, pub *mocks.MockPublisher) {
				repo.On("UpdateStatus", mock.Anything, uint64(1), domain.StatusPending).
					Return(nil, domain.OrderStatus(""), domain.ErrInvalidTransition)
			},
			expectedErr: domain.ErrInvalidTransition,
		},
		{
			name:      "missing order",
			newStatus: domain.StatusShipped,
			setupMocks: func(repo *mocks.MockOrderRepository, pub *mocks.MockPublisher) {
				repo.On("UpdateStatus", mock.Anything, uint64(1), domain.StatusShipped).
					Return(nil, domain.OrderStatus(""), domain.ErrOrderNotFound)
			},
			expectedErr: domain.ErrOrderNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockOrderRepository)
			pub := new(mocks.MockPublisher)
			carts := new(mocks.MockCartStore)

			tt.setupMocks(repo, pub)

			service := NewCheckoutService(repo, carts, pub)
			order, err := service.UpdateStatus(context.Background(), 1, tt.newStatus)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, order)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantStatus, order.Status)
				time.Sleep(50 * time.Millisecond)
				if tt.wantSilent {
					pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
				}
			}

			repo.AssertExpectations(t)
			pub.AssertExpectations(t)
		})
	}
}

func TestCheckoutService_GetOrder(t *testing.T) {
	owned := &domain.Order{ID: 1, UserID: testUserID}

	tests := []struct {
		name        string
		requester   uint64
		admin       bool
		setupMocks  func(*mocks.MockOrderRepository)
		expectedErr error
	}{
		{
			name:      "owner sees own order",
			requester: testUserID,
			setupMocks: func(repo *mocks.MockOrderRepository) {
				repo.On("FindByID", mock.Anything, uint64(1)).Return(owned, nil)
			},
		},
		{
			name:      "other user gets not found",
			requester: testUserID + 1,
			setupMocks: func(repo *mocks.MockOrderRepository) {
				repo.On("FindByID", mock.Anything, uint64(1)).Return(owned, nil)
			},
			expectedErr: domain.ErrOrderNotFound,
		},
		{
			name:      "admin sees any order",
			requester: testUserID + 1,
			admin:     true,
			setupMocks: func(repo *mocks.MockOrderRepository) {
				repo.On("FindByID", mock.Anything, uint64(1)).Return(owned, nil)
			},
		},
		{
			name:      "missing order",
			requester: testUserID,
			setupMocks: func(repo *mocks.MockOrderRepository) {
				repo.On("FindByID", mock.Anything, uint64(1)).Return(nil, nil)
			},
			expectedErr: domain.ErrOrderNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockOrderRepository)
			tt.setupMocks(repo)

			service := NewCheckoutService(repo, new(mocks.MockCartStore), new(mocks.MockPublisher))
			order, err := service.GetOrder(context.Background(), 1, tt.requester, tt.admin)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, order)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, uint64(1), order.ID)
			}
			repo.AssertExpectations(t)
		})
	}
}
