package services

import (
	"record-store/internal/domain"

	"github.com/shopspring/decimal"
)

func testCart(sessionID string, items ...domain.CartItem) *domain.Cart {
	return &domain.Cart{SessionID: sessionID, Items: items}
}

func testCartItem(productID uint64, qty int64, price string) domain.CartItem {
	return domain.CartItem{
		ProductID: productID,
		Title:     "Test Album",
		Artist:    "Test Artist",
		UnitPrice: decimal.RequireFromString(price),
		Quantity:  qty,
	}
}

func testProduct(id uint64, price string, stock int64) *domain.Product {
	return &domain.Product{
		ID:       id,
		AlbumID:  1,
		Format:   domain.FormatVinyl,
		Price:    decimal.RequireFromString(price),
		Quantity: stock,
		SKU:      "TEST-SKU",
		Album: domain.Album{
			ID:    1,
			Title: "Test Album",
			Artist: domain.Artist{
				ID:   1,
				Name: "Test Artist",
			},
		},
	}
}

func validCheckoutInput() CheckoutInput {
	return CheckoutInput{
		Shipping: AddressInput{
			FirstName:   "Nina",
			LastName:    "Simone",
			AddressLine: "42 Groove Street",
			City:        "Tryon",
			Country:     "USA",
		},
		UseSameBilling: true,
		ShippingMethod: domain.ShippingStandard,
		CardNumber:     "4242 4242 4242 4242",
		CardExpiry:     "12/30",
		CardCVC:        "123",
	}
}

const (
	testUserID    = uint64(7)
	testSessionID = "session-abc"
)
