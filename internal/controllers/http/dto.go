package http

import (
	"record-store/internal/domain"
	"record-store/internal/services"
)

type AddItemRequest struct {
	ProductID uint64 `json:"product_id" binding:"required"`
	Quantity  int64  `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity int64 `json:"quantity" binding:"required"`
}

// CheckoutRequest mirrors the storefront checkout form. Field-level rules live
// in the service so a single validation error shape reaches the client.
type CheckoutRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	AddressLine string `json:"address_line"`
	Apartment   string `json:"apartment"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Phone       string `json:"phone"`

	ShippingMethod   string `json:"shipping_method"`
	UsingSameBilling bool   `json:"using_same_billing"`

	PaymentFirstName   string `json:"payment_first_name"`
	PaymentLastName    string `json:"payment_last_name"`
	PaymentAddressLine string `json:"payment_address_line"`
	PaymentApartment   string `json:"payment_apartment"`
	PaymentCity        string `json:"payment_city"`
	PaymentCountry     string `json:"payment_country"`
	PaymentPhone       string `json:"payment_phone"`

	CardNumber string `json:"card_number"`
	CardExpiry string `json:"card_expiry"`
	CardCVC    string `json:"card_cvc"`
}

func (r CheckoutRequest) toInput() services.CheckoutInput {
	in := services.CheckoutInput{
		Shipping: services.AddressInput{
			FirstName:   r.FirstName,
			LastName:    r.LastName,
			AddressLine: r.AddressLine,
			Apartment:   r.Apartment,
			City:        r.City,
			Country:     r.Country,
			Phone:       r.Phone,
		},
		UseSameBilling: r.UsingSameBilling,
		ShippingMethod: domain.ShippingMethod(r.ShippingMethod),
		CardNumber:     r.CardNumber,
		CardExpiry:     r.CardExpiry,
		CardCVC:        r.CardCVC,
	}

	if !r.UsingSameBilling {
		in.Billing = &services.AddressInput{
			FirstName:   r.PaymentFirstName,
			LastName:    r.PaymentLastName,
			AddressLine: r.PaymentAddressLine,
			Apartment:   r.PaymentApartment,
			City:        r.PaymentCity,
			Country:     r.PaymentCountry,
			Phone:       r.PaymentPhone,
		}
	}
	return in
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CheckoutResponse struct {
	OrderID uint64 `json:"orderId"`
}

type OrderSummary struct {
	ID         uint64 `json:"id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	Total      string `json:"total"`
	ItemsCount int    `json:"items_count"`
}
