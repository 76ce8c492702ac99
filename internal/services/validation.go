package services

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"record-store/internal/domain"
)

// ValidationError carries field-level detail back to the caller. It is a pure
// rejection: nothing has been read from or written to storage when one is
// returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, k := range keys {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", k, e.Fields[k])
	}
	return b.String()
}

type AddressInput struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	AddressLine string `json:"addressLine"`
	Apartment   string `json:"apartment"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Phone       string `json:"phone"`
}

func (a AddressInput) toAddress() domain.Address {
	return domain.Address{
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		AddressLine: a.AddressLine,
		Apartment:   a.Apartment,
		City:        a.City,
		Country:     a.Country,
		Phone:       a.Phone,
	}
}

type CheckoutInput struct {
	Shipping       AddressInput
	UseSameBilling bool
	Billing        *AddressInput
	ShippingMethod domain.ShippingMethod
	CardNumber     string
	CardExpiry     string
	CardCVC        string
}

func requireBounded(fields map[string]string, key, value string, max int) {
	if strings.TrimSpace(value) == "" {
		fields[key] = "required"
		return
	}
	// character bounds, not byte bounds: multi-byte names count per rune
	if utf8.RuneCountInString(value) > max {
		fields[key] = fmt.Sprintf("must be at most %d characters", max)
	}
}

func optionalBounded(fields map[string]string, key, value string, max int) {
	if value != "" && utf8.RuneCountInString(value) > max {
		fields[key] = fmt.Sprintf("must be at most %d characters", max)
	}
}

func validateAddress(fields map[string]string, prefix string, a AddressInput) {
	requireBounded(fields, prefix+"first_name", a.FirstName, 50)
	requireBounded(fields, prefix+"last_name", a.LastName, 50)
	requireBounded(fields, prefix+"address_line", a.AddressLine, 100)
	optionalBounded(fields, prefix+"apartment", a.Apartment, 50)
	requireBounded(fields, prefix+"city", a.City, 50)
	requireBounded(fields, prefix+"country", a.Country, 50)
	optionalBounded(fields, prefix+"phone", a.Phone, 20)
}

// cardDigits strips the separators customers type into card numbers.
func cardDigits(number string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, number)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// validate applies the checkout form rules. The billing block is validated
// independently only when the customer is not reusing the shipping address.
// Card fields are shape-checked and then discarded except for the last four
// digits; raw card data never reaches storage.
func (in CheckoutInput) validate() *ValidationError {
	fields := make(map[string]string)

	validateAddress(fields, "", in.Shipping)

	if !in.ShippingMethod.Valid() {
		fields["shipping_method"] = "must be standard or express"
	}

	if !in.UseSameBilling {
		if in.Billing == nil {
			fields["billing_address"] = "required when not using the shipping address"
		} else {
			validateAddress(fields, "payment_", *in.Billing)
		}
	}

	digits := cardDigits(in.CardNumber)
	if !isDigits(digits) || len(digits) < 13 || len(digits) > 19 {
		fields["card_number"] = "must be 13 to 19 digits"
	}
	if len(in.CardExpiry) != 5 {
		fields["card_expiry"] = "must be in MM/YY form"
	}
	if !isDigits(in.CardCVC) || len(in.CardCVC) < 3 || len(in.CardCVC) > 4 {
		fields["card_cvc"] = "must be 3 or 4 digits"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// lastFour returns the masked card reference stored on the order.
func (in CheckoutInput) lastFour() string {
	digits := cardDigits(in.CardNumber)
	if len(digits) < 4 {
		return ""
	}
	return digits[len(digits)-4:]
}
