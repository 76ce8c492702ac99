package domain

import "github.com/shopspring/decimal"

// Cart is the session-scoped pre-order state. It lives in redis keyed by
// session id; the slice keeps insertion order stable across reads.
type Cart struct {
	SessionID string     `json:"sessionId"`
	Items     []CartItem `json:"items"`
}

// CartItem captures the unit price once, when the product is first added.
// Later adds of the same product merge quantities but never refresh the price:
// the cart locks in price-at-add-time for the session.
type CartItem struct {
	ProductID   uint64          `json:"productId"`
	Title       string          `json:"title"`
	Artist      string          `json:"artist"`
	Image       string          `json:"image"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int64           `json:"quantity"`
	MaxQuantity int64           `json:"maxQuantity"`
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) Find(productID uint64) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// Add merges quantities when the product is already present, keeping the
// original price snapshot and display metadata.
func (c *Cart) Add(item CartItem) {
	if existing := c.Find(item.ProductID); existing != nil {
		existing.Quantity += item.Quantity
		return
	}
	c.Items = append(c.Items, item)
}

// UpdateQuantity overwrites the quantity of an existing item. Returns false
// when the product is not in the cart.
func (c *Cart) UpdateQuantity(productID uint64, quantity int64) bool {
	item := c.Find(productID)
	if item == nil {
		return false
	}
	item.Quantity = quantity
	return true
}

// Remove deletes an item, preserving the order of the rest. Returns false when
// the product is not in the cart.
func (c *Cart) Remove(productID uint64) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}
