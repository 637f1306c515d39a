package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartItem struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

func (i CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the ledger of items a session intends to purchase. Items keep
// insertion order and hold at most one line per product.
type Cart struct {
	SessionID uuid.UUID  `json:"session_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func NewCart(sessionID uuid.UUID) *Cart {
	return &Cart{
		SessionID: sessionID,
		Items:     []CartItem{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func (c *Cart) indexOf(productID int64) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}

	return -1
}

// AddItem increments the quantity of an existing line item or appends a
// new one with quantity 1. It never fails.
func (c *Cart) AddItem(productID int64, name string, unitPrice decimal.Decimal) {

	if i := c.indexOf(productID); i >= 0 {
		c.Items[i].Quantity++
		c.UpdatedAt = time.Now()

		return
	}

	c.Items = append(c.Items, CartItem{
		ProductID: productID,
		Name:      name,
		Quantity:  1,
		UnitPrice: unitPrice,
	})
	c.UpdatedAt = time.Now()
}

// UpdateQuantity sets the quantity of a line item. A quantity of zero or
// less removes the line item, so the ledger never holds a quantity below 1.
// Returns false when the product is not in the cart.
func (c *Cart) UpdateQuantity(productID int64, quantity int) bool {

	i := c.indexOf(productID)
	if i < 0 {
		return false
	}

	if quantity <= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	} else {
		c.Items[i].Quantity = quantity
	}

	c.UpdatedAt = time.Now()

	return true
}

// RemoveItem deletes the line item for the product. Removing an absent
// product is a no-op.
func (c *Cart) RemoveItem(productID int64) {

	i := c.indexOf(productID)
	if i < 0 {
		return
	}

	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	c.UpdatedAt = time.Now()
}

func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.UpdatedAt = time.Now()
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Total is the sum of quantity times unit price over all line items. The
// delivery fee is never part of it.
func (c *Cart) Total() decimal.Decimal {

	total := decimal.Zero

	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}

	return total
}

type AddItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
}

type UpdateQuantityRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity"`
}
