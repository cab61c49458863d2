package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrItemNotFound    = errors.New("item not found in cart")
)

// CartLine is one product entry with quantity in the session cart.
type CartLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

func (l CartLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// Cart is the mutable session cart, owned by the cart store.
type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []CartLine `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func NewCart(userID string) *Cart {
	now := time.Now()
	return &Cart{
		UserID:    userID,
		Items:     []CartLine{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddLine adds a line to the cart, merging quantities when the product is
// already present.
func (c *Cart) AddLine(line CartLine) error {
	if line.Quantity < 1 {
		return ErrInvalidQuantity
	}
	for i := range c.Items {
		if c.Items[i].ProductID == line.ProductID {
			c.Items[i].Quantity += line.Quantity
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	c.Items = append(c.Items, line)
	c.UpdatedAt = time.Now()
	return nil
}

func (c *Cart) UpdateQuantity(productID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrItemNotFound, productID)
}

func (c *Cart) RemoveLine(productID string) error {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrItemNotFound, productID)
}

// CartSnapshot represents the full cart state at checkout time.
type CartSnapshot struct {
	Items       []CartLine `json:"items"`
	TotalAmount float64    `json:"total_amount"`
	Currency    string     `json:"currency"`
	CapturedAt  time.Time  `json:"captured_at"`
}

// Snapshot captures the cart as an immutable copy. A checkout attempt only
// ever sees its snapshot, so cart edits mid-flight cannot change the total.
func (c *Cart) Snapshot() *CartSnapshot {
	snapshot := &CartSnapshot{
		Items:      make([]CartLine, len(c.Items)),
		Currency:   "USD",
		CapturedAt: time.Now(),
	}
	copy(snapshot.Items, c.Items)

	var totalAmount float64
	for _, line := range c.Items {
		totalAmount += line.Subtotal()
	}
	snapshot.TotalAmount = totalAmount
	return snapshot
}
