package entity

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartLineNotFound = errors.New("product not found in cart")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
)

// CartLine is one product variant selection in a cart.
type CartLine struct {
	ProductID     string `json:"productId"`
	Quantity      int64  `json:"quantity"`
	SelectedColor *Color `json:"selectedColor,omitempty"`
	SelectedSize  string `json:"selectedSize,omitempty"`
}

// LineKey identifies a variant for merging duplicate additions.
// Comparable, so lookups are a map access instead of a deep-equality scan.
type LineKey struct {
	ProductID string
	ColorName string
	ColorCode string
	Size      string
}

func (l CartLine) Key() LineKey {
	k := LineKey{ProductID: l.ProductID, Size: l.SelectedSize}
	if l.SelectedColor != nil {
		k.ColorName = l.SelectedColor.Name
		k.ColorCode = l.SelectedColor.Code
	}
	return k
}

func (l CartLine) Validate() error {
	if l.ProductID == "" {
		return ErrCartLineNotFound
	}
	if l.Quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}

type Cart struct {
	ID         string
	UserID     string
	Lines      []CartLine
	TotalPrice decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func NewCart(userID string) *Cart {
	return &Cart{UserID: userID, TotalPrice: decimal.Zero}
}

// Merge folds incoming lines into the cart: a line whose (product, color, size)
// key is already present bumps that line's quantity, anything else is appended.
func (c *Cart) Merge(lines []CartLine) {
	index := make(map[LineKey]int, len(c.Lines))
	for i, l := range c.Lines {
		index[l.Key()] = i
	}
	for _, in := range lines {
		if i, ok := index[in.Key()]; ok {
			c.Lines[i].Quantity += in.Quantity
			continue
		}
		index[in.Key()] = len(c.Lines)
		c.Lines = append(c.Lines, in)
	}
}

// SetQuantity overwrites the quantity of every line for productID.
func (c *Cart) SetQuantity(productID string, quantity int64) bool {
	found := false
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = quantity
			found = true
		}
	}
	return found
}

// RemoveProduct drops every line for productID regardless of color or size.
func (c *Cart) RemoveProduct(productID string) bool {
	kept := c.Lines[:0]
	removed := false
	for _, l := range c.Lines {
		if l.ProductID == productID {
			removed = true
			continue
		}
		kept = append(kept, l)
	}
	c.Lines = kept
	return removed
}

// Clear empties the cart in place. The cart row itself survives.
func (c *Cart) Clear() {
	c.Lines = nil
	c.TotalPrice = decimal.Zero
}
