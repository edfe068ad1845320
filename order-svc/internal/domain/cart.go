package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxLineQuantity caps the quantity of a single cart line.
const MaxLineQuantity = 50

// ItemRef is a purchasable menu item as handed to the cart.
type ItemRef struct {
	ItemID         int             `json:"item_id"`
	Name           string          `json:"name"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Image          string          `json:"image"`
	RestaurantID   int             `json:"restaurant_id"`
	RestaurantName string          `json:"restaurant_name"`
}

type CartLine struct {
	ItemRef
	Quantity int `json:"quantity"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds one user's lines in insertion order. All lines belong to the
// same restaurant.
type Cart struct {
	UserID    string     `json:"user_id"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func NewCart(userID string) *Cart {
	return &Cart{UserID: userID, Lines: []CartLine{}}
}

func (c *Cart) index(itemID int) int {
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			return i
		}
	}
	return -1
}

// AddItem increments the line for ref or inserts it with quantity 1. An item
// from a different restaurant resets the cart to that restaurant first.
func (c *Cart) AddItem(ref ItemRef) {
	if current := c.RestaurantID(); current != 0 && current != ref.RestaurantID {
		c.Lines = []CartLine{}
	}

	if idx := c.index(ref.ItemID); idx >= 0 {
		if c.Lines[idx].Quantity < MaxLineQuantity {
			c.Lines[idx].Quantity++
		}
		return
	}
	c.Lines = append(c.Lines, CartLine{ItemRef: ref, Quantity: 1})
}

// RemoveItem deletes the line; an absent item is a no-op.
func (c *Cart) RemoveItem(itemID int) {
	idx := c.index(itemID)
	if idx < 0 {
		return
	}
	c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
}

// SetQuantity sets the line quantity, capped at MaxLineQuantity. n <= 0
// removes the line. Items not in the cart are ignored.
func (c *Cart) SetQuantity(itemID, n int) {
	if n <= 0 {
		c.RemoveItem(itemID)
		return
	}
	idx := c.index(itemID)
	if idx < 0 {
		return
	}
	if n > MaxLineQuantity {
		n = MaxLineQuantity
	}
	c.Lines[idx].Quantity = n
}

func (c *Cart) Clear() {
	c.Lines = []CartLine{}
}

// KeepRestaurant drops every line not sold by restaurantID and returns how
// many lines were dropped.
func (c *Cart) KeepRestaurant(restaurantID int) int {
	kept := c.Lines[:0]
	for _, line := range c.Lines {
		if line.RestaurantID == restaurantID {
			kept = append(kept, line)
		}
	}
	dropped := len(c.Lines) - len(kept)
	c.Lines = kept
	return dropped
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

func (c *Cart) QuantityOf(itemID int) int {
	if idx := c.index(itemID); idx >= 0 {
		return c.Lines[idx].Quantity
	}
	return 0
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// RestaurantID is the restaurant of the cart's lines, 0 for an empty cart.
func (c *Cart) RestaurantID() int {
	if len(c.Lines) == 0 {
		return 0
	}
	return c.Lines[0].RestaurantID
}

func (c *Cart) RestaurantName() string {
	if len(c.Lines) == 0 {
		return ""
	}
	return c.Lines[0].RestaurantName
}

// CartView is the JSON shape returned to clients, with derived totals.
type CartView struct {
	UserID         string          `json:"user_id"`
	RestaurantID   int             `json:"restaurant_id,omitempty"`
	RestaurantName string          `json:"restaurant_name,omitempty"`
	Lines          []CartLine      `json:"lines"`
	ItemCount      int             `json:"item_count"`
	Total          decimal.Decimal `json:"total"`
}

func (c *Cart) View() CartView {
	lines := c.Lines
	if lines == nil {
		lines = []CartLine{}
	}
	return CartView{
		UserID:         c.UserID,
		RestaurantID:   c.RestaurantID(),
		RestaurantName: c.RestaurantName(),
		Lines:          lines,
		ItemCount:      c.ItemCount(),
		Total:          c.Total(),
	}
}
