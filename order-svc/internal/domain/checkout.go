package domain

import (
	"strings"
	"time"
)

type CheckoutState string

const (
	StateSelectingRestaurant CheckoutState = "selecting_restaurant"
	StateBrowsingMenu        CheckoutState = "browsing_menu"
	StateChoosingOrderType   CheckoutState = "choosing_order_type"
	StateAddress             CheckoutState = "address"
	StatePayment             CheckoutState = "payment"
	StateConfirmed           CheckoutState = "confirmed"
)

func (s CheckoutState) IsTerminal() bool {
	return s == StateConfirmed
}

func (s CheckoutState) String() string {
	return string(s)
}

type OrderType string

const (
	OrderTypePickup   OrderType = "pickup"
	OrderTypeDelivery OrderType = "delivery"
)

func (t OrderType) Valid() bool {
	return t == OrderTypePickup || t == OrderTypeDelivery
}

type PaymentMethod string

const (
	PaymentWallet         PaymentMethod = "wallet"
	PaymentCard           PaymentMethod = "card"
	PaymentNetBanking     PaymentMethod = "netbanking"
	PaymentUPI            PaymentMethod = "upi"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentWallet, PaymentCard, PaymentNetBanking, PaymentUPI, PaymentCashOnDelivery:
		return true
	}
	return false
}

// InitialOrderStatus is pending for cash on delivery and confirmed for
// prepaid methods.
func (m PaymentMethod) InitialOrderStatus() OrderStatus {
	if m == PaymentCashOnDelivery {
		return OrderStatusPending
	}
	return OrderStatusConfirmed
}

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Address is either structured or free text, optionally with a map pin.
type Address struct {
	Street     string    `json:"street,omitempty"`
	City       string    `json:"city,omitempty"`
	State      string    `json:"state,omitempty"`
	PostalCode string    `json:"postal_code,omitempty"`
	Landmark   string    `json:"landmark,omitempty"`
	Text       string    `json:"text,omitempty"`
	Geo        *GeoPoint `json:"geo,omitempty"`
}

// String returns the free text when set, otherwise the non-empty structured
// parts joined with ", ".
func (a Address) String() string {
	if text := strings.TrimSpace(a.Text); text != "" {
		return text
	}
	var parts []string
	for _, part := range []string{a.Street, a.Landmark, a.City, a.State, a.PostalCode} {
		if p := strings.TrimSpace(part); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

type CardDetails struct {
	Number string `json:"number"`
	CVV    string `json:"cvv"`
	Expiry string `json:"expiry"`
	Holder string `json:"holder,omitempty"`
}

// CheckoutSession is one user's pass through the checkout flow. Card details
// are never stored on it.
type CheckoutSession struct {
	ID             string        `json:"id"`
	UserID         string        `json:"user_id"`
	State          CheckoutState `json:"state"`
	RestaurantID   int           `json:"restaurant_id,omitempty"`
	RestaurantName string        `json:"restaurant_name,omitempty"`
	OrderType      OrderType     `json:"order_type,omitempty"`
	Address        *Address      `json:"address,omitempty"`
	Customer       *Customer     `json:"customer,omitempty"`
	PaymentMethod  PaymentMethod `json:"payment_method,omitempty"`
	OrderID        string        `json:"order_id,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
