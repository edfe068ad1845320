package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Restaurant struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type Dish struct {
	ID           int             `json:"id"`
	RestaurantID int             `json:"restaurant_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     string          `json:"image_url"`
	Available    bool            `json:"available"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ItemRef builds the cart reference for the dish as sold by restaurant.
func (d Dish) ItemRef(restaurant Restaurant) ItemRef {
	return ItemRef{
		ItemID:         d.ID,
		Name:           d.Name,
		UnitPrice:      d.Price,
		Image:          d.ImageURL,
		RestaurantID:   restaurant.ID,
		RestaurantName: restaurant.Name,
	}
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
)

type Order struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	RestaurantID   int             `json:"restaurant_id"`
	RestaurantName string          `json:"restaurant_name"`
	Items          []OrderItem     `json:"items"`
	OrderType      OrderType       `json:"order_type"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DeliveryFee    decimal.Decimal `json:"delivery_fee"`
	Total          decimal.Decimal `json:"total"`
	Customer       Customer        `json:"customer"`
	PaymentMethod  PaymentMethod   `json:"payment_method"`
	Address        *Address        `json:"address,omitempty"`
	Status         OrderStatus     `json:"status"`
	QRCode         string          `json:"qr_code,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

type OrderItem struct {
	ItemID    int             `json:"item_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type Wallet struct {
	UserID    string          `json:"user_id"`
	Balance   decimal.Decimal `json:"balance"`
	UpdatedAt time.Time       `json:"updated_at"`
}
