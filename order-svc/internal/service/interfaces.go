package service

import (
	"context"

	"bitebook/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type RestaurantRepository interface {
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error)
}

type DishRepository interface {
	ListDishes(ctx context.Context, restaurantID int) ([]domain.Dish, error)
	GetDish(ctx context.Context, restaurantID, dishID int) (*domain.Dish, error)
}

// CartRepository persists one cart snapshot per user. LoadCart returns an
// empty cart when nothing is stored.
type CartRepository interface {
	LoadCart(ctx context.Context, userID string) (*domain.Cart, error)
	SaveCart(ctx context.Context, cart *domain.Cart) error
}

// SessionRepository persists one checkout session per user. LoadSession
// returns domain.ErrSessionNotFound when nothing is stored.
type SessionRepository interface {
	LoadSession(ctx context.Context, userID string) (*domain.CheckoutSession, error)
	SaveSession(ctx context.Context, session *domain.CheckoutSession) error
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, userID, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, userID string) ([]domain.Order, error)
	SaveQRCode(ctx context.Context, orderID string, qr []byte) error
	GetQRCode(ctx context.Context, userID, orderID string) ([]byte, error)
}

// WalletLedger debits and credits user wallets. Debit returns
// domain.ErrInsufficientFunds and leaves the balance untouched when the
// balance does not cover amount.
type WalletLedger interface {
	Balance(ctx context.Context, userID string) (decimal.Decimal, error)
	Debit(ctx context.Context, userID string, amount decimal.Decimal) error
	Credit(ctx context.Context, userID string, amount decimal.Decimal) error
}

type EventPublisher interface {
	PublishNotification(ctx context.Context, event domain.NotificationEvent) error
}

// Notifier accepts best-effort background tasks.
type Notifier interface {
	Enqueue(task Task) bool
}

type CatalogServiceInterface interface {
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error)
	ListDishes(ctx context.Context, restaurantID int) ([]domain.Dish, error)
	GetDish(ctx context.Context, restaurantID, dishID int) (*domain.Dish, error)
	ItemRef(ctx context.Context, restaurantID, dishID int) (domain.ItemRef, error)
}

type CartServiceInterface interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, userID string, ref domain.ItemRef) (*domain.Cart, error)
	AddDish(ctx context.Context, userID string, restaurantID, dishID int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID string, itemID int) (*domain.Cart, error)
	SetQuantity(ctx context.Context, userID string, itemID, quantity int) (*domain.Cart, error)
	KeepRestaurant(ctx context.Context, userID string, restaurantID int) (*domain.Cart, error)
	Clear(ctx context.Context, userID string) error
}

type CheckoutServiceInterface interface {
	Current(ctx context.Context, userID string) (*domain.CheckoutSession, error)
	Reset(ctx context.Context, userID string) (*domain.CheckoutSession, error)
	SelectRestaurant(ctx context.Context, userID string, restaurantID int) (*domain.CheckoutSession, error)
	ProceedToCheckout(ctx context.Context, userID string) (*domain.CheckoutSession, error)
	ChooseOrderType(ctx context.Context, userID string, orderType domain.OrderType) (*domain.CheckoutSession, error)
	SubmitAddress(ctx context.Context, userID string, address domain.Address, customer domain.Customer) (*domain.CheckoutSession, error)
	PlaceOrder(ctx context.Context, userID string, req PlaceOrderRequest) (*domain.CheckoutSession, *domain.Order, error)
	Back(ctx context.Context, userID string) (*domain.CheckoutSession, error)
}

type OrderServiceInterface interface {
	Submit(ctx context.Context, req SubmitRequest) (*domain.Order, error)
	Get(ctx context.Context, userID, orderID string) (*domain.Order, error)
	List(ctx context.Context, userID string) ([]domain.Order, error)
	GetQRCode(ctx context.Context, userID, orderID string) ([]byte, error)
	WalletBalance(ctx context.Context, userID string) (decimal.Decimal, error)
	QRLink(orderID string) string
}

type QRGenerator interface {
	Generate(orderID string) ([]byte, error)
}
