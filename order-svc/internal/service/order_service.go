package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitebook/order-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SubmitRequest is everything needed to turn a cart into an order.
type SubmitRequest struct {
	UserID        string
	Cart          *domain.Cart
	OrderType     domain.OrderType
	Address       *domain.Address
	Customer      domain.Customer
	PaymentMethod domain.PaymentMethod
	DeliveryFee   decimal.Decimal
}

// OrderService is the order submission boundary: wallet debit, order
// persistence and the best-effort notifications that follow.
type OrderService struct {
	repo      OrderRepository
	wallet    WalletLedger
	notifier  Notifier
	publisher EventPublisher
	qrEncoder QRGenerator
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

func NewOrderService(
	repo OrderRepository,
	wallet WalletLedger,
	notifier Notifier,
	publisher EventPublisher,
	qr QRGenerator,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		repo:      repo,
		wallet:    wallet,
		notifier:  notifier,
		publisher: publisher,
		qrEncoder: qr,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func (s *OrderService) buildOrder(req SubmitRequest) *domain.Order {
	items := make([]domain.OrderItem, 0, len(req.Cart.Lines))
	for _, line := range req.Cart.Lines {
		items = append(items, domain.OrderItem{
			ItemID:    line.ItemID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	fee := decimal.Zero
	var address *domain.Address
	if req.OrderType == domain.OrderTypeDelivery {
		fee = req.DeliveryFee
		if req.Address != nil {
			a := *req.Address
			address = &a
		}
	}

	subtotal := req.Cart.Total()
	return &domain.Order{
		ID:             s.newID(),
		UserID:         req.UserID,
		RestaurantID:   req.Cart.RestaurantID(),
		RestaurantName: req.Cart.RestaurantName(),
		Items:          items,
		OrderType:      req.OrderType,
		Subtotal:       subtotal,
		DeliveryFee:    fee,
		Total:          subtotal.Add(fee),
		Customer:       req.Customer,
		PaymentMethod:  req.PaymentMethod,
		Address:        address,
		Status:         req.PaymentMethod.InitialOrderStatus(),
		CreatedAt:      s.now().UTC(),
	}
}

// Submit debits the wallet when paying by wallet, then persists the order.
// If persistence fails the debit is refunded. Nothing after persistence can
// fail the submission.
func (s *OrderService) Submit(ctx context.Context, req SubmitRequest) (*domain.Order, error) {
	if req.Cart == nil || req.Cart.IsEmpty() {
		return nil, errors.New("cannot submit an empty cart")
	}

	order := s.buildOrder(req)
	paidByWallet := order.PaymentMethod == domain.PaymentWallet

	if paidByWallet {
		if err := s.wallet.Debit(ctx, order.UserID, order.Total); err != nil {
			if errors.Is(err, domain.ErrInsufficientFunds) {
				return nil, err
			}
			return nil, fmt.Errorf("wallet debit: %w", err)
		}
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		if paidByWallet {
			s.refund(order)
		}
		return nil, fmt.Errorf("persist order: %w", err)
	}

	if order.OrderType == domain.OrderTypePickup {
		s.attachQRCode(ctx, order)
	}

	s.logger.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("user_id", order.UserID),
		zap.Int("restaurant_id", order.RestaurantID),
		zap.String("total", order.Total.StringFixed(2)),
		zap.String("payment_method", string(order.PaymentMethod)))

	s.notify(order)
	return order, nil
}

func (s *OrderService) refund(order *domain.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.wallet.Credit(ctx, order.UserID, order.Total); err != nil {
		s.logger.Error("CRITICAL: failed to refund wallet after order persistence failure",
			zap.String("order_id", order.ID),
			zap.String("user_id", order.UserID),
			zap.String("amount", order.Total.StringFixed(2)),
			zap.Error(err))
		return
	}
	s.logger.Warn("wallet refunded after order persistence failure",
		zap.String("order_id", order.ID), zap.String("user_id", order.UserID))
}

func (s *OrderService) attachQRCode(ctx context.Context, order *domain.Order) {
	if s.qrEncoder == nil {
		return
	}
	qr, err := s.qrEncoder.Generate(order.ID)
	if err != nil {
		s.logger.Warn("failed to generate QR code", zap.String("order_id", order.ID), zap.Error(err))
		return
	}
	if err := s.repo.SaveQRCode(ctx, order.ID, qr); err != nil {
		s.logger.Warn("failed to store QR code", zap.String("order_id", order.ID), zap.Error(err))
		return
	}
	order.QRCode = s.QRLink(order.ID)
}

func (s *OrderService) notify(order *domain.Order) {
	if s.notifier == nil || s.publisher == nil {
		return
	}
	for _, event := range notificationsFor(order, s.now()) {
		s.notifier.Enqueue(Task{
			Name: event.Type + ":" + order.ID,
			Run: func(ctx context.Context) error {
				return s.publisher.PublishNotification(ctx, event)
			},
		})
	}
}

func notificationsFor(order *domain.Order, now time.Time) []domain.NotificationEvent {
	summary := fmt.Sprintf("Your %s order %s from %s is %s. Total: INR %s.",
		order.OrderType, shortID(order.ID), order.RestaurantName, order.Status, order.Total.StringFixed(2))

	events := []domain.NotificationEvent{{
		Type:      domain.NotificationSMS,
		OrderID:   order.ID,
		UserID:    order.UserID,
		To:        order.Customer.Phone,
		Body:      summary,
		Timestamp: now,
	}}

	if order.Customer.Email != "" {
		events = append(events, domain.NotificationEvent{
			Type:      domain.NotificationEmail,
			OrderID:   order.ID,
			UserID:    order.UserID,
			To:        order.Customer.Email,
			Subject:   "Order " + shortID(order.ID) + " " + string(order.Status),
			Body:      orderEmailHTML(order),
			Timestamp: now,
		})
	}
	return events
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func orderEmailHTML(order *domain.Order) string {
	html := fmt.Sprintf("<h2>Thanks for your order, %s!</h2><p>%s &middot; %s</p><ul>",
		order.Customer.Name, order.RestaurantName, order.OrderType)
	for _, item := range order.Items {
		html += fmt.Sprintf("<li>%d &times; %s &mdash; INR %s</li>",
			item.Quantity, item.Name, item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).StringFixed(2))
	}
	html += "</ul>"
	if order.DeliveryFee.IsPositive() {
		html += fmt.Sprintf("<p>Delivery fee: INR %s</p>", order.DeliveryFee.StringFixed(2))
	}
	html += fmt.Sprintf("<p><strong>Total: INR %s</strong></p>", order.Total.StringFixed(2))
	return html
}

func (s *OrderService) Get(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	return s.repo.GetOrder(ctx, userID, orderID)
}

func (s *OrderService) List(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListOrders(ctx, userID)
}

// GetQRCode returns the stored code, regenerating and caching it when the
// order has none yet.
func (s *OrderService) GetQRCode(ctx context.Context, userID, orderID string) ([]byte, error) {
	qr, err := s.repo.GetQRCode(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if len(qr) == 0 && s.qrEncoder != nil {
		if regenerated, err := s.qrEncoder.Generate(orderID); err == nil {
			_ = s.repo.SaveQRCode(ctx, orderID, regenerated)
			return regenerated, nil
		}
	}
	return qr, nil
}

func (s *OrderService) WalletBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	return s.wallet.Balance(ctx, userID)
}

func (s *OrderService) QRLink(orderID string) string {
	return fmt.Sprintf("/api/orders/%s/qrcode", orderID)
}

var _ OrderServiceInterface = (*OrderService)(nil)
