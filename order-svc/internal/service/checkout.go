package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"bitebook/order-svc/internal/domain"
	"bitebook/validate"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CheckoutPolicy holds the business rules that vary by deployment.
type CheckoutPolicy struct {
	DeliveryFee       decimal.Decimal
	MinAddressLength  int
	AllowCODForPickup bool
}

func DefaultCheckoutPolicy() CheckoutPolicy {
	return CheckoutPolicy{
		DeliveryFee:       decimal.NewFromInt(40),
		MinAddressLength:  10,
		AllowCODForPickup: false,
	}
}

type PlaceOrderRequest struct {
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	Card          *domain.CardDetails  `json:"card,omitempty"`
	Customer      *domain.Customer     `json:"customer,omitempty"`
}

// CheckoutFlow drives a user's session through
// SelectingRestaurant -> BrowsingMenu -> ChoosingOrderType -> [Address] ->
// Payment -> Confirmed. A refused transition returns the unchanged session
// together with a *GateError.
type CheckoutFlow struct {
	sessions SessionRepository
	carts    CartServiceInterface
	catalog  CatalogServiceInterface
	orders   OrderServiceInterface
	policy   CheckoutPolicy
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

func NewCheckoutFlow(
	sessions SessionRepository,
	carts CartServiceInterface,
	catalog CatalogServiceInterface,
	orders OrderServiceInterface,
	policy CheckoutPolicy,
	logger *zap.Logger,
) *CheckoutFlow {
	return &CheckoutFlow{
		sessions: sessions,
		carts:    carts,
		catalog:  catalog,
		orders:   orders,
		policy:   policy,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (f *CheckoutFlow) newSession(userID string) *domain.CheckoutSession {
	now := f.now().UTC()
	return &domain.CheckoutSession{
		ID:        f.newID(),
		UserID:    userID,
		State:     domain.StateSelectingRestaurant,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (f *CheckoutFlow) load(ctx context.Context, userID string) (*domain.CheckoutSession, bool, error) {
	session, err := f.sessions.LoadSession(ctx, userID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return f.newSession(userID), true, nil
	}
	if err != nil {
		return nil, false, externalGate("We could not load your checkout, please try again", err)
	}
	return session, false, nil
}

// active loads the session to act on. A confirmed session is finished, so
// acting again starts a fresh one.
func (f *CheckoutFlow) active(ctx context.Context, userID string) (*domain.CheckoutSession, error) {
	session, _, err := f.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session.State.IsTerminal() {
		return f.newSession(userID), nil
	}
	return session, nil
}

func (f *CheckoutFlow) save(ctx context.Context, session *domain.CheckoutSession) error {
	session.UpdatedAt = f.now().UTC()
	if err := f.sessions.SaveSession(ctx, session); err != nil {
		return externalGate("We could not save your checkout, please try again", err)
	}
	return nil
}

func (f *CheckoutFlow) advance(ctx context.Context, session *domain.CheckoutSession, to domain.CheckoutState) (*domain.CheckoutSession, error) {
	from := session.State
	session.State = to
	if err := f.save(ctx, session); err != nil {
		session.State = from
		return session, err
	}
	f.logger.Info("checkout transition",
		zap.String("user_id", session.UserID),
		zap.String("session_id", session.ID),
		zap.String("from", from.String()),
		zap.String("to", to.String()))
	return session, nil
}

func requireState(session *domain.CheckoutSession, action string, allowed ...domain.CheckoutState) error {
	for _, state := range allowed {
		if session.State == state {
			return nil
		}
	}
	return businessGate(fmt.Sprintf("Cannot %s while in %s", action, session.State))
}

// Current returns the stored session, starting one if the user has none.
func (f *CheckoutFlow) Current(ctx context.Context, userID string) (*domain.CheckoutSession, error) {
	session, created, err := f.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if created {
		if err := f.save(ctx, session); err != nil {
			return session, err
		}
	}
	return session, nil
}

func (f *CheckoutFlow) Reset(ctx context.Context, userID string) (*domain.CheckoutSession, error) {
	session := f.newSession(userID)
	if err := f.save(ctx, session); err != nil {
		return session, err
	}
	return session, nil
}

// SelectRestaurant picks the restaurant to order from. Cart lines from any
// other restaurant are dropped.
func (f *CheckoutFlow) SelectRestaurant(ctx context.Context, userID string, restaurantID int) (*domain.CheckoutSession, error) {
	session, err := f.active(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := requireState(session, "choose a restaurant", domain.StateSelectingRestaurant, domain.StateBrowsingMenu); err != nil {
		return session, err
	}

	restaurant, err := f.catalog.GetRestaurant(ctx, restaurantID)
	if errors.Is(err, domain.ErrNotFound) {
		return session, validationGate("Restaurant not found")
	}
	if err != nil {
		return session, externalGate("We could not load the restaurant, please try again", err)
	}

	if _, err := f.carts.KeepRestaurant(ctx, userID, restaurant.ID); err != nil {
		return session, externalGate("We could not update your cart, please try again", err)
	}

	session.RestaurantID = restaurant.ID
	session.RestaurantName = restaurant.Name
	return f.advance(ctx, session, domain.StateBrowsingMenu)
}

func (f *CheckoutFlow) ProceedToCheckout(ctx context.Context, userID string) (*domain.CheckoutSession, error) {
	session, err := f.active(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := requireState(session, "proceed to checkout", domain.StateBrowsingMenu); err != nil {
		return session, err
	}

	cart, err := f.carts.Get(ctx, userID)
	if err != nil {
		return session, externalGate("We could not load your cart, please try again", err)
	}
	if cart.IsEmpty() {
		return session, businessGate("Your cart is empty")
	}

	session.RestaurantID = cart.RestaurantID()
	session.RestaurantName = cart.RestaurantName()
	return f.advance(ctx, session, domain.StateChoosingOrderType)
}

func (f *CheckoutFlow) ChooseOrderType(ctx context.Context, userID string, orderType domain.OrderType) (*domain.CheckoutSession, error) {
	session, err := f.active(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := requireState(session, "choose the order type", domain.StateChoosingOrderType); err != nil {
		return session, err
	}
	if !orderType.Valid() {
		return session, validationGate("Choose pickup or delivery")
	}

	session.OrderType = orderType
	if orderType == domain.OrderTypeDelivery {
		return f.advance(ctx, session, domain.StateAddress)
	}
	session.Address = nil
	return f.advance(ctx, session, domain.StatePayment)
}

func (f *CheckoutFlow) SubmitAddress(ctx context.Context, userID string, address domain.Address, customer domain.Customer) (*domain.CheckoutSession, error) {
	session, err := f.active(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := requireState(session, "enter an address", domain.StateAddress); err != nil {
		return session, err
	}

	if utf8.RuneCountInString(address.String()) < f.policy.MinAddressLength {
		return session, validationGate(fmt.Sprintf(
			"Please enter a complete address (at least %d characters)", f.policy.MinAddressLength))
	}
	if address.PostalCode != "" && !validate.IsValidPostalCode(strings.TrimSpace(address.PostalCode)) {
		return session, validationGate("Please enter a valid 6-digit PIN code")
	}

	contact := normalizeCustomer(customer)
	if err := validateCustomer(contact); err != nil {
		return session, err
	}

	session.Address = &address
	session.Customer = &contact
	return f.advance(ctx, session, domain.StatePayment)
}

// PlaceOrder validates the payment details, submits the order and, once the
// order is persisted, clears the cart and confirms the session. Any failure
// leaves the session in Payment with the cart intact.
func (f *CheckoutFlow) PlaceOrder(ctx context.Context, userID string, req PlaceOrderRequest) (*domain.CheckoutSession, *domain.Order, error) {
	session, err := f.active(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if err := requireState(session, "place the order", domain.StatePayment); err != nil {
		return session, nil, err
	}

	customer := session.Customer
	if req.Customer != nil {
		contact := normalizeCustomer(*req.Customer)
		customer = &contact
	}
	if customer == nil {
		return session, nil, validationGate("Please add your name and phone number")
	}
	if err := validateCustomer(*customer); err != nil {
		return session, nil, err
	}

	if !req.PaymentMethod.Valid() {
		return session, nil, validationGate("Choose a payment method")
	}
	if req.PaymentMethod == domain.PaymentCard {
		if err := validateCard(req.Card, f.now()); err != nil {
			return session, nil, err
		}
	}
	if req.PaymentMethod == domain.PaymentCashOnDelivery &&
		session.OrderType == domain.OrderTypePickup && !f.policy.AllowCODForPickup {
		return session, nil, businessGate("Cash on delivery is not available for pickup orders")
	}

	cart, err := f.carts.Get(ctx, userID)
	if err != nil {
		return session, nil, externalGate("We could not load your cart, please try again", err)
	}
	if cart.IsEmpty() {
		return session, nil, businessGate("Your cart is empty")
	}

	order, err := f.orders.Submit(ctx, SubmitRequest{
		UserID:        userID,
		Cart:          cart,
		OrderType:     session.OrderType,
		Address:       session.Address,
		Customer:      *customer,
		PaymentMethod: req.PaymentMethod,
		DeliveryFee:   f.policy.DeliveryFee,
	})
	if errors.Is(err, domain.ErrInsufficientFunds) {
		return session, nil, &GateError{Kind: GateBusinessRule, Message: "Insufficient wallet balance", Err: err}
	}
	if err != nil {
		f.logger.Error("order submission failed", zap.String("user_id", userID), zap.Error(err))
		return session, nil, externalGate("We could not place your order, please try again", err)
	}

	if err := f.carts.Clear(ctx, userID); err != nil {
		f.logger.Error("failed to clear cart after order", zap.String("user_id", userID),
			zap.String("order_id", order.ID), zap.Error(err))
	}

	session.Customer = customer
	session.PaymentMethod = req.PaymentMethod
	session.OrderID = order.ID
	if _, err := f.advance(ctx, session, domain.StateConfirmed); err != nil {
		f.logger.Error("failed to persist confirmed session", zap.String("user_id", userID),
			zap.String("order_id", order.ID), zap.Error(err))
		session.State = domain.StateConfirmed
	}
	return session, order, nil
}

// Back returns to the previous step.
func (f *CheckoutFlow) Back(ctx context.Context, userID string) (*domain.CheckoutSession, error) {
	session, _, err := f.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch session.State {
	case domain.StateBrowsingMenu:
		return f.advance(ctx, session, domain.StateSelectingRestaurant)
	case domain.StateChoosingOrderType:
		return f.advance(ctx, session, domain.StateBrowsingMenu)
	case domain.StateAddress:
		return f.advance(ctx, session, domain.StateChoosingOrderType)
	case domain.StatePayment:
		if session.OrderType == domain.OrderTypeDelivery {
			return f.advance(ctx, session, domain.StateAddress)
		}
		return f.advance(ctx, session, domain.StateChoosingOrderType)
	default:
		return session, businessGate(fmt.Sprintf("Cannot go back from %s", session.State))
	}
}

func normalizeCustomer(c domain.Customer) domain.Customer {
	return domain.Customer{
		Name:  strings.TrimSpace(c.Name),
		Phone: validate.NormalizePhone(c.Phone),
		Email: strings.TrimSpace(c.Email),
	}
}

func validateCustomer(c domain.Customer) error {
	if c.Name == "" {
		return validationGate("Please enter your name")
	}
	if !validate.IsValidIndianPhone(c.Phone) {
		return validationGate("Please enter a valid 10-digit mobile number")
	}
	if c.Email != "" && !validate.IsValidEmail(c.Email) {
		return validationGate("Please enter a valid email address")
	}
	return nil
}

var cardSeparators = strings.NewReplacer(" ", "", "-", "")

func validateCard(card *domain.CardDetails, now time.Time) error {
	if card == nil {
		return validationGate("Please enter your card details")
	}
	if !validate.IsValidCardNumber(cardSeparators.Replace(card.Number)) {
		return validationGate("Please enter a valid 16-digit card number")
	}
	if !validate.IsValidCVV(card.CVV) {
		return validationGate("Please enter a valid 3-digit CVV")
	}
	if !validate.IsValidExpiry(strings.TrimSpace(card.Expiry), now) {
		return validationGate("Please enter a valid expiry date (MM/YY) that has not passed")
	}
	return nil
}

var _ CheckoutServiceInterface = (*CheckoutFlow)(nil)
