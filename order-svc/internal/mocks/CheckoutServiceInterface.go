package mocks

import (
	"context"

	"bitebook/order-svc/internal/domain"
	"bitebook/order-svc/internal/service"

	"github.com/stretchr/testify/mock"
)

type CheckoutServiceInterface struct {
	mock.Mock
}

func session(ret mock.Arguments) (*domain.CheckoutSession, error) {
	var r0 *domain.CheckoutSession
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.CheckoutSession)
	}
	return r0, ret.Error(1)
}

func (_m *CheckoutServiceInterface) Current(ctx context.Context, userID string) (*domain.CheckoutSession, error) {
	return session(_m.Called(ctx, userID))
}

func (_m *CheckoutServiceInterface) Reset(ctx context.Context, userID string) (*domain.CheckoutSession, error) {
	return session(_m.Called(ctx, userID))
}

func (_m *CheckoutServiceInterface) SelectRestaurant(ctx context.Context, userID string, restaurantID int) (*domain.CheckoutSession, error) {
	return session(_m.Called(ctx, userID, restaurantID))
}

func (_m *CheckoutServiceInterface) ProceedToCheckout(ctx context.Context, userID string) (*domain.CheckoutSession, error) {
	return session(_m.Called(ctx, userID))
}

func (_m *CheckoutServiceInterface) ChooseOrderType(ctx context.Context, userID string, orderType domain.OrderType) (*domain.CheckoutSession, error) {
	return session(_m.Called(ctx, userID, orderType))
}

func (_m *CheckoutServiceInterface) SubmitAddress(ctx context.Context, userID string, address domain.Address, customer domain.Customer) (*domain.CheckoutSession, error) {
	return session(_m.Called(ctx, userID, address, customer))
}

func (_m *CheckoutServiceInterface) PlaceOrder(ctx context.Context, userID string, req service.PlaceOrderRequest) (*domain.CheckoutSession, *domain.Order, error) {
	ret := _m.Called(ctx, userID, req)
	var r0 *domain.CheckoutSession
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.CheckoutSession)
	}
	var r1 *domain.Order
	if ret.Get(1) != nil {
		r1 = ret.Get(1).(*domain.Order)
	}
	return r0, r1, ret.Error(2)
}

func (_m *CheckoutServiceInterface) Back(ctx context.Context, userID string) (*domain.CheckoutSession, error) {
	return session(_m.Called(ctx, userID))
}

func NewCheckoutServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *CheckoutServiceInterface {
	m := &CheckoutServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
