package mocks

import (
	"context"

	"bitebook/order-svc/internal/domain"
	"bitebook/order-svc/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type OrderServiceInterface struct {
	mock.Mock
}

func (_m *OrderServiceInterface) Submit(ctx context.Context, req service.SubmitRequest) (*domain.Order, error) {
	ret := _m.Called(ctx, req)
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderServiceInterface) Get(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	ret := _m.Called(ctx, userID, orderID)
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderServiceInterface) List(ctx context.Context, userID string) ([]domain.Order, error) {
	ret := _m.Called(ctx, userID)
	var r0 []domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderServiceInterface) GetQRCode(ctx context.Context, userID, orderID string) ([]byte, error) {
	ret := _m.Called(ctx, userID, orderID)
	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

func (_m *OrderServiceInterface) WalletBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	ret := _m.Called(ctx, userID)
	return ret.Get(0).(decimal.Decimal), ret.Error(1)
}

func (_m *OrderServiceInterface) QRLink(orderID string) string {
	ret := _m.Called(orderID)
	return ret.String(0)
}

func NewOrderServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderServiceInterface {
	m := &OrderServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
