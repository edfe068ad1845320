package mocks

import (
	"context"

	"bitebook/order-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type CartRepository struct {
	mock.Mock
}

func (_m *CartRepository) LoadCart(ctx context.Context, userID string) (*domain.Cart, error) {
	ret := _m.Called(ctx, userID)
	var r0 *domain.Cart
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Cart)
	}
	return r0, ret.Error(1)
}

func (_m *CartRepository) SaveCart(ctx context.Context, cart *domain.Cart) error {
	ret := _m.Called(ctx, cart)
	return ret.Error(0)
}

func NewCartRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *CartRepository {
	m := &CartRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
