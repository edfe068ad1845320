package mocks

import (
	"context"

	"bitebook/order-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type DishRepository struct {
	mock.Mock
}

func (_m *DishRepository) ListDishes(ctx context.Context, restaurantID int) ([]domain.Dish, error) {
	ret := _m.Called(ctx, restaurantID)
	var r0 []domain.Dish
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Dish)
	}
	return r0, ret.Error(1)
}

func (_m *DishRepository) GetDish(ctx context.Context, restaurantID, dishID int) (*domain.Dish, error) {
	ret := _m.Called(ctx, restaurantID, dishID)
	var r0 *domain.Dish
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Dish)
	}
	return r0, ret.Error(1)
}

func NewDishRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *DishRepository {
	m := &DishRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
