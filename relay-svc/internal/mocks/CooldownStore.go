package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type CooldownStore struct {
	mock.Mock
}

func (_m *CooldownStore) Acquire(ctx context.Context, phone string, ttl time.Duration) (bool, time.Duration, error) {
	ret := _m.Called(ctx, phone, ttl)
	return ret.Bool(0), ret.Get(1).(time.Duration), ret.Error(2)
}

func (_m *CooldownStore) Release(ctx context.Context, phone string) error {
	ret := _m.Called(ctx, phone)
	return ret.Error(0)
}

func NewCooldownStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *CooldownStore {
	m := &CooldownStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
