package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type WalletLedger struct {
	mock.Mock
}

func (_m *WalletLedger) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	ret := _m.Called(ctx, userID)
	return ret.Get(0).(decimal.Decimal), ret.Error(1)
}

func (_m *WalletLedger) Debit(ctx context.Context, userID string, amount decimal.Decimal) error {
	ret := _m.Called(ctx, userID, amount)
	return ret.Error(0)
}

func (_m *WalletLedger) Credit(ctx context.Context, userID string, amount decimal.Decimal) error {
	ret := _m.Called(ctx, userID, amount)
	return ret.Error(0)
}

func NewWalletLedger(t interface {
	mock.TestingT
	Cleanup(func())
}) *WalletLedger {
	m := &WalletLedger{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
