package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type SMSSender struct {
	mock.Mock
}

func (_m *SMSSender) SendSMS(ctx context.Context, to, body string) error {
	ret := _m.Called(ctx, to, body)
	return ret.Error(0)
}

func NewSMSSender(t interface {
	mock.TestingT
	Cleanup(func())
}) *SMSSender {
	m := &SMSSender{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
