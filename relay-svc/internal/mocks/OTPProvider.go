package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type OTPProvider struct {
	mock.Mock
}

func (_m *OTPProvider) StartVerification(ctx context.Context, phone string) error {
	ret := _m.Called(ctx, phone)
	return ret.Error(0)
}

func (_m *OTPProvider) CheckVerification(ctx context.Context, phone, code string) (bool, error) {
	ret := _m.Called(ctx, phone, code)
	return ret.Bool(0), ret.Error(1)
}

func NewOTPProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *OTPProvider {
	m := &OTPProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
