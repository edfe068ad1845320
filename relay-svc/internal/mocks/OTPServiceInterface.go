package mocks

import (
	"context"

	"bitebook/relay-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type OTPServiceInterface struct {
	mock.Mock
}

func (_m *OTPServiceInterface) Send(ctx context.Context, req domain.SendOTPRequest) (*domain.OTPSent, error) {
	ret := _m.Called(ctx, req)
	var sent *domain.OTPSent
	if v := ret.Get(0); v != nil {
		sent = v.(*domain.OTPSent)
	}
	return sent, ret.Error(1)
}

func (_m *OTPServiceInterface) Verify(ctx context.Context, req domain.VerifyOTPRequest) (*domain.LoginSession, error) {
	ret := _m.Called(ctx, req)
	var session *domain.LoginSession
	if v := ret.Get(0); v != nil {
		session = v.(*domain.LoginSession)
	}
	return session, ret.Error(1)
}

func NewOTPServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *OTPServiceInterface {
	m := &OTPServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
