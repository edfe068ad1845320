package mocks

import (
	"context"

	"bitebook/relay-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type EmailServiceInterface struct {
	mock.Mock
}

func (_m *EmailServiceInterface) Send(ctx context.Context, req domain.EmailRequest) error {
	ret := _m.Called(ctx, req)
	return ret.Error(0)
}

func NewEmailServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *EmailServiceInterface {
	m := &EmailServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
