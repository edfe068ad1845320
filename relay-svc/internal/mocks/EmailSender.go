package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailSender struct {
	mock.Mock
}

func (_m *EmailSender) SendEmail(ctx context.Context, to, subject, html string) error {
	ret := _m.Called(ctx, to, subject, html)
	return ret.Error(0)
}

func NewEmailSender(t interface {
	mock.TestingT
	Cleanup(func())
}) *EmailSender {
	m := &EmailSender{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
