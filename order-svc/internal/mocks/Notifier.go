package mocks

import (
	"bitebook/order-svc/internal/service"

	"github.com/stretchr/testify/mock"
)

type Notifier struct {
	mock.Mock
}

func (_m *Notifier) Enqueue(task service.Task) bool {
	ret := _m.Called(task)
	return ret.Bool(0)
}

func NewNotifier(t interface {
	mock.TestingT
	Cleanup(func())
}) *Notifier {
	m := &Notifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
