package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"
)

type TokenIssuer struct {
	mock.Mock
}

func (_m *TokenIssuer) Issue(userID, phone string) (string, time.Time, error) {
	ret := _m.Called(userID, phone)
	return ret.String(0), ret.Get(1).(time.Time), ret.Error(2)
}

func NewTokenIssuer(t interface {
	mock.TestingT
	Cleanup(func())
}) *TokenIssuer {
	m := &TokenIssuer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
