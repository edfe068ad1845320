package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"bitebook/relay-svc/internal/domain"
	"bitebook/relay-svc/internal/mocks"
	"bitebook/relay-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type otpFixture struct {
	cooldown *mocks.CooldownStore
	provider *mocks.OTPProvider
	issuer   *mocks.TokenIssuer
	service  *service.OTPService
}

func newOTPFixture(t *testing.T) *otpFixture {
	f := &otpFixture{
		cooldown: mocks.NewCooldownStore(t),
		provider: mocks.NewOTPProvider(t),
		issuer:   mocks.NewTokenIssuer(t),
	}
	f.service = service.NewOTPService(f.cooldown, f.provider, f.issuer, time.Minute, zap.NewNop())
	return f
}

func TestOTPService_Send(t *testing.T) {
	f := newOTPFixture(t)
	f.cooldown.On("Acquire", mock.Anything, "9876543210", time.Minute).Return(true, time.Duration(0), nil).Once()
	f.provider.On("StartVerification", mock.Anything, "9876543210").Return(nil).Once()

	sent, err := f.service.Send(context.Background(), domain.SendOTPRequest{PhoneNumber: "+91 98765-43210", Purpose: "login"})

	require.NoError(t, err)
	assert.Equal(t, "9876543210", sent.PhoneNumber)
	assert.Equal(t, "login", sent.Purpose)
	assert.Equal(t, 60, sent.RetryAfter)
}

func TestOTPService_SendInvalidPhone(t *testing.T) {
	tests := []string{"", "12345", "5123456789", "phone"}

	for _, testCase := range tests {
		t.Run(testCase, func(t *testing.T) {
			f := newOTPFixture(t)
			_, err := f.service.Send(context.Background(), domain.SendOTPRequest{PhoneNumber: testCase})
			assert.ErrorIs(t, err, domain.ErrInvalidPhone)
		})
	}
}

func TestOTPService_SendDuringCooldown(t *testing.T) {
	f := newOTPFixture(t)
	f.cooldown.On("Acquire", mock.Anything, "9876543210", time.Minute).Return(false, 42*time.Second, nil).Once()

	_, err := f.service.Send(context.Background(), domain.SendOTPRequest{PhoneNumber: "9876543210"})

	require.ErrorIs(t, err, domain.ErrCooldown)
	var cooldown *domain.CooldownError
	require.ErrorAs(t, err, &cooldown)
	assert.Equal(t, 42*time.Second, cooldown.Remaining)
}

func TestOTPService_SendProviderFailureReleasesCooldown(t *testing.T) {
	f := newOTPFixture(t)
	f.cooldown.On("Acquire", mock.Anything, "9876543210", time.Minute).Return(true, time.Duration(0), nil).Once()
	f.provider.On("StartVerification", mock.Anything, "9876543210").Return(errors.New("twilio 503")).Once()
	f.cooldown.On("Release", mock.Anything, "9876543210").Return(nil).Once()

	_, err := f.service.Send(context.Background(), domain.SendOTPRequest{PhoneNumber: "9876543210"})

	assert.ErrorIs(t, err, domain.ErrProvider)
}

func TestOTPService_SendCooldownStoreError(t *testing.T) {
	f := newOTPFixture(t)
	f.cooldown.On("Acquire", mock.Anything, "9876543210", time.Minute).Return(false, time.Duration(0), errors.New("redis down")).Once()

	_, err := f.service.Send(context.Background(), domain.SendOTPRequest{PhoneNumber: "9876543210"})

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrProvider)
	assert.NotErrorIs(t, err, domain.ErrCooldown)
}

func TestOTPService_Verify(t *testing.T) {
	f := newOTPFixture(t)
	expires := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	userID := service.UserIDForPhone("9876543210")

	f.provider.On("CheckVerification", mock.Anything, "9876543210", "123456").Return(true, nil).Once()
	f.issuer.On("Issue", userID, "9876543210").Return("signed.jwt", expires, nil).Once()
	f.cooldown.On("Release", mock.Anything, "9876543210").Return(nil).Once()

	session, err := f.service.Verify(context.Background(), domain.VerifyOTPRequest{PhoneNumber: "9876543210", OTP: "123 456"})

	require.NoError(t, err)
	assert.Equal(t, "signed.jwt", session.Token)
	assert.Equal(t, userID, session.UserID)
	assert.Equal(t, expires, session.ExpiresAt)
}

func TestOTPService_VerifyFailures(t *testing.T) {
	tests := []struct {
		name    string
		req     domain.VerifyOTPRequest
		setup   func(f *otpFixture)
		wantErr error
	}{
		{
			name:    "bad phone",
			req:     domain.VerifyOTPRequest{PhoneNumber: "123", OTP: "123456"},
			setup:   func(f *otpFixture) {},
			wantErr: domain.ErrInvalidPhone,
		},
		{
			name:    "short code",
			req:     domain.VerifyOTPRequest{PhoneNumber: "9876543210", OTP: "1234"},
			setup:   func(f *otpFixture) {},
			wantErr: domain.ErrInvalidOTP,
		},
		{
			name: "rejected",
			req:  domain.VerifyOTPRequest{PhoneNumber: "9876543210", OTP: "000000"},
			setup: func(f *otpFixture) {
				f.provider.On("CheckVerification", mock.Anything, "9876543210", "000000").Return(false, nil).Once()
			},
			wantErr: domain.ErrOTPRejected,
		},
		{
			name: "provider down",
			req:  domain.VerifyOTPRequest{PhoneNumber: "9876543210", OTP: "123456"},
			setup: func(f *otpFixture) {
				f.provider.On("CheckVerification", mock.Anything, "9876543210", "123456").Return(false, errors.New("timeout")).Once()
			},
			wantErr: domain.ErrProvider,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newOTPFixture(t)
			testCase.setup(f)

			session, err := f.service.Verify(context.Background(), testCase.req)

			assert.Nil(t, session)
			assert.ErrorIs(t, err, testCase.wantErr)
		})
	}
}

func TestUserIDForPhoneIsStable(t *testing.T) {
	assert.Equal(t, service.UserIDForPhone("9876543210"), service.UserIDForPhone("9876543210"))
	assert.NotEqual(t, service.UserIDForPhone("9876543210"), service.UserIDForPhone("9123456789"))
}
