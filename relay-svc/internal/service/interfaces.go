package service

import (
	"context"
	"time"

	"bitebook/relay-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

// CooldownStore guards OTP resends per phone number. Acquire reports false
// and the remaining wait when a cooldown is already running.
type CooldownStore interface {
	Acquire(ctx context.Context, phone string, ttl time.Duration) (bool, time.Duration, error)
	Release(ctx context.Context, phone string) error
}

// OTPProvider is the authority for one-time codes: it generates, delivers
// and checks them.
type OTPProvider interface {
	StartVerification(ctx context.Context, phone string) error
	CheckVerification(ctx context.Context, phone, code string) (bool, error)
}

type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, html string) error
}

type TokenIssuer interface {
	Issue(userID, phone string) (string, time.Time, error)
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type OTPServiceInterface interface {
	Send(ctx context.Context, req domain.SendOTPRequest) (*domain.OTPSent, error)
	Verify(ctx context.Context, req domain.VerifyOTPRequest) (*domain.LoginSession, error)
}

type EmailServiceInterface interface {
	Send(ctx context.Context, req domain.EmailRequest) error
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	Process(ctx context.Context, event domain.NotificationEvent) error
}
