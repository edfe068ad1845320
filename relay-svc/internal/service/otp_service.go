package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bitebook/relay-svc/internal/domain"
	"bitebook/validate"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultOTPCooldown = 60 * time.Second

type OTPService struct {
	cooldown    CooldownStore
	provider    OTPProvider
	issuer      TokenIssuer
	cooldownTTL time.Duration
	logger      *zap.Logger
}

func NewOTPService(cooldown CooldownStore, provider OTPProvider, issuer TokenIssuer, cooldownTTL time.Duration, logger *zap.Logger) *OTPService {
	if cooldownTTL <= 0 {
		cooldownTTL = DefaultOTPCooldown
	}
	return &OTPService{
		cooldown:    cooldown,
		provider:    provider,
		issuer:      issuer,
		cooldownTTL: cooldownTTL,
		logger:      logger,
	}
}

// UserIDForPhone derives a stable user id from a verified phone number.
func UserIDForPhone(phone string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("tel:+91"+phone)).String()
}

func normalizedPhone(raw string) (string, error) {
	phone := validate.NormalizePhone(raw)
	if !validate.IsValidIndianPhone(phone) {
		return "", domain.ErrInvalidPhone
	}
	return phone, nil
}

// Send starts a verification for the phone unless one was started within
// the cooldown window. A provider failure releases the cooldown so the user
// can retry immediately.
func (s *OTPService) Send(ctx context.Context, req domain.SendOTPRequest) (*domain.OTPSent, error) {
	phone, err := normalizedPhone(req.PhoneNumber)
	if err != nil {
		return nil, err
	}

	acquired, remaining, err := s.cooldown.Acquire(ctx, phone, s.cooldownTTL)
	if err != nil {
		return nil, fmt.Errorf("otp cooldown: %w", err)
	}
	if !acquired {
		return nil, &domain.CooldownError{Remaining: remaining}
	}

	if err := s.provider.StartVerification(ctx, phone); err != nil {
		if releaseErr := s.cooldown.Release(ctx, phone); releaseErr != nil {
			s.logger.Warn("failed to release otp cooldown", zap.String("phone", validate.MaskPhone(phone)), zap.Error(releaseErr))
		}
		s.logger.Error("otp send failed", zap.String("phone", validate.MaskPhone(phone)), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}

	s.logger.Info("otp sent",
		zap.String("phone", validate.MaskPhone(phone)),
		zap.String("purpose", strings.TrimSpace(req.Purpose)))
	return &domain.OTPSent{
		PhoneNumber: phone,
		Purpose:     strings.TrimSpace(req.Purpose),
		RetryAfter:  int(s.cooldownTTL.Seconds()),
	}, nil
}

// Verify checks the code with the provider and, when approved, issues a
// session token for the phone's user.
func (s *OTPService) Verify(ctx context.Context, req domain.VerifyOTPRequest) (*domain.LoginSession, error) {
	phone, err := normalizedPhone(req.PhoneNumber)
	if err != nil {
		return nil, err
	}
	code := validate.NormalizeOTP(req.OTP)
	if !validate.IsValidOTP(code) {
		return nil, domain.ErrInvalidOTP
	}

	approved, err := s.provider.CheckVerification(ctx, phone, code)
	if err != nil {
		s.logger.Error("otp check failed", zap.String("phone", validate.MaskPhone(phone)), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}
	if !approved {
		return nil, domain.ErrOTPRejected
	}

	userID := UserIDForPhone(phone)
	token, expiresAt, err := s.issuer.Issue(userID, phone)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	if err := s.cooldown.Release(ctx, phone); err != nil {
		s.logger.Warn("failed to release otp cooldown", zap.String("phone", validate.MaskPhone(phone)), zap.Error(err))
	}

	s.logger.Info("phone verified", zap.String("user_id", userID))
	return &domain.LoginSession{Token: token, UserID: userID, ExpiresAt: expiresAt}, nil
}

var _ OTPServiceInterface = (*OTPService)(nil)
