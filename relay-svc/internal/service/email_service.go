package service

import (
	"context"
	"fmt"
	"strings"

	"bitebook/relay-svc/internal/domain"
	"bitebook/validate"

	"go.uber.org/zap"
)

type EmailService struct {
	sender EmailSender
	logger *zap.Logger
}

func NewEmailService(sender EmailSender, logger *zap.Logger) *EmailService {
	return &EmailService{sender: sender, logger: logger}
}

func (s *EmailService) Send(ctx context.Context, req domain.EmailRequest) error {
	to := strings.TrimSpace(req.To)
	subject := strings.TrimSpace(req.Subject)

	switch {
	case to == "":
		return fmt.Errorf("%w: to", domain.ErrMissingField)
	case subject == "":
		return fmt.Errorf("%w: subject", domain.ErrMissingField)
	case strings.TrimSpace(req.HTML) == "":
		return fmt.Errorf("%w: html", domain.ErrMissingField)
	case !validate.IsValidEmail(to):
		return domain.ErrInvalidEmail
	}

	if err := s.sender.SendEmail(ctx, to, subject, req.HTML); err != nil {
		s.logger.Error("email send failed", zap.String("subject", subject), zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}
	s.logger.Info("email sent", zap.String("subject", subject))
	return nil
}

var _ EmailServiceInterface = (*EmailService)(nil)
