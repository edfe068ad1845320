package tests

import (
	"context"
	"errors"
	"testing"

	"bitebook/relay-svc/internal/domain"
	"bitebook/relay-svc/internal/mocks"
	"bitebook/relay-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestEmailService_Send(t *testing.T) {
	tests := []struct {
		name    string
		req     domain.EmailRequest
		setup   func(sender *mocks.EmailSender)
		wantErr error
	}{
		{
			name: "sent",
			req:  domain.EmailRequest{To: " asha@example.com ", Subject: "Receipt", HTML: "<b>Paid</b>"},
			setup: func(sender *mocks.EmailSender) {
				sender.On("SendEmail", mock.Anything, "asha@example.com", "Receipt", "<b>Paid</b>").Return(nil).Once()
			},
		},
		{
			name:    "missing to",
			req:     domain.EmailRequest{Subject: "Receipt", HTML: "<b>Paid</b>"},
			setup:   func(sender *mocks.EmailSender) {},
			wantErr: domain.ErrMissingField,
		},
		{
			name:    "missing subject",
			req:     domain.EmailRequest{To: "asha@example.com", HTML: "<b>Paid</b>"},
			setup:   func(sender *mocks.EmailSender) {},
			wantErr: domain.ErrMissingField,
		},
		{
			name:    "missing html",
			req:     domain.EmailRequest{To: "asha@example.com", Subject: "Receipt", HTML: "  "},
			setup:   func(sender *mocks.EmailSender) {},
			wantErr: domain.ErrMissingField,
		},
		{
			name:    "bad address",
			req:     domain.EmailRequest{To: "asha", Subject: "Receipt", HTML: "<b>Paid</b>"},
			setup:   func(sender *mocks.EmailSender) {},
			wantErr: domain.ErrInvalidEmail,
		},
		{
			name: "provider error",
			req:  domain.EmailRequest{To: "asha@example.com", Subject: "Receipt", HTML: "<b>Paid</b>"},
			setup: func(sender *mocks.EmailSender) {
				sender.On("SendEmail", mock.Anything, "asha@example.com", "Receipt", "<b>Paid</b>").Return(errors.New("401")).Once()
			},
			wantErr: domain.ErrProvider,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			sender := mocks.NewEmailSender(t)
			testCase.setup(sender)

			err := service.NewEmailService(sender, zap.NewNop()).Send(context.Background(), testCase.req)

			if testCase.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, testCase.wantErr)
			}
		})
	}
}
