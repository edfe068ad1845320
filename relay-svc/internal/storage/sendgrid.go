package storage

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type SendGridMailer struct {
	APIKey   string
	FromName string
	FromAddr string
	// Host overrides the SendGrid API host; empty means the public API.
	Host string
}

func NewSendGridMailer(apiKey, fromName, fromAddr string) *SendGridMailer {
	return &SendGridMailer{APIKey: apiKey, FromName: fromName, FromAddr: fromAddr}
}

func (m *SendGridMailer) SendEmail(ctx context.Context, to, subject, html string) error {
	from := mail.NewEmail(m.FromName, m.FromAddr)
	message := mail.NewV3MailInit(from, subject, mail.NewEmail("", to), mail.NewContent("text/html", html))

	request := sendgrid.GetRequest(m.APIKey, "/v3/mail/send", m.Host)
	request.Method = "POST"
	request.Body = mail.GetRequestBody(message)

	resp, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
