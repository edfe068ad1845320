package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderConfigFromEnv(t *testing.T) {
	t.Setenv("SENDGRID_API_KEY", "SG.key")
	t.Setenv("MAIL_FROM", "hello@bitebook.in")
	t.Setenv("MAIL_FROM_NAME", "")
	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
	t.Setenv("TWILIO_AUTH_TOKEN", "")
	t.Setenv("TWILIO_VERIFY_SERVICE_SID", "VA123")
	t.Setenv("TWILIO_FROM_NUMBER", "")

	cfg := providerConfigFromEnv()

	assert.Equal(t, "SG.key", cfg.SendGridKey)
	assert.Equal(t, "hello@bitebook.in", cfg.MailFrom)
	assert.Equal(t, "BiteBook", cfg.MailFromName)
	assert.Equal(t, []string{"TWILIO_AUTH_TOKEN", "TWILIO_FROM_NUMBER"}, cfg.missing())
}

func TestProviderConfigComplete(t *testing.T) {
	cfg := providerConfig{
		SendGridKey:  "k",
		TwilioSID:    "s",
		TwilioToken:  "t",
		TwilioVerify: "v",
		TwilioFrom:   "+15005550006",
	}
	assert.Empty(t, cfg.missing())
}
