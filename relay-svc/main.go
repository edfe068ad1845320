package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"bitebook/auth"
	"bitebook/config"
	httpapi "bitebook/relay-svc/internal/api/http"
	"bitebook/relay-svc/internal/service"
	"bitebook/relay-svc/internal/storage"

	"go.uber.org/zap"
)

type providerConfig struct {
	SendGridKey  string
	MailFromName string
	MailFrom     string
	TwilioSID    string
	TwilioToken  string
	TwilioVerify string
	TwilioFrom   string
}

func providerConfigFromEnv() providerConfig {
	return providerConfig{
		SendGridKey:  os.Getenv("SENDGRID_API_KEY"),
		MailFromName: config.Getenv("MAIL_FROM_NAME", "BiteBook"),
		MailFrom:     config.Getenv("MAIL_FROM", "orders@bitebook.local"),
		TwilioSID:    os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioVerify: os.Getenv("TWILIO_VERIFY_SERVICE_SID"),
		TwilioFrom:   os.Getenv("TWILIO_FROM_NUMBER"),
	}
}

// missing lists the provider variables that are not set.
func (c providerConfig) missing() []string {
	vars := []struct{ name, value string }{
		{"SENDGRID_API_KEY", c.SendGridKey},
		{"TWILIO_ACCOUNT_SID", c.TwilioSID},
		{"TWILIO_AUTH_TOKEN", c.TwilioToken},
		{"TWILIO_VERIFY_SERVICE_SID", c.TwilioVerify},
		{"TWILIO_FROM_NUMBER", c.TwilioFrom},
	}
	var names []string
	for _, v := range vars {
		if v.value == "" {
			names = append(names, v.name)
		}
	}
	return names
}

func main() {
	config.LoadEnv()
	logger := config.NewLogger("relay-svc")
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Fatal("JWT_SECRET is required")
	}
	issuer := auth.NewIssuer(secret, config.GetenvDuration("JWT_TTL", auth.DefaultTTL))

	providers := providerConfigFromEnv()
	if missing := providers.missing(); len(missing) > 0 {
		logger.Warn("provider credentials missing, sends will fail", zap.Strings("vars", missing))
	}

	rdb := config.MustInitRedis()
	defer rdb.Close()

	reader := config.NewKafkaReader(config.NotifyTopic(), config.Getenv("KAFKA_GROUP_ID", "relay-svc-notifications"))
	defer reader.Close()

	mailer := storage.NewSendGridMailer(providers.SendGridKey, providers.MailFromName, providers.MailFrom)
	twilio := storage.NewTwilioClient(providers.TwilioSID, providers.TwilioToken, providers.TwilioVerify, providers.TwilioFrom)
	cooldown := storage.NewRedisCooldown(rdb)

	otp := service.NewOTPService(cooldown, twilio, issuer,
		config.GetenvDuration("OTP_COOLDOWN", service.DefaultOTPCooldown), logger.Named("otp"))
	email := service.NewEmailService(mailer, logger.Named("email"))

	consumer := service.NewConsumer(reader, mailer, twilio, logger.Named("consumer"))
	go consumer.Start(ctx)

	handler := httpapi.NewHandler(otp, email, logger)
	router := httpapi.NewRouter(handler)

	if err := httpapi.StartServer(ctx, config.Getenv("RELAY_SVC_ADDR", ":8082"), router, logger); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
	logger.Info("relay service stopped")
}
