package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"bitebook/relay-svc/internal/domain"

	"go.uber.org/zap"
)

// Consumer delivers the notification events order-svc publishes after an
// order is placed.
type Consumer struct {
	Reader MessageReader
	Email  EmailSender
	SMS    SMSSender
	Logger *zap.Logger
}

func NewConsumer(reader MessageReader, email EmailSender, sms SMSSender, logger *zap.Logger) *Consumer {
	return &Consumer{
		Reader: reader,
		Email:  email,
		SMS:    sms,
		Logger: logger,
	}
}

// Start reads until ctx is cancelled or the reader is closed.
func (c *Consumer) Start(ctx context.Context) {
	c.Logger.Info("starting notification consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				c.Logger.Info("notification consumer stopped")
				return
			}
			c.Logger.Error("error reading message", zap.Error(err))
			continue
		}

		var event domain.NotificationEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			c.Logger.Error("error unmarshaling message", zap.Error(err), zap.Int64("offset", message.Offset))
			continue
		}

		if err := c.Process(ctx, event); err != nil {
			c.Logger.Error("notification not delivered",
				zap.String("order_id", event.OrderID),
				zap.String("type", event.Type),
				zap.Error(err))
		}
	}
}

// Process sends one event through its channel. Unknown types are skipped.
func (c *Consumer) Process(ctx context.Context, event domain.NotificationEvent) error {
	if event.To == "" {
		return domain.ErrMissingField
	}

	switch event.Type {
	case domain.NotificationEmail:
		if err := c.Email.SendEmail(ctx, event.To, event.Subject, event.Body); err != nil {
			return err
		}
	case domain.NotificationSMS:
		if err := c.SMS.SendSMS(ctx, event.To, event.Body); err != nil {
			return err
		}
	default:
		c.Logger.Warn("skipping unknown notification type", zap.String("type", event.Type))
		return nil
	}

	c.Logger.Info("notification delivered",
		zap.String("order_id", event.OrderID),
		zap.String("type", event.Type))
	return nil
}

var _ ConsumerInterface = (*Consumer)(nil)
