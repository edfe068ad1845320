package domain

import "time"

const (
	NotificationEmail = "email"
	NotificationSMS   = "sms"
)

// NotificationEvent is published by order-svc after an order is placed.
type NotificationEvent struct {
	Type      string    `json:"type"`
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	To        string    `json:"to"`
	Subject   string    `json:"subject,omitempty"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
}
