package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidPhone = errors.New("invalid phone number")
	ErrInvalidOTP   = errors.New("invalid otp format")
	ErrCooldown     = errors.New("otp resend cooldown active")
	ErrOTPRejected  = errors.New("otp rejected")
	ErrMissingField = errors.New("missing required field")
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrProvider marks failures of the upstream SMS, OTP or email provider.
	ErrProvider = errors.New("provider unavailable")
)

type SendOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Purpose     string `json:"purpose"`
}

type VerifyOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	OTP         string `json:"otp"`
}

// OTPResponse is the envelope of both OTP endpoints.
type OTPResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type OTPSent struct {
	PhoneNumber string `json:"phoneNumber"`
	Purpose     string `json:"purpose,omitempty"`
	RetryAfter  int    `json:"retryAfter"`
}

// LoginSession is returned once a phone number is verified.
type LoginSession struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// CooldownError carries how long the caller has to wait before resending.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return ErrCooldown.Error()
}

func (e *CooldownError) Is(target error) bool {
	return target == ErrCooldown
}

type EmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type EmailResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}
