package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrSessionNotFound   = errors.New("checkout session not found")
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
	ErrInvalidItem       = errors.New("invalid cart item")
	ErrDishUnavailable   = errors.New("dish is not available")
)
