package service

import (
	"errors"
	"fmt"
)

type GateKind string

const (
	GateValidation   GateKind = "validation"
	GateBusinessRule GateKind = "business_rule"
	GateExternal     GateKind = "external"
)

// GateError is a refused checkout transition. The session stays in its
// current state and the user can retry after acting on Message.
type GateError struct {
	Kind    GateKind `json:"kind"`
	Message string   `json:"message"`
	Err     error    `json:"-"`
}

func (e *GateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *GateError) Unwrap() error {
	return e.Err
}

func validationGate(message string) *GateError {
	return &GateError{Kind: GateValidation, Message: message}
}

func businessGate(message string) *GateError {
	return &GateError{Kind: GateBusinessRule, Message: message}
}

func externalGate(message string, err error) *GateError {
	return &GateError{Kind: GateExternal, Message: message, Err: err}
}

// AsGateError unwraps err into a *GateError when it is one.
func AsGateError(err error) (*GateError, bool) {
	var gate *GateError
	if errors.As(err, &gate) {
		return gate, true
	}
	return nil, false
}
