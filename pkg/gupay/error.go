package gupay

import (
	"errors"
	"fmt"
)

// ErrUnexpected is returned for every failure the provider did not describe
// with a structured error body: transport failures, timeouts, non-JSON or
// unstructured error responses. It carries no structured fields.
var ErrUnexpected = errors.New("gupay: unexpected error occurred")

// Error is a structured error reported by the GuPay API. Callers can branch
// on Code and Type with errors.As.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("gupay: %s (type=%s code=%s)", e.Message, e.Type, e.Code)
}

// errorEnvelope matches the provider's failure body {"error":{...}}.
type errorEnvelope struct {
	Err *Error `json:"error"`
}
