package apperr

import (
	"errors"
	"fmt"
)

type Code string

const (
	// Client errors
	CodeInvalidRequest Code = "INVALID_REQUEST"
	CodeInvalidAPIKey  Code = "INVALID_API_KEY"
	CodeCardDeclined   Code = "CARD_DECLINED"
	CodeNotFound       Code = "PAYMENT_NOT_FOUND"
	CodeNotRefundable  Code = "NOT_REFUNDABLE"
	CodeRefundExceeds  Code = "REFUND_EXCEEDS_AMOUNT"

	// Everything else
	CodeInternal Code = "INTERNAL"
)

// Error carries a stable code for boundary mapping and a message safe
// to show to the caller.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// CodeOf extracts the domain code, defaulting to CodeInternal for
// anything unclassified.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// Detail returns the caller-facing message for a classified error and a
// generic one otherwise, so internals never leak through the boundary.
func Detail(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Code != CodeInternal {
		return appErr.Message
	}
	return "Internal server error"
}
