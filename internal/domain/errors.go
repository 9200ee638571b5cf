// Package domain contains business entities, rules and errors.
// Domain errors represent business-rule violations, NOT HTTP errors.
// They are infrastructure-agnostic and are mapped to responses by adapters.
package domain

import (
	"errors"
)

// ErrBusinessRule is the sentinel every *Error unwraps to.
// Use errors.Is(err, ErrBusinessRule) to tell an expected business failure
// apart from an unexpected technical one.
var ErrBusinessRule = errors.New("business rule violated")

// Error is a business-rule violation carrying exactly one ErrorCode.
// The value is immutable once created.
type Error struct {
	code ErrorCode
}

// NewError creates a business error for the given code.
func NewError(code ErrorCode) error {
	return &Error{code: code}
}

// Error implements the error interface.
// The text is the machine-readable code; adapters must translate it before
// showing anything to a client.
func (e *Error) Error() string {
	return "business rule violated: " + string(e.code)
}

// Code returns the error code.
func (e *Error) Code() ErrorCode {
	return e.code
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *Error) Unwrap() error {
	return ErrBusinessRule
}

// IsBusinessRule checks if an error is a business-rule violation.
func IsBusinessRule(err error) bool {
	return errors.Is(err, ErrBusinessRule)
}

// CodeOf extracts the error code from err or any error it wraps.
// The boolean is false when err is not a business-rule violation.
func CodeOf(err error) (ErrorCode, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code(), true
	}

	return "", false
}
