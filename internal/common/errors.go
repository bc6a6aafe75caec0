// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Input errors.
	ErrParse  = errors.New("parse error")
	ErrSchema = errors.New("missing required column")

	// Classification store errors.
	ErrConnectivity = errors.New("classification store unreachable")
	ErrPersistence  = errors.New("classification save failed")

	// Export errors.
	ErrValidation = errors.New("incomplete classification")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsRetryable determines if an error should trigger a retry.
// Only remote store connectivity problems are worth retrying; parse,
// schema and validation errors are deterministic.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrConnectivity) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
