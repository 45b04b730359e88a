package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	ErrUnauthenticated = errors.New("unauthorized")
	ErrForbidden       = errors.New("unauthorized access: admin only")
	ErrNotFound        = errors.New("not found")
	ErrEmptyContent    = errors.New("content cannot be empty")
	ErrInvalidInput    = errors.New("invalid input")
	ErrConflict        = errors.New("conflict")
	ErrNoRecipient     = errors.New("user email not found (guest?)")
)

// ActionError is an infrastructure failure at an action boundary. Message
// is safe to show to the caller; Err stays in the logs.
type ActionError struct {
	Message string
	Err     error
}

func (e *ActionError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// fail logs err and wraps it for the caller.
func fail(logger *zap.Logger, message string, err error, fields ...zap.Field) error {
	logger.Error(message, append(fields, zap.Error(err))...)
	return &ActionError{Message: message, Err: err}
}
