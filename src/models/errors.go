package models

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrRequestNotFound    = errors.New("connection request not found")
	ErrSelfRequest        = errors.New("connection request to self")
	ErrDuplicateRequest   = errors.New("connection request already exists")
	ErrInvalidStatus      = errors.New("invalid connection status")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
)

// ValidationError reports a malformed or disallowed input field. Err, when
// set, is the sentinel the failure also matches through errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
