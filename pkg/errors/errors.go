package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeTransport indicates the backend was unreachable or answered
	// with a non-success status carrying no parseable field error
	ErrorTypeTransport ErrorType = "TRANSPORT"

	// ErrorTypeValidation indicates a local or backend rejection of
	// submitted fields; the message is human-readable and shown verbatim
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeNotFound indicates a code that does not resolve to an
	// active reservation
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeAuthRequired indicates the action needs a signed-in identity
	ErrorTypeAuthRequired ErrorType = "AUTH_REQUIRED"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a new transport error
func NewTransportError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeTransport,
		Message: message,
		Err:     err,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewAuthRequiredError creates a new auth required error
func NewAuthRequiredError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeAuthRequired,
		Message: message,
	}
}

// TypeOf returns the ErrorType of err, or empty when err is not an AppError
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsTransport reports whether err is a transport error
func IsTransport(err error) bool {
	return TypeOf(err) == ErrorTypeTransport
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool {
	return TypeOf(err) == ErrorTypeValidation
}

// IsNotFound reports whether err is a not found error
func IsNotFound(err error) bool {
	return TypeOf(err) == ErrorTypeNotFound
}

// IsAuthRequired reports whether err is an auth required error
func IsAuthRequired(err error) bool {
	return TypeOf(err) == ErrorTypeAuthRequired
}
