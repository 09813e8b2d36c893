package errors

import (
	"errors"
	"fmt"
)

// Common application errors with proper types for error handling

var (
	// ErrInvalidInput indicates invalid input data
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates missing or invalid authentication
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable indicates an unreachable or misconfigured dependency
	ErrUnavailable = errors.New("service unavailable")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal error")
)

// InvalidInputError creates an invalid input error with context
func InvalidInputError(field, reason string) error {
	return fmt.Errorf("%s: %s: %w", field, reason, ErrInvalidInput)
}

// UnauthorizedError creates an unauthorized error with context
func UnauthorizedError(reason string) error {
	if reason != "" {
		return fmt.Errorf("%s: %w", reason, ErrUnauthorized)
	}
	return ErrUnauthorized
}

// UnavailableError creates an unavailable error with context
func UnavailableError(dependency string, cause error) error {
	return fmt.Errorf("%s: %v: %w", dependency, cause, ErrUnavailable)
}

// InternalError creates an internal error with context
func InternalError(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInternal)
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}
