// Package errors defines the error taxonomy shared by the credential backend
// and the preflight checker. Every failure mode of a chainctl invocation maps
// to a distinct error type so callers can log precise diagnostics without
// parsing error strings.
package errors

import (
	"errors"
	"fmt"
)

// Error types
const (
	// ErrCommandNotFound is returned when the chainctl executable is not on PATH
	ErrCommandNotFound = "command_not_found"

	// ErrCommandFailed is returned when chainctl exits with a non-zero status
	ErrCommandFailed = "command_failed"

	// ErrCommandTimeout is returned when a chainctl invocation exceeds its deadline
	ErrCommandTimeout = "command_timeout"

	// ErrOutputParse is returned when chainctl output does not match the expected format
	ErrOutputParse = "output_parse"

	// ErrMissingConfig is returned when required configuration is absent
	ErrMissingConfig = "missing_config"

	// ErrReadOnlyBackend is returned when a mutation is attempted on the read-only backend
	ErrReadOnlyBackend = "read_only_backend"
)

// Error represents an error in the application
type Error struct {
	// Type is the error type
	Type string

	// Message is the error message
	Message string

	// Cause is the underlying error
	Cause error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new error
func NewError(errorType, message string, cause error) *Error {
	return &Error{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NewCommandNotFoundError creates a new command not found error
func NewCommandNotFoundError(message string, cause error) *Error {
	return NewError(ErrCommandNotFound, message, cause)
}

// NewCommandFailedError creates a new command failed error
func NewCommandFailedError(message string, cause error) *Error {
	return NewError(ErrCommandFailed, message, cause)
}

// NewCommandTimeoutError creates a new command timeout error
func NewCommandTimeoutError(message string, cause error) *Error {
	return NewError(ErrCommandTimeout, message, cause)
}

// NewOutputParseError creates a new output parse error
func NewOutputParseError(message string, cause error) *Error {
	return NewError(ErrOutputParse, message, cause)
}

// NewMissingConfigError creates a new missing configuration error
func NewMissingConfigError(message string, cause error) *Error {
	return NewError(ErrMissingConfig, message, cause)
}

// NewReadOnlyBackendError creates a new read-only backend error
func NewReadOnlyBackendError(message string) *Error {
	return NewError(ErrReadOnlyBackend, message, nil)
}

func hasType(err error, errorType string) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == errorType
}

// IsCommandNotFound checks if the error is a command not found error
func IsCommandNotFound(err error) bool {
	return hasType(err, ErrCommandNotFound)
}

// IsCommandFailed checks if the error is a command failed error
func IsCommandFailed(err error) bool {
	return hasType(err, ErrCommandFailed)
}

// IsCommandTimeout checks if the error is a command timeout error
func IsCommandTimeout(err error) bool {
	return hasType(err, ErrCommandTimeout)
}

// IsOutputParse checks if the error is an output parse error
func IsOutputParse(err error) bool {
	return hasType(err, ErrOutputParse)
}

// IsMissingConfig checks if the error is a missing configuration error
func IsMissingConfig(err error) bool {
	return hasType(err, ErrMissingConfig)
}

// IsReadOnlyBackend checks if the error is a read-only backend error
func IsReadOnlyBackend(err error) bool {
	return hasType(err, ErrReadOnlyBackend)
}
