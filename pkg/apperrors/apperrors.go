// Package apperrors provides structured error handling for the application.
// Every error carries a machine-readable code so callers can classify
// failures without string matching.
package apperrors

import (
	"errors"
	"fmt"
)

// ErrorCode represents an error code
type ErrorCode string

const (
	// CodeInvalidArgument covers all validation failures: empty names,
	// negative quantities, non-positive servings, unknown enum values.
	CodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"

	// CodeNotFound signals a lookup miss where the caller asked for
	// feedback. Removal paths are silent no-ops and never return it.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeParseFailure covers malformed serialized input.
	CodeParseFailure ErrorCode = "PARSE_FAILURE"

	// CodeIOFailure covers file persistence failures.
	CodeIOFailure ErrorCode = "IO_FAILURE"
)

// AppError is an application error with a structured code
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCause attaches a cause error
func (e *AppError) WithCause(cause error) *AppError {
	return &AppError{Code: e.Code, Message: e.Message, Cause: cause}
}

// New creates an application error with the given code
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// InvalidArgument creates a validation error
func InvalidArgument(message string) *AppError {
	return New(CodeInvalidArgument, message)
}

// NotFound creates a not found error
func NotFound(resource, id string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s %s not found", resource, id))
}

// ParseFailure wraps a deserialization error
func ParseFailure(message string, cause error) *AppError {
	return New(CodeParseFailure, message).WithCause(cause)
}

// IOFailure wraps a persistence error
func IOFailure(message string, cause error) *AppError {
	return New(CodeIOFailure, message).WithCause(cause)
}

// GetCode extracts the error code, defaulting to INVALID_ARGUMENT for
// unclassified errors raised by domain code.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInvalidArgument
}

// IsInvalidArgument reports whether err is a validation error
func IsInvalidArgument(err error) bool {
	return hasCode(err, CodeInvalidArgument)
}

// IsNotFound reports whether err is a lookup miss
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsParseFailure reports whether err is a deserialization failure
func IsParseFailure(err error) bool {
	return hasCode(err, CodeParseFailure)
}

func hasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
