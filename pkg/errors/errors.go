// Package errors provides structured error types for the metabake application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the pipeline stages
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes map the pipeline's failure taxonomy:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND: Expected artifact absent (file in archive, forge resource)
//   - NETWORK_ERROR: Non-success status or transport failure on a forge call
//   - PARSE_ERROR: Malformed content in a found artifact
//   - VALIDATION_FAILED: A maintainer or URL failed validation
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNotFound, "could not find license file")
//	if errors.Is(err, errors.ErrCodeNotFound) {
//	    // Handle missing artifact
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeParse, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different failure categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidOwner  Code = "INVALID_OWNER"
	ErrCodeInvalidRepo   Code = "INVALID_REPO"
	ErrCodeInvalidHandle Code = "INVALID_HANDLE"

	// Expected artifact absent
	ErrCodeNotFound Code = "NOT_FOUND"

	// Network failures (transport errors, non-success HTTP status)
	ErrCodeNetwork Code = "NETWORK_ERROR"

	// Malformed content in a found artifact
	ErrCodeParse Code = "PARSE_ERROR"

	// Maintainer or URL validation failures
	ErrCodeValidation Code = "VALIDATION_FAILED"

	// Unexpected internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
