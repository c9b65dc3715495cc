// Package errors provides structured error types for the etchmark application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the codec, compositor, and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Every fallible boundary in the engraving pipeline returns an *Error carrying
// one of the codes below. Composition is non-recovering: the first failure
// aborts the whole render and is surfaced to the caller verbatim.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeOutOfRange, "identifier %d exceeds 20-bit capacity", id)
//	if errors.Is(err, errors.ErrCodeOutOfRange) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeExternalRenderer, origErr, "barcode render for slot %d", pos)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different failure categories.
const (
	// Micro-ID codec errors
	ErrCodeOutOfRange     Code = "OUT_OF_RANGE"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeMissingAnchor  Code = "MISSING_ANCHOR"
	ErrCodeParityMismatch Code = "PARITY_MISMATCH"

	// Document composition errors
	ErrCodeInvalidPosition      Code = "INVALID_POSITION"
	ErrCodeMissingRequiredField Code = "MISSING_REQUIRED_FIELD"
	ErrCodeInvalidCode          Code = "INVALID_CODE"
	ErrCodeExternalRenderer     Code = "EXTERNAL_RENDERER_FAILURE"
	ErrCodeInvalidConfiguration Code = "INVALID_CONFIGURATION"

	// Internal errors
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
