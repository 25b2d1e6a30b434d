// Package errors provides structured error types for the panelprep application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across all pipeline stages
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Each code maps to one failure domain of the panelization pipeline:
//   - CONFIG_ERROR: malformed or missing settings
//   - ARCHIVE_ERROR: corrupt or unreadable zip archives
//   - BOARD_SET_ERROR: missing or ambiguous required gerber files
//   - INVALID_INPUT: bad user input such as non-positive repeat counts
//   - IO_ERROR: output directory or file write failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "repeat count must be positive, got %d", n)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeArchive, origErr, "open %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the failure domains of the pipeline.
const (
	// ErrCodeConfig covers malformed or missing settings-file values.
	ErrCodeConfig Code = "CONFIG_ERROR"

	// ErrCodeArchive covers zip archives that cannot be opened or extracted.
	ErrCodeArchive Code = "ARCHIVE_ERROR"

	// ErrCodeBoardSet covers required gerber roles that resolve to zero or
	// multiple files in the extracted archive.
	ErrCodeBoardSet Code = "BOARD_SET_ERROR"

	// ErrCodeInvalidInput covers bad user-supplied values such as
	// non-positive repeat counts or malformed mousebite locations.
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	// ErrCodeIO covers output write failures.
	ErrCodeIO Code = "IO_ERROR"

	// ErrCodeInternal covers unexpected internal errors.
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
