// Package apperr defines the error codes shared by the selection, compositing
// and export layers.
//
// Every failure a user can trigger maps to one Code so the HTTP layer and the
// CLI can report it without string matching:
//
//	err := apperr.New(apperr.CodeCapacityExceeded, "only %d items can be selected", 5)
//	if apperr.Is(err, apperr.CodeCapacityExceeded) {
//	    // show a notice, keep the selection
//	}
package apperr

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	// Selection errors
	CodeCapacityExceeded    Code = "CAPACITY_EXCEEDED"
	CodeSelectionIncomplete Code = "SELECTION_INCOMPLETE"
	CodeInvalidMode         Code = "INVALID_MODE"
	CodeInvalidItem         Code = "INVALID_ITEM"

	// Export errors
	CodeValidation         Code = "VALIDATION_FAILED"
	CodeResourceLoad       Code = "RESOURCE_LOAD_FAILED"
	CodeEncodingRestricted Code = "ENCODING_RESTRICTED"

	CodeSessionNotFound Code = "SESSION_NOT_FOUND"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeInternal        Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error that wraps cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any *Error in err's chain carries code.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix. Errors that are
// not *Error are returned as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
