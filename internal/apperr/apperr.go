// Package apperr carries coded errors across the store, identity and screen
// layers so callers can branch on what went wrong without string matching.
package apperr

import "errors"

// Code classifies an error independently of where it was raised.
type Code string

const (
	CodeNotFound     Code = "not_found"
	CodeCancelled    Code = "cancelled"
	CodeInvalidInput Code = "invalid_input"
	CodeInternal     Code = "internal"
)

// Error wraps a failure with a stable code.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a coded error.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to err. An existing code in the chain wins.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Code: existing.Code, Message: msg, Err: err}
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode reports whether err carries code anywhere in its chain.
func HasCode(err error, code Code) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == code
}

// Cancelled is the error used when the user backs out of a workflow.
var Cancelled = New(CodeCancelled, "operation cancelled by user")
