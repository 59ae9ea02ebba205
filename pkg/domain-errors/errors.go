// Package domainerrors defines the coded error type surfaced by every
// operation. Services translate store sentinels into these codes; the
// transport layer maps codes onto HTTP statuses. Codes are stable API.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain failure.
type Code string

const (
	// CodeUnauthorized: the caller lacks the required role or relationship.
	CodeUnauthorized Code = "unauthorized"
	// CodeNotFound: a referenced identifier does not exist.
	CodeNotFound Code = "not_found"
	// CodeAlreadyRegistered: duplicate registration attempt.
	CodeAlreadyRegistered Code = "already_registered"
	// CodeInvalidState: operation not valid for the current lifecycle state.
	CodeInvalidState Code = "invalid_state"
	// CodeNotEligible: payout preconditions unmet.
	CodeNotEligible Code = "not_eligible"
	// CodeInvalidInput: a value is out of its allowed bounds (rate, amount, id).
	CodeInvalidInput Code = "invalid_input"
	// CodeBadRequest: the request itself is malformed (transport-level).
	CodeBadRequest Code = "bad_request"
	// CodeConflict: a uniqueness or concurrency conflict outside registration.
	CodeConflict Code = "conflict"
	// CodeInternal: unexpected failure; details are not exposed to callers.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error, optionally wrapping a cause.
type Error struct {
	ErrCode Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.ErrCode, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.ErrCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New constructs a coded error.
func New(code Code, message string) error {
	return &Error{ErrCode: code, Message: message}
}

// Newf constructs a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{ErrCode: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause, preserving the
// chain for errors.Is / errors.As.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{ErrCode: code, Message: message, cause: err}
}

// GetCode extracts the code from err, or CodeInternal if err carries none.
func GetCode(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.ErrCode
	}
	return CodeInternal
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.ErrCode == code
	}
	return false
}

// Description returns the caller-facing message, empty for internal errors
// so implementation details never leak.
func Description(err error) string {
	var de *Error
	if errors.As(err, &de) && de.ErrCode != CodeInternal {
		return de.Message
	}
	return ""
}
