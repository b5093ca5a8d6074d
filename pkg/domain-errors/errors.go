// Package domainerrors carries the error codes services return to callers.
//
// Callers branch on the code, never on the message text:
//
//	if dErrors.HasCode(err, dErrors.CodeInvalidNetwork) { ... }
//
// Stores return sentinel errors (pkg/platform/sentinel); services translate
// them into coded errors here.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain failure.
type Code string

const (
	CodeBadRequest   Code = "bad_request"
	CodeValidation   Code = "validation_error"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeInternal     Code = "internal_error"

	// CodeInvalidNetwork means the requested DHT network has no configuration.
	CodeInvalidNetwork Code = "invalid_network"
	// CodePublishFailed means the DHT refused or failed to store a record.
	CodePublishFailed Code = "publish_failed"
	// CodeNotImplemented is returned for identifier mutations, which are
	// rejected unconditionally.
	CodeNotImplemented Code = "not_implemented"
)

// Error is a coded domain error. Err, when set, is the underlying cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a coded error with the given message.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Newf is New with fmt formatting.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to err. The cause stays reachable
// through errors.Is / errors.As.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode reports whether any error in err's chain carries code.
func HasCode(err error, code Code) bool {
	var de *Error
	for err != nil {
		if errors.As(err, &de) {
			if de.Code == code {
				return true
			}
			err = de.Err
			continue
		}
		return false
	}
	return false
}

// Is is an alias of HasCode kept for call sites that read better with it.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the outermost code in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
