// Package apperr defines the closed set of expected failure kinds the
// service layer reports. Handlers match kinds with errors.As and map them to
// an HTTP status or a flash message; anything else is a fault and must be
// logged server-side and surfaced opaquely.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation            Kind = "validation_error"
	KindNotFound              Kind = "not_found"
	KindAccessDenied          Kind = "access_denied"
	KindDuplicateIdentity     Kind = "duplicate_identity"
	KindInvalidCredentials    Kind = "invalid_credentials"
	KindInvalidOrExpiredToken Kind = "invalid_or_expired_token"
	KindInvalidTransition     Kind = "invalid_transition"
	KindPersistence           Kind = "persistence_failure"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Message: what + " not found"}
}

func AccessDenied() *Error {
	return &Error{Kind: KindAccessDenied, Message: "access denied"}
}

func DuplicateIdentity(message string) *Error {
	return &Error{Kind: KindDuplicateIdentity, Message: message}
}

func InvalidCredentials() *Error {
	return &Error{Kind: KindInvalidCredentials, Message: "invalid username or password"}
}

func InvalidOrExpiredToken() *Error {
	return &Error{Kind: KindInvalidOrExpiredToken, Message: "invalid or expired reset token"}
}

func InvalidTransition(message string) *Error {
	return &Error{Kind: KindInvalidTransition, Message: message}
}

// Persistence wraps an unexpected storage fault. The wrapped error is for
// server-side logs only and must never reach a response body.
func Persistence(err error) *Error {
	return &Error{Kind: KindPersistence, Message: "storage operation failed", Err: err}
}

// KindOf extracts the kind from err, or KindPersistence for unknown errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindPersistence
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// MessageOf returns the user-facing message for expected kinds and an opaque
// message for persistence faults.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Kind != KindPersistence {
		return ae.Message
	}
	return "an unexpected error occurred, please try again"
}
