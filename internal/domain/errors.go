package domain

import (
	"errors"
	"fmt"
)

// Kind tags a domain error. The set is closed: handlers hold a total
// Kind→status mapping, so an unlisted kind falls through to KindInternal.
type Kind string

const (
	KindBadInput             Kind = "BadInput"
	KindNotFound             Kind = "NotFound"
	KindDuplicateAccount     Kind = "DuplicateAccount"
	KindAuthenticationFailed Kind = "AuthenticationFailed"
	KindUnverified           Kind = "Unverified"
	KindMalformedToken       Kind = "MalformedToken"
	KindTokenExpired         Kind = "TokenExpired"
	KindBadSignature         Kind = "BadSignature"
	KindIdentityNotFound     Kind = "IdentityNotFound"
	KindUnauthenticated      Kind = "InsufficientAuthentication"
	KindForbidden            Kind = "Forbidden"
	KindInternal             Kind = "Internal"
)

// Error is the domain error type. Message is what the service wants a caller
// to read; the transport layer decides whether the client actually sees it.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// E builds a domain error with the given kind and message.
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Ef is E with fmt-style message formatting.
func Ef(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause so the original error survives for logging while the
// client-facing kind and message stay controlled.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// KindOf extracts the kind from err, or KindInternal for unexpected errors.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// MessageOf extracts the domain message from err. Unexpected errors report a
// generic message so internals never leak to clients.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal server error"
}
