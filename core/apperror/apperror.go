// Package apperror defines the domain errors raised by services and translated
// to HTTP responses in exactly one place.
package apperror

import (
	"errors"
	"net/http"
)

// Kind tags a domain error with the class of client fault it represents.
type Kind int

const (
	// KindInvariant is a malformed payload or a failed write precondition.
	KindInvariant Kind = iota + 1
	// KindNotFound is a referenced entity that does not exist.
	KindNotFound
	// KindAuthorization is an authenticated caller acting outside its rights.
	KindAuthorization
	// KindAuthentication is a missing or rejected credential.
	KindAuthentication
)

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindInvariant:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthorization:
		return http.StatusForbidden
	case KindAuthentication:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case KindInvariant:
		return "invariant"
	case KindNotFound:
		return "not_found"
	case KindAuthorization:
		return "authorization"
	case KindAuthentication:
		return "authentication"
	default:
		return "unknown"
	}
}

// Error is a client error. Message is safe to show to the caller; Err keeps
// the underlying cause for logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status associated with the error kind.
func (e *Error) Status() int {
	return e.Kind.Status()
}

// Invariant creates a KindInvariant error.
func Invariant(msg string) *Error {
	return &Error{Kind: KindInvariant, Message: msg}
}

// NotFound creates a KindNotFound error.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Forbidden creates a KindAuthorization error.
func Forbidden(msg string) *Error {
	return &Error{Kind: KindAuthorization, Message: msg}
}

// Unauthenticated creates a KindAuthentication error.
func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindAuthentication, Message: msg}
}

// Wrap attaches a cause to a new error of the given kind.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf reports the kind of the first domain error in err's chain.
// The boolean is false for server faults.
func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return 0, false
}

// Is reports whether err carries a domain error of the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
