package photoset

import (
	"errors"
	"fmt"
)

// Kind classifies a remote failure so callers can branch without
// comparing service specific codes.
type Kind string

const (
	KindNotFound   Kind = "not_found"
	KindPermission Kind = "permission"
	KindInvalid    Kind = "invalid"
	KindTransport  Kind = "transport"
	KindRemote     Kind = "remote"
)

// Error is returned by every Client method on failure.
type Error struct {
	// Op is the client operation that failed (e.g. "upload", "reorder").
	Op string

	Kind Kind

	// Code is the service status code, 0 when the request never got a response.
	Code int

	Message string

	Err error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Code != 0 {
		return fmt.Sprintf("photoset.%s: %s (%s, code %d)", e.Op, msg, e.Kind, e.Code)
	}
	return fmt.Sprintf("photoset.%s: %s (%s)", e.Op, msg, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates an Error for op with the given kind and message.
func NewError(op string, kind Kind, message string) *Error {
	return &Error{Op: op, Kind: kind, Message: message}
}

// IsKind reports whether err carries a *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind == kind
	}
	return false
}

// KindOf returns the kind of err, or KindRemote when err is not a *Error.
func KindOf(err error) Kind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return KindRemote
}
