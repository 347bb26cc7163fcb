package service

import "errors"

// Kind classifies a business-rule failure. The api layer maps kinds onto
// HTTP statuses; services never see HTTP.
type Kind int

const (
	KindBadRequest Kind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindInternal
)

// Error is a typed business-rule failure raised at the service boundary.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// ErrBadRequest reports malformed or conflicting input.
func ErrBadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

// ErrUnauthorized reports failed authentication or an invalid code.
func ErrUnauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// ErrForbidden reports an authenticated caller lacking rights.
func ErrForbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// ErrNotFound reports a missing entity.
func ErrNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// ErrInternal wraps an unexpected failure behind a generic message.
// The cause stays available for logging via errors.Unwrap.
func ErrInternal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, cause: cause}
}

// KindOf extracts the kind of a service error, defaulting to internal for
// anything untyped.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}
