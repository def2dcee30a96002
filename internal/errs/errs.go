// Package errs holds the error taxonomy shared by repositories, services and
// handlers. The kind is decided where the failure happens and only translated
// into an HTTP status at the request boundary.
package errs

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Unknown Kind = iota
	Validation
	NotFound
	Conflict
	UpstreamTimeout
	Upstream
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case UpstreamTimeout:
		return "upstream_timeout"
	case Upstream:
		return "upstream"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind    Kind
	Message string
	// Details is optional client-facing context (upstream body, validation field).
	Details any
	// Status carries the upstream HTTP status for Upstream errors.
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: Validation, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: NotFound, Message: fmt.Sprintf(format, args...)}
}

// UpstreamStatus builds an Upstream error that keeps the remote status code.
func UpstreamStatus(status int, msg string, details any) *Error {
	return &Error{Kind: Upstream, Message: msg, Status: status, Details: details}
}

func (e *Error) WithDetails(details any) *Error {
	e.Details = details
	return e
}

// KindOf returns Unknown for errors that are not *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// As is a shorthand around errors.As for the package type.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
