package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure for the HTTP layer.
type Kind int

const (
	Internal Kind = iota
	Validation
	Conflict
	NotFound
	Forbidden
	Unauthorized
	Transient
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Conflict:
		return "conflict"
	case NotFound:
		return "not_found"
	case Forbidden:
		return "forbidden"
	case Unauthorized:
		return "unauthorized"
	case Transient:
		return "transient"
	default:
		return "internal"
	}
}

// HTTPStatus returns the response status used for the kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case Validation:
		return http.StatusBadRequest
	case Conflict:
		return http.StatusConflict
	case NotFound:
		return http.StatusNotFound
	case Forbidden:
		return http.StatusForbidden
	case Unauthorized:
		return http.StatusUnauthorized
	case Transient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is a typed, user-facing failure.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Msg == "" {
		return e.Err.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Public is the message safe to show to a client.
// Wrapped causes are never included.
func (e *Error) Public() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Kind == Transient || e.Kind == Internal {
		return "service temporarily unavailable"
	}
	return e.Kind.String()
}

func newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...interface{}) error { return newf(Validation, format, args...) }
func Conflictf(format string, args ...interface{}) error   { return newf(Conflict, format, args...) }
func NotFoundf(format string, args ...interface{}) error   { return newf(NotFound, format, args...) }
func Forbiddenf(format string, args ...interface{}) error  { return newf(Forbidden, format, args...) }

func Unauthorizedf(format string, args ...interface{}) error {
	return newf(Unauthorized, format, args...)
}

// Unavailable wraps a persistence or connectivity failure that may be retried.
func Unavailable(msg string, err error) error {
	return &Error{Kind: Transient, Msg: msg, Err: err}
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
