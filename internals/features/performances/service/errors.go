package service

import "errors"

type Kind string

const (
	KindDuplicateIdentifier Kind = "DUPLICATE_IDENTIFIER"
	KindValidation          Kind = "VALIDATION_FAILURE"
	KindNotFound            Kind = "NOT_FOUND"
	KindBackendUnavailable  Kind = "BACKEND_UNAVAILABLE"
)

// Error carries the failure kind the caller reports on.
// errors.Is(err, ErrNotFound) matches any *Error of that kind.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

var (
	ErrDuplicateIdentifier = &Error{Kind: KindDuplicateIdentifier}
	ErrValidation          = &Error{Kind: KindValidation}
	ErrNotFound            = &Error{Kind: KindNotFound}
	ErrBackendUnavailable  = &Error{Kind: KindBackendUnavailable}
)

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf returns the kind of err, or "" when err is not a service error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
