package types

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failure classes surfaced to callers
type ErrorKind uint32

const (
	KindNotFound ErrorKind = iota + 1
	KindValidation
	KindConflict
	KindAuthorization
	KindTransient
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuthorization:
		return "authorization"
	case KindTransient:
		return "transient"
	default:
		return "undefined kind"
	}
}

type Error struct {
	kind    ErrorKind
	message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.kind.String() + ": " + e.message + ": " + e.err.Error()
	}
	return e.kind.String() + ": " + e.message
}

func (e *Error) Unwrap() error {
	return e.err
}

func (e *Error) Kind() ErrorKind {
	return e.kind
}

func (e *Error) Message() string {
	return e.message
}

func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	}{
		Kind:    e.kind.String(),
		Message: e.message,
	})
}

func NewErr(kind ErrorKind, message string) *Error {
	return &Error{
		kind:    kind,
		message: message,
	}
}

func NewErrf(kind ErrorKind, format string, values ...interface{}) *Error {
	if len(values) == 0 {
		return NewErr(kind, format)
	}
	return NewErr(kind, fmt.Sprintf(format, values...))
}

// WrapErr attaches a kind to an infrastructure error
func WrapErr(kind ErrorKind, err error, message string) *Error {
	return &Error{
		kind:    kind,
		message: message,
		err:     err,
	}
}

// KindOf returns the kind of the first *Error found in the chain
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.kind, true
	}
	return 0, false
}

func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
