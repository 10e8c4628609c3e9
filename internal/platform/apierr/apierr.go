package apierr

import (
	"errors"
	"fmt"
)

// Kind partitions failures the way the resolvers report them: validation
// errors fail fast before persistence, not-found is usually a structured
// success:false response, storage and filesystem errors propagate.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindStorage
	KindFileSystem
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Storage(err error) *Error {
	return &Error{Kind: KindStorage, Err: err}
}

func FileSystem(err error) *Error {
	return &Error{Kind: KindFileSystem, Err: err}
}

// IsKind reports whether err is (or wraps) an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
