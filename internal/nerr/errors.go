// Package nerr is the closed error taxonomy used across the module: every
// fallible operation returns one of these kinds rather than an ad hoc error,
// so the surface layer can map it to a stable exit code and JSON code
// string without inspecting error text.
package nerr

import (
	"errors"
	"fmt"
)

// Kind is the exhaustive set of error categories the spec defines.
type Kind string

const (
	NotFound      Kind = "NOT_FOUND"
	InvalidValue  Kind = "INVALID_VALUE"
	CycleDetected Kind = "CYCLE_DETECTED"
	NoDatabase    Kind = "NO_DATABASE"
	DbError       Kind = "DB_ERROR"
	ParseError    Kind = "PARSE_ERROR"
	IoError       Kind = "IO_ERROR"
)

// Error is the concrete error type carried through the whole call stack.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Code returns the stable machine-readable string used in JSON diagnostics.
func (e *Error) Code() string { return string(e.Kind) }

// ExitCode returns the process exit code for this error. All error kinds
// map to 1; code 2 (empty result set) is not an error and is handled
// separately by the surface layer.
func (e *Error) ExitCode() int { return 1 }

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func NotFoundf(format string, args ...any) *Error {
	return New(NotFound, format, args...)
}

func InvalidValuef(field, value string, valid string) *Error {
	return New(InvalidValue, "invalid value for %s: %q. valid: %s", field, value, valid)
}

func Cycle(path string) *Error {
	return New(CycleDetected, "cycle detected: %s", path)
}

func NoDatabasef() *Error {
	return New(NoDatabase, "no .nit.db found. run 'nit init' to create one")
}

func DbErrorf(cause error, format string, args ...any) *Error {
	return Wrap(DbError, cause, format, args...)
}

func ParseErrorf(cause error, format string, args ...any) *Error {
	return Wrap(ParseError, cause, format, args...)
}

func IoErrorf(cause error, format string, args ...any) *Error {
	return Wrap(IoError, cause, format, args...)
}

// As reports whether err is (or wraps) an *Error and returns it.
func As(err error) (*Error, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
