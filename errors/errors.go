// Package errors provides constant sentinel errors and re-exports the standard library helpers
// so packages can import a single errors package.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Separator joins a sentinel's message to the cause attached with Wrap.
const Separator = ": "

// Error is a string based error type allowing sentinel errors to be declared as constants.
type Error string

func (e Error) Error() string {
	return string(e)
}

// Is reports whether target carries the same message, either exactly or as the prefix of a wrapped cause.
func (e Error) Is(target error) bool {
	if target == nil {
		return false
	}
	msg := target.Error()
	return msg == string(e) || strings.HasPrefix(msg, string(e)+Separator)
}

// Wrap attaches err as the cause of e.
func (e Error) Wrap(err error) error {
	return &wrappedError{sentinel: e, cause: err}
}

// Wrapf attaches a formatted cause to e.
func (e Error) Wrapf(format string, args ...any) error {
	return &wrappedError{sentinel: e, cause: fmt.Errorf(format, args...)}
}

type wrappedError struct {
	sentinel Error
	cause    error
}

func (w *wrappedError) Error() string {
	if w.cause == nil {
		return string(w.sentinel)
	}
	return string(w.sentinel) + Separator + w.cause.Error()
}

func (w *wrappedError) Is(target error) bool {
	if s, ok := target.(Error); ok {
		return s == w.sentinel
	}
	return false
}

func (w *wrappedError) Unwrap() error {
	return w.cause
}

// Is calls errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As calls errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New calls errors.New.
func New(message string) error {
	return errors.New(message)
}

// Join calls errors.Join.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
