// Package errors re-exports the error helpers the rest of the codebase
// needs, so callers get stack traces from pkg/errors and matching from the
// standard library through one import.
package errors

import (
	stderrors "errors"

	pkgerrors "github.com/pkg/errors"
)

// New returns an error with the given text and a stack trace.
func New(text string) error {
	return pkgerrors.New(text)
}

// Errorf formats an error and attaches a stack trace.
func Errorf(format string, args ...any) error {
	return pkgerrors.Errorf(format, args...)
}

// Wrap annotates err with a message and a stack trace. It returns nil when
// err is nil.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message and a stack trace.
func Wrapf(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// WithStack attaches a stack trace to err without changing its message.
func WithStack(err error) error {
	return pkgerrors.WithStack(err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}
