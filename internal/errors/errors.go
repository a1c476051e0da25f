// Package errors defines typed errors with categories for user-friendly reporting.
// Every failure the shell can hit belongs to one Kind, and the Kind decides
// whether the prompt loop keeps reading after the error is reported.
//
// The package supports wrapping underlying errors while maintaining error kind
// information, so callers can recover the Kind through any number of fmt.Errorf
// %w layers with KindOf.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// Configuration indicates missing or unusable connection settings.
	Configuration Kind = "configuration_error"
	// Format indicates an unknown output format code.
	Format Kind = "format_error"
	// Connection indicates the data store could not be reached.
	Connection Kind = "connection_error"
	// Command indicates a single command failed to execute.
	Command Kind = "command_error"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error, if any.
func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// Newf is New with a format string.
func Newf(kind Kind, format string, args ...any) *E {
	return &E{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of the first *E in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
