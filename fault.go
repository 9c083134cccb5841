// Package fault defines the error contract shared by Strata content
// repository components.
//
// Every failure crossing a repository API boundary is an *Error carrying a
// Kind, a human-readable message and an optional cause. Kinds replace an
// exception hierarchy: handlers that care about one failure class test the
// kind (IsConstraintViolation, IsKind), handlers that treat all repository
// failures alike match the type (errors.As, AsError). Causes stay on the
// chain, so errors.Is and errors.As keep working through any amount of
// wrapping on either side.
package fault

import (
	"fmt"
	"log/slog"
)

// Error is a classified repository failure.
//
// The zero value is usable and reports as an unclassified internal failure.
// An Error is immutable after construction and safe to share between
// goroutines.
type Error struct {
	// Kind places the failure in the repository taxonomy.
	Kind Kind

	// Message describes this occurrence. May be empty.
	Message string

	// Err is the underlying cause. May be nil.
	Err error
}

// New returns an Error of the given kind. The message may be empty; Error()
// then falls back to the kind label.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf returns an Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error of the given kind with cause as its Err. A nil
// cause is allowed; the error then simply has no cause.
func Wrap(kind Kind, cause error, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: cause}
}

// Error implements the error interface. An empty message falls back to the
// kind label so the error never prints blank.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.label()
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the cause, if any.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target matches e under errors.Is. Only non-nil *Error
// targets match. A target kind, when set, must equal e's kind; a target
// message, when set, must equal e's message. Probe with New(kind, "") to
// match any error of a kind; a zero target matches any repository error.
// Sentinel instances built with New keep exact-match semantics.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	if t.Kind != "" && t.Kind != e.Kind {
		return false
	}
	if t.Message != "" && t.Message != e.Message {
		return false
	}
	return true
}

// LogValue renders the error as a structured group for log/slog.
func (e *Error) LogValue() slog.Value {
	kind := e.Kind
	if kind == "" {
		kind = KindInternal
	}
	attrs := make([]slog.Attr, 0, 3)
	attrs = append(attrs, slog.String("kind", string(kind)))
	if e.Message != "" {
		attrs = append(attrs, slog.String("message", e.Message))
	}
	if e.Err != nil {
		attrs = append(attrs, slog.String("cause", e.Err.Error()))
	}
	return slog.GroupValue(attrs...)
}
