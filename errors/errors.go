package errors

import (
	"strings"
)

// Phase indicates which operation the error occurred in
type Phase string

const (
	PhaseAdopt    Phase = "adopt"    // raw-pointer adoption
	PhaseDowncast Phase = "downcast" // checked wrapper downcast
	PhaseCast     Phase = "cast"     // trampoline cast
	PhaseMarshal  Phase = "marshal"  // boundary pointer retrieval
	PhaseExport   Phase = "export"   // export table operations
)

// Kind categorizes the error
type Kind string

const (
	KindNilProvider  Kind = "nil_provider"
	KindNilPointer   Kind = "nil_pointer"
	KindTypeMismatch Kind = "type_mismatch"
	KindNoConversion Kind = "no_conversion"
	KindNotCastable  Kind = "not_castable"
)

// Error is the structured error type used throughout the library.
// All failures are synchronous invalid-argument-class faults; where a
// type was involved, Expected and Actual carry the display names of
// the requested and the actually recorded types.
type Error struct {
	Cause    error
	Phase    Phase
	Kind     Kind
	Expected string
	Actual   string
	Detail   string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Expected != "" || e.Actual != "" {
		b.WriteString(": ")
		if e.Expected != "" && e.Actual != "" {
			b.WriteString("expected type ")
			b.WriteString(e.Expected)
			b.WriteString(", got ")
			b.WriteString(e.Actual)
		} else if e.Expected != "" {
			b.WriteString("expected type ")
			b.WriteString(e.Expected)
		} else {
			b.WriteString("got type ")
			b.WriteString(e.Actual)
		}
	}

	if e.Detail != "" {
		if e.Expected != "" || e.Actual != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Convenience constructors for common error patterns

// NilProvider creates an error for a nil opaque provider
func NilProvider(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilProvider,
		Detail: "provider is nil",
	}
}

// NilPointer creates an error for a nil adoption pointer
func NilPointer(phase Phase, goType string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindNilPointer,
		Expected: goType,
		Detail:   "pointer must not be nil",
	}
}

// TypeMismatch creates an error for a recorded type mismatch
func TypeMismatch(phase Phase, expected, actual string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindTypeMismatch,
		Expected: expected,
		Actual:   actual,
	}
}

// NoConversion creates an error for a cast whose recorded type is
// absent from the declared candidate list
func NoConversion(phase Phase, expected, actual string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindNoConversion,
		Expected: expected,
		Actual:   actual,
		Detail:   "no declared conversion",
	}
}

// NotCastable creates an error for a provider lacking the cast capability
func NotCastable(phase Phase, actual string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotCastable,
		Actual: actual,
		Detail: "provider does not support casting",
	}
}

// Wrap wraps an existing error with phase and kind context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
