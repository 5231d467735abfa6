package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:    PhaseDowncast,
				Kind:     KindTypeMismatch,
				Expected: "pkg.Codec",
				Actual:   "pkg.Muxer",
				Detail:   "wrapper holds a different type",
			},
			contains: []string{"[downcast]", "type_mismatch", "pkg.Codec", "pkg.Muxer", "wrapper holds a different type"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseMarshal,
				Kind:  KindNilProvider,
			},
			contains: []string{"[marshal]", "nil_provider"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseExport,
				Kind:   KindNilProvider,
				Detail: "table rejected entry",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[export]", "table rejected entry", "caused by", "underlying error"},
		},
		{
			name: "expected only",
			err: &Error{
				Phase:    PhaseAdopt,
				Kind:     KindNilPointer,
				Expected: "*pkg.Codec",
			},
			contains: []string{"[adopt]", "nil_pointer", "expected type *pkg.Codec"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(PhaseExport, KindNilProvider, cause, "factory failed")

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not match cause through the chain")
	}
}

func TestError_Is(t *testing.T) {
	err := TypeMismatch(PhaseDowncast, "a", "b")

	if !errors.Is(err, &Error{Phase: PhaseDowncast, Kind: KindTypeMismatch}) {
		t.Error("expected match on same phase and kind")
	}
	if errors.Is(err, &Error{Phase: PhaseCast, Kind: KindTypeMismatch}) {
		t.Error("unexpected match on different phase")
	}
	if errors.Is(err, &Error{Phase: PhaseDowncast, Kind: KindNoConversion}) {
		t.Error("unexpected match on different kind")
	}
}

func TestConstructors(t *testing.T) {
	if e := NilProvider(PhaseMarshal); e.Kind != KindNilProvider || e.Phase != PhaseMarshal {
		t.Errorf("NilProvider built %+v", e)
	}
	if e := NilPointer(PhaseAdopt, "*pkg.T"); e.Expected != "*pkg.T" {
		t.Errorf("NilPointer lost the type name: %+v", e)
	}
	if e := NoConversion(PhaseCast, "pkg.Base", "pkg.Other"); e.Expected != "pkg.Base" || e.Actual != "pkg.Other" {
		t.Errorf("NoConversion lost type names: %+v", e)
	}
	if e := NotCastable(PhaseMarshal, "pkg.Plain"); e.Actual != "pkg.Plain" {
		t.Errorf("NotCastable lost the actual type: %+v", e)
	}
}
