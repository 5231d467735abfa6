package marshal

import (
	"fmt"
	"reflect"

	"github.com/wippyai/opaque"
	"github.com/wippyai/opaque/errors"
	"github.com/wippyai/opaque/handle"
)

// CheckedDowncast asserts that provider is concretely a P. On failure
// the error names both the requested wrapper type and the type the
// provider actually wraps.
func CheckedDowncast[P any](provider opaque.Provider) (P, error) {
	var zero P
	if provider == nil {
		return zero, errors.NilProvider(errors.PhaseDowncast)
	}
	p, ok := provider.(P)
	if !ok {
		return zero, errors.TypeMismatch(errors.PhaseDowncast,
			reflect.TypeOf((*P)(nil)).Elem().String(), provider.TypeName())
	}
	return p, nil
}

// CheckedHandle retrieves the provider as a reference handle of T.
func CheckedHandle[T any](provider opaque.Provider) (*handle.Handle[T], error) {
	return CheckedDowncast[*handle.Handle[T]](provider)
}

// AsRawPointer validates provider and extracts a typed raw pointer.
// A provider that is exactly a reference handle of T yields its
// pointer directly; anything else must carry the cast capability and
// resolve through the declared conversion table.
func AsRawPointer[T any](provider opaque.Provider) (*T, error) {
	if provider == nil {
		return nil, errors.NilProvider(errors.PhaseMarshal)
	}
	if h, ok := provider.(*handle.Handle[T]); ok {
		return h.Ptr(), nil
	}

	c, ok := provider.(opaque.Castable)
	if !ok {
		return nil, errors.NotCastable(errors.PhaseMarshal, provider.TypeName())
	}
	vp, ok := c.CastTo(opaque.TokenOf[T]())
	if !ok {
		return nil, errors.NoConversion(errors.PhaseMarshal,
			opaque.TokenOf[T]().Name(), provider.TypeName())
	}
	return (*T)(vp), nil
}

// AsRawPointers is the batch variant: it produces a typed pointer per
// provider straight from its untyped pointer, bypassing the full type
// check. It is a lower-safety fast path for homogeneous arrays whose
// element type is known out of band; only nil providers are rejected.
func AsRawPointers[T any](providers []opaque.Provider) ([]*T, error) {
	result := make([]*T, len(providers))
	for i, p := range providers {
		if p == nil {
			return nil, &errors.Error{
				Phase:  errors.PhaseMarshal,
				Kind:   errors.KindNilProvider,
				Detail: fmt.Sprintf("provider %d is nil", i),
			}
		}
		result[i] = (*T)(p.VoidPtr())
	}
	return result, nil
}

// AsRawPointerAny coerces an arbitrary value to a provider before
// extraction. It serves boundary entry points whose signatures carry
// bare interface values rather than providers.
func AsRawPointerAny[T any](v any) (*T, error) {
	if v == nil {
		return nil, errors.NilProvider(errors.PhaseMarshal)
	}
	p, ok := v.(opaque.Provider)
	if !ok {
		return nil, errors.NotCastable(errors.PhaseMarshal, fmt.Sprintf("%T", v))
	}
	return AsRawPointer[T](p)
}
