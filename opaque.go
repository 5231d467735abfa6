package opaque

import (
	"reflect"
	"unsafe"
)

// TypeToken identifies the concrete static type an object was
// registered with. Tokens compare by value and are valid map keys.
type TypeToken struct {
	rt reflect.Type
}

// TokenOf returns the token for type T.
func TokenOf[T any]() TypeToken {
	return TypeToken{rt: reflect.TypeOf((*T)(nil)).Elem()}
}

// Valid reports whether the token identifies a type.
func (t TypeToken) Valid() bool {
	return t.rt != nil
}

// Name returns the display name of the identified type.
func (t TypeToken) Name() string {
	if t.rt == nil {
		return "<invalid>"
	}
	return t.rt.String()
}

// Provider is the minimal capability an opaque wrapper exposes: the
// identity of the wrapped type plus untyped access to the object.
// It carries no ownership semantics.
type Provider interface {
	TypeToken() TypeToken
	TypeName() string
	VoidPtr() unsafe.Pointer
}

// Castable extends Provider with declared-candidate casting. CastTo
// consults the conversion table for the target token; it never
// performs an unconditional reinterpretation.
type Castable interface {
	Provider

	// Count returns the number of additional wrappers sharing the
	// wrapped object.
	Count() int

	CanCastTo(target TypeToken) bool
	CastTo(target TypeToken) (unsafe.Pointer, bool)
}

// Releaser is implemented by wrappers that own a registry reference.
type Releaser interface {
	Release()
}

// Aliaser mints a new wrapper sharing ownership of the same object.
type Aliaser interface {
	NewRef() Provider
}

// Dropper is optionally implemented by wrapped values that need
// cleanup when their last reference is released.
type Dropper interface {
	Drop()
}
