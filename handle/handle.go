package handle

import (
	"sync/atomic"
	"unsafe"

	"github.com/wippyai/opaque"
	"github.com/wippyai/opaque/cast"
	"github.com/wippyai/opaque/errors"
	"github.com/wippyai/opaque/registry"
)

// Handle is a typed, reference-counted owner of one object, backed by
// an ownership registry. Copying a handle never duplicates the object;
// every creation path resolves to get-or-create on the registry keyed
// by the object's address.
type Handle[T any] struct {
	reg      *registry.Registry
	p        *T
	released atomic.Bool
}

var (
	_ opaque.Castable = (*Handle[int])(nil)
	_ opaque.Releaser = (*Handle[int])(nil)
	_ opaque.Aliaser  = (*Handle[int])(nil)
)

// FromValue copies v into newly allocated storage and registers it
// with the default registry. It never fails.
func FromValue[T any](v T) *Handle[T] {
	return FromValueIn(registry.Default(), v)
}

// FromValueIn is FromValue against an explicit registry.
func FromValueIn[T any](r *registry.Registry, v T) *Handle[T] {
	p := new(T)
	*p = v
	h, _ := adopt(r, p) // factory is infallible here
	return h
}

// FromPointer adopts p into the default registry. A nil pointer is an
// invalid argument. Adopting an address that is already registered
// joins the existing ownership block.
func FromPointer[T any](p *T) (*Handle[T], error) {
	return FromPointerIn(registry.Default(), p)
}

// FromPointerIn is FromPointer against an explicit registry.
func FromPointerIn[T any](r *registry.Registry, p *T) (*Handle[T], error) {
	if p == nil {
		return nil, errors.NilPointer(errors.PhaseAdopt, opaque.TokenOf[T]().Name())
	}
	return adopt(r, p)
}

func adopt[T any](r *registry.Registry, p *T) (*Handle[T], error) {
	err := r.Get(unsafe.Pointer(p), func() (registry.Entry, error) {
		return registry.Entry{
			Token: opaque.TokenOf[T](),
			// The finalizer closes over the typed pointer, not the
			// erased one, so cleanup sees the original concrete type.
			Finalize: finalizerFor(p),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &Handle[T]{reg: r, p: p}, nil
}

func finalizerFor[T any](p *T) registry.Finalizer {
	if d, ok := any(p).(opaque.Dropper); ok {
		return d.Drop
	}
	return nil
}

// NewHandle returns a new handle sharing the same ownership block,
// used to hand a second opaque alias to a caller.
func (h *Handle[T]) NewHandle() *Handle[T] {
	nh, _ := adopt(h.reg, h.p)
	return nh
}

// NewRef is the type-erased form of NewHandle.
func (h *Handle[T]) NewRef() opaque.Provider {
	return h.NewHandle()
}

// Release drops this handle's reference. The wrapped object is
// destroyed inline, exactly once, when the last handle releases it.
// Releasing the same handle twice is a no-op.
func (h *Handle[T]) Release() {
	if h.released.Swap(true) {
		return
	}
	h.reg.Release(unsafe.Pointer(h.p))
}

// Count returns the number of additional handles currently sharing
// the object. A sole handle reports 0.
func (h *Handle[T]) Count() int {
	return h.reg.Count(unsafe.Pointer(h.p))
}

// Ptr returns the typed raw pointer, valid for the handle's lifetime.
func (h *Handle[T]) Ptr() *T {
	return h.p
}

// VoidPtr returns the untyped raw pointer, valid for the handle's
// lifetime.
func (h *Handle[T]) VoidPtr() unsafe.Pointer {
	return unsafe.Pointer(h.p)
}

// TypeToken returns the identity of the wrapped concrete type.
func (h *Handle[T]) TypeToken() opaque.TypeToken {
	return opaque.TokenOf[T]()
}

// TypeName returns the display name of the wrapped concrete type.
func (h *Handle[T]) TypeName() string {
	return opaque.TokenOf[T]().Name()
}

// CanCastTo reports whether the wrapped object can be viewed as the
// target type through the declared conversion table.
func (h *Handle[T]) CanCastTo(target opaque.TypeToken) bool {
	_, ok := h.CastTo(target)
	return ok
}

// CastTo resolves the wrapped object as the target type through the
// declared conversion table.
func (h *Handle[T]) CastTo(target opaque.TypeToken) (unsafe.Pointer, bool) {
	return cast.To(target, unsafe.Pointer(h.p), opaque.TokenOf[T]())
}

// Assert performs a native Go downcast of the wrapped object to
// interface type U. This is distinct from trampoline casting: it is
// only meaningful when *T is statically known to satisfy U.
func Assert[U any, T any](h *Handle[T]) (U, bool) {
	u, ok := any(h.p).(U)
	return u, ok
}
