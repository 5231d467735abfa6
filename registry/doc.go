// Package registry implements the per-address ownership registry.
//
// Each managed object has at most one ownership block, keyed by its
// address. Constructing a wrapper over an address that already has a
// block joins the existing block instead of creating a second one, so
// shared ownership is deduplicated no matter how many independent
// wrappers are built over the same pointer.
//
// A block's finalizer is bound to the original concrete type when the
// block is created and runs exactly once, inline on the thread that
// drops the last reference:
//
//	r := registry.Default()
//	err := r.Get(addr, func() (registry.Entry, error) {
//	    return registry.Entry{Token: tok, Finalize: fin}, nil
//	})
//	...
//	r.Release(addr) // finalizer runs here if this was the last holder
//
// All map mutations are serialized by a single mutex held only for the
// duration of the map operation; finalizers and observer notifications
// run outside the lock.
package registry
