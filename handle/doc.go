// Package handle provides the typed reference handle over the
// ownership registry.
//
// A Handle[T] owns one reference to a registered object. Handles are
// cheap to alias; all aliases of an address share a single ownership
// block, and the object is destroyed exactly once, when the last
// handle releases it:
//
//	h := handle.FromValue(Codec{Rate: 48000})
//	alias := h.NewHandle()
//
//	h.Count()     // 1: one other handle shares the object
//	alias.Release()
//	h.Count()     // 0
//	h.Release()   // object finalized here
//
// Values implementing opaque.Dropper get their Drop method called at
// finalization; the hook is bound to the concrete type when the first
// handle registers the address.
package handle
