// Package export maps opaque providers to dense integer ids.
//
// Boundaries such as WebAssembly linear memory or a C API compiled
// against a different allocator cannot carry Go pointers. The export
// table parks a provider under a uint32 id, hands the id across the
// boundary, and resolves it back on reentry:
//
//	id, err := table.Put(h)        // hand id to the guest
//	p, ok := table.Get(id)         // resolve on the way back in
//	table.Drop(id)                 // unregister and release
//
// Ids are one-based; 0 is always invalid. Freed slots are reused.
// Closing the table releases every surviving provider that owns a
// registry reference.
package export
