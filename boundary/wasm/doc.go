// Package wasm adapts the export table to a wazero host module.
//
// WebAssembly guests are a concrete instance of the erasure boundary
// this library exists for: guest and host are compiled independently
// and share no type information at runtime. Guests import the
// "opaque/handles" namespace and manipulate host objects purely
// through integer ids:
//
//	(import "opaque/handles" "clone" (func $clone (param i32) (result i32)))
//	(import "opaque/handles" "drop"  (func $drop  (param i32) (result i32)))
//
// Cloning shares ownership through the registry exactly like a
// host-side alias; dropping releases one reference, and the wrapped
// object is destroyed when the last reference on either side of the
// boundary goes away.
package wasm
