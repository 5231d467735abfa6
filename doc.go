// Package opaque manages typed objects exposed to callers through
// opaque pointers, preserving two properties an erased boundary cannot
// express natively: exactly-once destruction regardless of how many
// handles or aliases exist, and safe recovery of a concrete static
// type from an untyped pointer.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	opaque/          Root package with the Provider/Castable capabilities and TypeToken
//	├── registry/    Per-address ownership registry with exactly-once finalization
//	├── handle/      Typed, reference-counted Handle[T] backed by the registry
//	├── cast/        Declared-candidate "trampoline" conversion table
//	├── marshal/     Boundary helpers for validating and extracting raw pointers
//	├── export/      Integer-id table for boundaries that cannot carry Go pointers
//	├── boundary/    Concrete boundary adapters (wasm host module via wazero)
//	└── errors/      Structured error types naming expected and actual types
//
// # Quick Start
//
// Wrap an object, alias it, and recover it at a boundary entry point:
//
//	h, err := handle.FromPointer(obj)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer h.Release()
//
//	alias := h.NewHandle() // shares ownership, never copies the object
//	defer alias.Release()
//
//	p, err := marshal.AsRawPointer[Codec](alias)
//
// The object is destroyed exactly once, synchronously, when the last
// handle releases it.
//
// # Trampoline Casting
//
// Recovery of a related static type never relies on ambient runtime
// type identification; conversions are declared per target type and
// tried in declaration order:
//
//	cast.Declare(func(c *FlacCodec) *Codec { return &c.Codec })
//	cast.Declare(func(c *OpusCodec) *Codec { return &c.Codec })
//
// With no declaration for a target, only an exact identity match
// succeeds.
package opaque
