// Package cast implements trampoline casting: type recovery across an
// erasure boundary through an explicitly declared, ordered candidate
// list instead of ambient runtime type identification.
//
// Objects crossing an opaque-pointer boundary may originate in
// independently compiled modules, where implicit runtime type
// comparison cannot be trusted. The conversion table makes type
// recovery an explicit, auditable, programmer-declared capability:
// a cast to target type U succeeds only for concrete types R that were
// declared as valid views of U, each with its own pointer-adjustment
// function. With no declared candidates for U, only an exact identity
// match succeeds.
//
// Declarations happen at type-registration time, typically in an init
// function next to the type definitions:
//
//	func init() {
//	    cast.Declare(func(c *FlacCodec) *Codec { return &c.Codec })
//	    cast.Declare(func(c *OpusCodec) *Codec { return &c.Codec })
//	}
package cast
