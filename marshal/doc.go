// Package marshal provides the helpers boundary-crossing entry points
// use to validate opaque providers and extract raw pointers.
//
// A typical entry point receives an opaque provider from the caller
// and needs the typed object back:
//
//	func apiEncode(p opaque.Provider, frame []byte) error {
//	    enc, err := marshal.AsRawPointer[Encoder](p)
//	    if err != nil {
//	        return err
//	    }
//	    return enc.Encode(frame)
//	}
//
// AsRawPointer takes the exact-handle fast path when the provider is a
// reference handle of the requested type, and the declared trampoline
// cast otherwise. Every failure is an invalid-argument-class error
// naming the expected and the actually recorded type.
//
// AsRawPointers is the batch counterpart: a documented lower-safety
// path that trusts the caller about the element type and only rejects
// nil providers.
package marshal
