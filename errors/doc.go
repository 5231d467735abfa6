// Package errors provides structured error types for the opaque library.
//
// Errors are categorized by Phase (which operation failed) and Kind
// (error category). The Error type carries the expected and actually
// recorded type names, so a failed downcast or trampoline cast always
// reports both sides of the mismatch:
//
//	err := errors.TypeMismatch(errors.PhaseDowncast, "*handle.Handle[main.Codec]", "main.Muxer")
//	// [downcast] type_mismatch: expected type *handle.Handle[main.Codec], got main.Muxer
//
// All errors implement the standard error interface and support
// errors.Is/As; matching with Is compares Phase and Kind.
package errors
