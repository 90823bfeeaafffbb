// Package errors provides structured error types for the swb toolchain.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the buffer section and byte offset the failure was
// detected at, the offending value and an optional cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindUnknownOpcode).
//		At("code", 17).
//		Value(uint8(5)).
//		Detail("opcode %d", 5).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnknownOpcode(17, 5)
//	err := errors.OutOfBounds(errors.PhaseRender, 3, 12, 10)
//
// All errors implement the standard error interface and support errors.Is/As.
// Two errors match under errors.Is when their Phase and Kind are equal.
package errors
