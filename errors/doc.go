// Package errors provides structured error types for the worldbridge
// boundary.
//
// Errors are categorized by Phase (where the error occurred) and Kind
// (error category). Internally the boundary works with these rich
// errors; the flat int32 status codes foreign callers see are derived
// from the Kind only at the literal boundary (see bridge.StatusOf).
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseAccess, errors.KindTypeMismatch).
//		Path("health").
//		Detail("property holds string, requested int").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotFound(errors.PhaseResolve, "entity", "Player")
//	err := errors.BufferTooSmall(errors.PhaseAccess, 24, 8)
//
// All errors implement the standard error interface and support
// errors.Is/As; Is matches on (Phase, Kind).
package errors
