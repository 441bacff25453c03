// Package buffer implements the boundary's transfer protocol for
// variable-length results.
//
// Two memory managers meet at the boundary, so every variable-length
// result follows one pattern: the engine allocates, the caller takes
// exclusive ownership, and the caller releases exactly once. Buffer
// enforces the exactly-once part in the type instead of leaving it to
// caller discipline.
//
// For foreign callers with their own linear memory, Lower* functions
// place the elements in that memory through its Allocator and hand
// over a {ptr, len, cap} triple; the engine keeps no pointer into the
// transferred block. Allocation failure inside this package is the one
// condition the boundary treats as unrecoverable for the operation:
// there is no safe fallback, and a partial multi-block lowering is
// rolled back before the error surfaces.
package buffer
