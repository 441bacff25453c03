// Package world implements the engine-owned world the boundary exposes:
// entity slots, labels, transforms, typed property bags, and cameras.
//
// The storage layout here is an implementation detail. Callers on the
// far side of the boundary only ever see 64-bit entity handles and the
// flat records the bridge package marshals; nothing in this package is
// part of the stable ABI.
//
// # Handles
//
// A Handle packs a slot index and a generation counter. Despawning an
// entity bumps the slot's generation, so a retained handle to a dead
// entity fails generation validation instead of reading whatever
// entity reused the slot. Handle 0 is never issued.
//
// # Concurrency
//
// World is not internally locked. The engine serializes access to it
// externally: one call site per frame on one thread. See the bridge
// package for the frame model.
package world
