// Package worldbridge is the foreign-function boundary of a real-time
// simulation engine: a stable, language-agnostic surface that lets
// external callers query and mutate a live world (entities,
// transforms, typed properties, cameras, and per-frame input) without
// sharing the engine's memory layout or language runtime.
//
// # Architecture Overview
//
// The library is organized into packages with distinct responsibilities:
//
//	worldbridge/      Root package with Memory and Allocator interfaces
//	├── bridge/       Boundary core: sessions, accessors, status codes
//	├── world/        Opaque engine-owned world stub (entities, cameras)
//	├── input/        Per-frame input snapshots and the cursor queue
//	├── buffer/       Growable-buffer transfer protocol
//	├── guest/        wazero host-module binding for wasm guests
//	├── lua/          gopher-lua binding for Lua scripts
//	├── scene/        TOML scene loader for tools and tests
//	└── errors/       Structured error types lowered to status codes
//
// # Quick Start
//
// Open a session over a world and resolve an entity:
//
//	w := world.NewWorld()
//	player := w.Spawn("Player")
//	_ = player
//
//	sess := bridge.Open(w, input.NewCommandQueue(16))
//	defer sess.Close()
//
//	h, err := sess.ResolveEntity("Player")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tf, _ := sess.Transform(h)
//	fmt.Println(tf.Position)
//
// # Calling Convention
//
// Every fallible boundary operation reports an int32 status code: 0 is
// success, non-zero a specific failure (bridge.StatusOf lowers Go
// errors to codes at the literal boundary). Results travel through
// out-parameters, never through return-value aliasing of error and
// data. Opaque references (session, input snapshot, command queue) are
// never null on entry for a well-formed call; null is its own failure,
// distinct from not-found.
//
// # Thread Safety
//
// The boundary models a single logical engine frame: a session and the
// snapshot it holds are valid for one tick and are not internally
// locked. The embedder serializes access: one call site per frame on
// one thread. Cursor-state writes are the exception and go through the
// command queue, which is safe to enqueue into from the boundary and
// drained by the owning thread.
//
// # Memory Model
//
// Variable-length results cross the boundary through the buffer
// package: the engine allocates, the caller owns and releases exactly
// once. No operation returns a pointer into engine-owned memory that
// outlives the call.
package worldbridge
