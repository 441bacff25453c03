// Package bridge is the core of the boundary: the session that scopes
// every opaque reference, the accessor operations foreign callers
// reach, and the lowering from structured errors to flat status codes.
//
// Internally every operation returns a structured *errors.Error; the
// flat int32 status plus out-parameter shape exists only at the
// literal boundary, where bindings call StatusOf. This keeps one error
// taxonomy for the whole surface while foreign callers see the stable
// numeric contract.
//
// # Frame model
//
// Open a session once per engine run and feed it a snapshot per frame:
//
//	sess := bridge.Open(w, queue)
//	defer sess.Close()
//	for each frame {
//	    sess.BeginFrame(snapshot)
//	    // boundary calls for this tick
//	}
//
// No operation blocks, and none are safe for concurrent use against
// the same session; the engine serializes calls externally. Cursor
// writes are acknowledged on enqueue and applied when the display
// owner drains the command queue.
package bridge
