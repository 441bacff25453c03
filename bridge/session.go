package bridge

import (
	"go.uber.org/zap"

	"github.com/wombatlabs/worldbridge/errors"
	"github.com/wombatlabs/worldbridge/input"
	"github.com/wombatlabs/worldbridge/world"
)

// Session scopes the lifetime of the opaque references foreign callers
// hold. The world, the frame's input snapshot, and the cursor command
// queue all borrow from the session: after Close every operation fails
// with an invalid-handle error instead of touching freed state, and a
// caller must not retain any of them across a Close.
//
// A session is valid for one engine run; the snapshot it reads is
// swapped per frame with BeginFrame. Session is not internally locked;
// the engine serializes boundary calls (one call site per frame on one
// thread), and cursor writes go through the queue, which is the only
// cross-thread piece.
type Session struct {
	world *world.World
	snap  *input.Snapshot
	queue *input.CommandQueue
	log   *zap.Logger

	closed bool
}

// Open creates a session over a live world. The queue may be nil for
// callers without cursor authority; cursor writes then fail cleanly.
func Open(w *world.World, q *input.CommandQueue) *Session {
	return &Session{
		world: w,
		queue: q,
		log:   Logger(),
	}
}

// BeginFrame installs the input snapshot boundary reads see this frame.
func (s *Session) BeginFrame(snap *input.Snapshot) {
	if snap != nil {
		snap.BeginFrame()
	}
	s.snap = snap
}

// Close invalidates the session. Idempotent.
func (s *Session) Close() {
	s.closed = true
	s.world = nil
	s.snap = nil
	s.queue = nil
}

// World exposes the underlying world to in-process tooling. Foreign
// bindings never see it.
func (s *Session) World() *world.World {
	if s == nil || s.closed {
		return nil
	}
	return s.world
}

// fail logs at debug level and passes the error through. Boundary
// failures are silent to the simulation loop; the status code is the
// only user-visible signal.
func (s *Session) fail(op string, err error) error {
	var log *zap.Logger
	if s != nil && s.log != nil {
		log = s.log
	} else {
		log = Logger()
	}
	log.Debug("boundary call failed", zap.String("op", op), zap.Error(err))
	return err
}

func (s *Session) guard() error {
	if s == nil {
		return errors.NilPointer(errors.PhaseSession, "session")
	}
	if s.closed {
		return errors.Closed(errors.PhaseSession, "session")
	}
	// Opened over a nil world: null on entry, distinct from closed.
	if s.world == nil {
		return errors.NilPointer(errors.PhaseSession, "world")
	}
	return nil
}

func (s *Session) guardInput() error {
	if err := s.guard(); err != nil {
		return err
	}
	if s.snap == nil {
		return errors.NilPointer(errors.PhaseInput, "input snapshot")
	}
	return nil
}
