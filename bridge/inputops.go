package bridge

import (
	"github.com/wombatlabs/worldbridge/buffer"
	"github.com/wombatlabs/worldbridge/errors"
	"github.com/wombatlabs/worldbridge/input"
)

// IsKeyPressed reports whether the key is held in this frame's
// snapshot. The status and the boolean answer are separate signals: an
// unknown keycode fails the query instead of reading as "not pressed".
func (s *Session) IsKeyPressed(code int32) (bool, error) {
	if err := s.guardInput(); err != nil {
		return false, s.fail("is-key-pressed", err)
	}
	if !input.ValidKey(code) {
		return false, s.fail("is-key-pressed", errors.InvalidKey(errors.PhaseInput, code))
	}
	return s.snap.IsKeyPressed(input.Key(code)), nil
}

// IsMouseButtonPressed reports whether the mouse button is held.
func (s *Session) IsMouseButtonPressed(code int32) (bool, error) {
	if err := s.guardInput(); err != nil {
		return false, s.fail("is-mouse-button-pressed", err)
	}
	if !input.ValidMouseButton(code) {
		return false, s.fail("is-mouse-button-pressed", errors.InvalidKey(errors.PhaseInput, code))
	}
	return s.snap.IsMouseButtonPressed(input.MouseButton(code)), nil
}

// MousePosition returns the absolute cursor position.
func (s *Session) MousePosition() (x, y float32, err error) {
	if err := s.guardInput(); err != nil {
		return 0, 0, s.fail("get-mouse-position", err)
	}
	x, y = s.snap.MousePosition()
	return x, y, nil
}

// MouseDelta returns the cursor movement since the last frame. Reading
// it does not consume it; it resets when the next frame begins.
func (s *Session) MouseDelta() (dx, dy float32, err error) {
	if err := s.guardInput(); err != nil {
		return 0, 0, s.fail("get-mouse-delta", err)
	}
	dx, dy = s.snap.MouseDelta()
	return dx, dy, nil
}

// LastMousePosition returns the cursor position before the latest move.
func (s *Session) LastMousePosition() (x, y float32, err error) {
	if err := s.guardInput(); err != nil {
		return 0, 0, s.fail("get-last-mouse-pos", err)
	}
	x, y = s.snap.LastMousePosition()
	return x, y, nil
}

// CursorLocked reports the cursor grab flag.
func (s *Session) CursorLocked() (bool, error) {
	if err := s.guardInput(); err != nil {
		return false, s.fail("is-cursor-locked", err)
	}
	return s.snap.CursorLocked(), nil
}

// CursorHidden reports the cursor visibility flag.
func (s *Session) CursorHidden() (bool, error) {
	if err := s.guardInput(); err != nil {
		return false, s.fail("is-cursor-hidden", err)
	}
	return s.snap.CursorHidden(), nil
}

// SetCursorLocked enqueues a cursor grab change. The write is gated on
// the session's command queue: success acknowledges the enqueue only,
// and reads observe the old value until the owning thread drains the
// queue.
func (s *Session) SetCursorLocked(locked bool) error {
	return s.enqueueCursor("set-cursor-locked", input.CursorCommand{Op: input.CursorLock, On: locked})
}

// SetCursorHidden enqueues a cursor visibility change.
func (s *Session) SetCursorHidden(hidden bool) error {
	return s.enqueueCursor("set-cursor-hidden", input.CursorCommand{Op: input.CursorHide, On: hidden})
}

func (s *Session) enqueueCursor(op string, cmd input.CursorCommand) error {
	if err := s.guard(); err != nil {
		return s.fail(op, err)
	}
	if s.queue == nil {
		return s.fail(op, errors.NilPointer(errors.PhaseInput, "command queue"))
	}
	if err := s.queue.Enqueue(cmd); err != nil {
		return s.fail(op, err)
	}
	return nil
}

// PressedKeys returns the held keys, in press order, as a caller-owned
// growable buffer. The caller releases it exactly once.
func (s *Session) PressedKeys() (*buffer.Buffer[uint32], error) {
	if err := s.guardInput(); err != nil {
		return nil, s.fail("get-pressed-keys", err)
	}
	keys := s.snap.PressedKeys()
	codes := make([]uint32, len(keys))
	for i, k := range keys {
		codes[i] = uint32(k)
	}
	return buffer.FromSlice(codes), nil
}
