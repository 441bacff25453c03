package input

import (
	"fmt"
	"strings"
)

// Snapshot is the per-frame input state the engine hands to the
// boundary. Boundary reads are side-effect free; the engine mutates a
// snapshot only between frames (and the cursor flags only by draining
// the command queue).
type Snapshot struct {
	pressedKeys    map[Key]struct{}
	keyOrder       []Key // press order, for list transfer
	pressedButtons map[MouseButton]struct{}
	mouseX, mouseY float32
	deltaX, deltaY float32
	lastX, lastY   float32
	cursorLocked   bool
	cursorHidden   bool
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		pressedKeys:    make(map[Key]struct{}),
		pressedButtons: make(map[MouseButton]struct{}),
	}
}

// Engine-side mutators, used while composing a frame.

// Press records a key as held.
func (s *Snapshot) Press(k Key) {
	if _, held := s.pressedKeys[k]; held {
		return
	}
	s.pressedKeys[k] = struct{}{}
	s.keyOrder = append(s.keyOrder, k)
}

// Release removes a key from the held set.
func (s *Snapshot) Release(k Key) {
	if _, held := s.pressedKeys[k]; !held {
		return
	}
	delete(s.pressedKeys, k)
	for i, held := range s.keyOrder {
		if held == k {
			s.keyOrder = append(s.keyOrder[:i], s.keyOrder[i+1:]...)
			break
		}
	}
}

// PressButton records a mouse button as held.
func (s *Snapshot) PressButton(b MouseButton) {
	s.pressedButtons[b] = struct{}{}
}

// ReleaseButton removes a mouse button from the held set.
func (s *Snapshot) ReleaseButton(b MouseButton) {
	delete(s.pressedButtons, b)
}

// MoveMouse updates the absolute position and the last position, and
// accumulates the delta. The delta spans the whole frame, not just the
// most recent move; BeginFrame is the only reset point.
func (s *Snapshot) MoveMouse(x, y float32) {
	s.lastX, s.lastY = s.mouseX, s.mouseY
	s.deltaX += x - s.mouseX
	s.deltaY += y - s.mouseY
	s.mouseX, s.mouseY = x, y
}

// BeginFrame clears the per-frame delta. Reads never consume it.
func (s *Snapshot) BeginFrame() {
	s.deltaX, s.deltaY = 0, 0
}

// Boundary reads.

// IsKeyPressed reports whether the key is held this frame.
func (s *Snapshot) IsKeyPressed(k Key) bool {
	_, held := s.pressedKeys[k]
	return held
}

// IsMouseButtonPressed reports whether the button is held this frame.
func (s *Snapshot) IsMouseButtonPressed(b MouseButton) bool {
	_, held := s.pressedButtons[b]
	return held
}

// MousePosition returns the absolute cursor position.
func (s *Snapshot) MousePosition() (x, y float32) {
	return s.mouseX, s.mouseY
}

// MouseDelta returns the movement since the last frame.
func (s *Snapshot) MouseDelta() (dx, dy float32) {
	return s.deltaX, s.deltaY
}

// LastMousePosition returns the position before the latest move.
func (s *Snapshot) LastMousePosition() (x, y float32) {
	return s.lastX, s.lastY
}

// CursorLocked reports the cursor grab flag.
func (s *Snapshot) CursorLocked() bool { return s.cursorLocked }

// CursorHidden reports the cursor visibility flag.
func (s *Snapshot) CursorHidden() bool { return s.cursorHidden }

// PressedKeys returns the held keys in press order. The slice is a
// copy; the caller may keep it.
func (s *Snapshot) PressedKeys() []Key {
	out := make([]Key, len(s.keyOrder))
	copy(out, s.keyOrder)
	return out
}

// String renders the snapshot for debug logging. There is deliberately
// no boundary operation that prints: callers read fields through the
// status/out-parameter contract like every other query.
func (s *Snapshot) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "keys=%v", s.keyOrder)
	fmt.Fprintf(&b, " mouse=(%.1f,%.1f) delta=(%.1f,%.1f) last=(%.1f,%.1f)",
		s.mouseX, s.mouseY, s.deltaX, s.deltaY, s.lastX, s.lastY)
	fmt.Fprintf(&b, " locked=%t hidden=%t", s.cursorLocked, s.cursorHidden)
	return b.String()
}
