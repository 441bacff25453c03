package bridge

import (
	"github.com/wombatlabs/worldbridge/errors"
	"github.com/wombatlabs/worldbridge/world"
)

// CameraByLabel looks a camera up by its label. The returned value is
// a copy; no pointer into engine-owned state crosses the boundary
// (bindings copy the label through a caller-supplied buffer).
func (s *Session) CameraByLabel(label string) (world.Camera, error) {
	if err := s.guard(); err != nil {
		return world.Camera{}, s.fail("get-camera", err)
	}
	cam, ok := s.world.CameraByLabel(label)
	if !ok {
		return world.Camera{}, s.fail("get-camera", errors.NotFound(errors.PhaseAccess, "camera", label))
	}
	return cam, nil
}

// AttachedCamera returns the camera attached to the entity. Looking up
// by label or by attached entity yields the same logical object.
func (s *Session) AttachedCamera(h world.Handle) (world.Camera, error) {
	if err := s.guard(); err != nil {
		return world.Camera{}, s.fail("get-attached-camera", err)
	}
	if err := s.entity("get-attached-camera", h); err != nil {
		return world.Camera{}, err
	}
	cam, ok := s.world.CameraByEntity(h)
	if !ok {
		return world.Camera{}, s.fail("get-attached-camera", errors.NoComponent(errors.PhaseAccess, "camera"))
	}
	return cam, nil
}

// SetCamera updates an existing camera, identified by the Label field
// first and the Attached handle second. If neither resolves, the set
// fails; a set never creates a camera implicitly.
func (s *Session) SetCamera(cam world.Camera) error {
	if err := s.guard(); err != nil {
		return s.fail("set-camera", err)
	}
	if !s.world.SetCamera(cam) {
		return s.fail("set-camera", errors.NotFound(errors.PhaseAccess, "camera", cam.Label))
	}
	return nil
}
