package bridge

import (
	"github.com/wombatlabs/worldbridge/buffer"
	"github.com/wombatlabs/worldbridge/errors"
	"github.com/wombatlabs/worldbridge/world"
)

// ResolveEntity maps a designer-assigned label to an entity handle.
// Labels compare by exact byte equality; with duplicate labels the
// first-spawned entity wins, consistently across calls. No caching: a
// caller that suspects the entity was destroyed re-resolves.
func (s *Session) ResolveEntity(label string) (world.Handle, error) {
	if err := s.guard(); err != nil {
		return world.None, s.fail("resolve-entity", err)
	}
	h, ok := s.world.Resolve(label)
	if !ok {
		return world.None, s.fail("resolve-entity", errors.NotFound(errors.PhaseResolve, "entity", label))
	}
	return h, nil
}

// entity validates handle liveness before any storage access. A stale
// or never-issued handle is not-found, never stale data.
func (s *Session) entity(op string, h world.Handle) error {
	if !s.world.Alive(h) {
		return s.fail(op, errors.New(errors.PhaseAccess, errors.KindNotFound).
			Value(int64(h)).
			Detail("handle does not name a live entity").
			Build())
	}
	return nil
}

// Transform returns the entity's world-space transform.
func (s *Session) Transform(h world.Handle) (world.Transform, error) {
	if err := s.guard(); err != nil {
		return world.Transform{}, s.fail("get-transform", err)
	}
	if err := s.entity("get-transform", h); err != nil {
		return world.Transform{}, err
	}
	t, _ := s.world.Transform(h)
	return t, nil
}

// LocalTransform returns the parent-relative transform.
func (s *Session) LocalTransform(h world.Handle) (world.Transform, error) {
	if err := s.guard(); err != nil {
		return world.Transform{}, s.fail("get-local-transform", err)
	}
	if err := s.entity("get-local-transform", h); err != nil {
		return world.Transform{}, err
	}
	t, _ := s.world.LocalTransform(h)
	return t, nil
}

// SetTransform replaces the entity's transform atomically with respect
// to position, rotation, and scale. The rotation need not arrive
// normalized; the engine treats it as a unit quaternion and normalizes
// on ingestion.
func (s *Session) SetTransform(h world.Handle, t world.Transform) error {
	if err := s.guard(); err != nil {
		return s.fail("set-transform", err)
	}
	if err := s.entity("set-transform", h); err != nil {
		return err
	}
	s.world.SetTransform(h, t)
	return nil
}

// SetParent re-parents child under parent; world.None detaches.
func (s *Session) SetParent(child, parent world.Handle) error {
	if err := s.guard(); err != nil {
		return s.fail("set-parent", err)
	}
	if err := s.entity("set-parent", child); err != nil {
		return err
	}
	if parent != world.None {
		if err := s.entity("set-parent", parent); err != nil {
			return err
		}
	}
	if !s.world.SetParent(child, parent) {
		return s.fail("set-parent", errors.InvalidInput(errors.PhaseAccess, "parenting would create a cycle"))
	}
	return nil
}

// EntityLabels returns the labels of all live entities, in spawn
// order, as a caller-owned buffer.
func (s *Session) EntityLabels() (*buffer.Buffer[string], error) {
	if err := s.guard(); err != nil {
		return nil, s.fail("entity-labels", err)
	}
	buf := buffer.Alloc[string]()
	s.world.Each(func(_ world.Handle, label string) bool {
		_ = buf.Append(label)
		return true
	})
	return buf, nil
}
