package world

// World owns all entity state. It is exposed across the boundary only
// as an opaque reference scoped to an engine session; callers never
// own or free it.
type World struct {
	slots []slot
	free  []uint32
	order []Handle // live entities in spawn order
}

type slot struct {
	label      string
	local      Transform
	parent     Handle
	props      map[string]Value
	camera     *Camera
	generation uint32
	alive      bool
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		slots: make([]slot, 0, 64),
		free:  make([]uint32, 0, 16),
	}
}

// Spawn creates a live entity with the given label and an identity
// transform, reusing a free slot if one exists.
func (w *World) Spawn(label string) Handle {
	var idx uint32
	if n := len(w.free); n > 0 {
		idx = w.free[n-1]
		w.free = w.free[:n-1]
		gen := w.slots[idx].generation
		w.slots[idx] = slot{label: label, local: IdentityTransform(), generation: gen, alive: true}
	} else {
		idx = uint32(len(w.slots))
		w.slots = append(w.slots, slot{label: label, local: IdentityTransform(), alive: true})
	}
	h := makeHandle(idx, w.slots[idx].generation)
	w.order = append(w.order, h)
	return h
}

// Despawn removes an entity. The slot's generation is bumped so any
// retained handle to it stops validating immediately.
func (w *World) Despawn(h Handle) bool {
	s, idx, ok := w.slot(h)
	if !ok {
		return false
	}
	s.alive = false
	s.generation++
	s.props = nil
	s.camera = nil
	s.parent = None
	w.free = append(w.free, idx)
	for i, o := range w.order {
		if o == h {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	return true
}

// Alive reports whether the handle names a live entity.
func (w *World) Alive(h Handle) bool {
	_, _, ok := w.slot(h)
	return ok
}

// Label returns the entity's label.
func (w *World) Label(h Handle) (string, bool) {
	s, _, ok := w.slot(h)
	if !ok {
		return "", false
	}
	return s.label, true
}

// Resolve performs an exact-match label lookup over live entities.
// Label uniqueness is an engine-side invariant this lookup relies on
// but does not enforce: with duplicates, the first-spawned entity wins,
// consistently across calls.
func (w *World) Resolve(label string) (Handle, bool) {
	for _, h := range w.order {
		if s, _, ok := w.slot(h); ok && s.label == label {
			return h, true
		}
	}
	return None, false
}

// Transform returns the entity's world-space transform, composing
// parent transforms root-down.
func (w *World) Transform(h Handle) (Transform, bool) {
	s, _, ok := w.slot(h)
	if !ok {
		return Transform{}, false
	}
	if s.parent == None {
		return s.local, true
	}
	parent, pok := w.Transform(s.parent)
	if !pok {
		// Parent despawned out from under the child; treat as root.
		return s.local, true
	}
	return parent.compose(s.local), true
}

// LocalTransform returns the parent-relative transform. For an entity
// without a parent it equals Transform.
func (w *World) LocalTransform(h Handle) (Transform, bool) {
	s, _, ok := w.slot(h)
	if !ok {
		return Transform{}, false
	}
	return s.local, true
}

// SetTransform replaces the entity's transform in one assignment:
// callers never observe new position with old rotation. The rotation is
// treated as a unit quaternion and normalized on ingestion.
func (w *World) SetTransform(h Handle, t Transform) bool {
	s, _, ok := w.slot(h)
	if !ok {
		return false
	}
	t.Rotation = t.Rotation.Normalized()
	s.local = t
	return true
}

// SetParent re-parents child under parent (None detaches). Cycles are
// rejected.
func (w *World) SetParent(child, parent Handle) bool {
	s, _, ok := w.slot(child)
	if !ok {
		return false
	}
	if parent == None {
		s.parent = None
		return true
	}
	if _, _, ok := w.slot(parent); !ok {
		return false
	}
	for p := parent; p != None; {
		if p == child {
			return false
		}
		ps, _, ok := w.slot(p)
		if !ok {
			break
		}
		p = ps.parent
	}
	s.parent = parent
	return true
}

// Property returns the entity's property under label. The second
// result is false when the entity is dead or the property was never
// written; type checking is the caller's concern.
func (w *World) Property(h Handle, label string) (Value, bool) {
	s, _, ok := w.slot(h)
	if !ok {
		return Value{}, false
	}
	v, found := s.props[label]
	if !found || !v.valid() {
		return Value{}, false
	}
	return v, true
}

// SetProperty writes a property, replacing any previous value and type
// under the same label.
func (w *World) SetProperty(h Handle, label string, v Value) bool {
	s, _, ok := w.slot(h)
	if !ok {
		return false
	}
	if s.props == nil {
		s.props = make(map[string]Value, 4)
	}
	s.props[label] = v
	return true
}

// AttachCamera gives the entity a camera. The camera's Attached field
// is overwritten with the entity's handle.
func (w *World) AttachCamera(h Handle, cam Camera) bool {
	s, _, ok := w.slot(h)
	if !ok {
		return false
	}
	cam.Attached = h
	s.camera = &cam
	return true
}

// CameraByLabel finds a camera by its label, first-spawned entity wins
// on duplicates.
func (w *World) CameraByLabel(label string) (Camera, bool) {
	for _, h := range w.order {
		if s, _, ok := w.slot(h); ok && s.camera != nil && s.camera.Label == label {
			return *s.camera, true
		}
	}
	return Camera{}, false
}

// CameraByEntity returns the camera attached to the entity.
func (w *World) CameraByEntity(h Handle) (Camera, bool) {
	s, _, ok := w.slot(h)
	if !ok || s.camera == nil {
		return Camera{}, false
	}
	return *s.camera, true
}

// HasCamera reports whether a live entity carries a camera.
func (w *World) HasCamera(h Handle) bool {
	s, _, ok := w.slot(h)
	return ok && s.camera != nil
}

// SetCamera updates an existing camera, identified by the Label field
// first, then by the Attached handle. It never creates a camera: if
// neither resolves, SetCamera reports false.
func (w *World) SetCamera(cam Camera) bool {
	if cam.Label != "" {
		for _, h := range w.order {
			if s, _, ok := w.slot(h); ok && s.camera != nil && s.camera.Label == cam.Label {
				updateCamera(s.camera, cam)
				return true
			}
		}
	}
	if s, _, ok := w.slot(cam.Attached); ok && s.camera != nil {
		updateCamera(s.camera, cam)
		return true
	}
	return false
}

// updateCamera copies the view fields. Label and Attached are identity,
// not state: a set never renames or re-attaches a camera.
func updateCamera(dst *Camera, src Camera) {
	dst.Eye = src.Eye
	dst.Target = src.Target
	dst.Up = src.Up
	dst.Aspect = src.Aspect
	dst.FovY = src.FovY
	dst.ZNear = src.ZNear
	dst.ZFar = src.ZFar
	dst.Yaw = src.Yaw
	dst.Pitch = src.Pitch
	dst.Speed = src.Speed
	dst.Sensitivity = src.Sensitivity
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.order)
}

// Each iterates live entities in spawn order.
func (w *World) Each(fn func(Handle, string) bool) {
	for _, h := range w.order {
		if s, _, ok := w.slot(h); ok {
			if !fn(h, s.label) {
				return
			}
		}
	}
}

func (w *World) slot(h Handle) (*slot, uint32, bool) {
	idx, ok := h.index()
	if !ok || int(idx) >= len(w.slots) {
		return nil, 0, false
	}
	s := &w.slots[idx]
	if !s.alive || s.generation != h.generation() {
		return nil, 0, false
	}
	return s, idx, true
}
