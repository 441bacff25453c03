package guest

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wombatlabs/worldbridge/bridge"
	"github.com/wombatlabs/worldbridge/buffer"
	"github.com/wombatlabs/worldbridge/errors"
	"github.com/wombatlabs/worldbridge/world"
)

// Namespace is the import module name guests link against.
const Namespace = "sim:world/bridge"

// HostModule exposes the boundary to wasm guests as a wazero host
// module. Every export follows the flat convention: an i32 status
// result, out-parameters written into guest linear memory, opaque
// session references as u32 table refs.
type HostModule struct {
	sessions *RefTable[*bridge.Session]
	log      *zap.Logger
}

// NewHostModule creates an empty host module.
func NewHostModule() *HostModule {
	return &HostModule{
		sessions: NewRefTable[*bridge.Session](),
		log:      bridge.Logger(),
	}
}

// AddSession mints a guest-visible ref for a session.
func (h *HostModule) AddSession(s *bridge.Session) Ref {
	return h.sessions.Insert(s)
}

// DropSession invalidates a guest-visible ref. The session itself is
// closed by its owner, not here.
func (h *HostModule) DropSession(ref Ref) bool {
	_, ok := h.sessions.Drop(ref)
	return ok
}

// session resolves a guest ref. Ref 0 is a null reference; a non-zero
// ref with no live entry is a dangling one. The two fail differently
// so callers can tell misuse from staleness.
func (h *HostModule) session(ref uint32) (*bridge.Session, bridge.Status) {
	if ref == 0 {
		return nil, bridge.StatusNullPointer
	}
	s, ok := h.sessions.Get(Ref(ref))
	if !ok {
		return nil, bridge.StatusInvalidHandle
	}
	return s, bridge.StatusOK
}

func moduleMemory(mod api.Module) (wasmMemory, bridge.Status) {
	m := mod.Memory()
	if m == nil {
		return wasmMemory{}, bridge.StatusNullPointer
	}
	return wasmMemory{mem: m}, bridge.StatusOK
}

// Instantiate registers every boundary export and instantiates the
// host module on the runtime.
func (h *HostModule) Instantiate(ctx context.Context, rt wazero.Runtime) (api.Module, error) {
	b := rt.NewHostModuleBuilder(Namespace)

	b.NewFunctionBuilder().WithFunc(h.abiVersion).Export("abi-version")
	b.NewFunctionBuilder().WithFunc(h.hasCapability).Export("has-capability")

	b.NewFunctionBuilder().WithFunc(h.resolveEntity).Export("resolve-entity")
	b.NewFunctionBuilder().WithFunc(h.getTransform).Export("get-transform")
	b.NewFunctionBuilder().WithFunc(h.getLocalTransform).Export("get-local-transform")
	b.NewFunctionBuilder().WithFunc(h.setTransform).Export("set-transform")
	b.NewFunctionBuilder().WithFunc(h.setParent).Export("set-parent")
	b.NewFunctionBuilder().WithFunc(h.getEntityLabels).Export("get-entity-labels")

	b.NewFunctionBuilder().WithFunc(h.getStringProperty).Export("get-string-property")
	b.NewFunctionBuilder().WithFunc(h.setStringProperty).Export("set-string-property")
	b.NewFunctionBuilder().WithFunc(h.getIntProperty).Export("get-int-property")
	b.NewFunctionBuilder().WithFunc(h.setIntProperty).Export("set-int-property")
	b.NewFunctionBuilder().WithFunc(h.getLongProperty).Export("get-long-property")
	b.NewFunctionBuilder().WithFunc(h.setLongProperty).Export("set-long-property")
	b.NewFunctionBuilder().WithFunc(h.getFloatProperty).Export("get-float-property")
	b.NewFunctionBuilder().WithFunc(h.setFloatProperty).Export("set-float-property")
	b.NewFunctionBuilder().WithFunc(h.getDoubleProperty).Export("get-double-property")
	b.NewFunctionBuilder().WithFunc(h.setDoubleProperty).Export("set-double-property")
	b.NewFunctionBuilder().WithFunc(h.getBoolProperty).Export("get-bool-property")
	b.NewFunctionBuilder().WithFunc(h.setBoolProperty).Export("set-bool-property")
	b.NewFunctionBuilder().WithFunc(h.getVec3Property).Export("get-vec3-property")
	b.NewFunctionBuilder().WithFunc(h.setVec3Property).Export("set-vec3-property")

	b.NewFunctionBuilder().WithFunc(h.getCamera).Export("get-camera")
	b.NewFunctionBuilder().WithFunc(h.getAttachedCamera).Export("get-attached-camera")
	b.NewFunctionBuilder().WithFunc(h.setCamera).Export("set-camera")

	b.NewFunctionBuilder().WithFunc(h.isKeyPressed).Export("is-key-pressed")
	b.NewFunctionBuilder().WithFunc(h.isMouseButtonPressed).Export("is-mouse-button-pressed")
	b.NewFunctionBuilder().WithFunc(h.getMousePosition).Export("get-mouse-position")
	b.NewFunctionBuilder().WithFunc(h.getMouseDelta).Export("get-mouse-delta")
	b.NewFunctionBuilder().WithFunc(h.getLastMousePos).Export("get-last-mouse-pos")
	b.NewFunctionBuilder().WithFunc(h.isCursorLocked).Export("is-cursor-locked")
	b.NewFunctionBuilder().WithFunc(h.isCursorHidden).Export("is-cursor-hidden")
	b.NewFunctionBuilder().WithFunc(h.setCursorLocked).Export("set-cursor-locked")
	b.NewFunctionBuilder().WithFunc(h.setCursorHidden).Export("set-cursor-hidden")
	b.NewFunctionBuilder().WithFunc(h.getPressedKeys).Export("get-pressed-keys")

	mod, err := b.Instantiate(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseGuest, errors.KindRegistration, err, "instantiate host module")
	}
	return mod, nil
}

func (h *HostModule) abiVersion(_ context.Context, _ api.Module) uint32 {
	major, minor := bridge.AbiVersion()
	return uint32(major)<<16 | uint32(minor)
}

func (h *HostModule) hasCapability(_ context.Context, mod api.Module, namePtr, outValue uint32) int32 {
	mem, st := moduleMemory(mod)
	if st != bridge.StatusOK {
		return st
	}
	if outValue == 0 {
		return bridge.StatusNullPointer
	}
	name, err := readCString(mem, namePtr)
	if err != nil {
		return bridge.StatusOf(err)
	}
	var v uint8
	if bridge.HasCapability(name) {
		v = 1
	}
	if err := mem.WriteU8(outValue, v); err != nil {
		return bridge.StatusOf(err)
	}
	return bridge.StatusOK
}

func (h *HostModule) resolveEntity(_ context.Context, mod api.Module, sess, labelPtr, outEntity uint32) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	mem, st := moduleMemory(mod)
	if st != bridge.StatusOK {
		return st
	}
	if outEntity == 0 {
		return bridge.StatusNullPointer
	}
	label, err := readCString(mem, labelPtr)
	if err != nil {
		return bridge.StatusOf(err)
	}
	handle, err := s.ResolveEntity(label)
	if err != nil {
		return bridge.StatusOf(err)
	}
	if err := mem.WriteU64(outEntity, uint64(handle)); err != nil {
		return bridge.StatusOf(err)
	}
	return bridge.StatusOK
}

func (h *HostModule) getTransform(_ context.Context, mod api.Module, sess uint32, entity int64, outTransform uint32) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	mem, st := moduleMemory(mod)
	if st != bridge.StatusOK {
		return st
	}
	t, err := s.Transform(world.Handle(entity))
	if err != nil {
		return bridge.StatusOf(err)
	}
	if err := writeTransform(mem, outTransform, t); err != nil {
		return bridge.StatusOf(err)
	}
	return bridge.StatusOK
}

func (h *HostModule) getLocalTransform(_ context.Context, mod api.Module, sess uint32, entity int64, outTransform uint32) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	mem, st := moduleMemory(mod)
	if st != bridge.StatusOK {
		return st
	}
	t, err := s.LocalTransform(world.Handle(entity))
	if err != nil {
		return bridge.StatusOf(err)
	}
	if err := writeTransform(mem, outTransform, t); err != nil {
		return bridge.StatusOf(err)
	}
	return bridge.StatusOK
}

func (h *HostModule) setTransform(_ context.Context, mod api.Module, sess uint32, entity int64, transformPtr uint32) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	mem, st := moduleMemory(mod)
	if st != bridge.StatusOK {
		return st
	}
	t, err := readTransform(mem, transformPtr)
	if err != nil {
		return bridge.StatusOf(err)
	}
	return bridge.StatusOf(s.SetTransform(world.Handle(entity), t))
}

func (h *HostModule) setParent(_ context.Context, _ api.Module, sess uint32, child, parent int64) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	return bridge.StatusOf(s.SetParent(world.Handle(child), world.Handle(parent)))
}

func (h *HostModule) getEntityLabels(ctx context.Context, mod api.Module, sess, outTriple uint32) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	mem, st := moduleMemory(mod)
	if st != bridge.StatusOK {
		return st
	}
	if outTriple == 0 {
		return bridge.StatusNullPointer
	}
	buf, err := s.EntityLabels()
	if err != nil {
		return bridge.StatusOf(err)
	}
	defer buf.Release()
	labels, err := buf.Elems()
	if err != nil {
		return bridge.StatusOf(err)
	}
	alloc := guestAllocator{ctx: ctx, mod: mod}
	ptr, length, capacity, placed, err := buffer.LowerStrings(mem, alloc, labels)
	if err != nil {
		return bridge.StatusOf(err)
	}
	if err := writeTriple(mem, outTriple, ptr, length, capacity); err != nil {
		// The guest never saw the triple; take every placed block
		// back, string blocks and table alike.
		placed.Free(alloc)
		return bridge.StatusOf(err)
	}
	return bridge.StatusOK
}

func (h *HostModule) getStringProperty(_ context.Context, mod api.Module, sess uint32, entity int64, labelPtr, outValue, outCap, outNeeded uint32) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	mem, st := moduleMemory(mod)
	if st != bridge.StatusOK {
		return st
	}
	label, err := readCString(mem, labelPtr)
	if err != nil {
		return bridge.StatusOf(err)
	}
	if outValue == 0 {
		return bridge.StatusNullPointer
	}
	// outCap is guest-controlled; a capacity beyond the guest's own
	// memory cannot be honored, so clamp before sizing the staging
	// buffer.
	if size := mem.Size(); outCap > size {
		outCap = size
	}
	buf := make([]byte, outCap)
	needed, gerr := s.StringProperty(world.Handle(entity), label, buf)
	if outNeeded != 0 {
		if err := mem.WriteU32(outNeeded, uint32(needed)); err != nil {
			return bridge.StatusOf(err)
		}
	}
	// A truncated prefix is still written so the caller can retry.
	if n := min(needed, len(buf)); n > 0 {
		if err := mem.Write(outValue, buf[:n]); err != nil {
			return bridge.StatusOf(err)
		}
	}
	return bridge.StatusOf(gerr)
}

func (h *HostModule) setStringProperty(_ context.Context, mod api.Module, sess uint32, entity int64, labelPtr, valuePtr uint32) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	mem, st := moduleMemory(mod)
	if st != bridge.StatusOK {
		return st
	}
	label, err := readCString(mem, labelPtr)
	if err != nil {
		return bridge.StatusOf(err)
	}
	value, err := readCString(mem, valuePtr)
	if err != nil {
		return bridge.StatusOf(err)
	}
	return bridge.StatusOf(s.SetStringProperty(world.Handle(entity), label, value))
}

func (h *HostModule) getIntProperty(_ context.Context, mod api.Module, sess uint32, entity int64, labelPtr, outValue uint32) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	mem, st := moduleMemory(mod)
	if st != bridge.StatusOK {
		return st
	}
	if outValue == 0 {
		return bridge.StatusNullPointer
	}
	label, err := readCString(mem, labelPtr)
	if err != nil {
		return bridge.StatusOf(err)
	}
	v, err := s.IntProperty(world.Handle(entity), label)
	if err != nil {
		return bridge.StatusOf(err)
	}
	if err := mem.WriteU32(outValue, uint32(v)); err != nil {
		return bridge.StatusOf(err)
	}
	return bridge.StatusOK
}

func (h *HostModule) setIntProperty(_ context.Context, mod api.Module, sess uint32, entity int64, labelPtr uint32, value int32) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	mem, st := moduleMemory(mod)
	if st != bridge.StatusOK {
		return st
	}
	label, err := readCString(mem, labelPtr)
	if err != nil {
		return bridge.StatusOf(err)
	}
	return bridge.StatusOf(s.SetIntProperty(world.Handle(entity), label, value))
}

func (h *HostModule) getLongProperty(_ context.Context, mod api.Module, sess uint32, entity int64, labelPtr, outValue uint32) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	mem, st := moduleMemory(mod)
	if st != bridge.StatusOK {
		return st
	}
	if outValue == 0 {
		return bridge.StatusNullPointer
	}
	label, err := readCString(mem, labelPtr)
	if err != nil {
		return bridge.StatusOf(err)
	}
	v, err := s.LongProperty(world.Handle(entity), label)
	if err != nil {
		return bridge.StatusOf(err)
	}
	if err := mem.WriteU64(outValue, uint64(v)); err != nil {
		return bridge.StatusOf(err)
	}
	return bridge.StatusOK
}

func (h *HostModule) setLongProperty(_ context.Context, mod api.Module, sess uint32, entity int64, labelPtr uint32, value int64) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	mem, st := moduleMemory(mod)
	if st != bridge.StatusOK {
		return st
	}
	label, err := readCString(mem, labelPtr)
	if err != nil {
		return bridge.StatusOf(err)
	}
	return bridge.StatusOf(s.SetLongProperty(world.Handle(entity), label, value))
}

func (h *HostModule) getFloatProperty(_ context.Context, mod api.Module, sess uint32, entity int64, labelPtr, outValue uint32) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	mem, st := moduleMemory(mod)
	if st != bridge.StatusOK {
		return st
	}
	if outValue == 0 {
		return bridge.StatusNullPointer
	}
	label, err := readCString(mem, labelPtr)
	if err != nil {
		return bridge.StatusOf(err)
	}
	v, err := s.FloatProperty(world.Handle(entity), label)
	if err != nil {
		return bridge.StatusOf(err)
	}
	if err := writeF32(mem, outValue, v); err != nil {
		return bridge.StatusOf(err)
	}
	return bridge.StatusOK
}

func (h *HostModule) setFloatProperty(_ context.Context, mod api.Module, sess uint32, entity int64, labelPtr uint32, value float32) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	mem, st := moduleMemory(mod)
	if st != bridge.StatusOK {
		return st
	}
	label, err := readCString(mem, labelPtr)
	if err != nil {
		return bridge.StatusOf(err)
	}
	return bridge.StatusOf(s.SetFloatProperty(world.Handle(entity), label, value))
}

func (h *HostModule) getDoubleProperty(_ context.Context, mod api.Module, sess uint32, entity int64, labelPtr, outValue uint32) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	mem, st := moduleMemory(mod)
	if st != bridge.StatusOK {
		return st
	}
	if outValue == 0 {
		return bridge.StatusNullPointer
	}
	label, err := readCString(mem, labelPtr)
	if err != nil {
		return bridge.StatusOf(err)
	}
	v, err := s.DoubleProperty(world.Handle(entity), label)
	if err != nil {
		return bridge.StatusOf(err)
	}
	if err := writeF64(mem, outValue, v); err != nil {
		return bridge.StatusOf(err)
	}
	return bridge.StatusOK
}

func (h *HostModule) setDoubleProperty(_ context.Context, mod api.Module, sess uint32, entity int64, labelPtr uint32, value float64) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	mem, st := moduleMemory(mod)
	if st != bridge.StatusOK {
		return st
	}
	label, err := readCString(mem, labelPtr)
	if err != nil {
		return bridge.StatusOf(err)
	}
	return bridge.StatusOf(s.SetDoubleProperty(world.Handle(entity), label, value))
}

func (h *HostModule) getBoolProperty(_ context.Context, mod api.Module, sess uint32, entity int64, labelPtr, outValue uint32) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	mem, st := moduleMemory(mod)
	if st != bridge.StatusOK {
		return st
	}
	if outValue == 0 {
		return bridge.StatusNullPointer
	}
	label, err := readCString(mem, labelPtr)
	if err != nil {
		return bridge.StatusOf(err)
	}
	v, err := s.BoolProperty(world.Handle(entity), label)
	if err != nil {
		return bridge.StatusOf(err)
	}
	var raw uint8
	if v {
		raw = 1
	}
	if err := mem.WriteU8(outValue, raw); err != nil {
		return bridge.StatusOf(err)
	}
	return bridge.StatusOK
}

func (h *HostModule) setBoolProperty(_ context.Context, mod api.Module, sess uint32, entity int64, labelPtr uint32, value int32) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	mem, st := moduleMemory(mod)
	if st != bridge.StatusOK {
		return st
	}
	label, err := readCString(mem, labelPtr)
	if err != nil {
		return bridge.StatusOf(err)
	}
	return bridge.StatusOf(s.SetBoolProperty(world.Handle(entity), label, value != 0))
}

func (h *HostModule) getVec3Property(_ context.Context, mod api.Module, sess uint32, entity int64, labelPtr, outX, outY, outZ uint32) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	mem, st := moduleMemory(mod)
	if st != bridge.StatusOK {
		return st
	}
	if outX == 0 || outY == 0 || outZ == 0 {
		return bridge.StatusNullPointer
	}
	label, err := readCString(mem, labelPtr)
	if err != nil {
		return bridge.StatusOf(err)
	}
	x, y, z, err := s.Vec3Property(world.Handle(entity), label)
	if err != nil {
		return bridge.StatusOf(err)
	}
	for _, out := range []struct {
		ptr uint32
		v   float32
	}{{outX, x}, {outY, y}, {outZ, z}} {
		if err := writeF32(mem, out.ptr, out.v); err != nil {
			return bridge.StatusOf(err)
		}
	}
	return bridge.StatusOK
}

func (h *HostModule) setVec3Property(_ context.Context, mod api.Module, sess uint32, entity int64, labelPtr uint32, x, y, z float32) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	mem, st := moduleMemory(mod)
	if st != bridge.StatusOK {
		return st
	}
	label, err := readCString(mem, labelPtr)
	if err != nil {
		return bridge.StatusOf(err)
	}
	return bridge.StatusOf(s.SetVec3Property(world.Handle(entity), label, x, y, z))
}

func (h *HostModule) getCamera(_ context.Context, mod api.Module, sess, labelPtr, outCamera, outLabel, labelCap, outNeeded uint32) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	mem, st := moduleMemory(mod)
	if st != bridge.StatusOK {
		return st
	}
	label, err := readCString(mem, labelPtr)
	if err != nil {
		return bridge.StatusOf(err)
	}
	cam, err := s.CameraByLabel(label)
	if err != nil {
		return bridge.StatusOf(err)
	}
	return h.writeCameraOut(mem, cam, outCamera, outLabel, labelCap, outNeeded)
}

func (h *HostModule) getAttachedCamera(_ context.Context, mod api.Module, sess uint32, entity int64, outCamera, outLabel, labelCap, outNeeded uint32) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	mem, st := moduleMemory(mod)
	if st != bridge.StatusOK {
		return st
	}
	cam, err := s.AttachedCamera(world.Handle(entity))
	if err != nil {
		return bridge.StatusOf(err)
	}
	return h.writeCameraOut(mem, cam, outCamera, outLabel, labelCap, outNeeded)
}

func (h *HostModule) writeCameraOut(mem wasmMemory, cam world.Camera, outCamera, outLabel, labelCap, outNeeded uint32) int32 {
	if err := writeCamera(mem, outCamera, cam); err != nil {
		return bridge.StatusOf(err)
	}
	needed, err := writeCString(mem, outLabel, labelCap, cam.Label)
	if outNeeded != 0 {
		if werr := mem.WriteU32(outNeeded, needed); werr != nil {
			return bridge.StatusOf(werr)
		}
	}
	return bridge.StatusOf(err)
}

func (h *HostModule) setCamera(_ context.Context, mod api.Module, sess, cameraPtr, labelPtr uint32) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	mem, st := moduleMemory(mod)
	if st != bridge.StatusOK {
		return st
	}
	cam, err := readCamera(mem, cameraPtr)
	if err != nil {
		return bridge.StatusOf(err)
	}
	// The record carries no label; it rides alongside as a C string.
	if labelPtr != 0 {
		label, err := readCString(mem, labelPtr)
		if err != nil {
			return bridge.StatusOf(err)
		}
		cam.Label = label
	}
	return bridge.StatusOf(s.SetCamera(cam))
}

func (h *HostModule) isKeyPressed(_ context.Context, mod api.Module, sess uint32, keycode int32, outValue uint32) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	mem, st := moduleMemory(mod)
	if st != bridge.StatusOK {
		return st
	}
	if outValue == 0 {
		return bridge.StatusNullPointer
	}
	pressed, err := s.IsKeyPressed(keycode)
	if err != nil {
		return bridge.StatusOf(err)
	}
	return h.writeBool(mem, outValue, pressed)
}

func (h *HostModule) isMouseButtonPressed(_ context.Context, mod api.Module, sess uint32, button int32, outValue uint32) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	mem, st := moduleMemory(mod)
	if st != bridge.StatusOK {
		return st
	}
	if outValue == 0 {
		return bridge.StatusNullPointer
	}
	pressed, err := s.IsMouseButtonPressed(button)
	if err != nil {
		return bridge.StatusOf(err)
	}
	return h.writeBool(mem, outValue, pressed)
}

func (h *HostModule) getMousePosition(_ context.Context, mod api.Module, sess, outX, outY uint32) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	mem, st := moduleMemory(mod)
	if st != bridge.StatusOK {
		return st
	}
	if outX == 0 || outY == 0 {
		return bridge.StatusNullPointer
	}
	x, y, err := s.MousePosition()
	if err != nil {
		return bridge.StatusOf(err)
	}
	return h.writePair(mem, outX, outY, x, y)
}

func (h *HostModule) getMouseDelta(_ context.Context, mod api.Module, sess, outX, outY uint32) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	mem, st := moduleMemory(mod)
	if st != bridge.StatusOK {
		return st
	}
	if outX == 0 || outY == 0 {
		return bridge.StatusNullPointer
	}
	dx, dy, err := s.MouseDelta()
	if err != nil {
		return bridge.StatusOf(err)
	}
	return h.writePair(mem, outX, outY, dx, dy)
}

func (h *HostModule) getLastMousePos(_ context.Context, mod api.Module, sess, outX, outY uint32) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	mem, st := moduleMemory(mod)
	if st != bridge.StatusOK {
		return st
	}
	if outX == 0 || outY == 0 {
		return bridge.StatusNullPointer
	}
	x, y, err := s.LastMousePosition()
	if err != nil {
		return bridge.StatusOf(err)
	}
	return h.writePair(mem, outX, outY, x, y)
}

func (h *HostModule) isCursorLocked(_ context.Context, mod api.Module, sess, outValue uint32) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	mem, st := moduleMemory(mod)
	if st != bridge.StatusOK {
		return st
	}
	if outValue == 0 {
		return bridge.StatusNullPointer
	}
	locked, err := s.CursorLocked()
	if err != nil {
		return bridge.StatusOf(err)
	}
	return h.writeBool(mem, outValue, locked)
}

func (h *HostModule) isCursorHidden(_ context.Context, mod api.Module, sess, outValue uint32) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	mem, st := moduleMemory(mod)
	if st != bridge.StatusOK {
		return st
	}
	if outValue == 0 {
		return bridge.StatusNullPointer
	}
	hidden, err := s.CursorHidden()
	if err != nil {
		return bridge.StatusOf(err)
	}
	return h.writeBool(mem, outValue, hidden)
}

func (h *HostModule) setCursorLocked(_ context.Context, _ api.Module, sess uint32, locked int32) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	return bridge.StatusOf(s.SetCursorLocked(locked != 0))
}

func (h *HostModule) setCursorHidden(_ context.Context, _ api.Module, sess uint32, hidden int32) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	return bridge.StatusOf(s.SetCursorHidden(hidden != 0))
}

func (h *HostModule) getPressedKeys(ctx context.Context, mod api.Module, sess, outTriple uint32) int32 {
	s, st := h.session(sess)
	if st != bridge.StatusOK {
		return st
	}
	mem, st := moduleMemory(mod)
	if st != bridge.StatusOK {
		return st
	}
	if outTriple == 0 {
		return bridge.StatusNullPointer
	}
	buf, err := s.PressedKeys()
	if err != nil {
		return bridge.StatusOf(err)
	}
	defer buf.Release()
	codes, err := buf.Elems()
	if err != nil {
		return bridge.StatusOf(err)
	}
	alloc := guestAllocator{ctx: ctx, mod: mod}
	ptr, length, capacity, err := buffer.LowerU32(mem, alloc, codes)
	if err != nil {
		return bridge.StatusOf(err)
	}
	if err := writeTriple(mem, outTriple, ptr, length, capacity); err != nil {
		alloc.Free(ptr, capacity*4, 4)
		return bridge.StatusOf(err)
	}
	return bridge.StatusOK
}

func (h *HostModule) writeBool(mem wasmMemory, ptr uint32, v bool) int32 {
	var raw uint8
	if v {
		raw = 1
	}
	if err := mem.WriteU8(ptr, raw); err != nil {
		return bridge.StatusOf(err)
	}
	return bridge.StatusOK
}

func (h *HostModule) writePair(mem wasmMemory, ptrX, ptrY uint32, x, y float32) int32 {
	if err := writeF32(mem, ptrX, x); err != nil {
		return bridge.StatusOf(err)
	}
	if err := writeF32(mem, ptrY, y); err != nil {
		return bridge.StatusOf(err)
	}
	return bridge.StatusOK
}
