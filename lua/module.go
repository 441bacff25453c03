package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/wombatlabs/worldbridge/bridge"
	"github.com/wombatlabs/worldbridge/input"
	"github.com/wombatlabs/worldbridge/world"
)

// ModuleName is the global table scripts reach the boundary through.
const ModuleName = "world"

// Open registers the world module on the VM. Functions follow the Lua
// convention of (value..., nil) on success and (nil, status) on
// failure, where status is the numeric boundary code.
func Open(L *lua.LState, s *bridge.Session) {
	mod := L.NewTable()

	fns := map[string]lua.LGFunction{
		"resolve_entity":      wrap(s, resolveEntity),
		"get_transform":       wrap(s, getTransform),
		"get_local_transform": wrap(s, getLocalTransform),
		"set_transform":       wrap(s, setTransform),
		"set_parent":          wrap(s, setParent),
		"entity_labels":       wrap(s, entityLabels),

		"get_string": wrap(s, getString),
		"set_string": wrap(s, setString),
		"get_int":    wrap(s, getInt),
		"set_int":    wrap(s, setInt),
		"get_long":   wrap(s, getLong),
		"set_long":   wrap(s, setLong),
		"get_float":  wrap(s, getFloat),
		"set_float":  wrap(s, setFloat),
		"get_double": wrap(s, getDouble),
		"set_double": wrap(s, setDouble),
		"get_bool":   wrap(s, getBool),
		"set_bool":   wrap(s, setBool),
		"get_vec3":   wrap(s, getVec3),
		"set_vec3":   wrap(s, setVec3),

		"get_camera":          wrap(s, getCamera),
		"get_attached_camera": wrap(s, getAttachedCamera),
		"set_camera":          wrap(s, setCamera),

		"is_key_pressed":          wrap(s, isKeyPressed),
		"is_mouse_button_pressed": wrap(s, isMouseButtonPressed),
		"mouse_position":          wrap(s, mousePosition),
		"mouse_delta":             wrap(s, mouseDelta),
		"last_mouse_position":     wrap(s, lastMousePosition),
		"is_cursor_locked":        wrap(s, isCursorLocked),
		"is_cursor_hidden":        wrap(s, isCursorHidden),
		"set_cursor_locked":       wrap(s, setCursorLocked),
		"set_cursor_hidden":       wrap(s, setCursorHidden),
		"pressed_keys":            wrap(s, pressedKeys),

		"has_capability": wrap(s, hasCapability),
	}
	for name, fn := range fns {
		mod.RawSetString(name, L.NewFunction(fn))
	}

	major, minor := bridge.AbiVersion()
	version := L.NewTable()
	version.RawSetString("major", lua.LNumber(major))
	version.RawSetString("minor", lua.LNumber(minor))
	mod.RawSetString("version", version)

	keys := L.NewTable()
	for name, code := range input.KeyNames() {
		keys.RawSetString(name, lua.LNumber(code))
	}
	mod.RawSetString("keys", keys)

	buttons := L.NewTable()
	for name, code := range input.MouseButtonNames() {
		buttons.RawSetString(name, lua.LNumber(code))
	}
	mod.RawSetString("buttons", buttons)

	L.SetGlobal(ModuleName, mod)
}

// wrap binds the session into a lua.LGFunction.
func wrap(s *bridge.Session, fn func(L *lua.LState, s *bridge.Session) int) lua.LGFunction {
	return func(L *lua.LState) int {
		return fn(L, s)
	}
}

// fail pushes the (nil, status) error pair.
func fail(L *lua.LState, err error) int {
	L.Push(lua.LNil)
	L.Push(lua.LNumber(bridge.StatusOf(err)))
	return 2
}

// ok pushes a success value with a nil status slot.
func ok(L *lua.LState, v lua.LValue) int {
	L.Push(v)
	L.Push(lua.LNil)
	return 2
}

func checkHandle(L *lua.LState, n int) world.Handle {
	return world.Handle(uint64(L.CheckNumber(n)))
}

func resolveEntity(L *lua.LState, s *bridge.Session) int {
	h, err := s.ResolveEntity(L.CheckString(1))
	if err != nil {
		return fail(L, err)
	}
	return ok(L, lua.LNumber(h))
}

func getTransform(L *lua.LState, s *bridge.Session) int {
	t, err := s.Transform(checkHandle(L, 1))
	if err != nil {
		return fail(L, err)
	}
	return ok(L, transformToTable(L, t))
}

func getLocalTransform(L *lua.LState, s *bridge.Session) int {
	t, err := s.LocalTransform(checkHandle(L, 1))
	if err != nil {
		return fail(L, err)
	}
	return ok(L, transformToTable(L, t))
}

func setTransform(L *lua.LState, s *bridge.Session) int {
	t := transformFromTable(L.CheckTable(2))
	if err := s.SetTransform(checkHandle(L, 1), t); err != nil {
		return fail(L, err)
	}
	return ok(L, lua.LTrue)
}

func setParent(L *lua.LState, s *bridge.Session) int {
	if err := s.SetParent(checkHandle(L, 1), checkHandle(L, 2)); err != nil {
		return fail(L, err)
	}
	return ok(L, lua.LTrue)
}

func entityLabels(L *lua.LState, s *bridge.Session) int {
	buf, err := s.EntityLabels()
	if err != nil {
		return fail(L, err)
	}
	defer buf.Release()
	labels, err := buf.Elems()
	if err != nil {
		return fail(L, err)
	}
	t := L.NewTable()
	for i, label := range labels {
		t.RawSetInt(i+1, lua.LString(label))
	}
	return ok(L, t)
}

func getString(L *lua.LState, s *bridge.Session) int {
	h, label := checkHandle(L, 1), L.CheckString(2)
	// Two-pass read: size probe, then the real buffer.
	needed, err := s.StringProperty(h, label, make([]byte, 1))
	if err != nil && needed <= 1 {
		return fail(L, err)
	}
	buf := make([]byte, needed)
	if _, err := s.StringProperty(h, label, buf); err != nil {
		return fail(L, err)
	}
	return ok(L, lua.LString(buf[:needed-1]))
}

func setString(L *lua.LState, s *bridge.Session) int {
	if err := s.SetStringProperty(checkHandle(L, 1), L.CheckString(2), L.CheckString(3)); err != nil {
		return fail(L, err)
	}
	return ok(L, lua.LTrue)
}

func getInt(L *lua.LState, s *bridge.Session) int {
	v, err := s.IntProperty(checkHandle(L, 1), L.CheckString(2))
	if err != nil {
		return fail(L, err)
	}
	return ok(L, lua.LNumber(v))
}

func setInt(L *lua.LState, s *bridge.Session) int {
	if err := s.SetIntProperty(checkHandle(L, 1), L.CheckString(2), int32(L.CheckNumber(3))); err != nil {
		return fail(L, err)
	}
	return ok(L, lua.LTrue)
}

func getLong(L *lua.LState, s *bridge.Session) int {
	v, err := s.LongProperty(checkHandle(L, 1), L.CheckString(2))
	if err != nil {
		return fail(L, err)
	}
	return ok(L, lua.LNumber(v))
}

func setLong(L *lua.LState, s *bridge.Session) int {
	if err := s.SetLongProperty(checkHandle(L, 1), L.CheckString(2), int64(L.CheckNumber(3))); err != nil {
		return fail(L, err)
	}
	return ok(L, lua.LTrue)
}

func getFloat(L *lua.LState, s *bridge.Session) int {
	v, err := s.FloatProperty(checkHandle(L, 1), L.CheckString(2))
	if err != nil {
		return fail(L, err)
	}
	return ok(L, lua.LNumber(v))
}

func setFloat(L *lua.LState, s *bridge.Session) int {
	if err := s.SetFloatProperty(checkHandle(L, 1), L.CheckString(2), float32(L.CheckNumber(3))); err != nil {
		return fail(L, err)
	}
	return ok(L, lua.LTrue)
}

func getDouble(L *lua.LState, s *bridge.Session) int {
	v, err := s.DoubleProperty(checkHandle(L, 1), L.CheckString(2))
	if err != nil {
		return fail(L, err)
	}
	return ok(L, lua.LNumber(v))
}

func setDouble(L *lua.LState, s *bridge.Session) int {
	if err := s.SetDoubleProperty(checkHandle(L, 1), L.CheckString(2), float64(L.CheckNumber(3))); err != nil {
		return fail(L, err)
	}
	return ok(L, lua.LTrue)
}

func getBool(L *lua.LState, s *bridge.Session) int {
	v, err := s.BoolProperty(checkHandle(L, 1), L.CheckString(2))
	if err != nil {
		return fail(L, err)
	}
	return ok(L, lua.LBool(v))
}

func setBool(L *lua.LState, s *bridge.Session) int {
	if err := s.SetBoolProperty(checkHandle(L, 1), L.CheckString(2), L.CheckBool(3)); err != nil {
		return fail(L, err)
	}
	return ok(L, lua.LTrue)
}

func getVec3(L *lua.LState, s *bridge.Session) int {
	x, y, z, err := s.Vec3Property(checkHandle(L, 1), L.CheckString(2))
	if err != nil {
		return fail(L, err)
	}
	t := L.NewTable()
	t.RawSetString("x", lua.LNumber(x))
	t.RawSetString("y", lua.LNumber(y))
	t.RawSetString("z", lua.LNumber(z))
	return ok(L, t)
}

func setVec3(L *lua.LState, s *bridge.Session) int {
	t := L.CheckTable(3)
	err := s.SetVec3Property(checkHandle(L, 1), L.CheckString(2),
		float32(lua.LVAsNumber(t.RawGetString("x"))),
		float32(lua.LVAsNumber(t.RawGetString("y"))),
		float32(lua.LVAsNumber(t.RawGetString("z"))))
	if err != nil {
		return fail(L, err)
	}
	return ok(L, lua.LTrue)
}

func getCamera(L *lua.LState, s *bridge.Session) int {
	cam, err := s.CameraByLabel(L.CheckString(1))
	if err != nil {
		return fail(L, err)
	}
	return ok(L, cameraToTable(L, cam))
}

func getAttachedCamera(L *lua.LState, s *bridge.Session) int {
	cam, err := s.AttachedCamera(checkHandle(L, 1))
	if err != nil {
		return fail(L, err)
	}
	return ok(L, cameraToTable(L, cam))
}

func setCamera(L *lua.LState, s *bridge.Session) int {
	if err := s.SetCamera(cameraFromTable(L.CheckTable(1))); err != nil {
		return fail(L, err)
	}
	return ok(L, lua.LTrue)
}

func isKeyPressed(L *lua.LState, s *bridge.Session) int {
	pressed, err := s.IsKeyPressed(int32(L.CheckNumber(1)))
	if err != nil {
		return fail(L, err)
	}
	return ok(L, lua.LBool(pressed))
}

func isMouseButtonPressed(L *lua.LState, s *bridge.Session) int {
	pressed, err := s.IsMouseButtonPressed(int32(L.CheckNumber(1)))
	if err != nil {
		return fail(L, err)
	}
	return ok(L, lua.LBool(pressed))
}

func mousePosition(L *lua.LState, s *bridge.Session) int {
	x, y, err := s.MousePosition()
	if err != nil {
		return fail(L, err)
	}
	L.Push(lua.LNumber(x))
	L.Push(lua.LNumber(y))
	L.Push(lua.LNil)
	return 3
}

func mouseDelta(L *lua.LState, s *bridge.Session) int {
	dx, dy, err := s.MouseDelta()
	if err != nil {
		return fail(L, err)
	}
	L.Push(lua.LNumber(dx))
	L.Push(lua.LNumber(dy))
	L.Push(lua.LNil)
	return 3
}

func lastMousePosition(L *lua.LState, s *bridge.Session) int {
	x, y, err := s.LastMousePosition()
	if err != nil {
		return fail(L, err)
	}
	L.Push(lua.LNumber(x))
	L.Push(lua.LNumber(y))
	L.Push(lua.LNil)
	return 3
}

func isCursorLocked(L *lua.LState, s *bridge.Session) int {
	locked, err := s.CursorLocked()
	if err != nil {
		return fail(L, err)
	}
	return ok(L, lua.LBool(locked))
}

func isCursorHidden(L *lua.LState, s *bridge.Session) int {
	hidden, err := s.CursorHidden()
	if err != nil {
		return fail(L, err)
	}
	return ok(L, lua.LBool(hidden))
}

func setCursorLocked(L *lua.LState, s *bridge.Session) int {
	if err := s.SetCursorLocked(L.CheckBool(1)); err != nil {
		return fail(L, err)
	}
	return ok(L, lua.LTrue)
}

func setCursorHidden(L *lua.LState, s *bridge.Session) int {
	if err := s.SetCursorHidden(L.CheckBool(1)); err != nil {
		return fail(L, err)
	}
	return ok(L, lua.LTrue)
}

func pressedKeys(L *lua.LState, s *bridge.Session) int {
	buf, err := s.PressedKeys()
	if err != nil {
		return fail(L, err)
	}
	defer buf.Release()
	codes, err := buf.Elems()
	if err != nil {
		return fail(L, err)
	}
	t := L.NewTable()
	for i, code := range codes {
		t.RawSetInt(i+1, lua.LNumber(code))
	}
	return ok(L, t)
}

func hasCapability(L *lua.LState, s *bridge.Session) int {
	return ok(L, lua.LBool(bridge.HasCapability(L.CheckString(1))))
}

func transformToTable(L *lua.LState, t world.Transform) *lua.LTable {
	out := L.NewTable()
	out.RawSetString("position", vec3ToTable(L, t.Position))
	rot := L.NewTable()
	rot.RawSetString("x", lua.LNumber(t.Rotation[0]))
	rot.RawSetString("y", lua.LNumber(t.Rotation[1]))
	rot.RawSetString("z", lua.LNumber(t.Rotation[2]))
	rot.RawSetString("w", lua.LNumber(t.Rotation[3]))
	out.RawSetString("rotation", rot)
	out.RawSetString("scale", vec3ToTable(L, t.Scale))
	return out
}

func transformFromTable(t *lua.LTable) world.Transform {
	out := world.IdentityTransform()
	if pos, okv := t.RawGetString("position").(*lua.LTable); okv {
		out.Position = vec3FromTable(pos)
	}
	if rot, okv := t.RawGetString("rotation").(*lua.LTable); okv {
		out.Rotation = world.Quat{
			float64(lua.LVAsNumber(rot.RawGetString("x"))),
			float64(lua.LVAsNumber(rot.RawGetString("y"))),
			float64(lua.LVAsNumber(rot.RawGetString("z"))),
			float64(lua.LVAsNumber(rot.RawGetString("w"))),
		}
	}
	if scale, okv := t.RawGetString("scale").(*lua.LTable); okv {
		out.Scale = vec3FromTable(scale)
	}
	return out
}

func vec3ToTable(L *lua.LState, v world.Vec3) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("x", lua.LNumber(v[0]))
	t.RawSetString("y", lua.LNumber(v[1]))
	t.RawSetString("z", lua.LNumber(v[2]))
	return t
}

func vec3FromTable(t *lua.LTable) world.Vec3 {
	return world.Vec3{
		float64(lua.LVAsNumber(t.RawGetString("x"))),
		float64(lua.LVAsNumber(t.RawGetString("y"))),
		float64(lua.LVAsNumber(t.RawGetString("z"))),
	}
}

func cameraToTable(L *lua.LState, cam world.Camera) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("label", lua.LString(cam.Label))
	t.RawSetString("entity", lua.LNumber(cam.Attached))
	t.RawSetString("eye", f32TripleToTable(L, cam.Eye))
	t.RawSetString("target", f32TripleToTable(L, cam.Target))
	t.RawSetString("up", f32TripleToTable(L, cam.Up))
	t.RawSetString("aspect", lua.LNumber(cam.Aspect))
	t.RawSetString("fovy", lua.LNumber(cam.FovY))
	t.RawSetString("znear", lua.LNumber(cam.ZNear))
	t.RawSetString("zfar", lua.LNumber(cam.ZFar))
	t.RawSetString("yaw", lua.LNumber(cam.Yaw))
	t.RawSetString("pitch", lua.LNumber(cam.Pitch))
	t.RawSetString("speed", lua.LNumber(cam.Speed))
	t.RawSetString("sensitivity", lua.LNumber(cam.Sensitivity))
	return t
}

func cameraFromTable(t *lua.LTable) world.Camera {
	cam := world.Camera{
		Label:       lua.LVAsString(t.RawGetString("label")),
		Attached:    world.Handle(uint64(lua.LVAsNumber(t.RawGetString("entity")))),
		Aspect:      float64(lua.LVAsNumber(t.RawGetString("aspect"))),
		FovY:        float64(lua.LVAsNumber(t.RawGetString("fovy"))),
		ZNear:       float64(lua.LVAsNumber(t.RawGetString("znear"))),
		ZFar:        float64(lua.LVAsNumber(t.RawGetString("zfar"))),
		Yaw:         float64(lua.LVAsNumber(t.RawGetString("yaw"))),
		Pitch:       float64(lua.LVAsNumber(t.RawGetString("pitch"))),
		Speed:       float64(lua.LVAsNumber(t.RawGetString("speed"))),
		Sensitivity: float64(lua.LVAsNumber(t.RawGetString("sensitivity"))),
	}
	if eye, okv := t.RawGetString("eye").(*lua.LTable); okv {
		cam.Eye = f32TripleFromTable(eye)
	}
	if target, okv := t.RawGetString("target").(*lua.LTable); okv {
		cam.Target = f32TripleFromTable(target)
	}
	if up, okv := t.RawGetString("up").(*lua.LTable); okv {
		cam.Up = f32TripleFromTable(up)
	}
	return cam
}

func f32TripleToTable(L *lua.LState, v [3]float32) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("x", lua.LNumber(v[0]))
	t.RawSetString("y", lua.LNumber(v[1]))
	t.RawSetString("z", lua.LNumber(v[2]))
	return t
}

func f32TripleFromTable(t *lua.LTable) [3]float32 {
	return [3]float32{
		float32(lua.LVAsNumber(t.RawGetString("x"))),
		float32(lua.LVAsNumber(t.RawGetString("y"))),
		float32(lua.LVAsNumber(t.RawGetString("z"))),
	}
}
