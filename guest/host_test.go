package guest

import (
	"context"
	"testing"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wombatlabs/worldbridge/bridge"
	"github.com/wombatlabs/worldbridge/input"
	"github.com/wombatlabs/worldbridge/world"
)

// A minimal wasm guest assembled by hand: it exports its memory and a
// bump allocator, imports a slice of the host surface, and exports one
// forwarding function per import so tests can drive the host functions
// through a real guest call frame.
//
// Scratch addresses below allocBase are the test's; the bump allocator
// hands out blocks from allocBase up.
const (
	guestPages = 16
	allocBase  = 4096

	scratchLabel  = 64
	scratchHandle = 128
	scratchRecord = 256
	scratchValue  = 512
	scratchNeeded = 600
	scratchTriple = 704
)

func uleb(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

func wasmName(s string) []byte {
	return append(uleb(uint32(len(s))), s...)
}

func wasmSection(id byte, body []byte) []byte {
	out := append([]byte{id}, uleb(uint32(len(body)))...)
	return append(out, body...)
}

// forward pushes every parameter and tail-calls one imported function.
func forward(nparams int, target uint32) []byte {
	body := []byte{0x00} // no locals
	for i := 0; i < nparams; i++ {
		body = append(body, 0x20)
		body = append(body, uleb(uint32(i))...)
	}
	body = append(body, 0x10)
	body = append(body, uleb(target)...)
	return append(body, 0x0b)
}

func guestModule() []byte {
	const (
		i32 = 0x7f
		i64 = 0x7e
	)

	types := [][]byte{
		{0x60, 2, i32, i32, 1, i32},                     // 0: alloc, triple ops
		{0x60, 3, i32, i32, i32, 0},                     // 1: free
		{0x60, 3, i32, i32, i32, 1, i32},                // 2: resolve, key
		{0x60, 3, i32, i64, i32, 1, i32},                // 3: transform ops
		{0x60, 4, i32, i64, i32, i32, 1, i32},           // 4: scalar property get
		{0x60, 6, i32, i64, i32, i32, i32, i32, 1, i32}, // 5: string property get
		{0x60, 0, 1, i32},                               // 6: abi version
	}
	typeBody := uleb(uint32(len(types)))
	for _, ty := range types {
		typeBody = append(typeBody, ty...)
	}

	imports := []struct {
		name string
		typ  uint32
	}{
		{"resolve-entity", 2},
		{"get-transform", 3},
		{"set-transform", 3},
		{"get-int-property", 4},
		{"get-bool-property", 4},
		{"get-string-property", 5},
		{"get-entity-labels", 0},
		{"get-pressed-keys", 0},
		{"is-key-pressed", 2},
		{"abi-version", 6},
	}
	importBody := uleb(uint32(len(imports)))
	for _, imp := range imports {
		importBody = append(importBody, wasmName(Namespace)...)
		importBody = append(importBody, wasmName(imp.name)...)
		importBody = append(importBody, 0x00)
		importBody = append(importBody, uleb(imp.typ)...)
	}

	// Defined functions: world_alloc, world_free, then one forwarder
	// per import, in import order.
	funcTypes := []uint32{0, 1, 2, 3, 3, 4, 4, 5, 0, 0, 2, 6}
	funcBody := uleb(uint32(len(funcTypes)))
	for _, ti := range funcTypes {
		funcBody = append(funcBody, uleb(ti)...)
	}

	memBody := []byte{1, 0x00}
	memBody = append(memBody, uleb(guestPages)...)

	// One mutable i32 global: the bump pointer, starting at allocBase.
	globalBody := []byte{1, i32, 0x01, 0x41}
	globalBody = append(globalBody, uleb(allocBase)...) // allocBase < 2^13, same bytes signed
	globalBody = append(globalBody, 0x0b)

	exports := []struct {
		name string
		kind byte
		idx  uint32
	}{
		{"memory", 0x02, 0},
		{"world_alloc", 0x00, 10},
		{"world_free", 0x00, 11},
		{"call_resolve", 0x00, 12},
		{"call_get_transform", 0x00, 13},
		{"call_set_transform", 0x00, 14},
		{"call_get_int", 0x00, 15},
		{"call_get_bool", 0x00, 16},
		{"call_get_string", 0x00, 17},
		{"call_labels", 0x00, 18},
		{"call_pressed_keys", 0x00, 19},
		{"call_key_pressed", 0x00, 20},
		{"call_abi", 0x00, 21},
	}
	exportBody := uleb(uint32(len(exports)))
	for _, exp := range exports {
		exportBody = append(exportBody, wasmName(exp.name)...)
		exportBody = append(exportBody, exp.kind)
		exportBody = append(exportBody, uleb(exp.idx)...)
	}

	// world_alloc(size, align) rounds the bump pointer up to 8 bytes,
	// which satisfies every alignment the host requests.
	allocCode := []byte{
		0x01, 0x01, i32, // one scratch local
		0x23, 0x00, // global.get bump
		0x41, 0x07, // i32.const 7
		0x6a,       // i32.add
		0x41, 0x78, // i32.const -8
		0x71,       // i32.and
		0x22, 0x02, // local.tee aligned
		0x20, 0x00, // local.get size
		0x6a,       // i32.add
		0x24, 0x00, // global.set bump
		0x20, 0x02, // local.get aligned
		0x0b,
	}
	freeCode := []byte{0x00, 0x0b}

	bodies := [][]byte{
		allocCode,
		freeCode,
		forward(3, 0), // call_resolve
		forward(3, 1), // call_get_transform
		forward(3, 2), // call_set_transform
		forward(4, 3), // call_get_int
		forward(4, 4), // call_get_bool
		forward(6, 5), // call_get_string
		forward(2, 6), // call_labels
		forward(2, 7), // call_pressed_keys
		forward(3, 8), // call_key_pressed
		forward(0, 9), // call_abi
	}
	codeBody := uleb(uint32(len(bodies)))
	for _, b := range bodies {
		codeBody = append(codeBody, uleb(uint32(len(b)))...)
		codeBody = append(codeBody, b...)
	}

	mod := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	mod = append(mod, wasmSection(1, typeBody)...)
	mod = append(mod, wasmSection(2, importBody)...)
	mod = append(mod, wasmSection(3, funcBody)...)
	mod = append(mod, wasmSection(5, memBody)...)
	mod = append(mod, wasmSection(6, globalBody)...)
	mod = append(mod, wasmSection(7, exportBody)...)
	mod = append(mod, wasmSection(10, codeBody)...)
	return mod
}

func newGuestFixture(t *testing.T) (*HostModule, api.Module, uint32, *world.World, *input.Snapshot) {
	t.Helper()
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	t.Cleanup(func() { rt.Close(ctx) })

	host := NewHostModule()
	if _, err := host.Instantiate(ctx, rt); err != nil {
		t.Fatalf("host module: %v", err)
	}
	guest, err := rt.Instantiate(ctx, guestModule())
	if err != nil {
		t.Fatalf("guest module: %v", err)
	}

	w := world.NewWorld()
	h := w.Spawn("Player")
	w.SetProperty(h, "health", world.Int(100))
	w.SetProperty(h, "name", world.String("Adventurer"))

	snap := input.NewSnapshot()
	s := bridge.Open(w, input.NewCommandQueue(8))
	s.BeginFrame(snap)
	t.Cleanup(s.Close)

	return host, guest, uint32(host.AddSession(s)), w, snap
}

func callGuest(t *testing.T, mod api.Module, name string, args ...uint64) int32 {
	t.Helper()
	fn := mod.ExportedFunction(name)
	if fn == nil {
		t.Fatalf("guest does not export %s", name)
	}
	results, err := fn.Call(context.Background(), args...)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return int32(uint32(results[0]))
}

func writeGuestString(t *testing.T, mod api.Module, ptr uint32, s string) {
	t.Helper()
	if !mod.Memory().Write(ptr, append([]byte(s), 0)) {
		t.Fatalf("write %q at %d", s, ptr)
	}
}

func TestHostModuleExports(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	mod, err := NewHostModule().Instantiate(ctx, rt)
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}

	names := []string{
		"abi-version", "has-capability",
		"resolve-entity", "get-transform", "get-local-transform",
		"set-transform", "set-parent", "get-entity-labels",
		"get-string-property", "set-string-property",
		"get-int-property", "set-int-property",
		"get-long-property", "set-long-property",
		"get-float-property", "set-float-property",
		"get-double-property", "set-double-property",
		"get-bool-property", "set-bool-property",
		"get-vec3-property", "set-vec3-property",
		"get-camera", "get-attached-camera", "set-camera",
		"is-key-pressed", "is-mouse-button-pressed",
		"get-mouse-position", "get-mouse-delta", "get-last-mouse-pos",
		"is-cursor-locked", "is-cursor-hidden",
		"set-cursor-locked", "set-cursor-hidden", "get-pressed-keys",
	}
	defs := mod.ExportedFunctionDefinitions()
	for _, name := range names {
		if _, ok := defs[name]; !ok {
			t.Errorf("missing export %s", name)
		}
	}
}

func TestGuestResolveAndTransform(t *testing.T) {
	_, guest, ref, w, _ := newGuestFixture(t)
	writeGuestString(t, guest, scratchLabel, "Player")

	if st := callGuest(t, guest, "call_resolve", uint64(ref), scratchLabel, scratchHandle); st != bridge.StatusOK {
		t.Fatalf("resolve status = %d", st)
	}
	rawHandle, _ := guest.Memory().ReadUint64Le(scratchHandle)
	want, _ := w.Resolve("Player")
	if world.Handle(rawHandle) != want {
		t.Fatalf("handle = %#x, want %#x", rawHandle, uint64(want))
	}

	mem := wasmMemory{mem: guest.Memory()}
	in := world.IdentityTransform()
	in.Position = world.Vec3{3, 4, 5}
	if err := writeTransform(mem, scratchRecord, in); err != nil {
		t.Fatalf("stage record: %v", err)
	}
	if st := callGuest(t, guest, "call_set_transform", uint64(ref), rawHandle, scratchRecord); st != bridge.StatusOK {
		t.Fatalf("set-transform status = %d", st)
	}
	got, _ := w.Transform(want)
	if got.Position != in.Position {
		t.Errorf("host position = %v", got.Position)
	}

	if st := callGuest(t, guest, "call_get_transform", uint64(ref), rawHandle, scratchRecord+96); st != bridge.StatusOK {
		t.Fatalf("get-transform status = %d", st)
	}
	back, err := readTransform(mem, scratchRecord+96)
	if err != nil {
		t.Fatalf("read record: %v", err)
	}
	if back != in {
		t.Errorf("round trip: %+v != %+v", back, in)
	}
}

func TestGuestPropertyAccess(t *testing.T) {
	_, guest, ref, _, _ := newGuestFixture(t)
	writeGuestString(t, guest, scratchLabel, "Player")
	callGuest(t, guest, "call_resolve", uint64(ref), scratchLabel, scratchHandle)
	handle, _ := guest.Memory().ReadUint64Le(scratchHandle)

	writeGuestString(t, guest, scratchLabel, "health")
	if st := callGuest(t, guest, "call_get_int", uint64(ref), handle, scratchLabel, scratchValue); st != bridge.StatusOK {
		t.Fatalf("get-int status = %d", st)
	}
	if v, _ := guest.Memory().ReadUint32Le(scratchValue); int32(v) != 100 {
		t.Errorf("health = %d", int32(v))
	}
}

func TestGuestStatusCodes(t *testing.T) {
	host, guest, ref, _, _ := newGuestFixture(t)
	writeGuestString(t, guest, scratchLabel, "Player")
	callGuest(t, guest, "call_resolve", uint64(ref), scratchLabel, scratchHandle)
	handle, _ := guest.Memory().ReadUint64Le(scratchHandle)

	// Null session ref.
	if st := callGuest(t, guest, "call_resolve", 0, scratchLabel, scratchHandle); st != bridge.StatusNullPointer {
		t.Errorf("null session status = %d", st)
	}

	// Dangling session ref.
	w2 := world.NewWorld()
	s2 := bridge.Open(w2, nil)
	ref2 := host.AddSession(s2)
	host.DropSession(ref2)
	s2.Close()
	if st := callGuest(t, guest, "call_resolve", uint64(ref2), scratchLabel, scratchHandle); st != bridge.StatusInvalidHandle {
		t.Errorf("dangling session status = %d", st)
	}

	// Unknown entity.
	writeGuestString(t, guest, scratchLabel, "Ghost")
	if st := callGuest(t, guest, "call_resolve", uint64(ref), scratchLabel, scratchHandle+8); st != bridge.StatusNotFound {
		t.Errorf("missing entity status = %d", st)
	}

	// Bool read of an int property.
	writeGuestString(t, guest, scratchLabel, "health")
	if st := callGuest(t, guest, "call_get_bool", uint64(ref), handle, scratchLabel, scratchValue); st != bridge.StatusTypeMismatch {
		t.Errorf("type mismatch status = %d", st)
	}

	// Unknown keycode.
	if st := callGuest(t, guest, "call_key_pressed", uint64(ref), 9999, scratchValue); st != bridge.StatusInvalidKey {
		t.Errorf("bad keycode status = %d", st)
	}

	// Null out-pointer.
	writeGuestString(t, guest, scratchLabel, "Player")
	if st := callGuest(t, guest, "call_resolve", uint64(ref), scratchLabel, 0); st != bridge.StatusNullPointer {
		t.Errorf("null out-pointer status = %d", st)
	}
}

func TestGuestStringProperty(t *testing.T) {
	_, guest, ref, _, _ := newGuestFixture(t)
	writeGuestString(t, guest, scratchLabel, "Player")
	callGuest(t, guest, "call_resolve", uint64(ref), scratchLabel, scratchHandle)
	handle, _ := guest.Memory().ReadUint64Le(scratchHandle)
	writeGuestString(t, guest, scratchLabel, "name")

	// Roomy buffer: full value, needed includes the terminator.
	st := callGuest(t, guest, "call_get_string", uint64(ref), handle, scratchLabel, scratchValue, 32, scratchNeeded)
	if st != bridge.StatusOK {
		t.Fatalf("get-string status = %d", st)
	}
	data, _ := guest.Memory().Read(scratchValue, 11)
	if string(data[:10]) != "Adventurer" || data[10] != 0 {
		t.Errorf("value = %q", data)
	}
	if needed, _ := guest.Memory().ReadUint32Le(scratchNeeded); needed != 11 {
		t.Errorf("needed = %d", needed)
	}

	// Short buffer: truncated NUL-terminated prefix plus the size to
	// retry with.
	st = callGuest(t, guest, "call_get_string", uint64(ref), handle, scratchLabel, scratchValue, 4, scratchNeeded)
	if st != bridge.StatusBufferSmall {
		t.Fatalf("short buffer status = %d", st)
	}
	data, _ = guest.Memory().Read(scratchValue, 4)
	if string(data[:3]) != "Adv" || data[3] != 0 {
		t.Errorf("prefix = %q", data)
	}
	if needed, _ := guest.Memory().ReadUint32Le(scratchNeeded); needed != 11 {
		t.Errorf("needed after truncation = %d", needed)
	}
}

func TestGuestStringPropertyHugeCapacity(t *testing.T) {
	_, guest, ref, _, _ := newGuestFixture(t)
	writeGuestString(t, guest, scratchLabel, "Player")
	callGuest(t, guest, "call_resolve", uint64(ref), scratchLabel, scratchHandle)
	handle, _ := guest.Memory().ReadUint64Le(scratchHandle)
	writeGuestString(t, guest, scratchLabel, "name")

	// A capacity claim beyond the guest's own memory must not drive a
	// matching host allocation; the call clamps and completes.
	st := callGuest(t, guest, "call_get_string", uint64(ref), handle, scratchLabel, scratchValue, 0xFFFF_FFFF, scratchNeeded)
	if st != bridge.StatusOK {
		t.Fatalf("huge capacity status = %d", st)
	}
	data, _ := guest.Memory().Read(scratchValue, 11)
	if string(data[:10]) != "Adventurer" || data[10] != 0 {
		t.Errorf("value = %q", data)
	}
}

func TestGuestEntityLabels(t *testing.T) {
	_, guest, ref, w, _ := newGuestFixture(t)
	w.Spawn("Enemy")

	if st := callGuest(t, guest, "call_labels", uint64(ref), scratchTriple); st != bridge.StatusOK {
		t.Fatalf("labels status = %d", st)
	}
	tablePtr, _ := guest.Memory().ReadUint32Le(scratchTriple + triplePtr)
	count, _ := guest.Memory().ReadUint32Le(scratchTriple + tripleLen)
	if count != 2 {
		t.Fatalf("label count = %d", count)
	}
	if tablePtr < allocBase {
		t.Fatalf("table at %d, below the guest allocator base", tablePtr)
	}

	want := []string{"Player", "Enemy"}
	for i, label := range want {
		sptr, _ := guest.Memory().ReadUint32Le(tablePtr + uint32(i)*8)
		slen, _ := guest.Memory().ReadUint32Le(tablePtr + uint32(i)*8 + 4)
		if slen != uint32(len(label)) {
			t.Errorf("label %d len = %d", i, slen)
			continue
		}
		data, _ := guest.Memory().Read(sptr, slen)
		if string(data) != label {
			t.Errorf("label %d = %q, want %q", i, data, label)
		}
	}
}

func TestGuestPressedKeys(t *testing.T) {
	_, guest, ref, _, snap := newGuestFixture(t)
	snap.Press(input.KeyW)
	snap.Press(input.KeySpace)

	if st := callGuest(t, guest, "call_pressed_keys", uint64(ref), scratchTriple); st != bridge.StatusOK {
		t.Fatalf("pressed-keys status = %d", st)
	}
	ptr, _ := guest.Memory().ReadUint32Le(scratchTriple + triplePtr)
	count, _ := guest.Memory().ReadUint32Le(scratchTriple + tripleLen)
	if count != 2 {
		t.Fatalf("key count = %d", count)
	}
	first, _ := guest.Memory().ReadUint32Le(ptr)
	second, _ := guest.Memory().ReadUint32Le(ptr + 4)
	if input.Key(first) != input.KeyW {
		t.Errorf("first key = %d", first)
	}
	if input.Key(second) != input.KeySpace {
		t.Errorf("second key = %d", second)
	}
}

func TestGuestAbiVersion(t *testing.T) {
	_, guest, _, _, _ := newGuestFixture(t)

	raw := callGuest(t, guest, "call_abi")
	major, minor := bridge.AbiVersion()
	if uint32(raw) != uint32(major)<<16|uint32(minor) {
		t.Errorf("abi word = %#x", uint32(raw))
	}
}
