package guest

import (
	"encoding/binary"
	goerrors "errors"
	"math"
	"testing"

	"github.com/wombatlabs/worldbridge/errors"
	"github.com/wombatlabs/worldbridge/world"
)

// fakeMemory is a flat byte array standing in for guest linear memory.
type fakeMemory struct {
	data []byte
}

func newFakeMemory(size int) *fakeMemory {
	return &fakeMemory{data: make([]byte, size)}
}

func (m *fakeMemory) check(offset, length uint32) error {
	if uint64(offset)+uint64(length) > uint64(len(m.data)) {
		return errors.OutOfBounds(errors.PhaseGuest, offset, length, uint32(len(m.data)))
	}
	return nil
}

func (m *fakeMemory) Read(offset, length uint32) ([]byte, error) {
	if err := m.check(offset, length); err != nil {
		return nil, err
	}
	return m.data[offset : offset+length], nil
}

func (m *fakeMemory) Write(offset uint32, data []byte) error {
	if err := m.check(offset, uint32(len(data))); err != nil {
		return err
	}
	copy(m.data[offset:], data)
	return nil
}

func (m *fakeMemory) ReadU8(offset uint32) (uint8, error) {
	if err := m.check(offset, 1); err != nil {
		return 0, err
	}
	return m.data[offset], nil
}

func (m *fakeMemory) ReadU32(offset uint32) (uint32, error) {
	if err := m.check(offset, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(m.data[offset:]), nil
}

func (m *fakeMemory) ReadU64(offset uint32) (uint64, error) {
	if err := m.check(offset, 8); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(m.data[offset:]), nil
}

func (m *fakeMemory) WriteU8(offset uint32, v uint8) error {
	if err := m.check(offset, 1); err != nil {
		return err
	}
	m.data[offset] = v
	return nil
}

func (m *fakeMemory) WriteU32(offset, v uint32) error {
	if err := m.check(offset, 4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(m.data[offset:], v)
	return nil
}

func (m *fakeMemory) WriteU64(offset uint32, v uint64) error {
	if err := m.check(offset, 8); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(m.data[offset:], v)
	return nil
}

func kindOf(t *testing.T, err error) errors.Kind {
	t.Helper()
	var be *errors.Error
	if !goerrors.As(err, &be) {
		t.Fatalf("not a boundary error: %v", err)
	}
	return be.Kind
}

func TestReadCString(t *testing.T) {
	mem := newFakeMemory(64)
	copy(mem.data[8:], "Player\x00")

	s, err := readCString(mem, 8)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if s != "Player" {
		t.Errorf("s = %q", s)
	}

	// Empty string.
	mem.data[20] = 0
	if s, err := readCString(mem, 20); err != nil || s != "" {
		t.Errorf("empty = %q, %v", s, err)
	}

	// Null pointer.
	if _, err := readCString(mem, 0); kindOf(t, err) != errors.KindNilPointer {
		t.Errorf("null ptr kind = %v", kindOf(t, err))
	}
}

func TestReadCStringInvalidUTF8(t *testing.T) {
	mem := newFakeMemory(64)
	copy(mem.data[4:], []byte{0xff, 0xfe, 0x00})

	_, err := readCString(mem, 4)
	if kindOf(t, err) != errors.KindInvalidUTF8 {
		t.Errorf("kind = %v", kindOf(t, err))
	}
}

func TestReadCStringMissingTerminator(t *testing.T) {
	// A memory with no NUL anywhere reachable: the scan runs off the
	// end and reports out-of-bounds rather than spinning.
	mem := newFakeMemory(32)
	for i := range mem.data {
		mem.data[i] = 'a'
	}
	_, err := readCString(mem, 4)
	if kindOf(t, err) != errors.KindOutOfBounds {
		t.Errorf("kind = %v", kindOf(t, err))
	}
}

func TestWriteCString(t *testing.T) {
	mem := newFakeMemory(64)

	needed, err := writeCString(mem, 8, 16, "Player")
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if needed != 7 {
		t.Errorf("needed = %d", needed)
	}
	if string(mem.data[8:14]) != "Player" || mem.data[14] != 0 {
		t.Errorf("written = %q", mem.data[8:15])
	}
}

func TestWriteCStringTruncates(t *testing.T) {
	mem := newFakeMemory(64)

	needed, err := writeCString(mem, 8, 4, "Player")
	if kindOf(t, err) != errors.KindBufferTooSmall {
		t.Fatalf("kind = %v", kindOf(t, err))
	}
	if needed != 7 {
		t.Errorf("needed = %d", needed)
	}
	// Prefix fits capacity-1 bytes plus the terminator.
	if string(mem.data[8:11]) != "Pla" || mem.data[11] != 0 {
		t.Errorf("prefix = %q", mem.data[8:12])
	}

	// Zero capacity writes nothing but still reports needed.
	needed, err = writeCString(mem, 8, 0, "Player")
	if kindOf(t, err) != errors.KindBufferTooSmall || needed != 7 {
		t.Errorf("zero cap: needed=%d err=%v", needed, err)
	}

	// Null pointer.
	if _, err := writeCString(mem, 0, 8, "x"); kindOf(t, err) != errors.KindNilPointer {
		t.Error("null ptr accepted")
	}
}

func TestTransformRecordRoundTrip(t *testing.T) {
	mem := newFakeMemory(256)

	in := world.Transform{
		Position: world.Vec3{1.5, -2.25, 1e100},
		Rotation: world.Quat{0, 1, 0, 0},
		Scale:    world.Vec3{2, 0.5, 1},
	}
	if err := writeTransform(mem, 16, in); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := readTransform(mem, 16)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	// Bit-exact: no precision loss through the record.
	if out != in {
		t.Errorf("round trip: %+v != %+v", out, in)
	}

	// Field offsets are part of the surface: spot-check rotation W.
	raw, _ := mem.ReadU64(16 + transformRotW)
	if raw == 0 {
		t.Error("rotation w not at its fixed offset")
	}
}

func TestTransformRecordBounds(t *testing.T) {
	// Record straddling the end of memory.
	mem := newFakeMemory(TransformSize / 2)
	if err := writeTransform(mem, 8, world.IdentityTransform()); kindOf(t, err) != errors.KindOutOfBounds {
		t.Errorf("short write kind = %v", kindOf(t, err))
	}
	if _, err := readTransform(mem, 8); kindOf(t, err) != errors.KindOutOfBounds {
		t.Errorf("short read kind = %v", kindOf(t, err))
	}

	// Null record pointer.
	if err := writeTransform(mem, 0, world.Transform{}); kindOf(t, err) != errors.KindNilPointer {
		t.Errorf("null write kind = %v", kindOf(t, err))
	}
	if _, err := readTransform(mem, 0); kindOf(t, err) != errors.KindNilPointer {
		t.Errorf("null read kind = %v", kindOf(t, err))
	}
}

func TestCameraRecordRoundTrip(t *testing.T) {
	mem := newFakeMemory(256)

	in := world.Camera{
		Attached:    world.Handle(0x1_0000_0003),
		Eye:         [3]float32{1, 2, 3},
		Target:      [3]float32{0, 0, -1},
		Up:          [3]float32{0, 1, 0},
		Aspect:      16.0 / 9.0,
		FovY:        60,
		ZNear:       0.1,
		ZFar:        1000,
		Yaw:         1.25,
		Pitch:       -0.5,
		Speed:       4,
		Sensitivity: 0.002,
	}
	if err := writeCamera(mem, 32, in); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := readCamera(mem, 32)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	// The label never travels through the record.
	in.Label = ""
	if out != in {
		t.Errorf("round trip: %+v != %+v", out, in)
	}
}

func TestWriteTriple(t *testing.T) {
	mem := newFakeMemory(64)
	if err := writeTriple(mem, 8, 0x100, 5, 8); err != nil {
		t.Fatalf("write: %v", err)
	}
	p, _ := mem.ReadU32(8 + triplePtr)
	l, _ := mem.ReadU32(8 + tripleLen)
	c, _ := mem.ReadU32(8 + tripleCap)
	if p != 0x100 || l != 5 || c != 8 {
		t.Errorf("triple = {%#x, %d, %d}", p, l, c)
	}
	if err := writeTriple(mem, 0, 1, 1, 1); kindOf(t, err) != errors.KindNilPointer {
		t.Error("null triple pointer accepted")
	}
}

func TestF64RoundTrip(t *testing.T) {
	mem := newFakeMemory(16)
	values := []float64{0, math.Copysign(0, -1), 1.5, -1e308, math.NaN()}
	for _, v := range values {
		if err := writeF64(mem, 0, v); err != nil {
			t.Fatalf("write %v: %v", v, err)
		}
		got, err := readF64(mem, 0)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		// Compare bits so -0.0 and NaN payloads stay distinguishable.
		if math.Float64bits(got) != math.Float64bits(v) {
			t.Errorf("round trip %v -> %v", v, got)
		}
	}
}
