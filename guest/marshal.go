package guest

import (
	"math"
	"unicode/utf8"

	wb "github.com/wombatlabs/worldbridge"
	"github.com/wombatlabs/worldbridge/errors"
	"github.com/wombatlabs/worldbridge/world"
)

// maxCString bounds label and value scans so a guest that forgot the
// NUL terminator fails cleanly instead of walking its whole memory.
const maxCString = 1 << 16

// readCString reads a NUL-terminated byte sequence from guest memory.
func readCString(mem wb.Memory, ptr uint32) (string, error) {
	if ptr == 0 {
		return "", errors.NilPointer(errors.PhaseGuest, "string")
	}
	buf := make([]byte, 0, 32)
	for i := uint32(0); i < maxCString; i++ {
		b, err := mem.ReadU8(ptr + i)
		if err != nil {
			return "", err
		}
		if b == 0 {
			s := string(buf)
			if !utf8.ValidString(s) {
				return "", errors.InvalidUTF8(errors.PhaseGuest, buf)
			}
			return s, nil
		}
		buf = append(buf, b)
	}
	return "", errors.InvalidInput(errors.PhaseGuest, "string missing NUL terminator")
}

// writeCString copies s into a caller-supplied buffer of the given
// byte capacity, always NUL-terminated, never overflowing. The
// returned needed count includes the terminator; when the capacity is
// short, a truncated prefix is written and the error reports
// buffer-too-small so the caller can retry larger.
func writeCString(mem wb.Memory, ptr, capacity uint32, s string) (needed uint32, err error) {
	if ptr == 0 {
		return 0, errors.NilPointer(errors.PhaseGuest, "string buffer")
	}
	needed = uint32(len(s)) + 1
	if capacity == 0 {
		return needed, errors.BufferTooSmall(errors.PhaseGuest, int(needed), 0)
	}
	n := uint32(len(s))
	if n > capacity-1 {
		n = capacity - 1
	}
	if err := mem.Write(ptr, append([]byte(s[:n]), 0)); err != nil {
		return needed, err
	}
	if needed > capacity {
		return needed, errors.BufferTooSmall(errors.PhaseGuest, int(needed), int(capacity))
	}
	return needed, nil
}

func readF32(mem wb.Memory, offset uint32) (float32, error) {
	bits, err := mem.ReadU32(offset)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

func writeF32(mem wb.Memory, offset uint32, v float32) error {
	return mem.WriteU32(offset, math.Float32bits(v))
}

func readF64(mem wb.Memory, offset uint32) (float64, error) {
	bits, err := mem.ReadU64(offset)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

func writeF64(mem wb.Memory, offset uint32, v float64) error {
	return mem.WriteU64(offset, math.Float64bits(v))
}

// readTransform decodes a transform record from guest memory.
func readTransform(mem wb.Memory, ptr uint32) (world.Transform, error) {
	if ptr == 0 {
		return world.Transform{}, errors.NilPointer(errors.PhaseGuest, "transform record")
	}
	var t world.Transform
	fields := []struct {
		offset uint32
		dst    *float64
	}{
		{transformPosX, &t.Position[0]},
		{transformPosY, &t.Position[1]},
		{transformPosZ, &t.Position[2]},
		{transformRotX, &t.Rotation[0]},
		{transformRotY, &t.Rotation[1]},
		{transformRotZ, &t.Rotation[2]},
		{transformRotW, &t.Rotation[3]},
		{transformSclX, &t.Scale[0]},
		{transformSclY, &t.Scale[1]},
		{transformSclZ, &t.Scale[2]},
	}
	for _, f := range fields {
		v, err := readF64(mem, ptr+f.offset)
		if err != nil {
			return world.Transform{}, err
		}
		*f.dst = v
	}
	return t, nil
}

// writeTransform encodes a transform record into guest memory.
func writeTransform(mem wb.Memory, ptr uint32, t world.Transform) error {
	if ptr == 0 {
		return errors.NilPointer(errors.PhaseGuest, "transform record")
	}
	fields := []struct {
		offset uint32
		src    float64
	}{
		{transformPosX, t.Position[0]},
		{transformPosY, t.Position[1]},
		{transformPosZ, t.Position[2]},
		{transformRotX, t.Rotation[0]},
		{transformRotY, t.Rotation[1]},
		{transformRotZ, t.Rotation[2]},
		{transformRotW, t.Rotation[3]},
		{transformSclX, t.Scale[0]},
		{transformSclY, t.Scale[1]},
		{transformSclZ, t.Scale[2]},
	}
	for _, f := range fields {
		if err := writeF64(mem, ptr+f.offset, f.src); err != nil {
			return err
		}
	}
	return nil
}

// readCamera decodes the camera record (label excluded; it travels
// through its own caller buffer).
func readCamera(mem wb.Memory, ptr uint32) (world.Camera, error) {
	if ptr == 0 {
		return world.Camera{}, errors.NilPointer(errors.PhaseGuest, "camera record")
	}
	var cam world.Camera
	entity, err := mem.ReadU64(ptr + cameraEntity)
	if err != nil {
		return world.Camera{}, err
	}
	cam.Attached = world.Handle(entity)

	triples := []struct {
		offset uint32
		dst    *[3]float32
	}{
		{cameraEye, &cam.Eye},
		{cameraTarget, &cam.Target},
		{cameraUp, &cam.Up},
	}
	for _, tr := range triples {
		for i := uint32(0); i < 3; i++ {
			v, err := readF32(mem, ptr+tr.offset+i*4)
			if err != nil {
				return world.Camera{}, err
			}
			tr.dst[i] = v
		}
	}

	scalars := []struct {
		offset uint32
		dst    *float64
	}{
		{cameraAspect, &cam.Aspect},
		{cameraFovY, &cam.FovY},
		{cameraZNear, &cam.ZNear},
		{cameraZFar, &cam.ZFar},
		{cameraYaw, &cam.Yaw},
		{cameraPitch, &cam.Pitch},
		{cameraSpeed, &cam.Speed},
		{cameraSens, &cam.Sensitivity},
	}
	for _, f := range scalars {
		v, err := readF64(mem, ptr+f.offset)
		if err != nil {
			return world.Camera{}, err
		}
		*f.dst = v
	}
	return cam, nil
}

// writeCamera encodes the camera record into guest memory.
func writeCamera(mem wb.Memory, ptr uint32, cam world.Camera) error {
	if ptr == 0 {
		return errors.NilPointer(errors.PhaseGuest, "camera record")
	}
	if err := mem.WriteU64(ptr+cameraEntity, uint64(cam.Attached)); err != nil {
		return err
	}
	triples := []struct {
		offset uint32
		src    [3]float32
	}{
		{cameraEye, cam.Eye},
		{cameraTarget, cam.Target},
		{cameraUp, cam.Up},
	}
	for _, tr := range triples {
		for i := uint32(0); i < 3; i++ {
			if err := writeF32(mem, ptr+tr.offset+i*4, tr.src[i]); err != nil {
				return err
			}
		}
	}
	scalars := []struct {
		offset uint32
		src    float64
	}{
		{cameraAspect, cam.Aspect},
		{cameraFovY, cam.FovY},
		{cameraZNear, cam.ZNear},
		{cameraZFar, cam.ZFar},
		{cameraYaw, cam.Yaw},
		{cameraPitch, cam.Pitch},
		{cameraSpeed, cam.Speed},
		{cameraSens, cam.Sensitivity},
	}
	for _, f := range scalars {
		if err := writeF64(mem, ptr+f.offset, f.src); err != nil {
			return err
		}
	}
	return nil
}

// writeTriple writes a {ptr, len, cap} buffer triple.
func writeTriple(mem wb.Memory, ptr, bufPtr, bufLen, bufCap uint32) error {
	if ptr == 0 {
		return errors.NilPointer(errors.PhaseGuest, "buffer triple")
	}
	if err := mem.WriteU32(ptr+triplePtr, bufPtr); err != nil {
		return err
	}
	if err := mem.WriteU32(ptr+tripleLen, bufLen); err != nil {
		return err
	}
	return mem.WriteU32(ptr+tripleCap, bufCap)
}
