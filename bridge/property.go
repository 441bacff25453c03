package bridge

import (
	"github.com/wombatlabs/worldbridge/errors"
	"github.com/wombatlabs/worldbridge/world"
)

// property fetches the value under label with the expected type.
// Absence and type mismatch are distinct failures: a property written
// under another type is never coerced, and a never-written label is
// never defaulted.
func (s *Session) property(op string, h world.Handle, label string, want world.ValueType) (world.Value, error) {
	if err := s.guard(); err != nil {
		return world.Value{}, s.fail(op, err)
	}
	if err := s.entity(op, h); err != nil {
		return world.Value{}, err
	}
	v, ok := s.world.Property(h, label)
	if !ok {
		return world.Value{}, s.fail(op, errors.NotFound(errors.PhaseAccess, "property", label))
	}
	if v.Type() != want {
		return world.Value{}, s.fail(op, errors.TypeMismatch(errors.PhaseAccess, label, want.String(), v.Type().String()))
	}
	return v, nil
}

func (s *Session) setProperty(op string, h world.Handle, label string, v world.Value) error {
	if err := s.guard(); err != nil {
		return s.fail(op, err)
	}
	if err := s.entity(op, h); err != nil {
		return err
	}
	s.world.SetProperty(h, label, v)
	return nil
}

// StringProperty copies the string property into the caller-supplied
// buffer, always NUL-terminated and never overflowing. The returned
// needed count is the full byte length including the terminator,
// whether or not it fit; on truncation the error kind is
// buffer-too-small and the buffer holds a NUL-terminated prefix, so
// the caller can retry with a larger buffer.
func (s *Session) StringProperty(h world.Handle, label string, buf []byte) (needed int, err error) {
	v, err := s.property("get-string-property", h, label, world.TypeString)
	if err != nil {
		return 0, err
	}
	str, _ := v.AsString()
	needed = len(str) + 1
	if len(buf) == 0 {
		return needed, s.fail("get-string-property",
			errors.BufferTooSmall(errors.PhaseAccess, needed, len(buf)))
	}
	n := copy(buf, str)
	if n == len(buf) && needed > len(buf) {
		n = len(buf) - 1
	}
	buf[n] = 0
	if needed > len(buf) {
		return needed, s.fail("get-string-property",
			errors.BufferTooSmall(errors.PhaseAccess, needed, len(buf)))
	}
	return needed, nil
}

// SetStringProperty stores a string property.
func (s *Session) SetStringProperty(h world.Handle, label, value string) error {
	return s.setProperty("set-string-property", h, label, world.String(value))
}

// IntProperty returns an int32 property.
func (s *Session) IntProperty(h world.Handle, label string) (int32, error) {
	v, err := s.property("get-int-property", h, label, world.TypeInt)
	if err != nil {
		return 0, err
	}
	i, _ := v.AsInt()
	return i, nil
}

// SetIntProperty stores an int32 property.
func (s *Session) SetIntProperty(h world.Handle, label string, value int32) error {
	return s.setProperty("set-int-property", h, label, world.Int(value))
}

// LongProperty returns an int64 property.
func (s *Session) LongProperty(h world.Handle, label string) (int64, error) {
	v, err := s.property("get-long-property", h, label, world.TypeLong)
	if err != nil {
		return 0, err
	}
	i, _ := v.AsLong()
	return i, nil
}

// SetLongProperty stores an int64 property.
func (s *Session) SetLongProperty(h world.Handle, label string, value int64) error {
	return s.setProperty("set-long-property", h, label, world.Long(value))
}

// FloatProperty returns a float32 property.
func (s *Session) FloatProperty(h world.Handle, label string) (float32, error) {
	v, err := s.property("get-float-property", h, label, world.TypeFloat)
	if err != nil {
		return 0, err
	}
	f, _ := v.AsFloat()
	return f, nil
}

// SetFloatProperty stores a float32 property.
func (s *Session) SetFloatProperty(h world.Handle, label string, value float32) error {
	return s.setProperty("set-float-property", h, label, world.Float(value))
}

// DoubleProperty returns a float64 property.
func (s *Session) DoubleProperty(h world.Handle, label string) (float64, error) {
	v, err := s.property("get-double-property", h, label, world.TypeDouble)
	if err != nil {
		return 0, err
	}
	f, _ := v.AsDouble()
	return f, nil
}

// SetDoubleProperty stores a float64 property.
func (s *Session) SetDoubleProperty(h world.Handle, label string, value float64) error {
	return s.setProperty("set-double-property", h, label, world.Double(value))
}

// BoolProperty returns a bool property.
func (s *Session) BoolProperty(h world.Handle, label string) (bool, error) {
	v, err := s.property("get-bool-property", h, label, world.TypeBool)
	if err != nil {
		return false, err
	}
	b, _ := v.AsBool()
	return b, nil
}

// SetBoolProperty stores a bool property.
func (s *Session) SetBoolProperty(h world.Handle, label string, value bool) error {
	return s.setProperty("set-bool-property", h, label, world.Bool(value))
}

// Vec3Property returns a vector property as three scalar components;
// composite records stay on the engine side of the boundary.
func (s *Session) Vec3Property(h world.Handle, label string) (x, y, z float32, err error) {
	v, err := s.property("get-vec3-property", h, label, world.TypeVec3)
	if err != nil {
		return 0, 0, 0, err
	}
	vec, _ := v.AsVec3()
	return vec[0], vec[1], vec[2], nil
}

// SetVec3Property stores a vector property from three scalars.
func (s *Session) SetVec3Property(h world.Handle, label string, x, y, z float32) error {
	return s.setProperty("set-vec3-property", h, label, world.Vec3Value(x, y, z))
}
