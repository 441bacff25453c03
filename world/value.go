package world

import "math"

// ValueType identifies which variant a property Value holds.
type ValueType uint8

const (
	TypeString ValueType = iota
	TypeInt
	TypeLong
	TypeFloat
	TypeDouble
	TypeBool
	TypeVec3
)

// String returns the boundary-facing name of the type.
func (t ValueType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeLong:
		return "long"
	case TypeFloat:
		return "float"
	case TypeDouble:
		return "double"
	case TypeBool:
		return "bool"
	case TypeVec3:
		return "vec3"
	}
	return "unknown"
}

// Value is a dynamically typed property value: exactly one of string,
// int32, int64, float32, float64, bool, or a float32 triple. A get with
// the wrong expected type is a type mismatch, never a coercion.
type Value struct {
	str  string
	num  uint64
	vec  [3]float32
	typ  ValueType
	some bool
}

// Type returns the variant the value holds.
func (v Value) Type() ValueType { return v.typ }

// valid distinguishes the zero Value from any constructed one.
func (v Value) valid() bool { return v.some }

func String(s string) Value { return Value{typ: TypeString, str: s, some: true} }
func Int(i int32) Value     { return Value{typ: TypeInt, num: uint64(uint32(i)), some: true} }
func Long(i int64) Value    { return Value{typ: TypeLong, num: uint64(i), some: true} }
func Float(f float32) Value {
	return Value{typ: TypeFloat, num: uint64(math.Float32bits(f)), some: true}
}
func Double(f float64) Value {
	return Value{typ: TypeDouble, num: math.Float64bits(f), some: true}
}
func Bool(b bool) Value {
	var n uint64
	if b {
		n = 1
	}
	return Value{typ: TypeBool, num: n, some: true}
}
func Vec3Value(x, y, z float32) Value {
	return Value{typ: TypeVec3, vec: [3]float32{x, y, z}, some: true}
}

// AsString returns the string variant, or false on any other type.
func (v Value) AsString() (string, bool) {
	if v.typ != TypeString || !v.some {
		return "", false
	}
	return v.str, true
}

func (v Value) AsInt() (int32, bool) {
	if v.typ != TypeInt || !v.some {
		return 0, false
	}
	return int32(uint32(v.num)), true
}

func (v Value) AsLong() (int64, bool) {
	if v.typ != TypeLong || !v.some {
		return 0, false
	}
	return int64(v.num), true
}

func (v Value) AsFloat() (float32, bool) {
	if v.typ != TypeFloat || !v.some {
		return 0, false
	}
	return math.Float32frombits(uint32(v.num)), true
}

func (v Value) AsDouble() (float64, bool) {
	if v.typ != TypeDouble || !v.some {
		return 0, false
	}
	return math.Float64frombits(v.num), true
}

func (v Value) AsBool() (bool, bool) {
	if v.typ != TypeBool || !v.some {
		return false, false
	}
	return v.num != 0, true
}

func (v Value) AsVec3() ([3]float32, bool) {
	if v.typ != TypeVec3 || !v.some {
		return [3]float32{}, false
	}
	return v.vec, true
}
