package world

import "math"

// Vec3 is a position or scale triple.
type Vec3 [3]float64

// Quat is a rotation quaternion in (x, y, z, w) order.
type Quat [4]float64

// Identity is the no-rotation quaternion.
var Identity = Quat{0, 0, 0, 1}

// Transform is the spatial state of an entity. Field order is part of
// the boundary record layout: position, rotation, scale.
type Transform struct {
	Position Vec3
	Rotation Quat
	Scale    Vec3
}

// IdentityTransform returns the transform every fresh entity carries.
func IdentityTransform() Transform {
	return Transform{
		Rotation: Identity,
		Scale:    Vec3{1, 1, 1},
	}
}

// Normalized returns q scaled to unit length. A unit quaternion passes
// through bit-for-bit; a zero-length quaternion becomes the identity.
func (q Quat) Normalized() Quat {
	n2 := q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3]
	if n2 == 1 {
		return q
	}
	if n2 == 0 {
		return Identity
	}
	n := math.Sqrt(n2)
	return Quat{q[0] / n, q[1] / n, q[2] / n, q[3] / n}
}

func (q Quat) mul(r Quat) Quat {
	return Quat{
		q[3]*r[0] + q[0]*r[3] + q[1]*r[2] - q[2]*r[1],
		q[3]*r[1] - q[0]*r[2] + q[1]*r[3] + q[2]*r[0],
		q[3]*r[2] + q[0]*r[1] - q[1]*r[0] + q[2]*r[3],
		q[3]*r[3] - q[0]*r[0] - q[1]*r[1] - q[2]*r[2],
	}
}

// rotate applies the rotation to v.
func (q Quat) rotate(v Vec3) Vec3 {
	// v' = q * (v, 0) * q^-1, expanded for unit quaternions
	x, y, z, w := q[0], q[1], q[2], q[3]
	tx := 2 * (y*v[2] - z*v[1])
	ty := 2 * (z*v[0] - x*v[2])
	tz := 2 * (x*v[1] - y*v[0])
	return Vec3{
		v[0] + w*tx + y*tz - z*ty,
		v[1] + w*ty + z*tx - x*tz,
		v[2] + w*tz + x*ty - y*tx,
	}
}

// compose returns the world-space transform of a child local transform
// under a parent world transform.
func (parent Transform) compose(local Transform) Transform {
	scaled := Vec3{
		local.Position[0] * parent.Scale[0],
		local.Position[1] * parent.Scale[1],
		local.Position[2] * parent.Scale[2],
	}
	rotated := parent.Rotation.rotate(scaled)
	return Transform{
		Position: Vec3{
			parent.Position[0] + rotated[0],
			parent.Position[1] + rotated[1],
			parent.Position[2] + rotated[2],
		},
		Rotation: parent.Rotation.mul(local.Rotation),
		Scale: Vec3{
			parent.Scale[0] * local.Scale[0],
			parent.Scale[1] * local.Scale[1],
			parent.Scale[2] * local.Scale[2],
		},
	}
}
