package world

// Camera is the view state addressable from the boundary. A camera is
// attached to exactly one entity; it can be looked up by label or by
// that entity, and both paths yield the same logical object.
//
// Field order through Sensitivity is part of the boundary record
// layout; new fields are appended, never inserted.
type Camera struct {
	Label       string
	Attached    Handle
	Eye         [3]float32
	Target      [3]float32
	Up          [3]float32
	Aspect      float64
	FovY        float64
	ZNear       float64
	ZFar        float64
	Yaw         float64
	Pitch       float64
	Speed       float64
	Sensitivity float64
}
