package guest

// Boundary record layouts. All fields are little-endian and packed at
// fixed offsets with no padding; nothing here is ever reordered or
// removed, and new fields append at the record end.

// Transform record: ten float64 fields.
const (
	transformPosX = 0
	transformPosY = 8
	transformPosZ = 16
	transformRotX = 24
	transformRotY = 32
	transformRotZ = 40
	transformRotW = 48
	transformSclX = 56
	transformSclY = 64
	transformSclZ = 72

	// TransformSize is the byte size of the transform record.
	TransformSize = 80
)

// Camera record: the attached entity handle, three float32 triples,
// then eight float64 projection and motion parameters. The camera's
// label is not part of the record; it crosses through a
// caller-supplied string buffer, so no engine-owned pointer escapes.
const (
	cameraEntity = 0
	cameraEye    = 8  // 3 x float32
	cameraTarget = 20 // 3 x float32
	cameraUp     = 32 // 3 x float32
	cameraAspect = 44
	cameraFovY   = 52
	cameraZNear  = 60
	cameraZFar   = 68
	cameraYaw    = 76
	cameraPitch  = 84
	cameraSpeed  = 92
	cameraSens   = 100

	// CameraSize is the byte size of the camera record.
	CameraSize = 108
)

// Buffer triple: {ptr, len, cap}, three uint32 fields.
const (
	triplePtr = 0
	tripleLen = 4
	tripleCap = 8

	// TripleSize is the byte size of a buffer triple.
	TripleSize = 12
)
