package bridge

// ABI version of the boundary surface. The minor number bumps when
// operations or record fields are appended; the major number bumps only
// for changes that would break an existing caller, which the surface is
// designed never to need: fields are added at record ends, operations
// are added under new names, and nothing is reordered or removed.
const (
	AbiMajor uint16 = 2
	AbiMinor uint16 = 1
)

// AbiVersion reports the surface version so callers can gate on it
// instead of inferring capabilities from absence.
func AbiVersion() (major, minor uint16) {
	return AbiMajor, AbiMinor
}

// capabilities names the operation groups this build of the surface
// carries. Append-only, like the status codes.
var capabilities = map[string]bool{
	"transform":       true,
	"properties":      true,
	"camera":          true,
	"input":           true,
	"cursor-commands": true,
	"buffers":         true,
	"entity-list":     true,
	"hierarchy":       true,
}

// HasCapability reports whether the named operation group is present.
func HasCapability(name string) bool {
	return capabilities[name]
}
