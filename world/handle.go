package world

// Handle is an opaque, stable identifier for a live entity. It packs a
// generation counter in the high 32 bits and a 1-based slot index in
// the low 32 bits, so the zero Handle is never a valid entity and can
// mean "none" (for example, an entity with no parent).
//
// Handles are produced only by World; a caller-constructed handle is
// rejected by generation validation.
type Handle uint64

// None is the zero handle. It never names a live entity.
const None Handle = 0

func makeHandle(index, generation uint32) Handle {
	return Handle(uint64(generation)<<32 | uint64(index+1))
}

func (h Handle) index() (uint32, bool) {
	low := uint32(h)
	if low == 0 {
		return 0, false
	}
	return low - 1, true
}

func (h Handle) generation() uint32 {
	return uint32(h >> 32)
}
