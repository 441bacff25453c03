package worldbridge

// Memory represents a foreign linear memory on the far side of the
// boundary (for example a wasm guest's memory). All offsets are byte
// offsets from the start of that memory.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
	ReadU8(offset uint32) (uint8, error)
	ReadU32(offset uint32) (uint32, error)
	ReadU64(offset uint32) (uint64, error)
	WriteU8(offset uint32, value uint8) error
	WriteU32(offset uint32, value uint32) error
	WriteU64(offset uint32, value uint64) error
}

// MemorySizer provides the current size of a foreign memory in bytes.
type MemorySizer interface {
	Size() uint32
}

// Allocator allocates in a foreign memory. Memory obtained through an
// Allocator is owned by the foreign side once an operation returns it;
// the engine must not retain or free it afterward.
type Allocator interface {
	Alloc(size, align uint32) (uint32, error)
	Free(ptr, size, align uint32)
}
