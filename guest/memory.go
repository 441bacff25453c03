package guest

import (
	"context"

	"github.com/tetratelabs/wazero/api"

	wb "github.com/wombatlabs/worldbridge"
	"github.com/wombatlabs/worldbridge/errors"
)

// Names of the allocator exports a guest must provide for operations
// that return variable-length data. Mirrors the usual guest-allocates
// convention: the block is placed with the guest's own allocator so
// the guest frees it with the matching call, never with the host's.
const (
	allocExport = "world_alloc"
	freeExport  = "world_free"
)

// wasmMemory adapts a wazero linear memory to the root Memory
// interface so the marshalling helpers stay independent of wazero.
type wasmMemory struct {
	mem api.Memory
}

func (m wasmMemory) Read(offset, length uint32) ([]byte, error) {
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseGuest, offset, length, m.mem.Size())
	}
	return data, nil
}

func (m wasmMemory) Write(offset uint32, data []byte) error {
	if !m.mem.Write(offset, data) {
		return errors.OutOfBounds(errors.PhaseGuest, offset, uint32(len(data)), m.mem.Size())
	}
	return nil
}

func (m wasmMemory) ReadU8(offset uint32) (uint8, error) {
	v, ok := m.mem.ReadByte(offset)
	if !ok {
		return 0, errors.OutOfBounds(errors.PhaseGuest, offset, 1, m.mem.Size())
	}
	return v, nil
}

func (m wasmMemory) ReadU32(offset uint32) (uint32, error) {
	v, ok := m.mem.ReadUint32Le(offset)
	if !ok {
		return 0, errors.OutOfBounds(errors.PhaseGuest, offset, 4, m.mem.Size())
	}
	return v, nil
}

func (m wasmMemory) ReadU64(offset uint32) (uint64, error) {
	v, ok := m.mem.ReadUint64Le(offset)
	if !ok {
		return 0, errors.OutOfBounds(errors.PhaseGuest, offset, 8, m.mem.Size())
	}
	return v, nil
}

func (m wasmMemory) WriteU8(offset uint32, value uint8) error {
	if !m.mem.WriteByte(offset, value) {
		return errors.OutOfBounds(errors.PhaseGuest, offset, 1, m.mem.Size())
	}
	return nil
}

func (m wasmMemory) WriteU32(offset, value uint32) error {
	if !m.mem.WriteUint32Le(offset, value) {
		return errors.OutOfBounds(errors.PhaseGuest, offset, 4, m.mem.Size())
	}
	return nil
}

func (m wasmMemory) WriteU64(offset uint32, value uint64) error {
	if !m.mem.WriteUint64Le(offset, value) {
		return errors.OutOfBounds(errors.PhaseGuest, offset, 8, m.mem.Size())
	}
	return nil
}

func (m wasmMemory) Size() uint32 { return m.mem.Size() }

// guestAllocator allocates in guest memory through the guest's own
// exported allocator, so ownership of the block lands on the side that
// can free it.
type guestAllocator struct {
	ctx context.Context
	mod api.Module
}

func (a guestAllocator) Alloc(size, align uint32) (uint32, error) {
	fn := a.mod.ExportedFunction(allocExport)
	if fn == nil {
		return 0, errors.New(errors.PhaseGuest, errors.KindAllocation).
			Detail("guest does not export %s", allocExport).
			Build()
	}
	results, err := fn.Call(a.ctx, uint64(size), uint64(align))
	if err != nil || len(results) == 0 || uint32(results[0]) == 0 {
		return 0, errors.AllocationFailed(errors.PhaseGuest, size, align)
	}
	return uint32(results[0]), nil
}

func (a guestAllocator) Free(ptr, size, align uint32) {
	fn := a.mod.ExportedFunction(freeExport)
	if fn == nil {
		return
	}
	_, _ = fn.Call(a.ctx, uint64(ptr), uint64(size), uint64(align))
}

var _ wb.Memory = wasmMemory{}
var _ wb.Allocator = guestAllocator{}
