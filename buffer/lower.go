package buffer

import (
	"encoding/binary"

	wb "github.com/wombatlabs/worldbridge"
	"github.com/wombatlabs/worldbridge/errors"
)

// AllocationList tracks allocations made in a foreign memory during one
// lowering so a failure partway through can free everything already
// placed. On success the list is discarded without freeing: ownership
// of the allocations has passed to the foreign side.
type AllocationList struct {
	allocations []allocation
}

type allocation struct {
	ptr   uint32
	size  uint32
	align uint32
}

func (al *AllocationList) add(ptr, size, align uint32) {
	al.allocations = append(al.allocations, allocation{ptr, size, align})
}

// Free releases every tracked allocation.
func (al *AllocationList) Free(alloc wb.Allocator) {
	if alloc == nil {
		return
	}
	for _, a := range al.allocations {
		if a.ptr != 0 {
			alloc.Free(a.ptr, a.size, a.align)
		}
	}
	al.allocations = al.allocations[:0]
}

// Count returns how many allocations are tracked.
func (al *AllocationList) Count() int { return len(al.allocations) }

// LowerU32 writes a homogeneous u32 element buffer into a foreign
// memory and returns its {ptr, len, cap} triple. The foreign side owns
// the block and frees it with its own allocator; the engine keeps no
// reference. An empty slice lowers to {0, 0, 0}, a valid empty buffer.
func LowerU32(mem wb.Memory, alloc wb.Allocator, elems []uint32) (ptr, length, capacity uint32, err error) {
	if len(elems) == 0 {
		return 0, 0, 0, nil
	}
	size := uint32(len(elems)) * 4
	ptr, aerr := alloc.Alloc(size, 4)
	if aerr != nil {
		return 0, 0, 0, errors.AllocationFailed(errors.PhaseBuffer, size, 4)
	}
	data := make([]byte, size)
	for i, e := range elems {
		binary.LittleEndian.PutUint32(data[i*4:], e)
	}
	if werr := mem.Write(ptr, data); werr != nil {
		alloc.Free(ptr, size, 4)
		return 0, 0, 0, errors.Wrap(errors.PhaseBuffer, errors.KindOutOfBounds, werr, "write element buffer")
	}
	return ptr, uint32(len(elems)), uint32(len(elems)), nil
}

// LowerStrings writes a list of strings into a foreign memory: one
// NUL-terminated byte block per string plus a {ptr, len} table, and
// returns the table's {ptr, len, cap}. If any step fails, every block
// already placed is freed before returning; the foreign side never
// receives partial ownership.
//
// On success the returned list tracks every placed block. Ownership is
// the caller's until it has handed the triple to the foreign side: if
// that last step fails, the caller frees the whole set through the
// list. Once handed over, the list is discarded unfreed.
func LowerStrings(mem wb.Memory, alloc wb.Allocator, elems []string) (ptr, length, capacity uint32, placed *AllocationList, err error) {
	placed = &AllocationList{}
	if len(elems) == 0 {
		return 0, 0, 0, placed, nil
	}

	fail := func(e error) (uint32, uint32, uint32, *AllocationList, error) {
		placed.Free(alloc)
		return 0, 0, 0, placed, e
	}

	table := make([]byte, len(elems)*8)
	for i, s := range elems {
		size := uint32(len(s)) + 1 // NUL terminator
		sptr, aerr := alloc.Alloc(size, 1)
		if aerr != nil {
			return fail(errors.AllocationFailed(errors.PhaseBuffer, size, 1))
		}
		placed.add(sptr, size, 1)
		if werr := mem.Write(sptr, append([]byte(s), 0)); werr != nil {
			return fail(errors.Wrap(errors.PhaseBuffer, errors.KindOutOfBounds, werr, "write string block"))
		}
		binary.LittleEndian.PutUint32(table[i*8:], sptr)
		binary.LittleEndian.PutUint32(table[i*8+4:], uint32(len(s)))
	}

	tsize := uint32(len(table))
	tptr, aerr := alloc.Alloc(tsize, 4)
	if aerr != nil {
		return fail(errors.AllocationFailed(errors.PhaseBuffer, tsize, 4))
	}
	placed.add(tptr, tsize, 4)
	if werr := mem.Write(tptr, table); werr != nil {
		return fail(errors.Wrap(errors.PhaseBuffer, errors.KindOutOfBounds, werr, "write string table"))
	}

	return tptr, uint32(len(elems)), uint32(len(elems)), placed, nil
}
