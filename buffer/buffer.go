package buffer

import (
	"github.com/wombatlabs/worldbridge/errors"
)

// Buffer is a growable, homogeneous element buffer whose ownership
// crosses the boundary. Once an operation returns a Buffer, the caller
// owns it exclusively and must Release it exactly once; the engine
// retains no reference.
//
// Release is enforced by the type, not by caller discipline: a second
// Release is an error, and every accessor on a released buffer reports
// the same, instead of reading freed memory.
type Buffer[T any] struct {
	elems    []T
	released bool
}

// Alloc produces an empty, valid, caller-owned buffer. An empty buffer
// is a real value, distinct from "no buffer".
func Alloc[T any]() *Buffer[T] {
	return &Buffer[T]{elems: make([]T, 0, 8)}
}

// FromSlice produces a caller-owned buffer holding a copy of elems.
func FromSlice[T any](elems []T) *Buffer[T] {
	b := &Buffer[T]{elems: make([]T, len(elems))}
	copy(b.elems, elems)
	return b
}

// Append grows the buffer.
func (b *Buffer[T]) Append(elems ...T) error {
	if b.released {
		return errors.DoubleRelease(errors.PhaseBuffer)
	}
	b.elems = append(b.elems, elems...)
	return nil
}

// Elems returns the live element slice. The slice aliases the buffer
// and is invalid after Release.
func (b *Buffer[T]) Elems() ([]T, error) {
	if b.released {
		return nil, errors.DoubleRelease(errors.PhaseBuffer)
	}
	return b.elems, nil
}

// Len returns the element count, 0 once released.
func (b *Buffer[T]) Len() int {
	if b.released {
		return 0
	}
	return len(b.elems)
}

// Cap returns the element capacity, 0 once released.
func (b *Buffer[T]) Cap() int {
	if b.released {
		return 0
	}
	return cap(b.elems)
}

// Released reports whether ownership has ended.
func (b *Buffer[T]) Released() bool { return b.released }

// Release ends the caller's ownership. Exactly one Release per buffer:
// the second call is an error, never undefined behavior.
func (b *Buffer[T]) Release() error {
	if b.released {
		return errors.DoubleRelease(errors.PhaseBuffer)
	}
	b.released = true
	b.elems = nil
	return nil
}
