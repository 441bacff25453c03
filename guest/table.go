package guest

import "sync"

// Ref is an opaque reference a guest holds to a host-side value.
// Ref 0 is reserved and always invalid, so a zeroed guest variable can
// never alias a live resource.
type Ref uint32

// RefTable maps guest-visible refs to host values with a free list for
// slot reuse. Unlike entity handles, refs carry no generation: a
// dropped ref's slot is only reused after an explicit Drop, and the
// guest that dropped it has no business presenting it again: a stale
// ref fails the valid check or resolves to its new owner's session,
// never to freed memory.
//
// RefTable is internally locked: refs outlive a single frame and may
// be minted while a guest call is in flight.
type RefTable[T any] struct {
	entries []tableEntry[T]
	free    []Ref
	mu      sync.RWMutex
}

type tableEntry[T any] struct {
	value T
	valid bool
}

// NewRefTable creates an empty table.
func NewRefTable[T any]() *RefTable[T] {
	return &RefTable[T]{
		entries: make([]tableEntry[T], 0, 8),
		free:    make([]Ref, 0, 4),
	}
}

// Insert stores a value and returns its ref.
func (t *RefTable[T]) Insert(value T) Ref {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := tableEntry[T]{value: value, valid: true}
	if n := len(t.free); n > 0 {
		ref := t.free[n-1]
		t.free = t.free[:n-1]
		t.entries[ref-1] = e
		return ref
	}
	t.entries = append(t.entries, e)
	return Ref(len(t.entries))
}

// Get retrieves a value by ref.
func (t *RefTable[T]) Get(ref Ref) (T, bool) {
	var zero T
	if ref == 0 {
		return zero, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := int(ref) - 1
	if idx >= len(t.entries) || !t.entries[idx].valid {
		return zero, false
	}
	return t.entries[idx].value, true
}

// Drop removes a ref and returns its value.
func (t *RefTable[T]) Drop(ref Ref) (T, bool) {
	var zero T
	if ref == 0 {
		return zero, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	idx := int(ref) - 1
	if idx >= len(t.entries) || !t.entries[idx].valid {
		return zero, false
	}
	value := t.entries[idx].value
	t.entries[idx] = tableEntry[T]{}
	t.free = append(t.free, ref)
	return value, true
}

// Len returns the number of live refs.
func (t *RefTable[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, e := range t.entries {
		if e.valid {
			n++
		}
	}
	return n
}
