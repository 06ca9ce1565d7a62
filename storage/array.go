package storage

import (
	"fmt"

	"github.com/arloliu/cellar/codec"
	"github.com/arloliu/cellar/key"
	"github.com/arloliu/cellar/store"
)

// LazyArray is a lazily cached, fixed-capacity region of storage cells.
//
// Unlike LazyIndexMap its footprint equals its capacity, so arrays nest
// tightly inside composites and the whole region can be cleared without
// any occupancy bookkeeping. Index accesses are bounds-checked against
// the capacity and panic when out of range; a fixed-size region has no
// meaningful recovery from structural misuse.
type LazyArray[T any] struct {
	codec    codec.Codec[T]
	capacity uint32
	base     *key.Key
	backend  store.Store
	entries  []*entry[T]
}

var _ Spread = (*LazyArray[uint32])(nil)

// NewLazyArray creates an unanchored array of the given capacity.
func NewLazyArray[T any](c codec.Codec[T], capacity uint32) *LazyArray[T] {
	return &LazyArray[T]{
		codec:    c,
		capacity: capacity,
		entries:  make([]*entry[T], capacity),
	}
}

// Capacity returns the number of cells in the array's region.
func (a *LazyArray[T]) Capacity() uint32 { return a.capacity }

// Footprint returns the capacity: one cell per slot.
func (a *LazyArray[T]) Footprint() uint64 { return uint64(a.capacity) }

// PullSpread anchors the array to the cursor's region; cells load lazily.
func (a *LazyArray[T]) PullSpread(ptr *key.Ptr, st store.Store) {
	base := ptr.Advance(a.Footprint())
	a.base = &base
	a.backend = st
	a.entries = make([]*entry[T], a.capacity)
}

// PushSpread writes all staged entries to their cells in index order.
func (a *LazyArray[T]) PushSpread(ptr *key.Ptr, st store.Store) {
	base := ptr.Advance(a.Footprint())
	a.base = &base
	a.backend = st
	for i, e := range a.entries {
		if e != nil {
			e.push(a.codec, base.Add(uint64(i)), st)
		}
	}
}

// ClearSpread removes every cell of the array's region. The region is
// bounded by the capacity, so the clear is complete, not best-effort.
func (a *LazyArray[T]) ClearSpread(ptr *key.Ptr, st store.Store) {
	base := ptr.Advance(a.Footprint())
	for i := uint32(0); i < a.capacity; i++ {
		st.Clear(base.Add(uint64(i)))
	}
}

// Get returns the value at index i, or ok=false if the slot is vacant.
//
// Panics if i is out of bounds.
func (a *LazyArray[T]) Get(i uint32) (T, bool) {
	e := a.loadEntry(i)
	if e.value == nil {
		var zero T

		return zero, false
	}

	return *e.value, true
}

// GetMut returns a pointer to the value at index i, staging the slot for
// write-back. Returns nil if the slot is vacant.
//
// Panics if i is out of bounds.
func (a *LazyArray[T]) GetMut(i uint32) *T {
	e := a.loadEntry(i)
	if e.value == nil {
		return nil
	}
	e.markMutated()

	return e.value
}

// Put stages v at index i; a nil v stages a clear of the slot.
//
// Panics if i is out of bounds.
func (a *LazyArray[T]) Put(i uint32, v *T) {
	a.checkBounds(i)
	var staged *T
	if v != nil {
		vv := *v
		staged = &vv
	}
	a.entries[i] = newMutatedEntry(staged)
}

// PutGet stages v at index i and returns the previous value, loading the
// slot if it was not cached yet.
//
// Panics if i is out of bounds.
func (a *LazyArray[T]) PutGet(i uint32, v *T) *T {
	e := a.loadEntry(i)
	old := e.value
	if v != nil {
		vv := *v
		e.value = &vv
	} else {
		e.value = nil
	}
	e.markMutated()

	return old
}

func (a *LazyArray[T]) checkBounds(i uint32) {
	if i >= a.capacity {
		panic(fmt.Sprintf("storage: array index %d out of bounds (capacity %d)", i, a.capacity))
	}
}

func (a *LazyArray[T]) loadEntry(i uint32) *entry[T] {
	a.checkBounds(i)
	if e := a.entries[i]; e != nil {
		return e
	}
	if a.base == nil || a.backend == nil {
		panic("storage: cannot lazily load a value without an associated storage region")
	}
	e := pullEntry(a.codec, a.base.Add(uint64(i)), a.backend)
	a.entries[i] = e

	return e
}
