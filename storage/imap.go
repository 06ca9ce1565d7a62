package storage

import (
	"sort"

	"github.com/arloliu/cellar/codec"
	"github.com/arloliu/cellar/key"
	"github.com/arloliu/cellar/store"
)

// IndexMapFootprint is the cell footprint of a LazyIndexMap: a contiguous
// region of 2^32 cells, one per possible index.
const IndexMapFootprint = uint64(1) << 32

// LazyIndexMap is a sparse, integer-indexed cache over a contiguous chunk
// of 2^32 storage cells.
//
// Index i lives at base+i. Cells are pulled at most once per call and
// staged mutations are written back when the map is pushed. This is the
// low-level building block for Vec, Stash and BitVec; it performs no
// bounds tracking of its own.
type LazyIndexMap[T any] struct {
	codec   codec.Codec[T]
	base    *key.Key
	backend store.Store
	entries map[uint32]*entry[T]
}

var _ Spread = (*LazyIndexMap[uint32])(nil)

// NewLazyIndexMap creates an empty, unanchored index map.
func NewLazyIndexMap[T any](c codec.Codec[T]) *LazyIndexMap[T] {
	return &LazyIndexMap[T]{
		codec:   c,
		entries: make(map[uint32]*entry[T]),
	}
}

// Footprint returns the size of the map's contiguous cell region.
func (m *LazyIndexMap[T]) Footprint() uint64 { return IndexMapFootprint }

// PullSpread anchors the map to the cursor's region; cells load lazily.
func (m *LazyIndexMap[T]) PullSpread(ptr *key.Ptr, st store.Store) {
	base := ptr.Advance(IndexMapFootprint)
	m.base = &base
	m.backend = st
	m.entries = make(map[uint32]*entry[T])
}

// PushSpread writes all staged entries to their cells.
//
// Entries are pushed in ascending index order so that the sequence of
// host store calls is deterministic run over run.
func (m *LazyIndexMap[T]) PushSpread(ptr *key.Ptr, st store.Store) {
	base := ptr.Advance(IndexMapFootprint)
	m.base = &base
	m.backend = st

	indices := make([]uint32, 0, len(m.entries))
	for i := range m.entries {
		indices = append(indices, i)
	}
	sort.Slice(indices, func(a, b int) bool { return indices[a] < indices[b] })
	for _, i := range indices {
		m.entries[i].push(m.codec, base.Add(uint64(i)), st)
	}
}

// ClearSpread advances the cursor over the map's region and clears the
// cells this map has touched during the call.
//
// The region is unbounded from the map's point of view, so a full clear
// is the responsibility of the owning collection, which knows the
// populated range (see for example Vec).
func (m *LazyIndexMap[T]) ClearSpread(ptr *key.Ptr, st store.Store) {
	base := ptr.Advance(IndexMapFootprint)
	for i := range m.entries {
		st.Clear(base.Add(uint64(i)))
	}
}

// ClearRegion advances the cursor over the map's region and clears the
// cells 0..n plus any cached cells at or beyond n.
//
// This is the complete clear for owners that track a populated range:
// the range bounds the cells that may exist in the store, and the cache
// covers cells touched this call that the range no longer includes (for
// example an element popped off the end of a vector).
func (m *LazyIndexMap[T]) ClearRegion(ptr *key.Ptr, st store.Store, n uint32) {
	base := ptr.Advance(IndexMapFootprint)
	for i := uint32(0); i < n; i++ {
		st.Clear(base.Add(uint64(i)))
	}
	for i := range m.entries {
		if i >= n {
			st.Clear(base.Add(uint64(i)))
		}
	}
}

// KeyAt returns the storage key of index i, or ok=false when the map is
// not anchored to a storage region.
func (m *LazyIndexMap[T]) KeyAt(i uint32) (key.Key, bool) {
	if m.base == nil {
		return key.Key{}, false
	}

	return m.base.Add(uint64(i)), true
}

// Get returns the value at index i, or ok=false if the cell is vacant.
func (m *LazyIndexMap[T]) Get(i uint32) (T, bool) {
	e := m.loadEntry(i)
	if e.value == nil {
		var zero T

		return zero, false
	}

	return *e.value, true
}

// GetMut returns a pointer to the value at index i for in-place mutation,
// staging the cell for write-back. Returns nil if the cell is vacant.
//
// The pointer stays valid for the rest of the call even as the cache
// grows.
func (m *LazyIndexMap[T]) GetMut(i uint32) *T {
	e := m.loadEntry(i)
	if e.value == nil {
		return nil
	}
	e.markMutated()

	return e.value
}

// Put stages v at index i without touching the store. A nil v stages a
// clear of the cell.
//
// Prefer Put over PutGet when the previous value is not needed: Put never
// loads the cell.
func (m *LazyIndexMap[T]) Put(i uint32, v *T) {
	m.entries[i] = newMutatedEntry(m.copyOf(v))
}

// PutGet stages v at index i and returns the previous value, loading the
// cell if it was not cached yet. A nil v stages a clear.
func (m *LazyIndexMap[T]) PutGet(i uint32, v *T) *T {
	e := m.loadEntry(i)
	old := e.value
	e.value = m.copyOf(v)
	e.markMutated()

	return old
}

// ClearAt stages a removal of the cell at index i.
func (m *LazyIndexMap[T]) ClearAt(i uint32) {
	m.Put(i, nil)
}

// CachedLen returns the number of cached entries. Exposed for tests.
func (m *LazyIndexMap[T]) CachedLen() int {
	return len(m.entries)
}

func (m *LazyIndexMap[T]) copyOf(v *T) *T {
	if v == nil {
		return nil
	}
	vv := *v

	return &vv
}

func (m *LazyIndexMap[T]) loadEntry(i uint32) *entry[T] {
	if e, ok := m.entries[i]; ok {
		return e
	}
	if m.base == nil || m.backend == nil {
		panic("storage: cannot lazily load a value without an associated storage region")
	}
	e := pullEntry(m.codec, m.base.Add(uint64(i)), m.backend)
	m.entries[i] = e

	return e
}
