package storage

import (
	"github.com/arloliu/cellar/codec"
	"github.com/arloliu/cellar/key"
	"github.com/arloliu/cellar/store"
)

// Lazy caches a single packed storage cell.
//
// A Lazy value pulled from storage does not touch its cell until the
// first Get, GetMut or Set; the cell is read at most once per call and
// written back at most once, when the owning structure is pushed.
type Lazy[T any] struct {
	codec   codec.Codec[T]
	cellKey *key.Key
	backend store.Store
	entry   *entry[T]
}

var _ Spread = (*Lazy[uint32])(nil)

// NewLazy creates a lazy cell holding v, staged for write-back.
//
// Use this during structure initialization; a value created this way is
// not anchored to a storage region until its owner is pushed and pulled.
func NewLazy[T any](c codec.Codec[T], v T) *Lazy[T] {
	return &Lazy[T]{
		codec: c,
		entry: newMutatedEntry(&v),
	}
}

// NewLazyUnloaded creates an unanchored lazy cell with no cached value.
// Accessors panic until the value has been pulled. Mostly useful as a
// building block for composite constructors.
func NewLazyUnloaded[T any](c codec.Codec[T]) *Lazy[T] {
	return &Lazy[T]{codec: c}
}

// Footprint returns 1: a lazy cell occupies a single cell.
func (l *Lazy[T]) Footprint() uint64 { return 1 }

// PullSpread anchors the cell to the cursor position. The actual load
// happens on first access.
func (l *Lazy[T]) PullSpread(ptr *key.Ptr, st store.Store) {
	k := ptr.Next()
	l.cellKey = &k
	l.backend = st
	l.entry = nil
}

// PushSpread writes the staged value, if any, to the cursor position.
func (l *Lazy[T]) PushSpread(ptr *key.Ptr, st store.Store) {
	k := ptr.Next()
	if l.entry != nil {
		l.entry.push(l.codec, k, st)
	}
	l.cellKey = &k
	l.backend = st
}

// ClearSpread removes the cell at the cursor position.
func (l *Lazy[T]) ClearSpread(ptr *key.Ptr, st store.Store) {
	st.Clear(ptr.Next())
}

// Get returns the cached value, loading it from storage on first access.
//
// Panics if the cell is vacant or the value is unanchored and was never
// set; a lazy cell models a value that must exist.
func (l *Lazy[T]) Get() T {
	e := l.load()
	if e.value == nil {
		panic("storage: lazy cell is vacant")
	}

	return *e.value
}

// GetMut returns a pointer to the cached value for in-place mutation and
// stages the cell for write-back.
//
// The pointer stays valid for the rest of the call; at most one logical
// writer should use it at a time, per the single-threaded call model.
func (l *Lazy[T]) GetMut() *T {
	e := l.load()
	if e.value == nil {
		panic("storage: lazy cell is vacant")
	}
	e.markMutated()

	return e.value
}

// Set stages v as the new cell value without touching the store.
func (l *Lazy[T]) Set(v T) {
	if l.entry != nil {
		l.entry.value = &v
		l.entry.markMutated()

		return
	}
	l.entry = newMutatedEntry(&v)
}

func (l *Lazy[T]) load() *entry[T] {
	if l.entry != nil {
		return l.entry
	}
	if l.backend == nil || l.cellKey == nil {
		panic("storage: cannot lazily load a value without an associated storage region")
	}
	l.entry = pullEntry(l.codec, *l.cellKey, l.backend)

	return l.entry
}
