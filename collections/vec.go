package collections

import (
	"fmt"
	"iter"
	"math"

	"github.com/arloliu/cellar/codec"
	"github.com/arloliu/cellar/key"
	"github.com/arloliu/cellar/storage"
	"github.com/arloliu/cellar/store"
)

// Vec is a contiguous, growable storage vector.
//
// The length lives in its own cell and the elements occupy the cells
// 0..len of a LazyIndexMap region; the two are kept consistent by every
// mutating operation.
type Vec[T any] struct {
	length *storage.Lazy[uint32]
	elems  *storage.LazyIndexMap[T]
}

var _ storage.Spread = (*Vec[uint32])(nil)

// NewVec creates an empty vector storing elements with c.
func NewVec[T any](c codec.Codec[T]) *Vec[T] {
	return &Vec[T]{
		length: storage.NewLazy[uint32](codec.Uint32{}, 0),
		elems:  storage.NewLazyIndexMap[T](c),
	}
}

// Len returns the number of elements.
func (v *Vec[T]) Len() uint32 {
	return v.length.Get()
}

// IsEmpty reports whether the vector holds no elements.
func (v *Vec[T]) IsEmpty() bool {
	return v.Len() == 0
}

// Push appends val to the end of the vector.
func (v *Vec[T]) Push(val T) {
	l := v.Len()
	if l == math.MaxUint32 {
		panic("collections: vector length overflow")
	}
	v.elems.Put(l, &val)
	v.length.Set(l + 1)
}

// Pop removes and returns the last element, or ok=false when empty.
func (v *Vec[T]) Pop() (T, bool) {
	l := v.Len()
	if l == 0 {
		var zero T

		return zero, false
	}
	last := l - 1
	old := v.elems.PutGet(last, nil)
	if old == nil {
		panic(fmt.Sprintf("collections: vector cell %d vacant within bounds", last))
	}
	v.length.Set(last)

	return *old, true
}

// Get returns the element at index i, or ok=false when out of bounds.
func (v *Vec[T]) Get(i uint32) (T, bool) {
	if i >= v.Len() {
		var zero T

		return zero, false
	}
	val, ok := v.elems.Get(i)
	if !ok {
		panic(fmt.Sprintf("collections: vector cell %d vacant within bounds", i))
	}

	return val, true
}

// GetMut returns a pointer to the element at index i for in-place
// mutation, or nil when out of bounds. The element is staged for
// write-back.
func (v *Vec[T]) GetMut(i uint32) *T {
	if i >= v.Len() {
		return nil
	}

	return v.elems.GetMut(i)
}

// Set overwrites the element at index i.
//
// Panics when i is out of bounds: Set addresses an existing slot, use
// Push to grow.
func (v *Vec[T]) Set(i uint32, val T) {
	v.checkBounds(i)
	v.elems.Put(i, &val)
}

// Swap exchanges the elements at indices a and b.
//
// Panics when either index is out of bounds.
func (v *Vec[T]) Swap(a, b uint32) {
	v.checkBounds(a)
	v.checkBounds(b)
	if a == b {
		return
	}
	va, _ := v.elems.Get(a)
	old := v.elems.PutGet(b, &va)
	if old == nil {
		panic(fmt.Sprintf("collections: vector cell %d vacant within bounds", b))
	}
	v.elems.Put(a, old)
}

// SwapRemove removes the element at index i by replacing it with the
// last element, avoiding the shift of all following elements. Returns
// ok=false when i is out of bounds.
func (v *Vec[T]) SwapRemove(i uint32) (T, bool) {
	l := v.Len()
	if i >= l {
		var zero T

		return zero, false
	}
	if i == l-1 {
		return v.Pop()
	}
	last, _ := v.Pop()
	old := v.elems.PutGet(i, &last)
	if old == nil {
		panic(fmt.Sprintf("collections: vector cell %d vacant within bounds", i))
	}

	return *old, true
}

// First returns the first element, or ok=false when empty.
func (v *Vec[T]) First() (T, bool) {
	return v.Get(0)
}

// Last returns the last element, or ok=false when empty.
func (v *Vec[T]) Last() (T, bool) {
	l := v.Len()
	if l == 0 {
		var zero T

		return zero, false
	}

	return v.Get(l - 1)
}

// All returns an iterator over the elements in index order.
//
// Avoid unbounded iteration over big vectors; every element not yet
// cached costs one metered read.
func (v *Vec[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := uint32(0); i < v.Len(); i++ {
			val, _ := v.Get(i)
			if !yield(val) {
				return
			}
		}
	}
}

// Footprint returns the vector's cell footprint: the length cell plus
// the element region.
func (v *Vec[T]) Footprint() uint64 {
	return 1 + storage.IndexMapFootprint
}

// PullSpread anchors the length cell and the element region to the
// cursor, in that fixed order.
func (v *Vec[T]) PullSpread(ptr *key.Ptr, st store.Store) {
	v.length.PullSpread(ptr, st)
	v.elems.PullSpread(ptr, st)
}

// PushSpread writes the staged length and elements.
func (v *Vec[T]) PushSpread(ptr *key.Ptr, st store.Store) {
	v.length.PushSpread(ptr, st)
	v.elems.PushSpread(ptr, st)
}

// ClearSpread removes the length cell and all element cells: the cells
// 0..len plus any touched cells beyond len, such as elements popped off
// the end during this call.
func (v *Vec[T]) ClearSpread(ptr *key.Ptr, st store.Store) {
	l := v.Len()
	v.length.ClearSpread(ptr, st)
	v.elems.ClearRegion(ptr, st, l)
}

func (v *Vec[T]) checkBounds(i uint32) {
	if i >= v.Len() {
		panic(fmt.Sprintf("collections: vector index %d out of bounds (len %d)", i, v.Len()))
	}
}
