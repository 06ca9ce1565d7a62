package collections

import (
	"iter"

	"github.com/arloliu/cellar/codec"
	"github.com/arloliu/cellar/key"
	"github.com/arloliu/cellar/storage"
	"github.com/arloliu/cellar/store"
)

// Less orders heap elements: it reports whether a sorts before b. The
// element that sorts last is the heap's root.
type Less[T any] func(a, b T) bool

// Reverse flips an ordering, turning a max-heap comparator into a
// min-heap one and vice versa.
func Reverse[T any](less Less[T]) Less[T] {
	return func(a, b T) bool {
		return less(b, a)
	}
}

// BinaryHeap is a priority queue over a storage vector.
//
// The vector holds the classic implicit binary tree: children of index i
// live at 2i+1 and 2i+2. With the natural ordering the root is the
// maximum element; wrap the comparator with Reverse for a min-heap. The
// ordering must stay fixed for the lifetime of the stored heap.
type BinaryHeap[T any] struct {
	elems *Vec[T]
	less  Less[T]
}

var _ storage.Spread = (*BinaryHeap[uint32])(nil)

// NewBinaryHeap creates an empty heap storing elements with c, ordered
// by less.
func NewBinaryHeap[T any](c codec.Codec[T], less Less[T]) *BinaryHeap[T] {
	return &BinaryHeap[T]{
		elems: NewVec[T](c),
		less:  less,
	}
}

// Len returns the number of elements.
func (h *BinaryHeap[T]) Len() uint32 {
	return h.elems.Len()
}

// IsEmpty reports whether the heap holds no elements.
func (h *BinaryHeap[T]) IsEmpty() bool {
	return h.Len() == 0
}

// Peek returns the root element without removing it, or ok=false when
// empty.
func (h *BinaryHeap[T]) Peek() (T, bool) {
	return h.elems.First()
}

// Push inserts v, restoring the heap property along the path to the
// root.
func (h *BinaryHeap[T]) Push(v T) {
	h.elems.Push(v)
	h.siftUp(h.Len() - 1)
}

// Pop removes and returns the root element, or ok=false when empty.
func (h *BinaryHeap[T]) Pop() (T, bool) {
	n := h.Len()
	if n == 0 {
		var zero T

		return zero, false
	}
	h.elems.Swap(0, n-1)
	top, _ := h.elems.Pop()
	if n > 1 {
		h.siftDown(0)
	}

	return top, true
}

// UpdateRoot mutates the root element in place and restores the heap
// property afterwards. Returns false when the heap is empty.
//
// Cheaper than a Pop followed by a Push when only the priority of the
// current root changes.
func (h *BinaryHeap[T]) UpdateRoot(fn func(*T)) bool {
	p := h.elems.GetMut(0)
	if p == nil {
		return false
	}
	fn(p)
	h.siftDown(0)

	return true
}

// All returns an iterator over the elements in backing-vector order,
// which is a valid heap order but not a sorted one.
func (h *BinaryHeap[T]) All() iter.Seq[T] {
	return h.elems.All()
}

// Footprint returns the heap's cell footprint.
func (h *BinaryHeap[T]) Footprint() uint64 {
	return h.elems.Footprint()
}

// PullSpread anchors the backing vector to the cursor.
func (h *BinaryHeap[T]) PullSpread(ptr *key.Ptr, st store.Store) {
	h.elems.PullSpread(ptr, st)
}

// PushSpread writes the staged elements.
func (h *BinaryHeap[T]) PushSpread(ptr *key.Ptr, st store.Store) {
	h.elems.PushSpread(ptr, st)
}

// ClearSpread removes the backing vector.
func (h *BinaryHeap[T]) ClearSpread(ptr *key.Ptr, st store.Store) {
	h.elems.ClearSpread(ptr, st)
}

func (h *BinaryHeap[T]) siftUp(i uint32) {
	for i > 0 {
		parent := (i - 1) / 2
		pv, _ := h.elems.Get(parent)
		cv, _ := h.elems.Get(i)
		if !h.less(pv, cv) {
			return
		}
		h.elems.Swap(parent, i)
		i = parent
	}
}

func (h *BinaryHeap[T]) siftDown(i uint32) {
	n := h.Len()
	for {
		largest := i
		lv, _ := h.elems.Get(largest)
		if l := 2*i + 1; l < n {
			if v, _ := h.elems.Get(l); h.less(lv, v) {
				largest, lv = l, v
			}
		}
		if r := 2*i + 2; r < n {
			if v, _ := h.elems.Get(r); h.less(lv, v) {
				largest = r
			}
		}
		if largest == i {
			return
		}
		h.elems.Swap(i, largest)
		i = largest
	}
}
