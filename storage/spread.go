package storage

import (
	"github.com/arloliu/cellar/codec"
	"github.com/arloliu/cellar/key"
	"github.com/arloliu/cellar/store"
)

// Spread is implemented by values that decompose into a fixed number of
// independently addressed storage cells.
//
// The three traversals advance the shared cursor in the identical, fixed
// order; Footprint must return the same value for every instance of the
// implementing type, so that sibling fields of a composite never collide.
type Spread interface {
	// Footprint returns the number of cells the value consumes. It must
	// be constant per type, never data-dependent.
	Footprint() uint64

	// PullSpread anchors the value to the cursor's cell region and makes
	// it load its contents lazily from st.
	PullSpread(ptr *key.Ptr, st store.Store)

	// PushSpread writes all staged mutations of the value to its cell
	// region on st.
	PushSpread(ptr *key.Ptr, st store.Store)

	// ClearSpread removes all cells of the value's region from st.
	ClearSpread(ptr *key.Ptr, st store.Store)
}

// PullSpreadRoot pulls s from the region rooted at root.
func PullSpreadRoot(s Spread, root key.Key, st store.Store) {
	s.PullSpread(key.NewPtr(root), st)
}

// PushSpreadRoot pushes s to the region rooted at root.
//
// This is typically called once per host call, at the very end, so that
// each mutated sub-part reaches the store exactly once.
func PushSpreadRoot(s Spread, root key.Key, st store.Store) {
	s.PushSpread(key.NewPtr(root), st)
}

// ClearSpreadRoot removes the region rooted at root.
func ClearSpreadRoot(s Spread, root key.Key, st store.Store) {
	s.ClearSpread(key.NewPtr(root), st)
}

// packedSpread forwards a packed value through the spread contract with a
// footprint of a single cell.
type packedSpread[T any] struct {
	codec codec.Codec[T]
	value *T
}

// SpreadOf adapts the packed value behind v to the Spread interface.
//
// This is the generic "forward as packed" layout every packed type gets
// for free: it occupies exactly one cell at the cursor position. The
// adapter reads and writes through v, so the caller keeps ownership of
// the value itself.
func SpreadOf[T any](c codec.Codec[T], v *T) Spread {
	return &packedSpread[T]{codec: c, value: v}
}

func (p *packedSpread[T]) Footprint() uint64 { return 1 }

func (p *packedSpread[T]) PullSpread(ptr *key.Ptr, st store.Store) {
	*p.value = PullPackedAt(p.codec, ptr.Next(), st)
}

func (p *packedSpread[T]) PushSpread(ptr *key.Ptr, st store.Store) {
	PushPackedAt(p.codec, *p.value, ptr.Next(), st)
}

func (p *packedSpread[T]) ClearSpread(ptr *key.Ptr, st store.Store) {
	ClearPackedAt(ptr.Next(), st)
}
