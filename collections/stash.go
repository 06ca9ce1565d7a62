package collections

import (
	"fmt"
	"iter"

	"github.com/arloliu/cellar/codec"
	"github.com/arloliu/cellar/endian"
	"github.com/arloliu/cellar/errs"
	"github.com/arloliu/cellar/key"
	"github.com/arloliu/cellar/storage"
	"github.com/arloliu/cellar/store"
)

// Stash stores values in slots addressed by stable uint32 handles.
//
// Removed slots are threaded into an intrusive free list and reused
// LIFO by later insertions, so handles of live values never move. The
// header cell tracks the free list head, the number of live values, and
// the high-water mark of ever-used slots.
type Stash[T any] struct {
	header  *storage.Lazy[stashHeader]
	entries *storage.LazyIndexMap[stashEntry[T]]
}

var _ storage.Spread = (*Stash[uint32])(nil)

// stashHeader is the bookkeeping state of a stash, packed into one cell.
type stashHeader struct {
	// nextVacant is the slot the next Put will fill. Equal to lenEntries
	// when the free list is empty.
	nextVacant uint32
	// live is the number of occupied slots.
	live uint32
	// lenEntries is the number of slots ever used, occupied or vacant.
	lenEntries uint32
}

// stashEntry is one slot: either an occupied value or a vacant link to
// the next slot of the free list.
type stashEntry[T any] struct {
	occupied bool
	value    T
	next     uint32
}

// NewStash creates an empty stash storing values with c.
func NewStash[T any](c codec.Codec[T]) *Stash[T] {
	return &Stash[T]{
		header:  storage.NewLazy[stashHeader](stashHeaderCodec{}, stashHeader{}),
		entries: storage.NewLazyIndexMap[stashEntry[T]](stashEntryCodec[T]{value: c}),
	}
}

// Len returns the number of live values.
func (s *Stash[T]) Len() uint32 {
	return s.header.Get().live
}

// IsEmpty reports whether the stash holds no live values.
func (s *Stash[T]) IsEmpty() bool {
	return s.Len() == 0
}

// LenEntries returns the number of slots ever used, live or vacant.
func (s *Stash[T]) LenEntries() uint32 {
	return s.header.Get().lenEntries
}

// Put inserts v and returns its handle. Vacant slots are reused before
// new slots are opened, most recently vacated first.
func (s *Stash[T]) Put(v T) uint32 {
	h := s.header.GetMut()
	idx := h.nextVacant
	e := stashEntry[T]{occupied: true, value: v}
	if idx == h.lenEntries {
		s.entries.Put(idx, &e)
		h.nextVacant = idx + 1
		h.lenEntries++
	} else {
		old := s.entries.PutGet(idx, &e)
		if old == nil || old.occupied {
			panic(fmt.Sprintf("collections: stash free list corrupted at slot %d", idx))
		}
		h.nextVacant = old.next
	}
	h.live++

	return idx
}

// Get returns the value at handle i, or ok=false when the slot is vacant
// or out of bounds.
func (s *Stash[T]) Get(i uint32) (T, bool) {
	var zero T
	if i >= s.LenEntries() {
		return zero, false
	}
	e, ok := s.entries.Get(i)
	if !ok || !e.occupied {
		return zero, false
	}

	return e.value, true
}

// GetMut returns a pointer to the value at handle i for in-place
// mutation, staging the slot for write-back. Returns nil when the slot
// is vacant or out of bounds.
func (s *Stash[T]) GetMut(i uint32) *T {
	if i >= s.LenEntries() {
		return nil
	}
	e := s.entries.GetMut(i)
	if e == nil || !e.occupied {
		return nil
	}

	return &e.value
}

// Take removes and returns the value at handle i, pushing the slot onto
// the free list. Returns ok=false when the slot is vacant or out of
// bounds.
func (s *Stash[T]) Take(i uint32) (T, bool) {
	var zero T
	if i >= s.LenEntries() {
		return zero, false
	}
	e := s.entries.GetMut(i)
	if e == nil || !e.occupied {
		return zero, false
	}
	val := e.value
	h := s.header.GetMut()
	*e = stashEntry[T]{next: h.nextVacant}
	h.nextVacant = i
	h.live--

	return val, true
}

// All returns an iterator over handle/value pairs of the live slots in
// handle order.
func (s *Stash[T]) All() iter.Seq2[uint32, T] {
	return func(yield func(uint32, T) bool) {
		for i := uint32(0); i < s.LenEntries(); i++ {
			v, ok := s.Get(i)
			if !ok {
				continue
			}
			if !yield(i, v) {
				return
			}
		}
	}
}

// Footprint returns the stash's cell footprint: the header cell plus the
// slot region.
func (s *Stash[T]) Footprint() uint64 {
	return 1 + storage.IndexMapFootprint
}

// PullSpread anchors the header cell and the slot region to the cursor.
func (s *Stash[T]) PullSpread(ptr *key.Ptr, st store.Store) {
	s.header.PullSpread(ptr, st)
	s.entries.PullSpread(ptr, st)
}

// PushSpread writes the staged header and slots.
func (s *Stash[T]) PushSpread(ptr *key.Ptr, st store.Store) {
	s.header.PushSpread(ptr, st)
	s.entries.PushSpread(ptr, st)
}

// ClearSpread removes the header cell and all slot cells up to the
// high-water mark, vacant slots included.
func (s *Stash[T]) ClearSpread(ptr *key.Ptr, st store.Store) {
	n := s.LenEntries()
	s.header.ClearSpread(ptr, st)
	s.entries.ClearRegion(ptr, st, n)
}

// stashHeaderCodec packs the three header counters into 12 bytes.
type stashHeaderCodec struct{}

var _ codec.Codec[stashHeader] = stashHeaderCodec{}

var stashEngine = endian.GetLittleEndianEngine()

func (stashHeaderCodec) Append(dst []byte, v stashHeader) []byte {
	dst = stashEngine.AppendUint32(dst, v.nextVacant)
	dst = stashEngine.AppendUint32(dst, v.live)

	return stashEngine.AppendUint32(dst, v.lenEntries)
}

func (stashHeaderCodec) Decode(data []byte) (stashHeader, int, error) {
	if len(data) < 12 {
		return stashHeader{}, 0, errs.ErrShortBuffer
	}

	return stashHeader{
		nextVacant: stashEngine.Uint32(data),
		live:       stashEngine.Uint32(data[4:]),
		lenEntries: stashEngine.Uint32(data[8:]),
	}, 12, nil
}

// stashEntryCodec encodes a slot with a one-byte occupancy tag: tag 0 is
// a vacant slot followed by its free list link, tag 1 an occupied slot
// followed by the value.
type stashEntryCodec[T any] struct {
	value codec.Codec[T]
}

var _ codec.Codec[stashEntry[uint32]] = stashEntryCodec[uint32]{}

func (c stashEntryCodec[T]) Append(dst []byte, v stashEntry[T]) []byte {
	if !v.occupied {
		dst = append(dst, 0)

		return stashEngine.AppendUint32(dst, v.next)
	}
	dst = append(dst, 1)

	return c.value.Append(dst, v.value)
}

func (c stashEntryCodec[T]) Decode(data []byte) (stashEntry[T], int, error) {
	var e stashEntry[T]
	if len(data) < 1 {
		return e, 0, errs.ErrShortBuffer
	}
	switch data[0] {
	case 0:
		if len(data) < 5 {
			return e, 0, errs.ErrShortBuffer
		}
		e.next = stashEngine.Uint32(data[1:])

		return e, 5, nil
	case 1:
		v, n, err := c.value.Decode(data[1:])
		if err != nil {
			return e, 0, err
		}
		e.occupied = true
		e.value = v

		return e, 1 + n, nil
	default:
		return e, 0, errs.ErrInvalidTag
	}
}
