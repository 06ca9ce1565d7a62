package storage

import (
	"fmt"

	"github.com/arloliu/cellar/codec"
	"github.com/arloliu/cellar/key"
	"github.com/arloliu/cellar/store"
)

// maxOptionFootprint bounds the footprint of a value stored behind an
// option root. Clearing an absent optional must clear the value's whole
// region without reading it, so the region has to be small enough to
// clear unconditionally.
const maxOptionFootprint = 32

// PushOptionRootPacked stores an optional packed value at root, using
// cell presence as the discriminant: a nil v clears the cell, a non-nil v
// stores the plain encoding of *v without any tag byte.
//
// Panics if c is itself an option codec. Presence-as-discriminant cannot
// distinguish Some(None) from None; nested options must be wrapped in a
// dedicated struct before being stored at a root.
func PushOptionRootPacked[T any](c codec.Codec[T], v *T, root key.Key, st store.Store) {
	rejectOptionCodec[T](c)
	if v == nil {
		st.Clear(root)

		return
	}
	PushPackedAt(c, *v, root, st)
}

// PullOptionRootPacked loads an optional packed value from root; an
// absent cell decodes to nil.
func PullOptionRootPacked[T any](c codec.Codec[T], root key.Key, st store.Store) *T {
	rejectOptionCodec[T](c)
	v, ok := PullPackedAtOpt(c, root, st)
	if !ok {
		return nil
	}

	return &v
}

// ClearOptionRootPacked removes an optional packed value at root.
func ClearOptionRootPacked(root key.Key, st store.Store) {
	st.Clear(root)
}

func rejectOptionCodec[T any](c codec.Codec[T]) {
	if _, ok := any(c).(codec.OptionMarker); ok {
		panic("storage: nested option at a storage root is unsupported; wrap the inner option in a dedicated struct")
	}
}

// PushOptionRootSpread stores an optional spread value at root. When
// present is false the value's entire region is cleared; otherwise the
// value is pushed as usual. Presence is observed through the value's
// first cell.
//
// Panics if the value's footprint is maxOptionFootprint or larger, since
// clearing an absent value would then touch an unreasonable number of
// cells on every push.
func PushOptionRootSpread(s Spread, present bool, root key.Key, st store.Store) {
	checkOptionFootprint(s)
	if !present {
		ClearSpreadRoot(s, root, st)

		return
	}
	PushSpreadRoot(s, root, st)
}

// PullOptionRootSpread reports whether an optional spread value is
// present at root, pulling it into s when it is.
func PullOptionRootSpread(s Spread, root key.Key, st store.Store) bool {
	checkOptionFootprint(s)
	if _, ok := st.Get(root); !ok {
		return false
	}
	PullSpreadRoot(s, root, st)

	return true
}

// ClearOptionRootSpread removes an optional spread value's region at root.
func ClearOptionRootSpread(s Spread, root key.Key, st store.Store) {
	checkOptionFootprint(s)
	ClearSpreadRoot(s, root, st)
}

func checkOptionFootprint(s Spread) {
	if fp := s.Footprint(); fp >= maxOptionFootprint {
		panic(fmt.Sprintf(
			"storage: optional value with footprint %d exceeds the option root limit of %d cells",
			fp, maxOptionFootprint))
	}
}
