package storage

import (
	"fmt"

	"github.com/arloliu/cellar/codec"
	"github.com/arloliu/cellar/errs"
	"github.com/arloliu/cellar/internal/hash"
	"github.com/arloliu/cellar/internal/pool"
	"github.com/arloliu/cellar/key"
	"github.com/arloliu/cellar/store"
)

// entryState tracks whether a cached cell needs to be written back.
type entryState uint8

const (
	// statePreserved means the cached value mirrors the store.
	statePreserved entryState = iota
	// stateMutated means the cached value has staged changes.
	stateMutated
)

// entry is one cached storage cell.
//
// An entry exists only for cells that were loaded or written during the
// current call; a cell without an entry is simply not yet loaded. Within
// an entry, a nil value means the cell was loaded and found absent
// (vacant). Entries are individually heap-allocated so that pointers
// handed out by GetMut-style accessors stay valid while the cache grows.
type entry[T any] struct {
	value *T
	state entryState

	// pulled records whether this entry reflects the cell's state in the
	// store. Staged clears on entries that were never pulled must reach
	// the store unconditionally, since the cell may exist unread.
	pulled bool

	// fingerprint of the raw bytes this entry was pulled with, or zero
	// if the cell was pulled vacant or never pulled. Used to elide
	// redundant writes of values that re-encode identically.
	fingerprint uint64
}

// newMutatedEntry stages v (nil stages a clear) as a mutated entry.
func newMutatedEntry[T any](v *T) *entry[T] {
	return &entry[T]{value: v, state: stateMutated}
}

// pullEntry loads the cell at `at` from st.
func pullEntry[T any](c codec.Codec[T], at key.Key, st store.Store) *entry[T] {
	data, ok := st.Get(at)
	if !ok {
		return &entry[T]{state: statePreserved, pulled: true}
	}
	v, n, err := c.Decode(data)
	if err != nil {
		panic(fmt.Errorf("storage: cell %v: %w", at, err))
	}
	if n != len(data) {
		panic(fmt.Errorf("storage: cell %v: %w (%d of %d bytes consumed)", at, errs.ErrTrailingBytes, n, len(data)))
	}

	return &entry[T]{
		value:       &v,
		state:       statePreserved,
		pulled:      true,
		fingerprint: hash.Fingerprint(data),
	}
}

// push writes the entry's staged state to the cell at `at`.
//
// Preserved entries are skipped entirely. Mutated entries whose value
// re-encodes to the bytes the entry was pulled with are also skipped,
// saving the metered host write.
func (e *entry[T]) push(c codec.Codec[T], at key.Key, st store.Store) {
	if e.state != stateMutated {
		return
	}
	e.state = statePreserved
	if e.value == nil {
		// A pulled-vacant cell that is still vacant needs no clear.
		if !e.pulled || e.fingerprint != 0 {
			st.Clear(at)
		}
		e.pulled = true
		e.fingerprint = 0

		return
	}

	buf := pool.GetCellBuffer()
	defer pool.PutCellBuffer(buf)

	buf.B = c.Append(buf.B, *e.value)
	fp := hash.Fingerprint(buf.B)
	if e.pulled && fp == e.fingerprint {
		return
	}
	st.Set(at, buf.B)
	e.pulled = true
	e.fingerprint = fp
}

// markMutated flags the entry for write-back.
func (e *entry[T]) markMutated() {
	e.state = stateMutated
}
