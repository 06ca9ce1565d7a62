// Package store defines the key-value contract between the storage layout
// engine and the host environment, together with the in-memory store used
// off-host and the middleware stores layered over the raw primitives.
//
// The host exposes exactly three primitives: read the bytes of a cell,
// overwrite a cell, and remove a cell. Every primitive call is metered and
// costly, which is why the lazy caching layer above pulls each cell at
// most once per call and pushes staged mutations exactly once at the end.
//
// All stores are intended for single-threaded use: the host execution
// model is one synchronous, non-reentrant call at a time, and none of the
// implementations in this package synchronize internally.
package store

import (
	"fmt"

	"github.com/arloliu/cellar/errs"
	"github.com/arloliu/cellar/key"
)

// MaxValueLen is the byte cap for a single cell value enforced at the
// host boundary. Storing a longer value is a fatal host-level error.
const MaxValueLen = 16380

// Store is the narrow key-value contract provided by the host.
type Store interface {
	// Get returns the raw bytes of the cell at k, or false if the cell is
	// absent. The returned slice must not be mutated by the caller.
	Get(k key.Key) ([]byte, bool)

	// Set overwrites the cell at k, creating it if absent.
	//
	// Panics if the value exceeds MaxValueLen; oversized values are a
	// programming error, not a recoverable condition.
	Set(k key.Key, value []byte)

	// Clear removes the cell at k, freeing any host-side accounting
	// associated with it. Clearing an absent cell is a no-op.
	Clear(k key.Key)
}

// MemStore is an in-memory Store used for tests, tooling and off-host
// execution. It mirrors the host's cell semantics including the per-cell
// value cap.
type MemStore struct {
	cells map[key.Key][]byte
}

var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{cells: make(map[key.Key][]byte)}
}

// Get returns the bytes of the cell at k.
func (s *MemStore) Get(k key.Key) ([]byte, bool) {
	v, ok := s.cells[k]

	return v, ok
}

// Set overwrites the cell at k with a copy of value.
func (s *MemStore) Set(k key.Key, value []byte) {
	if len(value) > MaxValueLen {
		panic(fmt.Errorf("store: %w (%d bytes, cap %d)", errs.ErrValueTooLarge, len(value), MaxValueLen))
	}
	buf := make([]byte, len(value))
	copy(buf, value)
	s.cells[k] = buf
}

// Clear removes the cell at k.
func (s *MemStore) Clear(k key.Key) {
	delete(s.cells, k)
}

// CellCount returns the number of populated cells. Useful in tests that
// assert a clear traversal removed everything it wrote.
func (s *MemStore) CellCount() int {
	return len(s.cells)
}
