package store

import "github.com/arloliu/cellar/key"

// CountingStore wraps a Store and counts the primitive calls passing
// through it.
//
// Host storage access is metered, so the caching layers above exist to
// minimize these counts. CountingStore makes the counts observable: tests
// assert that a value is pulled at most once per call and that clean
// values are not pushed back.
type CountingStore struct {
	inner Store

	reads  int
	writes int
	clears int
}

var _ Store = (*CountingStore)(nil)

// NewCountingStore wraps inner with call counting.
func NewCountingStore(inner Store) *CountingStore {
	return &CountingStore{inner: inner}
}

// Get forwards to the inner store and counts one read.
func (s *CountingStore) Get(k key.Key) ([]byte, bool) {
	s.reads++

	return s.inner.Get(k)
}

// Set forwards to the inner store and counts one write.
func (s *CountingStore) Set(k key.Key, value []byte) {
	s.writes++
	s.inner.Set(k, value)
}

// Clear forwards to the inner store and counts one clear.
func (s *CountingStore) Clear(k key.Key) {
	s.clears++
	s.inner.Clear(k)
}

// Reads returns the number of Get calls observed.
func (s *CountingStore) Reads() int { return s.reads }

// Writes returns the number of Set calls observed.
func (s *CountingStore) Writes() int { return s.writes }

// Clears returns the number of Clear calls observed.
func (s *CountingStore) Clears() int { return s.clears }

// Reset zeroes all counters.
func (s *CountingStore) Reset() {
	s.reads, s.writes, s.clears = 0, 0, 0
}
