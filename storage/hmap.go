package storage

import (
	"github.com/arloliu/cellar/codec"
	"github.com/arloliu/cellar/hasher"
	"github.com/arloliu/cellar/key"
	"github.com/arloliu/cellar/store"
)

// LazyHashMap is a lazily cached map from typed keys to storage cells
// placed by hashing.
//
// The storage key of an entry is the digest of the map's offset key
// concatenated with the encoded entry key. There is no collision
// chaining: with a 256-bit cryptographic hash, two live keys aliasing
// the same cell is assumed not to occur.
type LazyHashMap[K comparable, V any] struct {
	keyCodec codec.Codec[K]
	valCodec codec.Codec[V]
	hasher   hasher.Hasher
	offset   *key.Key
	backend  store.Store
	entries  map[K]*entry[V]
}

var _ Spread = (*LazyHashMap[string, uint32])(nil)

// LazyHashMapOption configures a LazyHashMap.
type LazyHashMapOption func(*hashMapConfig)

type hashMapConfig struct {
	hasher hasher.Hasher
}

// WithHasher selects the hash primitive used to place entries. Defaults
// to hasher.Blake2b256. Changing the hasher changes every entry's storage
// key, so it must stay fixed for the lifetime of the stored map.
func WithHasher(h hasher.Hasher) LazyHashMapOption {
	return func(cfg *hashMapConfig) {
		cfg.hasher = h
	}
}

// NewLazyHashMap creates an empty, unanchored hash map.
func NewLazyHashMap[K comparable, V any](kc codec.Codec[K], vc codec.Codec[V], opts ...LazyHashMapOption) *LazyHashMap[K, V] {
	cfg := hashMapConfig{hasher: hasher.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &LazyHashMap[K, V]{
		keyCodec: kc,
		valCodec: vc,
		hasher:   cfg.hasher,
		entries:  make(map[K]*entry[V]),
	}
}

// Footprint returns 1: the map reserves a single cell region whose key
// acts as the hash domain separator; entries live at hashed keys spread
// over the whole key space.
func (m *LazyHashMap[K, V]) Footprint() uint64 { return 1 }

// PullSpread anchors the map to the cursor position; entries load lazily.
func (m *LazyHashMap[K, V]) PullSpread(ptr *key.Ptr, st store.Store) {
	offset := ptr.Next()
	m.offset = &offset
	m.backend = st
	m.entries = make(map[K]*entry[V])
}

// PushSpread writes all staged entries to their hashed cells.
//
// The iteration order over the cache is unspecified; the final store
// state is independent of it since every entry owns a distinct cell.
func (m *LazyHashMap[K, V]) PushSpread(ptr *key.Ptr, st store.Store) {
	offset := ptr.Next()
	m.offset = &offset
	m.backend = st
	for k, e := range m.entries {
		e.push(m.valCodec, m.keyFor(k), st)
	}
}

// ClearSpread advances the cursor and clears the cells this map has
// touched during the call. Entry enumeration beyond the cache is
// impossible (keys are hashed), so owners must track live keys to clear
// completely; see the collections package's HashMap, which keeps its
// keys in a Stash for exactly this reason.
func (m *LazyHashMap[K, V]) ClearSpread(ptr *key.Ptr, st store.Store) {
	offset := ptr.Next()
	m.offset = &offset
	for k := range m.entries {
		st.Clear(m.keyFor(k))
	}
}

// KeyFor returns the storage cell key of entry key k.
//
// Panics if the map is not anchored to a storage region yet.
func (m *LazyHashMap[K, V]) KeyFor(k K) key.Key {
	return m.keyFor(k)
}

// Get returns the value for k, or ok=false if absent.
func (m *LazyHashMap[K, V]) Get(k K) (V, bool) {
	e := m.loadEntry(k)
	if e.value == nil {
		var zero V

		return zero, false
	}

	return *e.value, true
}

// GetMut returns a pointer to the value for k for in-place mutation,
// staging the entry for write-back. Returns nil if absent.
func (m *LazyHashMap[K, V]) GetMut(k K) *V {
	e := m.loadEntry(k)
	if e.value == nil {
		return nil
	}
	e.markMutated()

	return e.value
}

// Put stages v for key k without touching the store. A nil v stages a
// removal.
func (m *LazyHashMap[K, V]) Put(k K, v *V) {
	var staged *V
	if v != nil {
		vv := *v
		staged = &vv
	}
	m.entries[k] = newMutatedEntry(staged)
}

// PutGet stages v for key k and returns the previous value, loading the
// entry if it was not cached yet. A nil v stages a removal.
func (m *LazyHashMap[K, V]) PutGet(k K, v *V) *V {
	e := m.loadEntry(k)
	old := e.value
	if v != nil {
		vv := *v
		e.value = &vv
	} else {
		e.value = nil
	}
	e.markMutated()

	return old
}

// ClearAt stages a removal of the entry for key k.
func (m *LazyHashMap[K, V]) ClearAt(k K) {
	m.Put(k, nil)
}

func (m *LazyHashMap[K, V]) keyFor(k K) key.Key {
	if m.offset == nil {
		panic("storage: cannot derive hashed keys without an associated storage region")
	}
	buf := make([]byte, 0, key.Size*2)
	buf = append(buf, m.offset[:]...)
	buf = m.keyCodec.Append(buf, k)

	return key.Key(m.hasher.Hash(buf))
}

func (m *LazyHashMap[K, V]) loadEntry(k K) *entry[V] {
	if e, ok := m.entries[k]; ok {
		return e
	}
	if m.offset == nil || m.backend == nil {
		// No storage region: the entry is definitionally absent.
		e := &entry[V]{state: statePreserved, pulled: true}
		m.entries[k] = e

		return e
	}
	e := pullEntry(m.valCodec, m.keyFor(k), m.backend)
	m.entries[k] = e

	return e
}
