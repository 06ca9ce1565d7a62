package collections

import (
	"iter"

	"github.com/arloliu/cellar/codec"
	"github.com/arloliu/cellar/endian"
	"github.com/arloliu/cellar/errs"
	"github.com/arloliu/cellar/key"
	"github.com/arloliu/cellar/storage"
	"github.com/arloliu/cellar/store"
)

// HashMap maps typed keys to values stored at hashed cells.
//
// Values live in a LazyHashMap, which alone cannot enumerate or fully
// clear its entries because their cells are placed by hashing. The map
// therefore keeps every live key in a Stash and each value remembers the
// handle of its key, giving O(1) removal, iteration over live keys, and
// a complete ClearSpread.
type HashMap[K comparable, V any] struct {
	keys   *Stash[K]
	values *storage.LazyHashMap[K, valueEntry[V]]
}

// valueEntry couples a stored value with the stash handle of its key.
type valueEntry[V any] struct {
	value    V
	keyIndex uint32
}

// NewHashMap creates an empty map storing keys with kc and values
// with vc.
func NewHashMap[K comparable, V any](kc codec.Codec[K], vc codec.Codec[V], opts ...storage.LazyHashMapOption) *HashMap[K, V] {
	return &HashMap[K, V]{
		keys:   NewStash[K](kc),
		values: storage.NewLazyHashMap[K, valueEntry[V]](kc, valueEntryCodec[V]{value: vc}, opts...),
	}
}

// Len returns the number of key/value pairs.
func (m *HashMap[K, V]) Len() uint32 {
	return m.keys.Len()
}

// IsEmpty reports whether the map holds no pairs.
func (m *HashMap[K, V]) IsEmpty() bool {
	return m.Len() == 0
}

// Contains reports whether k is present.
func (m *HashMap[K, V]) Contains(k K) bool {
	_, ok := m.values.Get(k)

	return ok
}

// Get returns the value for k, or ok=false if absent.
func (m *HashMap[K, V]) Get(k K) (V, bool) {
	e, ok := m.values.Get(k)
	if !ok {
		var zero V

		return zero, false
	}

	return e.value, true
}

// GetMut returns a pointer to the value for k for in-place mutation,
// staging it for write-back. Returns nil if absent.
func (m *HashMap[K, V]) GetMut(k K) *V {
	e := m.values.GetMut(k)
	if e == nil {
		return nil
	}

	return &e.value
}

// Insert associates v with k and returns the previous value with
// ok=true when k was already present.
func (m *HashMap[K, V]) Insert(k K, v V) (V, bool) {
	if e := m.values.GetMut(k); e != nil {
		old := e.value
		e.value = v

		return old, true
	}
	idx := m.keys.Put(k)
	m.values.Put(k, &valueEntry[V]{value: v, keyIndex: idx})
	var zero V

	return zero, false
}

// Take removes k and returns its value, or ok=false if absent.
func (m *HashMap[K, V]) Take(k K) (V, bool) {
	e := m.values.PutGet(k, nil)
	if e == nil {
		var zero V

		return zero, false
	}
	m.keys.Take(e.keyIndex)

	return e.value, true
}

// All returns an iterator over key/value pairs. The order follows the
// key stash's handle order, not insertion order.
func (m *HashMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range m.keys.All() {
			v, ok := m.Get(k)
			if !ok {
				continue
			}
			if !yield(k, v) {
				return
			}
		}
	}
}

// Footprint returns the map's cell footprint: the key stash plus the
// hashed value region.
func (m *HashMap[K, V]) Footprint() uint64 {
	return m.keys.Footprint() + m.values.Footprint()
}

// PullSpread anchors the key stash and the value region to the cursor.
func (m *HashMap[K, V]) PullSpread(ptr *key.Ptr, st store.Store) {
	m.keys.PullSpread(ptr, st)
	m.values.PullSpread(ptr, st)
}

// PushSpread writes the staged keys and values.
func (m *HashMap[K, V]) PushSpread(ptr *key.Ptr, st store.Store) {
	m.keys.PushSpread(ptr, st)
	m.values.PushSpread(ptr, st)
}

// ClearSpread removes the key stash and every live value cell. The key
// stash makes the clear complete, where a bare LazyHashMap could only
// clear the cells it happened to have cached.
func (m *HashMap[K, V]) ClearSpread(ptr *key.Ptr, st store.Store) {
	for _, k := range m.keys.All() {
		m.values.ClearAt(k)
	}
	m.keys.ClearSpread(ptr, st)
	m.values.ClearSpread(ptr, st)
}

var _ storage.Spread = (*HashMap[string, uint32])(nil)

// valueEntryCodec encodes a value followed by its key handle.
type valueEntryCodec[V any] struct {
	value codec.Codec[V]
}

var _ codec.Codec[valueEntry[uint32]] = valueEntryCodec[uint32]{}

var hmapEngine = endian.GetLittleEndianEngine()

func (c valueEntryCodec[V]) Append(dst []byte, v valueEntry[V]) []byte {
	dst = c.value.Append(dst, v.value)

	return hmapEngine.AppendUint32(dst, v.keyIndex)
}

func (c valueEntryCodec[V]) Decode(data []byte) (valueEntry[V], int, error) {
	var e valueEntry[V]
	v, n, err := c.value.Decode(data)
	if err != nil {
		return e, 0, err
	}
	if len(data) < n+4 {
		return e, 0, errs.ErrShortBuffer
	}
	e.value = v
	e.keyIndex = hmapEngine.Uint32(data[n:])

	return e, n + 4, nil
}
