package storage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cellar/codec"
	"github.com/arloliu/cellar/key"
	"github.com/arloliu/cellar/store"
)

func TestLazyArrayRoundTrip(t *testing.T) {
	require := require.New(t)

	st := store.NewMemStore()
	root := key.Key{}.Add(1000)

	a := NewLazyArray[uint32](codec.Uint32{}, 4)
	require.Equal(uint32(4), a.Capacity())
	require.Equal(uint64(4), a.Footprint())

	v := uint32(10)
	a.Put(0, &v)
	v = 20
	a.Put(3, &v)
	PushSpreadRoot(a, root, st)

	loaded := NewLazyArray[uint32](codec.Uint32{}, 4)
	PullSpreadRoot(loaded, root, st)

	got, ok := loaded.Get(0)
	require.True(ok)
	require.Equal(uint32(10), got)

	got, ok = loaded.Get(3)
	require.True(ok)
	require.Equal(uint32(20), got)

	_, ok = loaded.Get(1)
	require.False(ok, "untouched slot is vacant")
}

func TestLazyArrayOutOfBoundsPanics(t *testing.T) {
	st := store.NewMemStore()
	root := key.Key{}.Add(2000)

	a := NewLazyArray[uint32](codec.Uint32{}, 2)
	PullSpreadRoot(a, root, st)

	v := uint32(1)
	require.Panics(t, func() { a.Put(2, &v) })
	require.Panics(t, func() { a.Get(2) })
	require.Panics(t, func() { a.GetMut(2) })
	require.Panics(t, func() { a.PutGet(2, &v) })
}

func TestLazyArrayClearIsComplete(t *testing.T) {
	require := require.New(t)

	st := store.NewMemStore()
	root := key.Key{}.Add(3000)

	a := NewLazyArray[uint32](codec.Uint32{}, 3)
	v := uint32(1)
	a.Put(0, &v)
	a.Put(2, &v)
	PushSpreadRoot(a, root, st)
	require.Equal(2, st.CellCount())

	// A fresh instance that cached nothing still clears the whole region:
	// the capacity bounds it.
	fresh := NewLazyArray[uint32](codec.Uint32{}, 3)
	ClearSpreadRoot(fresh, root, st)
	require.Zero(st.CellCount())
}

func TestLazyArrayPutGet(t *testing.T) {
	require := require.New(t)

	st := store.NewMemStore()
	root := key.Key{}.Add(4000)

	a := NewLazyArray[uint32](codec.Uint32{}, 2)
	v1 := uint32(5)
	a.Put(1, &v1)
	PushSpreadRoot(a, root, st)

	loaded := NewLazyArray[uint32](codec.Uint32{}, 2)
	PullSpreadRoot(loaded, root, st)

	v2 := uint32(6)
	old := loaded.PutGet(1, &v2)
	require.NotNil(old)
	require.Equal(uint32(5), *old)

	old = loaded.PutGet(0, nil)
	require.Nil(old)
}
