package collections

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cellar/codec"
	"github.com/arloliu/cellar/key"
	"github.com/arloliu/cellar/storage"
	"github.com/arloliu/cellar/store"
)

func vecRoot() key.Key { return key.Key{}.Add(1) }

func TestVecPushPop(t *testing.T) {
	require := require.New(t)

	v := NewVec[uint64](codec.Uint64{})
	require.True(v.IsEmpty())

	v.Push(1)
	v.Push(2)
	v.Push(3)
	require.Equal(uint32(3), v.Len())

	got, ok := v.Pop()
	require.True(ok)
	require.Equal(uint64(3), got)
	require.Equal(uint32(2), v.Len())

	v.Pop()
	v.Pop()
	_, ok = v.Pop()
	require.False(ok)
}

func TestVecGetSet(t *testing.T) {
	require := require.New(t)

	v := NewVec[uint64](codec.Uint64{})
	v.Push(10)
	v.Push(20)

	got, ok := v.Get(0)
	require.True(ok)
	require.Equal(uint64(10), got)

	_, ok = v.Get(2)
	require.False(ok)

	v.Set(1, 99)
	got, _ = v.Get(1)
	require.Equal(uint64(99), got)

	require.Panics(func() { v.Set(2, 1) })

	p := v.GetMut(0)
	require.NotNil(p)
	*p = 11
	got, _ = v.Get(0)
	require.Equal(uint64(11), got)

	require.Nil(v.GetMut(2))
}

func TestVecSwap(t *testing.T) {
	require := require.New(t)

	v := NewVec[uint64](codec.Uint64{})
	v.Push(1)
	v.Push(2)
	v.Push(3)

	v.Swap(0, 2)
	first, _ := v.Get(0)
	last, _ := v.Get(2)
	require.Equal(uint64(3), first)
	require.Equal(uint64(1), last)

	require.Panics(func() { v.Swap(0, 3) })
}

func TestVecSwapRemove(t *testing.T) {
	require := require.New(t)

	v := NewVec[uint64](codec.Uint64{})
	for _, e := range []uint64{1, 2, 3, 4} {
		v.Push(e)
	}

	removed, ok := v.SwapRemove(1)
	require.True(ok)
	require.Equal(uint64(2), removed)
	require.Equal(uint32(3), v.Len())

	// The last element moved into the hole.
	got, _ := v.Get(1)
	require.Equal(uint64(4), got)

	// Removing the last element is a plain pop.
	removed, ok = v.SwapRemove(2)
	require.True(ok)
	require.Equal(uint64(3), removed)

	_, ok = v.SwapRemove(5)
	require.False(ok)
}

func TestVecFirstLast(t *testing.T) {
	require := require.New(t)

	v := NewVec[uint64](codec.Uint64{})
	_, ok := v.First()
	require.False(ok)
	_, ok = v.Last()
	require.False(ok)

	v.Push(7)
	v.Push(8)
	first, _ := v.First()
	last, _ := v.Last()
	require.Equal(uint64(7), first)
	require.Equal(uint64(8), last)
}

func TestVecAll(t *testing.T) {
	require := require.New(t)

	v := NewVec[uint64](codec.Uint64{})
	want := []uint64{5, 6, 7}
	for _, e := range want {
		v.Push(e)
	}

	var got []uint64
	for e := range v.All() {
		got = append(got, e)
	}
	require.Equal(want, got)
}

func TestVecSpreadRoundTrip(t *testing.T) {
	require := require.New(t)

	st := store.NewMemStore()

	v := NewVec[uint64](codec.Uint64{})
	v.Push(1)
	v.Push(2)
	storage.PushSpreadRoot(v, vecRoot(), st)

	loaded := NewVec[uint64](codec.Uint64{})
	storage.PullSpreadRoot(loaded, vecRoot(), st)
	require.Equal(uint32(2), loaded.Len())

	got, _ := loaded.Get(0)
	require.Equal(uint64(1), got)
	got, _ = loaded.Get(1)
	require.Equal(uint64(2), got)
}

func TestVecClearSpread(t *testing.T) {
	require := require.New(t)

	st := store.NewMemStore()

	v := NewVec[uint64](codec.Uint64{})
	for i := uint64(0); i < 5; i++ {
		v.Push(i)
	}
	storage.PushSpreadRoot(v, vecRoot(), st)
	require.Equal(6, st.CellCount(), "length cell plus five elements")

	loaded := NewVec[uint64](codec.Uint64{})
	storage.PullSpreadRoot(loaded, vecRoot(), st)
	storage.ClearSpreadRoot(loaded, vecRoot(), st)
	require.Zero(st.CellCount())
}

func TestVecPopClearsCell(t *testing.T) {
	require := require.New(t)

	st := store.NewMemStore()

	v := NewVec[uint64](codec.Uint64{})
	v.Push(1)
	v.Push(2)
	storage.PushSpreadRoot(v, vecRoot(), st)
	require.Equal(3, st.CellCount())

	loaded := NewVec[uint64](codec.Uint64{})
	storage.PullSpreadRoot(loaded, vecRoot(), st)
	loaded.Pop()
	storage.PushSpreadRoot(loaded, vecRoot(), st)
	require.Equal(2, st.CellCount(), "popped element cell must be removed")
}
