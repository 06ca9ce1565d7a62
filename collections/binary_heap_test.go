package collections

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cellar/codec"
	"github.com/arloliu/cellar/key"
	"github.com/arloliu/cellar/storage"
	"github.com/arloliu/cellar/store"
)

func uint64Less(a, b uint64) bool { return a < b }

func TestBinaryHeapPushPop(t *testing.T) {
	require := require.New(t)

	h := NewBinaryHeap[uint64](codec.Uint64{}, uint64Less)
	require.True(h.IsEmpty())

	input := []uint64{5, 1, 9, 3, 9, 2, 8}
	for _, v := range input {
		h.Push(v)
	}
	require.Equal(uint32(len(input)), h.Len())

	top, ok := h.Peek()
	require.True(ok)
	require.Equal(uint64(9), top)

	// Pops come out in descending order.
	want := append([]uint64(nil), input...)
	sort.Slice(want, func(i, j int) bool { return want[i] > want[j] })
	for _, expect := range want {
		got, ok := h.Pop()
		require.True(ok)
		require.Equal(expect, got)
	}
	_, ok = h.Pop()
	require.False(ok)
}

func TestBinaryHeapReverse(t *testing.T) {
	require := require.New(t)

	h := NewBinaryHeap[uint64](codec.Uint64{}, Reverse(uint64Less))
	for _, v := range []uint64{5, 1, 9, 3} {
		h.Push(v)
	}

	// Reversed ordering turns the heap into a min-heap.
	for _, expect := range []uint64{1, 3, 5, 9} {
		got, ok := h.Pop()
		require.True(ok)
		require.Equal(expect, got)
	}
}

func TestBinaryHeapUpdateRoot(t *testing.T) {
	require := require.New(t)

	h := NewBinaryHeap[uint64](codec.Uint64{}, uint64Less)
	require.False(h.UpdateRoot(func(*uint64) {}))

	for _, v := range []uint64{10, 7, 8} {
		h.Push(v)
	}

	// Demote the root below the others; the heap must restore order.
	require.True(h.UpdateRoot(func(p *uint64) { *p = 1 }))
	top, _ := h.Peek()
	require.Equal(uint64(8), top)
}

func TestBinaryHeapSpreadRoundTrip(t *testing.T) {
	require := require.New(t)

	st := store.NewMemStore()
	root := key.Key{}.Add(1)

	h := NewBinaryHeap[uint64](codec.Uint64{}, uint64Less)
	for _, v := range []uint64{4, 2, 7} {
		h.Push(v)
	}
	storage.PushSpreadRoot(h, root, st)

	loaded := NewBinaryHeap[uint64](codec.Uint64{}, uint64Less)
	storage.PullSpreadRoot(loaded, root, st)
	require.Equal(uint32(3), loaded.Len())

	got, ok := loaded.Pop()
	require.True(ok)
	require.Equal(uint64(7), got)

	storage.ClearSpreadRoot(loaded, root, st)
	require.Zero(st.CellCount())
}
