package collections

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cellar/key"
	"github.com/arloliu/cellar/storage"
	"github.com/arloliu/cellar/store"
)

func TestBitVecPushGetPop(t *testing.T) {
	require := require.New(t)

	b := NewBitVec()
	require.True(b.IsEmpty())

	// 1 0 0 1 1 0
	pattern := []bool{true, false, false, true, true, false}
	for _, bit := range pattern {
		b.Push(bit)
	}
	require.Equal(uint32(6), b.Len())

	first, ok := b.First()
	require.True(ok)
	require.True(first)

	last, ok := b.Last()
	require.True(ok)
	require.False(last)

	got, ok := b.Get(2)
	require.True(ok)
	require.False(got)

	_, ok = b.Get(6)
	require.False(ok)

	for i := len(pattern) - 1; i >= 0; i-- {
		v, ok := b.Pop()
		require.True(ok)
		require.Equal(pattern[i], v, "bit %d", i)
	}
	_, ok = b.Pop()
	require.False(ok)
}

func TestBitVecSetFlip(t *testing.T) {
	require := require.New(t)

	b := NewBitVec()
	b.Push(false)
	b.Push(false)

	b.Set(1, true)
	v, _ := b.Get(1)
	require.True(v)

	b.Flip(1)
	v, _ = b.Get(1)
	require.False(v)

	require.Panics(func() { b.Set(2, true) })
	require.Panics(func() { b.Flip(2) })
}

func TestBitVecCrossesChunkBoundary(t *testing.T) {
	require := require.New(t)

	b := NewBitVec()
	for i := 0; i < Bits256Len+5; i++ {
		b.Push(i%2 == 0)
	}
	require.Equal(uint32(Bits256Len+5), b.Len())
	require.Equal(uint32(2), b.ChunkCount())

	v, ok := b.Get(Bits256Len)
	require.True(ok)
	require.True(v, "bit 256 is even indexed")

	// Popping back below the boundary drops the second chunk.
	for i := 0; i < 5; i++ {
		b.Pop()
	}
	require.Equal(uint32(1), b.ChunkCount())
}

func TestBitVecPushChunk(t *testing.T) {
	require := require.New(t)

	b := NewBitVec()
	chunk := b.PushChunk()
	require.NotNil(chunk)
	require.Equal(uint32(Bits256Len), b.Len())
	require.Equal(uint32(1), b.ChunkCount())

	chunk.Set(0)
	v, _ := b.Get(0)
	require.True(v)

	// Unaligned length rejects whole-chunk growth.
	b.Push(true)
	require.Panics(func() { b.PushChunk() })
}

func TestBitVecChunkAccess(t *testing.T) {
	require := require.New(t)

	b := NewBitVec()
	b.Push(true)

	c, ok := b.Chunk(0)
	require.True(ok)
	require.True(c.Get(0))

	_, ok = b.Chunk(1)
	require.False(ok)
	require.Panics(func() { b.ChunkMut(1) })
}

func TestBitVecBits(t *testing.T) {
	require := require.New(t)

	b := NewBitVec()
	pattern := []bool{true, true, false, true}
	for _, bit := range pattern {
		b.Push(bit)
	}

	var got []bool
	for v := range b.Bits() {
		got = append(got, v)
	}
	require.Equal(pattern, got)
}

func TestBitVecSpreadRoundTrip(t *testing.T) {
	require := require.New(t)

	st := store.NewMemStore()
	root := key.Key{}.Add(1)

	b := NewBitVec()
	for i := 0; i < Bits256Len+3; i++ {
		b.Push(i%3 == 0)
	}
	storage.PushSpreadRoot(b, root, st)

	loaded := NewBitVec()
	storage.PullSpreadRoot(loaded, root, st)
	require.Equal(b.Len(), loaded.Len())
	for i := uint32(0); i < loaded.Len(); i++ {
		want, _ := b.Get(i)
		got, _ := loaded.Get(i)
		require.Equal(want, got, "bit %d", i)
	}

	storage.ClearSpreadRoot(loaded, root, st)
	require.Zero(st.CellCount())
}
