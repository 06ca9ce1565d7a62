package collections

import (
	"fmt"
	"iter"

	"github.com/arloliu/cellar/codec"
	"github.com/arloliu/cellar/key"
	"github.com/arloliu/cellar/storage"
	"github.com/arloliu/cellar/store"
)

// BitVec is a growable bit vector packed into 256-bit chunks, each chunk
// occupying one storage cell.
//
// The bit length lives in its own cell; the chunks live in a nested Vec.
// Accessing any bit of a chunk loads the whole chunk, so dense scans over
// neighbouring bits cost a single metered read per 256 bits.
type BitVec struct {
	length *storage.Lazy[uint32]
	chunks *Vec[Bits256]
}

var _ storage.Spread = (*BitVec)(nil)

// NewBitVec creates an empty bit vector.
func NewBitVec() *BitVec {
	return &BitVec{
		length: storage.NewLazy[uint32](codec.Uint32{}, 0),
		chunks: NewVec[Bits256](Bits256Codec{}),
	}
}

// Len returns the number of bits.
func (b *BitVec) Len() uint32 {
	return b.length.Get()
}

// IsEmpty reports whether the vector holds no bits.
func (b *BitVec) IsEmpty() bool {
	return b.Len() == 0
}

// ChunkCount returns the number of 256-bit chunks currently backing the
// vector.
func (b *BitVec) ChunkCount() uint32 {
	return b.chunks.Len()
}

// Push appends a bit to the end of the vector, growing the chunk list
// when the last chunk is exactly full.
func (b *BitVec) Push(v bool) {
	l := b.Len()
	chunk, off := chunkPosition(l)
	if off == 0 && chunk == b.chunks.Len() {
		b.chunks.Push(Bits256{})
	}
	c := b.chunks.GetMut(chunk)
	c.SetTo(off, v)
	b.length.Set(l + 1)
}

// Pop removes and returns the last bit, or ok=false when empty. A chunk
// whose last live bit was popped is removed from storage.
func (b *BitVec) Pop() (bool, bool) {
	l := b.Len()
	if l == 0 {
		return false, false
	}
	last := l - 1
	chunk, off := chunkPosition(last)
	c := b.chunks.GetMut(chunk)
	v := c.Get(off)
	c.Reset(off)
	if off == 0 {
		b.chunks.Pop()
	}
	b.length.Set(last)

	return v, true
}

// Get returns the bit at position i, or ok=false when out of bounds.
func (b *BitVec) Get(i uint32) (bool, bool) {
	if i >= b.Len() {
		return false, false
	}
	chunk, off := chunkPosition(i)
	c, _ := b.chunks.Get(chunk)

	return c.Get(off), true
}

// Set sets the bit at position i to v.
//
// Panics when i is out of bounds.
func (b *BitVec) Set(i uint32, v bool) {
	b.checkBounds(i)
	chunk, off := chunkPosition(i)
	b.chunks.GetMut(chunk).SetTo(off, v)
}

// Flip toggles the bit at position i.
//
// Panics when i is out of bounds.
func (b *BitVec) Flip(i uint32) {
	b.checkBounds(i)
	chunk, off := chunkPosition(i)
	b.chunks.GetMut(chunk).Flip(off)
}

// First returns the first bit, or ok=false when empty.
func (b *BitVec) First() (bool, bool) {
	return b.Get(0)
}

// Last returns the last bit, or ok=false when empty.
func (b *BitVec) Last() (bool, bool) {
	l := b.Len()
	if l == 0 {
		return false, false
	}

	return b.Get(l - 1)
}

// Bits returns an iterator over the bits in position order.
func (b *BitVec) Bits() iter.Seq[bool] {
	return func(yield func(bool) bool) {
		for i := uint32(0); i < b.Len(); i++ {
			v, _ := b.Get(i)
			if !yield(v) {
				return
			}
		}
	}
}

// PushChunk appends one whole zeroed chunk, extending the bit length by
// 256, and returns a pointer to it for in-place mutation.
//
// Panics when the current length is not chunk aligned; PushChunk is for
// owners that manage the vector in whole-chunk units.
func (b *BitVec) PushChunk() *Bits256 {
	l := b.Len()
	if l%Bits256Len != 0 {
		panic(fmt.Sprintf("collections: bit length %d is not chunk aligned", l))
	}
	chunk := b.chunks.Len()
	b.chunks.Push(Bits256{})
	b.length.Set(l + Bits256Len)

	return b.chunks.GetMut(chunk)
}

// ChunkMut returns a pointer to chunk i for in-place mutation, staging
// it for write-back.
//
// Panics when i is out of bounds.
func (b *BitVec) ChunkMut(i uint32) *Bits256 {
	c := b.chunks.GetMut(i)
	if c == nil {
		panic(fmt.Sprintf("collections: chunk index %d out of bounds (chunks %d)", i, b.chunks.Len()))
	}

	return c
}

// Chunk returns a copy of chunk i, or ok=false when out of bounds.
func (b *BitVec) Chunk(i uint32) (Bits256, bool) {
	return b.chunks.Get(i)
}

// Footprint returns the vector's cell footprint: the bit length cell
// plus the nested chunk vector.
func (b *BitVec) Footprint() uint64 {
	return 1 + b.chunks.Footprint()
}

// PullSpread anchors the length cell and the chunk vector to the cursor.
func (b *BitVec) PullSpread(ptr *key.Ptr, st store.Store) {
	b.length.PullSpread(ptr, st)
	b.chunks.PullSpread(ptr, st)
}

// PushSpread writes the staged length and chunks.
func (b *BitVec) PushSpread(ptr *key.Ptr, st store.Store) {
	b.length.PushSpread(ptr, st)
	b.chunks.PushSpread(ptr, st)
}

// ClearSpread removes the length cell and every chunk cell.
func (b *BitVec) ClearSpread(ptr *key.Ptr, st store.Store) {
	b.length.ClearSpread(ptr, st)
	b.chunks.ClearSpread(ptr, st)
}

func (b *BitVec) checkBounds(i uint32) {
	if i >= b.Len() {
		panic(fmt.Sprintf("collections: bit index %d out of bounds (len %d)", i, b.Len()))
	}
}

func chunkPosition(i uint32) (chunk uint32, off uint8) {
	return i / Bits256Len, uint8(i % Bits256Len)
}
