// Package alloc implements dynamic storage allocation: handing out and
// reclaiming dense uint32 region identifiers whose storage keys are
// derived by hashing.
//
// The allocator's own state is a two-level structure over one free
// bitmap. The bitmap is a BitVec whose bit i records whether allocation
// i is live. Above it sits a vector of CountFree groups, each tracking
// the occupancy of 32 bitmap chunks, so finding a free slot costs a
// handful of cell reads instead of a scan over the bitmap: first-fit
// over the count groups, then one leading-zero count to the non-full
// chunk, then one trailing-zero count to the free bit.
package alloc

import (
	"fmt"

	"github.com/arloliu/cellar/collections"
	"github.com/arloliu/cellar/key"
	"github.com/arloliu/cellar/storage"
	"github.com/arloliu/cellar/store"
)

// maxChunks caps the bitmap at 2^24 chunks of 256 bits, exactly the
// 2^32 identifiers a DynamicAllocation can express.
const maxChunks = uint32(1) << 24

// DynamicAllocator hands out and reclaims DynamicAllocation identifiers.
//
// Identifiers are reused after being freed; the allocator always
// returns the lowest free identifier. The allocator itself is stored
// state: pull it at the start of a call, push it at the end, like any
// other spread value.
type DynamicAllocator struct {
	counts *collections.Vec[CountFree]
	free   *collections.BitVec
}

var _ storage.Spread = (*DynamicAllocator)(nil)

// NewDynamicAllocator creates an empty allocator.
func NewDynamicAllocator() *DynamicAllocator {
	return &DynamicAllocator{
		counts: collections.NewVec[CountFree](CountFreeCodec{}),
		free:   collections.NewBitVec(),
	}
}

// RootKey returns the fixed storage key where the allocator's state is
// expected to live, at the far end of the key space away from statically
// laid out state.
func RootKey() key.Key {
	var k key.Key
	for i := range k {
		k[i] = 0xFE
	}

	return k
}

// Alloc returns the lowest free identifier, marking it live.
//
// Panics when all 2^32 identifiers are live.
func (a *DynamicAllocator) Alloc() DynamicAllocation {
	existing := a.free.ChunkCount()
	for g := uint32(0); g < a.counts.Len(); g++ {
		cf := a.counts.GetMut(g)
		i, ok := cf.PositionFirstZero()
		if !ok {
			continue
		}
		chunkIdx := g*countFreeChunks + uint32(i)
		if chunkIdx >= existing {
			// The group's tail covers chunks not grown yet.
			break
		}
		chunk := a.free.ChunkMut(chunkIdx)
		bit, ok := chunk.PositionFirstZero()
		if !ok {
			panic(fmt.Sprintf("alloc: count of chunk %d disagrees with its bitmap", chunkIdx))
		}
		chunk.Set(bit)
		cf.Inc(i)

		return DynamicAllocation(chunkIdx*collections.Bits256Len + uint32(bit))
	}

	return a.grow()
}

// grow appends a fresh bitmap chunk and allocates its first bit.
func (a *DynamicAllocator) grow() DynamicAllocation {
	chunkIdx := a.free.ChunkCount()
	if chunkIdx == maxChunks {
		panic("alloc: dynamic allocation identifiers exhausted")
	}
	chunk := a.free.PushChunk()
	chunk.Set(0)
	if chunkIdx/countFreeChunks >= a.counts.Len() {
		a.counts.Push(CountFree{})
	}
	cf := a.counts.GetMut(chunkIdx / countFreeChunks)
	cf.Inc(uint8(chunkIdx % countFreeChunks))

	return DynamicAllocation(chunkIdx * collections.Bits256Len)
}

// Free reclaims an identifier for reuse.
//
// Panics when the identifier is not live: freeing twice, or freeing a
// handle that was never allocated, is a logic error in the caller and
// must not be silently absorbed into the allocator's state.
func (a *DynamicAllocator) Free(da DynamicAllocation) {
	idx := uint32(da)
	chunkIdx := idx / collections.Bits256Len
	if chunkIdx >= a.free.ChunkCount() {
		panic(fmt.Sprintf("alloc: free of allocation %d beyond the bitmap", idx))
	}
	bit := uint8(idx % collections.Bits256Len)
	chunk := a.free.ChunkMut(chunkIdx)
	if !chunk.Get(bit) {
		panic(fmt.Sprintf("alloc: double free of allocation %d", idx))
	}
	chunk.Reset(bit)
	cf := a.counts.GetMut(chunkIdx / countFreeChunks)
	cf.Dec(uint8(chunkIdx % countFreeChunks))
}

// Footprint returns the allocator's cell footprint: the count vector
// plus the free bitmap.
func (a *DynamicAllocator) Footprint() uint64 {
	return a.counts.Footprint() + a.free.Footprint()
}

// PullSpread anchors the count vector and the bitmap to the cursor.
func (a *DynamicAllocator) PullSpread(ptr *key.Ptr, st store.Store) {
	a.counts.PullSpread(ptr, st)
	a.free.PullSpread(ptr, st)
}

// PushSpread writes the staged counts and bitmap chunks.
func (a *DynamicAllocator) PushSpread(ptr *key.Ptr, st store.Store) {
	a.counts.PushSpread(ptr, st)
	a.free.PushSpread(ptr, st)
}

// ClearSpread removes the allocator's state. Live allocations keep
// their hashed regions; clearing the allocator only forgets which
// identifiers are handed out.
func (a *DynamicAllocator) ClearSpread(ptr *key.Ptr, st store.Store) {
	a.counts.ClearSpread(ptr, st)
	a.free.ClearSpread(ptr, st)
}
