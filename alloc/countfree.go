package alloc

import (
	"fmt"
	"math/bits"

	"github.com/arloliu/cellar/codec"
	"github.com/arloliu/cellar/endian"
	"github.com/arloliu/cellar/errs"
)

// CountFree tracks the set-bit counts of 32 consecutive 256-bit chunks
// of the allocator's free bitmap, plus a packed mask of which of those
// chunks are completely full.
//
// A chunk's count ranges over 0..=256, one more state than a byte can
// hold. The count 256 is represented by the chunk's full-mask bit; a
// set mask bit takes precedence over the stored byte, which stays at
// 255 underneath.
type CountFree struct {
	counts   [32]uint8
	fullMask uint32
}

// countFreeChunks is the number of bitmap chunks one CountFree covers.
const countFreeChunks = 32

// maskBit returns the full-mask bit of chunk i within the group: chunk 0
// occupies the most significant bit so that a leading-zero count over
// the complemented mask yields the first non-full chunk directly.
func maskBit(i uint8) uint32 {
	return uint32(1) << (31 - i)
}

// Get returns the set-bit count of chunk i within the group, 0..=256.
func (c *CountFree) Get(i uint8) uint16 {
	c.checkBounds(i)
	if c.fullMask&maskBit(i) != 0 {
		return 256
	}

	return uint16(c.counts[i])
}

// IsFull reports whether chunk i has all 256 bits set.
func (c *CountFree) IsFull(i uint8) bool {
	c.checkBounds(i)

	return c.fullMask&maskBit(i) != 0
}

// Inc increments the count of chunk i, returning the new count.
//
// Panics when the chunk is already full: counts only move in step with
// bitmap bits, so an overflow means the two went out of sync.
func (c *CountFree) Inc(i uint8) uint16 {
	c.checkBounds(i)
	if c.fullMask&maskBit(i) != 0 {
		panic(fmt.Sprintf("alloc: count of chunk %d overflows past 256", i))
	}
	if c.counts[i] == 255 {
		c.fullMask |= maskBit(i)

		return 256
	}
	c.counts[i]++

	return uint16(c.counts[i])
}

// Dec decrements the count of chunk i, returning the new count.
//
// Panics when the count is already zero.
func (c *CountFree) Dec(i uint8) uint16 {
	c.checkBounds(i)
	if c.fullMask&maskBit(i) != 0 {
		c.fullMask &^= maskBit(i)

		return 255
	}
	if c.counts[i] == 0 {
		panic(fmt.Sprintf("alloc: count of chunk %d underflows below zero", i))
	}
	c.counts[i]--

	return uint16(c.counts[i])
}

// PositionFirstZero returns the index of the first chunk in the group
// that still has a free bit, or ok=false when all 32 chunks are full.
//
// The full mask answers this in a single leading-zero count instead of
// a scan over the count bytes.
func (c *CountFree) PositionFirstZero() (uint8, bool) {
	free := ^c.fullMask
	if free == 0 {
		return 0, false
	}

	return uint8(bits.LeadingZeros32(free)), true
}

func (c *CountFree) checkBounds(i uint8) {
	if i >= countFreeChunks {
		panic(fmt.Sprintf("alloc: chunk index %d out of bounds (group size %d)", i, countFreeChunks))
	}
}

// CountFreeCodec encodes a CountFree as its 32 count bytes followed by
// the full mask in little-endian order, 36 bytes total.
type CountFreeCodec struct{}

var _ codec.Codec[CountFree] = CountFreeCodec{}

var allocEngine = endian.GetLittleEndianEngine()

func (CountFreeCodec) Append(dst []byte, v CountFree) []byte {
	dst = append(dst, v.counts[:]...)

	return allocEngine.AppendUint32(dst, v.fullMask)
}

func (CountFreeCodec) Decode(data []byte) (CountFree, int, error) {
	if len(data) < 36 {
		return CountFree{}, 0, errs.ErrShortBuffer
	}
	var v CountFree
	copy(v.counts[:], data[:32])
	v.fullMask = allocEngine.Uint32(data[32:])

	return v, 36, nil
}
