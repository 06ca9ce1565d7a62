package collections

import (
	"math/bits"

	"github.com/arloliu/cellar/codec"
	"github.com/arloliu/cellar/endian"
	"github.com/arloliu/cellar/errs"
)

// Bits256 is a chunk of 256 bits, the packing unit of BitVec.
//
// Bit i lives in word i/64 at bit position i%64, so bit 0 is the least
// significant bit of the first word. The chunk encodes to exactly 32
// bytes, comfortably below the cell value cap, which makes it the
// natural granularity for storing large bit sets one cell per chunk.
type Bits256 struct {
	words [4]uint64
}

// Bits256Len is the number of bits held by one Bits256 chunk.
const Bits256Len = 256

// Get returns the bit at position i.
func (b *Bits256) Get(i uint8) bool {
	return b.words[i/64]&(uint64(1)<<(i%64)) != 0
}

// Set sets the bit at position i to 1.
func (b *Bits256) Set(i uint8) {
	b.words[i/64] |= uint64(1) << (i % 64)
}

// Reset sets the bit at position i to 0.
func (b *Bits256) Reset(i uint8) {
	b.words[i/64] &^= uint64(1) << (i % 64)
}

// Flip toggles the bit at position i.
func (b *Bits256) Flip(i uint8) {
	b.words[i/64] ^= uint64(1) << (i % 64)
}

// SetTo sets the bit at position i to v.
func (b *Bits256) SetTo(i uint8, v bool) {
	if v {
		b.Set(i)
	} else {
		b.Reset(i)
	}
}

// And sets the bit at position i to its conjunction with rhs.
func (b *Bits256) And(i uint8, rhs bool) {
	if !rhs {
		b.Reset(i)
	}
}

// Or sets the bit at position i to its disjunction with rhs.
func (b *Bits256) Or(i uint8, rhs bool) {
	if rhs {
		b.Set(i)
	}
}

// Xor sets the bit at position i to its exclusive-or with rhs.
func (b *Bits256) Xor(i uint8, rhs bool) {
	if rhs {
		b.Flip(i)
	}
}

// CountSetBits returns the number of 1 bits in the chunk.
func (b *Bits256) CountSetBits() uint16 {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}

	return uint16(n)
}

// IsFull reports whether all 256 bits are set.
func (b *Bits256) IsFull() bool {
	return b.words[0]&b.words[1]&b.words[2]&b.words[3] == ^uint64(0)
}

// PositionFirstZero returns the position of the lowest 0 bit, or
// ok=false when the chunk is full.
func (b *Bits256) PositionFirstZero() (uint8, bool) {
	for w, word := range b.words {
		if word != ^uint64(0) {
			return uint8(w*64 + bits.TrailingZeros64(^word)), true
		}
	}

	return 0, false
}

// PositionFirstSet returns the position of the lowest 1 bit, or
// ok=false when the chunk is empty.
func (b *Bits256) PositionFirstSet() (uint8, bool) {
	for w, word := range b.words {
		if word != 0 {
			return uint8(w*64 + bits.TrailingZeros64(word)), true
		}
	}

	return 0, false
}

// Bits256Codec encodes a Bits256 chunk as its four words in
// little-endian order, 32 bytes total.
type Bits256Codec struct{}

var _ codec.Codec[Bits256] = Bits256Codec{}

var bitsEngine = endian.GetLittleEndianEngine()

func (Bits256Codec) Append(dst []byte, v Bits256) []byte {
	for _, w := range v.words {
		dst = bitsEngine.AppendUint64(dst, w)
	}

	return dst
}

func (Bits256Codec) Decode(data []byte) (Bits256, int, error) {
	if len(data) < 32 {
		return Bits256{}, 0, errs.ErrShortBuffer
	}
	var v Bits256
	for w := range v.words {
		v.words[w] = bitsEngine.Uint64(data[w*8:])
	}

	return v, 32, nil
}
