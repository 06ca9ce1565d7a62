// Package key implements typeless addresses into the contract storage
// key space, the cursor used to lay values out over consecutive cells,
// and the composer that derives collision-free keys from structural paths.
//
// A Key behaves like a raw pointer into a sparse 2^256 cell space and
// supports deterministic wrap-around arithmetic. Keys carry no ownership
// or synchronization semantics on their own; higher layers (the storage
// and collections packages) are responsible for using them consistently.
package key

import (
	"encoding/binary"
	"fmt"
)

// Size is the width of a storage key in bytes.
const Size = 32

// Key is a typeless 256-bit address of a single storage cell.
//
// Keys are comparable and can be used as map keys. Equality is the only
// semantically meaningful comparison; the numeric ordering of two unrelated
// keys carries no layout information.
type Key [Size]byte

// FromBytes creates a Key from a 32-byte array.
func FromBytes(b [Size]byte) Key { return Key(b) }

// FromSlice creates a Key from a byte slice.
//
// Panics if the slice is not exactly 32 bytes long; key material of any
// other width indicates a programming error.
func FromSlice(b []byte) Key {
	if len(b) != Size {
		panic(fmt.Sprintf("key: expected %d bytes, got %d", Size, len(b)))
	}
	var k Key
	copy(k[:], b)

	return k
}

// IsZero reports whether every byte of the key is zero.
func (k Key) IsZero() bool {
	return k == Key{}
}

// Bytes returns a copy of the key material.
func (k Key) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, k[:])

	return b
}

// Add returns the key advanced by offset cells.
//
// The key is interpreted as a 256-bit big-endian unsigned integer and the
// addition wraps around, mirroring pointer arithmetic over a finite key
// space. Add is deterministic: the same key and offset always produce the
// same result.
func (k Key) Add(offset uint64) Key {
	var rhs [Size]byte
	binary.BigEndian.PutUint64(rhs[Size-8:], offset)

	return k.addBytes(rhs)
}

// Sub returns the key moved back by offset cells, with wrap-around.
func (k Key) Sub(offset uint64) Key {
	var rhs [Size]byte
	binary.BigEndian.PutUint64(rhs[Size-8:], offset)
	// Two's complement negation of the 256-bit operand.
	for i := range rhs {
		rhs[i] = ^rhs[i]
	}
	one := Key(rhs).addBytes([Size]byte{Size - 1: 1})

	return k.addBytes([Size]byte(one))
}

// addBytes adds rhs to k as 256-bit big-endian integers with wrap-around.
func (k Key) addBytes(rhs [Size]byte) Key {
	var (
		out   Key
		carry uint16
	)
	for i := Size - 1; i >= 0; i-- {
		sum := uint16(k[i]) + uint16(rhs[i]) + carry
		out[i] = byte(sum)
		carry = sum >> 8
	}

	return out
}

// String formats the key as 0x-prefixed hexadecimal with the first and last
// four bytes spelled out, which keeps log and test output readable.
func (k Key) String() string {
	return fmt.Sprintf("0x%02X%02X%02X%02X…%02X%02X%02X%02X",
		k[0], k[1], k[2], k[3], k[28], k[29], k[30], k[31])
}
