// Package codec implements the packed cell encoding: the translation
// between typed values and the opaque byte blobs held by individual
// storage cells.
//
// A Codec is attached to every lazily cached field and every collection
// element at construction time and fully determines the byte image of a
// value. Encodings are deterministic and platform independent: integers
// are fixed-width little-endian, byte strings are uvarint length-prefixed.
// Two values are stored identically if and only if they encode to the same
// bytes, which is what makes redundant-write elision by content
// fingerprinting sound.
//
// Decoding reports the number of consumed bytes so codecs compose; the
// storage layer enforces that a cell is consumed entirely, since trailing
// bytes indicate type confusion between writer and reader.
package codec

import (
	"encoding/binary"
	"math"

	"github.com/arloliu/cellar/endian"
	"github.com/arloliu/cellar/errs"
)

// engine is the byte order of all fixed-width cell encodings.
var engine = endian.GetLittleEndianEngine()

// Codec encodes and decodes values of type T to and from cell bytes.
//
// Implementations must be stateless and deterministic: Append must produce
// the identical byte sequence for equal values on every call.
type Codec[T any] interface {
	// Append appends the encoding of v to dst and returns the extended
	// buffer.
	Append(dst []byte, v T) []byte

	// Decode decodes a value from the front of data and returns it along
	// with the number of bytes consumed.
	Decode(data []byte) (T, int, error)
}

// Uint8 encodes a uint8 as a single byte.
type Uint8 struct{}

var _ Codec[uint8] = Uint8{}

func (Uint8) Append(dst []byte, v uint8) []byte { return append(dst, v) }

func (Uint8) Decode(data []byte) (uint8, int, error) {
	if len(data) < 1 {
		return 0, 0, errs.ErrShortBuffer
	}

	return data[0], 1, nil
}

// Uint16 encodes a uint16 as two little-endian bytes.
type Uint16 struct{}

var _ Codec[uint16] = Uint16{}

func (Uint16) Append(dst []byte, v uint16) []byte { return engine.AppendUint16(dst, v) }

func (Uint16) Decode(data []byte) (uint16, int, error) {
	if len(data) < 2 {
		return 0, 0, errs.ErrShortBuffer
	}

	return engine.Uint16(data), 2, nil
}

// Uint32 encodes a uint32 as four little-endian bytes.
type Uint32 struct{}

var _ Codec[uint32] = Uint32{}

func (Uint32) Append(dst []byte, v uint32) []byte { return engine.AppendUint32(dst, v) }

func (Uint32) Decode(data []byte) (uint32, int, error) {
	if len(data) < 4 {
		return 0, 0, errs.ErrShortBuffer
	}

	return engine.Uint32(data), 4, nil
}

// Uint64 encodes a uint64 as eight little-endian bytes.
type Uint64 struct{}

var _ Codec[uint64] = Uint64{}

func (Uint64) Append(dst []byte, v uint64) []byte { return engine.AppendUint64(dst, v) }

func (Uint64) Decode(data []byte) (uint64, int, error) {
	if len(data) < 8 {
		return 0, 0, errs.ErrShortBuffer
	}

	return engine.Uint64(data), 8, nil
}

// Int64 encodes an int64 as eight little-endian bytes (two's complement).
type Int64 struct{}

var _ Codec[int64] = Int64{}

func (Int64) Append(dst []byte, v int64) []byte { return engine.AppendUint64(dst, uint64(v)) }

func (Int64) Decode(data []byte) (int64, int, error) {
	if len(data) < 8 {
		return 0, 0, errs.ErrShortBuffer
	}

	return int64(engine.Uint64(data)), 8, nil
}

// Float64 encodes a float64 as its IEEE-754 bit pattern, little-endian.
type Float64 struct{}

var _ Codec[float64] = Float64{}

func (Float64) Append(dst []byte, v float64) []byte {
	return engine.AppendUint64(dst, math.Float64bits(v))
}

func (Float64) Decode(data []byte) (float64, int, error) {
	if len(data) < 8 {
		return 0, 0, errs.ErrShortBuffer
	}

	return math.Float64frombits(engine.Uint64(data)), 8, nil
}

// Bool encodes a bool as a single 0x00/0x01 byte.
type Bool struct{}

var _ Codec[bool] = Bool{}

func (Bool) Append(dst []byte, v bool) []byte {
	if v {
		return append(dst, 1)
	}

	return append(dst, 0)
}

func (Bool) Decode(data []byte) (bool, int, error) {
	if len(data) < 1 {
		return false, 0, errs.ErrShortBuffer
	}
	switch data[0] {
	case 0:
		return false, 1, nil
	case 1:
		return true, 1, nil
	default:
		return false, 0, errs.ErrInvalidTag
	}
}

// String encodes a string as a uvarint length prefix followed by its bytes.
type String struct{}

var _ Codec[string] = String{}

func (String) Append(dst []byte, v string) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(v)))

	return append(dst, v...)
}

func (String) Decode(data []byte) (string, int, error) {
	length, n := binary.Uvarint(data)
	if n <= 0 {
		return "", 0, errs.ErrShortBuffer
	}
	end := n + int(length)
	if end > len(data) {
		return "", 0, errs.ErrShortBuffer
	}

	return string(data[n:end]), end, nil
}

// Bytes encodes a byte slice as a uvarint length prefix followed by the
// bytes. The decoded slice is a copy and does not alias the cell buffer.
type Bytes struct{}

var _ Codec[[]byte] = Bytes{}

func (Bytes) Append(dst []byte, v []byte) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(v)))

	return append(dst, v...)
}

func (Bytes) Decode(data []byte) ([]byte, int, error) {
	length, n := binary.Uvarint(data)
	if n <= 0 {
		return nil, 0, errs.ErrShortBuffer
	}
	end := n + int(length)
	if end > len(data) {
		return nil, 0, errs.ErrShortBuffer
	}
	out := make([]byte, length)
	copy(out, data[n:end])

	return out, end, nil
}
