// Package endian provides byte order utilities for the cell codec.
//
// The package combines the ByteOrder and AppendByteOrder interfaces of
// encoding/binary into a single EndianEngine interface so that codecs can
// both read fixed-width integers from cell buffers and append them to
// encode buffers through one value.
//
// Cell encodings are little-endian by default: the cell format must be
// byte-for-byte identical on every platform, and little-endian is native
// on the common targets (x86-64, ARM64). Big-endian is available for
// interoperability with externally produced cell images.
//
// All returned engines are immutable and stateless and therefore safe for
// concurrent use.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface for convenient byte order operations.
//
// It is satisfied by binary.LittleEndian and binary.BigEndian, so engines
// interoperate with existing code that expects a plain binary.ByteOrder.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine, the default for
// all cell encodings.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	// For a big-endian system, the MSB (0x01) is first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}
