// Package compress provides the compression codecs used to keep large
// packed cell values under the per-cell byte cap.
//
// A single cell holds at most ~16KiB, so a packed composite that encodes
// close to the cap can be transparently compressed before it reaches the
// host store. Compression is applied per cell by the store middleware (see
// the store package's CompressedStore), never by the layout engine itself:
// the layout contract is defined over the uncompressed cell image.
//
// Available codecs:
//   - NoOp: passthrough, for measurement and debugging
//   - S2: fastest, moderate ratio
//   - LZ4: fast with slightly better ratio than S2 on cell-sized payloads
//   - Zstd: best ratio, used when cells approach the cap
package compress

import "fmt"

// Type identifies a compression codec in configuration.
type Type uint8

const (
	// TypeNone applies no compression.
	TypeNone Type = iota
	// TypeZstd applies Zstandard compression.
	TypeZstd
	// TypeS2 applies S2 (Snappy-compatible) compression.
	TypeS2
	// TypeLZ4 applies LZ4 block compression.
	TypeLZ4
)

// String returns the codec name used in configuration and logs.
func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeZstd:
		return "zstd"
	case TypeS2:
		return "s2"
	case TypeLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Compressor compresses a cell payload.
type Compressor interface {
	// Compress compresses data and returns the compressed result.
	// The returned slice is newly allocated; the input is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a compressed cell payload.
type Decompressor interface {
	// Decompress restores data previously produced by the matching
	// Compressor. Returns an error if the payload is corrupted or was
	// produced by a different codec.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines compression and decompression.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec creates the codec for the given compression type.
//
// Returns an error for unknown types; callers configuring a store
// middleware should fail fast on invalid configuration.
func CreateCodec(compressionType Type) (Codec, error) {
	switch compressionType {
	case TypeNone:
		return NewNoOpCompressor(), nil
	case TypeZstd:
		return NewZstdCompressor(), nil
	case TypeS2:
		return NewS2Compressor(), nil
	case TypeLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("unknown compression type %d", compressionType)
	}
}
