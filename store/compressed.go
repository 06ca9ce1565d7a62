package store

import (
	"fmt"

	"github.com/arloliu/cellar/compress"
	"github.com/arloliu/cellar/errs"
	"github.com/arloliu/cellar/key"
)

// compressedTag is the first byte of every value written by a
// CompressedStore: 0x00 for raw payloads, 0x01 for compressed ones.
const (
	tagRaw        byte = 0x00
	tagCompressed byte = 0x01
)

// DefaultCompressionThreshold is the payload size in bytes above which a
// CompressedStore compresses cell values. Small cells are stored raw;
// compressing a few dozen bytes costs more than it saves.
const DefaultCompressionThreshold = 512

// CompressedStore is a Store middleware that transparently compresses
// large cell values before they reach the inner store.
//
// The layout engine above is unaware of the compression: Get always
// returns the uncompressed cell image. This keeps packed composites that
// encode close to the per-cell cap storable without changing their layout
// contract.
type CompressedStore struct {
	inner     Store
	codec     compress.Codec
	threshold int
}

var _ Store = (*CompressedStore)(nil)

// CompressedStoreOption configures a CompressedStore.
type CompressedStoreOption func(*CompressedStore)

// WithThreshold sets the minimum payload size, in bytes, for which
// compression is attempted. Defaults to DefaultCompressionThreshold.
func WithThreshold(n int) CompressedStoreOption {
	return func(s *CompressedStore) {
		s.threshold = n
	}
}

// NewCompressedStore wraps inner with per-cell compression using codec.
func NewCompressedStore(inner Store, codec compress.Codec, opts ...CompressedStoreOption) *CompressedStore {
	s := &CompressedStore{
		inner:     inner,
		codec:     codec,
		threshold: DefaultCompressionThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Get returns the uncompressed cell image at k.
//
// Panics if the stored payload is corrupted; a cell that cannot be
// restored indicates the backing store was modified outside this
// middleware, which is not a recoverable condition for the layout engine.
func (s *CompressedStore) Get(k key.Key) ([]byte, bool) {
	raw, ok := s.inner.Get(k)
	if !ok {
		return nil, false
	}
	if len(raw) == 0 {
		return raw, true
	}
	switch raw[0] {
	case tagRaw:
		return raw[1:], true
	case tagCompressed:
		data, err := s.codec.Decompress(raw[1:])
		if err != nil {
			panic(fmt.Errorf("store: cell %v: %w: %w", k, errs.ErrCompressedPayload, err))
		}

		return data, true
	default:
		panic(fmt.Errorf("store: cell %v: %w", k, errs.ErrCompressedPayload))
	}
}

// Set stores value at k, compressing it when it exceeds the threshold and
// compression actually shrinks it.
func (s *CompressedStore) Set(k key.Key, value []byte) {
	if len(value) >= s.threshold {
		compressed, err := s.codec.Compress(value)
		if err == nil && len(compressed) < len(value) {
			buf := make([]byte, 0, len(compressed)+1)
			buf = append(buf, tagCompressed)
			buf = append(buf, compressed...)
			s.inner.Set(k, buf)

			return
		}
	}
	buf := make([]byte, 0, len(value)+1)
	buf = append(buf, tagRaw)
	buf = append(buf, value...)
	s.inner.Set(k, buf)
}

// Clear removes the cell at k.
func (s *CompressedStore) Clear(k key.Key) {
	s.inner.Clear(k)
}
