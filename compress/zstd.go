package compress

// ZstdCompressor compresses cell payloads with Zstandard.
//
// Zstd trades CPU for the best ratio of the available codecs and is the
// right choice when packed composites routinely encode close to the
// per-cell cap. Two implementations exist behind build tags: a cgo
// binding (zstd_cgo.go) and a pure-Go fallback (zstd_pure.go).
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
