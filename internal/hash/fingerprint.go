// Package hash computes content fingerprints of encoded cell values.
//
// The lazy caching layer remembers the fingerprint of the bytes a cell was
// pulled with; when the cell is pushed back, an unchanged fingerprint means
// the metered host write can be skipped entirely. xxHash64 is used because
// the comparison is advisory (a collision only costs one redundant write,
// never correctness) and speed matters on the push path.
package hash

import "github.com/cespare/xxhash/v2"

// Fingerprint returns the xxHash64 of the given cell bytes.
//
// The zero value is reserved to mean "no fingerprint": the hash of actual
// content that happens to be zero is remapped to 1.
func Fingerprint(data []byte) uint64 {
	h := xxhash.Sum64(data)
	if h == 0 {
		return 1
	}

	return h
}
