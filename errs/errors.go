// Package errs defines the sentinel errors shared across cellar packages.
//
// Only recoverable conditions are modeled as errors; structural storage
// violations (out-of-bounds access, double frees, decode type confusion)
// are programmer errors and panic instead. See the package documentation
// of the storage package for the full failure taxonomy.
package errs

import "errors"

var (
	// ErrShortBuffer is returned when a cell buffer ends before the value
	// encoding is complete.
	ErrShortBuffer = errors.New("cell buffer too short for value")

	// ErrTrailingBytes is returned when decoding a cell leaves unconsumed
	// bytes. A cell must be consumed entirely or the decode is invalid.
	ErrTrailingBytes = errors.New("trailing bytes after cell decode")

	// ErrValueTooLarge is returned when an encoded value exceeds the
	// per-cell byte cap enforced by the host store.
	ErrValueTooLarge = errors.New("encoded value exceeds cell capacity")

	// ErrInvalidTag is returned when a tagged encoding (options, stash
	// entries) carries an unknown tag byte.
	ErrInvalidTag = errors.New("invalid tag byte in cell encoding")

	// ErrCompressedPayload is returned when a compressed cell payload
	// cannot be restored.
	ErrCompressedPayload = errors.New("corrupted compressed cell payload")
)
