// Package hasher provides the cryptographic hash abstraction used to derive
// storage keys.
//
// Key derivation (composer concatenation, hash-map key placement and dynamic
// allocation keys) requires a hash whose output is as wide as a storage key
// (32 bytes) and whose collision probability is negligible, since the layout
// engine performs no collision chaining: two live inputs hashing to the same
// storage key would silently alias the same cell.
//
// Blake2b256 is the default and recommended hasher. Sha256 is provided for
// environments that require a NIST-approved primitive. Both are deterministic
// across runs and platforms, which is a hard requirement: the same logical
// layout must map to the same keys on every execution.
package hasher

import (
	"crypto/sha256"

	"golang.org/x/crypto/blake2b"
)

// Size is the digest width in bytes produced by every Hasher.
//
// It matches the storage key width so that digests can be used as storage
// keys directly.
const Size = 32

// Hasher computes a 32-byte digest of the given input.
//
// Implementations must be deterministic and stateless; the same input must
// yield the same digest on every call, every run and every platform.
type Hasher interface {
	// Name returns a short stable identifier of the hash primitive.
	Name() string

	// Hash returns the 32-byte digest of data.
	Hash(data []byte) [Size]byte
}

// Blake2b256 hashes with BLAKE2b-256. It is the default hasher of the
// storage layout engine.
type Blake2b256 struct{}

var _ Hasher = Blake2b256{}

// Name returns "blake2b-256".
func (Blake2b256) Name() string { return "blake2b-256" }

// Hash returns the BLAKE2b-256 digest of data.
func (Blake2b256) Hash(data []byte) [Size]byte {
	return blake2b.Sum256(data)
}

// Sha256 hashes with SHA-256.
type Sha256 struct{}

var _ Hasher = Sha256{}

// Name returns "sha-256".
func (Sha256) Name() string { return "sha-256" }

// Hash returns the SHA-256 digest of data.
func (Sha256) Hash(data []byte) [Size]byte {
	return sha256.Sum256(data)
}

// Default returns the hasher used by cellar when none is configured
// explicitly.
func Default() Hasher { return Blake2b256{} }
