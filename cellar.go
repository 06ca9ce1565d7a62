// Package cellar implements a deterministic storage layout and
// allocation engine over a flat 256-bit key/value cell store.
//
// State is organized as typed values laid out at 32-byte keys with
// wrap-around big-endian arithmetic. Values choose between two layout
// strategies: packed (the whole value codec-encoded into one cell) and
// spread (each field at its own key, loaded lazily and written back
// once per call). On top of the layout engine sit lazy caches, a
// dynamic allocator and the storage collections.
//
// # Basic Usage
//
// Storing and loading a packed value at a named root:
//
//	import "github.com/arloliu/cellar"
//
//	st := store.NewMemStore()
//	root := cellar.RootKey("erc20.total_supply")
//
//	storage.PushPackedAt(codec.Uint64{}, uint64(1_000_000), root, st)
//	supply := storage.PullPackedAt(codec.Uint64{}, root, st)
//
// Storing a collection as spread state:
//
//	vec := collections.NewVec[uint64](codec.Uint64{})
//	vec.Push(42)
//	storage.PushSpreadRoot(vec, cellar.RootKey("queue"), st)
//
// # Package Structure
//
// This package provides top-level helpers for deriving root keys. The
// layout machinery lives in storage, the containers in collections, the
// dynamic allocator in alloc, and the host store abstraction in store.
package cellar

import (
	"github.com/arloliu/cellar/hasher"
	"github.com/arloliu/cellar/key"
)

// RootKey derives the storage key of a named root from the default hash
// primitive.
//
// Roots anchor independently stored values; two distinct names yield
// unrelated keys spread over the whole key space, so values at named
// roots never overlap no matter how large their footprints grow.
//
// Example:
//
//	balances := cellar.RootKey("erc20.balances")
//	storage.PushSpreadRoot(hmap, balances, st)
func RootKey(name string) key.Key {
	return RootKeyWith(hasher.Default(), name)
}

// RootKeyWith derives the storage key of a named root using h.
//
// The derivation hashes the name directly; use key.Composer for
// structured multi-part derivations.
func RootKeyWith(h hasher.Hasher, name string) key.Key {
	return key.Key(h.Hash([]byte(name)))
}
