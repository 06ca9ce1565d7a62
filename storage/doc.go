// Package storage implements the layout contracts that map typed values
// onto storage cells, and the lazy caching layer that mediates every read
// and write between typed values and raw cells.
//
// # Layout strategies
//
// A value is stored in one of two ways:
//
//   - Spread: the value decomposes into a fixed number of independently
//     addressed cells (its footprint). Composites spread their fields over
//     a shared cursor in a fixed order; that order is the layout contract.
//   - Packed: the value is encoded into exactly one cell through a
//     codec.Codec. Every packed value forwards to a spread layout with a
//     footprint of one (see SpreadOf).
//
// # Lazy caching
//
// Lazy, LazyIndexMap, LazyArray and LazyHashMap cache cell contents per
// call: a cell is pulled from the host store at most once, mutations are
// staged in memory, and the staged state is pushed back in a single
// traversal when the owning structure is pushed. Entries additionally
// remember a fingerprint of the bytes they were pulled with, so pushing a
// value that re-encodes to identical bytes skips the metered host write.
//
// # Failure semantics
//
// Layout traversals never return errors. A decode mismatch, an
// out-of-bounds structural access or loading through an unanchored lazy
// value is a programming error and panics. Only read-style lookups of
// absent cells are recoverable, reported as ok=false.
//
// All types in this package are call-scoped and single-threaded, matching
// the host execution model. None of them synchronize internally.
package storage
