// Package collections provides the storage-backed container types built
// on top of the lazy caching layer: Vec, Stash, HashMap, BinaryHeap and
// BitVec.
//
// Every collection is a thin bookkeeping layer over one or two lazy
// caches; no collection talks to the host store directly. All of them
// implement storage.Spread so they can be stored standalone at a root key
// or nested as fields of larger composites.
//
// Failure semantics follow the layout engine's convention: read-style
// accessors return ok=false for absent elements, mutating accessors with
// an explicit index or bit position panic when out of bounds.
package collections
