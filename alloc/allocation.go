package alloc

import (
	"github.com/arloliu/cellar/hasher"
	"github.com/arloliu/cellar/key"
)

// DynamicAllocation is the handle of a dynamically allocated storage
// region: a dense identifier handed out by the DynamicAllocator.
type DynamicAllocation uint32

// allocationPrefix is the domain separator hashed in front of the
// identifier when deriving an allocation's storage key.
const allocationPrefix = "DYNAMICALLY ALLOCATED"

// Key returns the storage key of the allocation, derived with the
// default hash primitive. The identifier is hashed rather than used as
// an offset so that dynamic regions spread over the whole key space and
// cannot collide with statically laid out state.
func (a DynamicAllocation) Key() key.Key {
	return a.KeyWith(hasher.Default())
}

// KeyWith returns the storage key of the allocation derived with h.
//
// The digest covers the fixed prefix followed by the identifier in
// little-endian byte order.
func (a DynamicAllocation) KeyWith(h hasher.Hasher) key.Key {
	buf := make([]byte, 0, len(allocationPrefix)+4)
	buf = append(buf, allocationPrefix...)
	buf = append(buf, byte(a), byte(a>>8), byte(a>>16), byte(a>>24))

	return key.Key(h.Hash(buf))
}
