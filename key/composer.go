package key

import (
	"github.com/arloliu/cellar/hasher"
)

// Composer derives storage keys from structural paths and from pairs of
// existing keys.
//
// The composer lets a nested field combine its own preferred key with the
// automatically derived key of its parent without any caller-side hash
// bookkeeping: Concat folds both into a fresh, collision-resistant key,
// while treating the zero key as a neutral element so that "no preference"
// composes for free.
type Composer struct {
	hasher hasher.Hasher
}

// NewComposer creates a composer deriving keys with h.
func NewComposer(h hasher.Hasher) *Composer {
	return &Composer{hasher: h}
}

// Concat combines two keys into one.
//
// The zero key acts as the neutral element:
//
//	Concat(0, b) == b
//	Concat(a, 0) == a
//	Concat(0, 0) == 0
//
// For two non-zero keys the result is the digest of their concatenated
// key material, truncated to the key width. Concat is deterministic, and
// distinct input pairs produce distinct outputs with overwhelming
// probability (the hash is 256 bits wide).
func (c *Composer) Concat(a, b Key) Key {
	switch {
	case a.IsZero():
		return b
	case b.IsZero():
		return a
	}
	buf := make([]byte, 0, 2*Size)
	buf = append(buf, a[:]...)
	buf = append(buf, b[:]...)

	return Key(c.hasher.Hash(buf))
}

// FromPath derives the key of a field from its structural path.
//
// The path is the type name, the variant name (empty for structs) and the
// field name. Identical paths always derive the identical key, so a field
// keeps its storage location across runs and builds as long as its path is
// unchanged. The path elements are length-prefixed before hashing so that
// ("ab","c") and ("a","bc") cannot collide.
func (c *Composer) FromPath(typeName, variantName, fieldName string) Key {
	buf := make([]byte, 0, len(typeName)+len(variantName)+len(fieldName)+12)
	for _, part := range []string{typeName, variantName, fieldName} {
		buf = appendUint32(buf, uint32(len(part)))
		buf = append(buf, part...)
	}

	return Key(c.hasher.Hash(buf))
}

func appendUint32(dst []byte, v uint32) []byte {
	return append(dst, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}
