package key

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cellar/hasher"
)

func TestKeyAdd(t *testing.T) {
	require := require.New(t)

	t.Run("zero plus offset", func(t *testing.T) {
		var k Key
		got := k.Add(42)
		want := Key{Size - 1: 42}
		require.Equal(want, got)
	})

	t.Run("carry across bytes", func(t *testing.T) {
		k := Key{Size - 1: 0xFF}
		got := k.Add(1)
		want := Key{Size - 2: 0x01}
		require.Equal(want, got)
	})

	t.Run("carry across the offset words", func(t *testing.T) {
		var k Key
		for i := Size - 8; i < Size; i++ {
			k[i] = 0xFF
		}
		got := k.Add(1)
		want := Key{Size - 9: 0x01}
		require.Equal(want, got)
	})

	t.Run("wrap around", func(t *testing.T) {
		var k Key
		for i := range k {
			k[i] = 0xFF
		}
		require.Equal(Key{}, k.Add(1))
	})

	t.Run("add zero is identity", func(t *testing.T) {
		k := FromSlice(make([]byte, Size)).Add(7)
		require.Equal(k, k.Add(0))
	})
}

func TestKeySub(t *testing.T) {
	require := require.New(t)

	t.Run("inverse of add", func(t *testing.T) {
		k := Key{0: 0xAB, Size - 1: 0x01}
		for _, off := range []uint64{0, 1, 255, 256, 1 << 40} {
			require.Equal(k, k.Add(off).Sub(off))
			require.Equal(k, k.Sub(off).Add(off))
		}
	})

	t.Run("wrap around below zero", func(t *testing.T) {
		var k Key
		got := k.Sub(1)
		var want Key
		for i := range want {
			want[i] = 0xFF
		}
		require.Equal(want, got)
	})
}

func TestKeyFromSlice(t *testing.T) {
	b := make([]byte, Size)
	b[0] = 0x01
	b[Size-1] = 0x02
	k := FromSlice(b)
	require.Equal(t, b, k.Bytes())

	require.Panics(t, func() {
		FromSlice(make([]byte, Size-1))
	})
}

func TestKeyIsZero(t *testing.T) {
	var k Key
	require.True(t, k.IsZero())
	require.False(t, k.Add(1).IsZero())
}

func TestKeyString(t *testing.T) {
	var k Key
	k[0], k[1], k[2], k[3] = 0xAA, 0xBB, 0xCC, 0xDD
	k[28], k[29], k[30], k[31] = 0xEE, 0xFF, 0x00, 0x11
	require.Equal(t, "0xAABBCCDD…EEFF0011", k.String())
}

func TestPtrAdvance(t *testing.T) {
	require := require.New(t)

	root := Key{Size - 1: 0x10}
	ptr := NewPtr(root)

	require.Equal(root, ptr.Peek())
	require.Equal(root, ptr.Advance(4))
	require.Equal(root.Add(4), ptr.Next())
	require.Equal(root.Add(5), ptr.Peek())

	// A zero footprint hands out the same key twice.
	require.Equal(root.Add(5), ptr.Advance(0))
	require.Equal(root.Add(5), ptr.Peek())
}

func TestComposerConcat(t *testing.T) {
	require := require.New(t)

	c := NewComposer(hasher.Default())
	var zero Key
	a := Key{0: 0x01}
	b := Key{0: 0x02}

	t.Run("zero is neutral", func(t *testing.T) {
		require.Equal(b, c.Concat(zero, b))
		require.Equal(a, c.Concat(a, zero))
		require.Equal(zero, c.Concat(zero, zero))
	})

	t.Run("non-zero pairs hash", func(t *testing.T) {
		ab := c.Concat(a, b)
		require.NotEqual(a, ab)
		require.NotEqual(b, ab)
		require.Equal(ab, c.Concat(a, b), "must be deterministic")
		require.NotEqual(ab, c.Concat(b, a), "order must matter")
	})
}

func TestComposerFromPath(t *testing.T) {
	require := require.New(t)

	c := NewComposer(hasher.Default())

	k1 := c.FromPath("Erc20", "", "balances")
	require.Equal(k1, c.FromPath("Erc20", "", "balances"))
	require.NotEqual(k1, c.FromPath("Erc20", "", "allowances"))
	require.NotEqual(k1, c.FromPath("Erc721", "", "balances"))

	// Length prefixing: shifting a byte between parts must change the key.
	require.NotEqual(
		c.FromPath("ab", "c", "d"),
		c.FromPath("a", "bc", "d"),
	)
}
