package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCountFreeIncDec(t *testing.T) {
	require := require.New(t)

	var c CountFree
	require.Equal(uint16(0), c.Get(3))

	require.Equal(uint16(1), c.Inc(3))
	require.Equal(uint16(2), c.Inc(3))
	require.Equal(uint16(2), c.Get(3))

	require.Equal(uint16(1), c.Dec(3))
	require.Equal(uint16(0), c.Dec(3))
	require.Panics(func() { c.Dec(3) }, "underflow must not be absorbed")
}

func TestCountFreeFullChunk(t *testing.T) {
	require := require.New(t)

	var c CountFree
	for i := 0; i < 255; i++ {
		c.Inc(0)
	}
	require.Equal(uint16(255), c.Get(0))
	require.False(c.IsFull(0))

	// The 256th increment flips the full-mask bit.
	require.Equal(uint16(256), c.Inc(0))
	require.True(c.IsFull(0))
	require.Equal(uint16(256), c.Get(0))
	require.Panics(func() { c.Inc(0) }, "overflow past 256 must not be absorbed")

	require.Equal(uint16(255), c.Dec(0))
	require.False(c.IsFull(0))
	require.Equal(uint16(255), c.Get(0))
}

func TestCountFreePositionFirstZero(t *testing.T) {
	require := require.New(t)

	var c CountFree
	pos, ok := c.PositionFirstZero()
	require.True(ok)
	require.Equal(uint8(0), pos)

	fill := func(i uint8) {
		for n := 0; n < 256; n++ {
			c.Inc(i)
		}
	}

	fill(0)
	pos, ok = c.PositionFirstZero()
	require.True(ok)
	require.Equal(uint8(1), pos, "a partially counted chunk is not full")

	fill(1)
	fill(2)
	pos, ok = c.PositionFirstZero()
	require.True(ok)
	require.Equal(uint8(3), pos)

	for i := uint8(3); i < countFreeChunks; i++ {
		fill(i)
	}
	_, ok = c.PositionFirstZero()
	require.False(ok, "all 32 chunks full")

	c.Dec(17)
	pos, ok = c.PositionFirstZero()
	require.True(ok)
	require.Equal(uint8(17), pos)
}

func TestCountFreeBounds(t *testing.T) {
	var c CountFree
	require.Panics(t, func() { c.Get(countFreeChunks) })
	require.Panics(t, func() { c.Inc(countFreeChunks) })
}

func TestCountFreeCodec(t *testing.T) {
	require := require.New(t)

	var c CountFree
	c.Inc(0)
	c.Inc(0)
	c.Inc(31)
	for n := 0; n < 256; n++ {
		c.Inc(7)
	}

	buf := CountFreeCodec{}.Append(nil, c)
	require.Len(buf, 36)

	got, n, err := CountFreeCodec{}.Decode(buf)
	require.NoError(err)
	require.Equal(36, n)
	require.Equal(c, got)
	require.True(got.IsFull(7))
	require.Equal(uint16(2), got.Get(0))

	_, _, err = CountFreeCodec{}.Decode(buf[:35])
	require.Error(err)
}
