package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// cellPayload builds a repetitive payload of n bytes, shaped like a large
// packed composite near the per-cell cap.
func cellPayload(n int) []byte {
	return bytes.Repeat([]byte("0123456789abcdef"), n/16+1)[:n]
}

func TestCreateCodec(t *testing.T) {
	require := require.New(t)

	for _, typ := range []Type{TypeNone, TypeZstd, TypeS2, TypeLZ4} {
		codec, err := CreateCodec(typ)
		require.NoError(err)
		require.NotNil(codec)
	}

	_, err := CreateCodec(Type(99))
	require.Error(err)
}

func TestCodecRoundTrip(t *testing.T) {
	for _, typ := range []Type{TypeNone, TypeZstd, TypeS2, TypeLZ4} {
		t.Run(typ.String(), func(t *testing.T) {
			require := require.New(t)

			codec, err := CreateCodec(typ)
			require.NoError(err)

			for _, size := range []int{0, 1, 100, 4096, 16380} {
				data := cellPayload(size)
				compressed, err := codec.Compress(data)
				require.NoError(err)

				restored, err := codec.Decompress(compressed)
				require.NoError(err)
				require.Equal(data, restored)
			}
		})
	}
}

func TestCodecShrinksRepetitivePayload(t *testing.T) {
	for _, typ := range []Type{TypeZstd, TypeS2, TypeLZ4} {
		t.Run(typ.String(), func(t *testing.T) {
			require := require.New(t)

			codec, err := CreateCodec(typ)
			require.NoError(err)

			data := cellPayload(16380)
			compressed, err := codec.Compress(data)
			require.NoError(err)
			require.Less(len(compressed), len(data))
		})
	}
}

func TestDecompressCorruptPayload(t *testing.T) {
	for _, typ := range []Type{TypeZstd, TypeLZ4} {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := CreateCodec(typ)
			require.NoError(t, err)

			_, err = codec.Decompress([]byte{0xDE, 0xAD, 0xBE, 0xEF})
			require.Error(t, err)
		})
	}
}

func TestTypeString(t *testing.T) {
	require := require.New(t)

	require.Equal("none", TypeNone.String())
	require.Equal("zstd", TypeZstd.String())
	require.Equal("s2", TypeS2.String())
	require.Equal("lz4", TypeLZ4.String())
}
