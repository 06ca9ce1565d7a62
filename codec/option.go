package codec

import "github.com/arloliu/cellar/errs"

// Option encodes an optional value as a one-byte tag (0x00 absent,
// 0x01 present) followed by the inner encoding when present.
//
// This is the encoding of options stored *inside* a packed cell. Options
// stored at the root of a spread region use cell presence itself as the
// discriminant instead; see the storage package's option root helpers,
// which save the tag byte entirely.
type Option[T any] struct {
	// Inner encodes the contained value when present.
	Inner Codec[T]
}

var _ Codec[*uint32] = Option[uint32]{}

// NewOption creates an optional codec around inner.
func NewOption[T any](inner Codec[T]) Option[T] {
	return Option[T]{Inner: inner}
}

// Append appends the encoding of v; a nil pointer encodes as the single
// absent tag byte.
func (c Option[T]) Append(dst []byte, v *T) []byte {
	if v == nil {
		return append(dst, 0)
	}
	dst = append(dst, 1)

	return c.Inner.Append(dst, *v)
}

// Decode decodes an optional value; absent values decode to nil.
func (c Option[T]) Decode(data []byte) (*T, int, error) {
	if len(data) < 1 {
		return nil, 0, errs.ErrShortBuffer
	}
	switch data[0] {
	case 0:
		return nil, 1, nil
	case 1:
		v, n, err := c.Inner.Decode(data[1:])
		if err != nil {
			return nil, 0, err
		}

		return &v, 1 + n, nil
	default:
		return nil, 0, errs.ErrInvalidTag
	}
}

// isOptionCodec marks Option so that the storage package can reject
// nesting option roots around option codecs, where presence-as-discriminant
// cannot distinguish Some(None) from None.
func (c Option[T]) isOptionCodec() {}

// OptionMarker is implemented by Option codecs of any element type.
//
// The storage package uses it to detect and reject nested options at the
// root of a spread region.
type OptionMarker interface {
	isOptionCodec()
}
