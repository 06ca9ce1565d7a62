package storage

import (
	"fmt"

	"github.com/arloliu/cellar/codec"
	"github.com/arloliu/cellar/errs"
	"github.com/arloliu/cellar/internal/pool"
	"github.com/arloliu/cellar/key"
	"github.com/arloliu/cellar/store"
)

// PushPackedAt encodes v with c and overwrites the cell at `at`.
func PushPackedAt[T any](c codec.Codec[T], v T, at key.Key, st store.Store) {
	buf := pool.GetCellBuffer()
	defer pool.PutCellBuffer(buf)

	buf.B = c.Append(buf.B, v)
	st.Set(at, buf.B)
}

// PullPackedAt decodes the value stored in the cell at `at`.
//
// Panics if the cell is absent or its contents do not decode as a single,
// fully consumed value of T: a missing or mismatched cell at a known
// location means writer and reader disagree about the layout, which is a
// programming error. Use PullPackedAtOpt for presence checks.
func PullPackedAt[T any](c codec.Codec[T], at key.Key, st store.Store) T {
	v, ok := PullPackedAtOpt(c, at, st)
	if !ok {
		panic(fmt.Sprintf("storage: pulled absent cell at %v", at))
	}

	return v
}

// PullPackedAtOpt decodes the value stored in the cell at `at`, reporting
// ok=false if the cell is absent.
//
// Panics on decode mismatch, including trailing bytes: a cell must be
// consumed entirely.
func PullPackedAtOpt[T any](c codec.Codec[T], at key.Key, st store.Store) (T, bool) {
	data, ok := st.Get(at)
	if !ok {
		var zero T

		return zero, false
	}
	v, n, err := c.Decode(data)
	if err != nil {
		panic(fmt.Errorf("storage: cell %v: %w", at, err))
	}
	if n != len(data) {
		panic(fmt.Errorf("storage: cell %v: %w (%d of %d bytes consumed)", at, errs.ErrTrailingBytes, n, len(data)))
	}

	return v, true
}

// ClearPackedAt removes the cell at `at`.
func ClearPackedAt(at key.Key, st store.Store) {
	st.Clear(at)
}
