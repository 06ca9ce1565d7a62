// Package pool provides pooled byte buffers for the cell encode path.
//
// Every push of a packed value encodes into a scratch buffer before the
// bytes are handed to the host store. Cells are small (at most ~16KiB), so
// a modest default capacity covers nearly all encodes without growth.
package pool

import "sync"

// CellBufferDefaultSize is the initial capacity of buffers obtained from
// the pool. It matches the per-cell value cap rounded up to a power of two
// so that a single cell encode never reallocates.
const (
	CellBufferDefaultSize  = 16 * 1024
	cellBufferMaxThreshold = 128 * 1024
)

// ByteBuffer is a reusable byte slice wrapper.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, retaining the allocated memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

var cellBufferPool = sync.Pool{
	New: func() any {
		return &ByteBuffer{B: make([]byte, 0, CellBufferDefaultSize)}
	},
}

// GetCellBuffer returns an empty pooled buffer sized for a cell encode.
func GetCellBuffer() *ByteBuffer {
	bb := cellBufferPool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// PutCellBuffer returns a buffer to the pool.
//
// Buffers that grew past the retention threshold are dropped so that one
// oversized encode does not pin memory forever.
func PutCellBuffer(bb *ByteBuffer) {
	if cap(bb.B) > cellBufferMaxThreshold {
		return
	}
	cellBufferPool.Put(bb)
}
