// Package pool provides a pooled, growable byte buffer used by bitstream
// writers so that sustained block construction does not thrash the
// allocator.
package pool

import "sync"

// Default and max-retained sizes for buffers handed out by the package
// pool. A block's bit stream rarely exceeds a few KiB (two hours of
// samples at sub-second cadence), so the default is sized well above the
// common case and the threshold guards against retaining an outlier.
const (
	BlockBufferDefaultSize  = 4 * 1024  // 4KiB
	BlockBufferMaxThreshold = 64 * 1024 // 64KiB
)

// ByteBuffer is a growable byte slice with an append-only write API.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the given initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory
// for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer in bytes.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer in bytes.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// PushByte appends a single fully-formed byte, growing the buffer if
// necessary.
func (bb *ByteBuffer) PushByte(b byte) {
	bb.Grow(1)
	bb.B = append(bb.B, b)
}

// LastByte returns a pointer to the last byte in the buffer. The caller
// must ensure the buffer is non-empty.
func (bb *ByteBuffer) LastByte() *byte {
	return &bb.B[len(bb.B)-1]
}

// Grow ensures the buffer can hold at least requiredBytes more bytes
// without reallocating.
//
// Growth strategy: small buffers grow by BlockBufferDefaultSize to
// minimize reallocations early on; larger buffers grow by 25% of current
// capacity to balance memory usage against reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := BlockBufferDefaultSize
	if cap(bb.B) > 4*BlockBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// ByteBufferPool pools ByteBuffers to minimize allocations across
// repeated block construction.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool whose buffers start at
// defaultSize and are discarded (not retained) once they grow past
// maxThreshold.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse. Buffers that grew past
// the pool's max threshold are discarded instead, to avoid retaining
// outlier allocations indefinitely.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var defaultPool = NewByteBufferPool(BlockBufferDefaultSize, BlockBufferMaxThreshold)

// Get retrieves a ByteBuffer from the package-default pool.
func Get() *ByteBuffer {
	return defaultPool.Get()
}

// Put returns a ByteBuffer to the package-default pool.
func Put(bb *ByteBuffer) {
	defaultPool.Put(bb)
}
