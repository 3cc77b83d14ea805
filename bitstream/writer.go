package bitstream

import (
	"github.com/arloliu/tscodec/internal/pool"
)

// Writer is an append-only, MSB-first bit buffer.
//
// The zero value is not usable; construct one with NewWriter. A Writer is
// not safe for concurrent use.
type Writer struct {
	buf      *pool.ByteBuffer
	tailBits uint8 // valid high-order bits used in the last byte; 0 means the last byte is full (or the buffer is empty)
}

// NewWriter returns a Writer backed by a pooled byte buffer.
func NewWriter() *Writer {
	return &Writer{buf: pool.Get()}
}

// FromBytes returns a Writer whose stream starts out holding a copy of
// data, with tailBits valid high-order bits in the last byte. Further
// AppendBits calls continue exactly where the tail left off. Used to
// reconstruct a Writer (and, above it, a Block) from previously
// persisted bytes.
func FromBytes(data []byte, tailBits uint8) *Writer {
	w := &Writer{buf: pool.Get(), tailBits: tailBits}
	w.buf.Reset()
	for _, b := range data {
		w.buf.PushByte(b)
	}

	return w
}

// Release returns the Writer's backing buffer to the pool. The Writer
// must not be used afterward.
func (w *Writer) Release() {
	pool.Put(w.buf)
	w.buf = nil
}

// AppendBits writes the low n bits of value, MSB-first, at the current
// tail of the stream. n must be in [1, 64]; only the low n bits of value
// are meaningful, higher bits are ignored.
//
// The logical bit length grows by exactly n; previously written bits are
// left unchanged; unused low-order bits of the final partial byte remain
// zero.
func (w *Writer) AppendBits(n int, value uint64) {
	if n < 1 || n > 64 {
		panic("bitstream: AppendBits: n out of range [1,64]")
	}
	if n < 64 {
		value &= (uint64(1) << uint(n)) - 1
	}

	bitsLeft := n
	for bitsLeft > 0 {
		var freeBits int
		if w.buf.Len() == 0 || w.tailBits == 0 {
			w.buf.PushByte(0)
			freeBits = 8
		} else {
			freeBits = 8 - int(w.tailBits)
		}

		take := bitsLeft
		if take > freeBits {
			take = freeBits
		}

		shift := bitsLeft - take
		chunk := byte((value >> uint(shift)) & ((1 << uint(take)) - 1))
		*w.buf.LastByte() |= chunk << uint(freeBits-take)

		bitsLeft -= take
		w.tailBits = uint8((int(w.tailBits) + take) % 8)
	}
}

// Bytes returns the accumulated byte slice. The returned slice is valid
// until the next call to AppendBits or Release; callers must not modify
// it.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// TailBits returns the number of valid high-order bits used in the last
// byte of the stream; 0 means the last byte is fully used (or the stream
// is empty).
func (w *Writer) TailBits() uint8 {
	return w.tailBits
}

// ByteLen returns the number of bytes in the underlying buffer, including
// a partially-filled final byte.
func (w *Writer) ByteLen() int {
	return w.buf.Len()
}

// BitLen returns the logical bit length of the stream:
// 8*len(bytes) - (8-tail_bits) mod 8.
func (w *Writer) BitLen() int {
	return BitLen(w.buf.Len(), w.tailBits)
}
