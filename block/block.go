package block

import (
	"fmt"
	"math"

	"github.com/arloliu/tscodec/bitstream"
	"github.com/arloliu/tscodec/errs"
)

// WindowSize is the fixed block duration W, in timestamp units (two
// hours, by convention).
const WindowSize uint64 = 7200

// Block is a single self-contained, append-only Gorilla-style bit
// stream covering a fixed WindowSize time window.
//
// A Block is created by New on the first sample routed to it. It is not
// safe for concurrent append + iterate, and it is not safe for
// concurrent append from multiple goroutines.
type Block struct {
	startTS uint64

	lastTS    uint64
	lastDelta int64

	lastValBits       uint64
	lastXorLeading    int
	lastXorMeaningful int

	w      *bitstream.Writer
	count  int
	sealed bool
}

// New creates a Block whose window origin is the largest multiple of
// WindowSize that is <= firstTS. The block is empty; the first sample
// must be supplied via Append before it can be decoded.
func New(firstTS uint64) *Block {
	return &Block{
		w:                 bitstream.NewWriter(),
		startTS:           firstTS - (firstTS % WindowSize),
		lastXorLeading:    noWindow,
		lastXorMeaningful: noWindow,
	}
}

// FromBytes reconstructs a Block from previously persisted bytes (see
// blockio), decoding the full stream once to restore the codec state
// (last timestamp, last delta, last XOR window) needed so further
// Append calls behave exactly as if the block had never left memory.
func FromBytes(data []byte, tailBits uint8) (*Block, error) {
	hdr, _, _, err := decodeHeader(data)
	if err != nil {
		return nil, err
	}

	it := newIterator(data, tailBits)

	count := 0
	for {
		_, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		count++
	}

	if count == 0 {
		return nil, fmt.Errorf("%w: empty block", errs.ErrCorruptBlock)
	}

	return &Block{
		startTS:           hdr.startTS,
		lastTS:            it.lastTS,
		lastDelta:         it.lastDelta,
		lastValBits:       it.lastValBits,
		lastXorLeading:    it.lastXorLeading,
		lastXorMeaningful: it.lastXorMeaningful,
		w:                 bitstream.FromBytes(data, tailBits),
		count:             count,
	}, nil
}

// StartTS returns the block's window origin.
func (b *Block) StartTS() uint64 {
	return b.startTS
}

// Count returns the number of samples appended to this block.
func (b *Block) Count() int {
	return b.count
}

// Accepts reports whether timestamp t falls within this block's window:
// t - start_ts < WindowSize.
func (b *Block) Accepts(t uint64) bool {
	return t-b.startTS < WindowSize
}

// Seal marks the block immutable. Subsequent Append calls return
// errs.ErrEncoderFinished. The Stream Encoder calls Seal when it routes
// an append to a newer block.
func (b *Block) Seal() {
	b.sealed = true
}

// Append adds one (timestamp, value) sample to the block.
//
// Preconditions: t must be >= the timestamp of the previous Append to
// this block (the very first Append has no such constraint); the block
// must not be sealed and must still accept t (callers route through
// Accepts before calling Append).
func (b *Block) Append(t uint64, v float64) error {
	if b.sealed {
		return errs.ErrEncoderFinished
	}
	if b.count > 0 && t < b.lastTS {
		return fmt.Errorf("%w: t=%d < last_ts=%d", errs.ErrOutOfOrderAppend, t, b.lastTS)
	}

	valBits := math.Float64bits(v)

	if b.count == 0 {
		firstDelta := t - b.startTS
		writeHeader(b.w, b.startTS, firstDelta, valBits)
		b.lastTS = t
		b.lastDelta = int64(firstDelta)
		b.lastValBits = valBits
		b.count = 1

		return nil
	}

	delta := int64(t) - int64(b.lastTS)
	dod := delta - b.lastDelta
	encodeDod(b.w, dod)
	b.lastDelta = delta
	b.lastTS = t

	encodeValue(b.w, valBits, &b.lastValBits, &b.lastXorLeading, &b.lastXorMeaningful)
	b.count++

	return nil
}

// Bytes returns the block's encoded payload: the 144-bit header
// followed by the concatenated timestamp/value records. The returned
// slice is valid until the next Append and must not be modified by the
// caller.
func (b *Block) Bytes() []byte {
	return b.w.Bytes()
}

// TailBits returns the number of valid high-order bits used in the last
// byte of Bytes(); 0 means the last byte is fully used.
func (b *Block) TailBits() uint8 {
	return b.w.TailBits()
}

// ByteLen returns len(Bytes()).
func (b *Block) ByteLen() int {
	return b.w.ByteLen()
}

// Release returns the block's backing buffer to the pool. The block
// must not be used afterward. Release is the caller's responsibility
// once a block is known to be fully consumed (decoded or persisted via
// blockio) and will never be appended to or iterated again.
func (b *Block) Release() {
	b.w.Release()
}

// Iter returns a fresh forward iterator over this block's decoded
// samples. Iter does not mutate the block and may be called multiple
// times; each call returns an independent cursor.
func (b *Block) Iter() *Iterator {
	return newIterator(b.Bytes(), b.TailBits())
}
