package block

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/arloliu/tscodec/bitstream"
	"github.com/arloliu/tscodec/errs"
)

// Sample is one decoded (timestamp, value) pair.
type Sample struct {
	TS  uint64
	Val float64
}

// Iterator is a forward, single-pass cursor over one block's decoded
// samples. It is not restartable: call Block.Iter again for a fresh
// pass. An Iterator does not mutate the block it was created from, and
// the block must not be appended to while an iterator over it is alive.
type Iterator struct {
	data    []byte
	byteLen int
	tail    uint8

	byteOff, bitOff int

	lastTS            uint64
	lastDelta         int64
	lastValBits       uint64
	lastXorLeading    int
	lastXorMeaningful int

	started bool
	done    bool
	err     error
}

func newIterator(data []byte, tail uint8) *Iterator {
	return &Iterator{
		data:              data,
		byteLen:           len(data),
		tail:              tail,
		lastXorLeading:    noWindow,
		lastXorMeaningful: noWindow,
	}
}

// Pos returns the cursor's current absolute (byte offset, bit offset).
// Two iterators over the same block bytes at the same Pos are at the
// same logical position.
func (it *Iterator) Pos() (byteOff, bitOff int) {
	return it.byteOff, it.bitOff
}

// Err returns the error that stopped iteration, if any.
func (it *Iterator) Err() error {
	return it.err
}

// Next advances the cursor and returns the next decoded sample. The
// second return value is false once the block is exhausted; callers
// must check Err afterward to distinguish a clean end from a corrupt
// stream.
func (it *Iterator) Next() (Sample, bool, error) {
	if it.err != nil {
		return Sample{}, false, it.err
	}
	if it.done {
		return Sample{}, false, nil
	}

	if !it.started {
		hdr, byteOff, bitOff, err := decodeHeader(it.data)
		if err != nil {
			it.err = wrapCorrupt(err)

			return Sample{}, false, it.err
		}

		it.byteOff, it.bitOff = byteOff, bitOff
		it.lastTS = hdr.startTS + hdr.firstDelta
		it.lastDelta = int64(hdr.firstDelta)
		it.lastValBits = hdr.firstValue
		it.started = true

		if bitstream.AtEnd(it.byteOff, it.bitOff, it.byteLen, it.tail) {
			// Single-sample block: nothing follows the header, but this
			// sample itself is still valid and must be emitted.
			return Sample{TS: it.lastTS, Val: math.Float64frombits(it.lastValBits)}, true, nil
		}

		return Sample{TS: it.lastTS, Val: math.Float64frombits(it.lastValBits)}, true, nil
	}

	if bitstream.AtEnd(it.byteOff, it.bitOff, it.byteLen, it.tail) {
		it.done = true

		return Sample{}, false, nil
	}

	dod, byteOff, bitOff, err := decodeDod(it.data, it.byteOff, it.bitOff)
	if err != nil {
		it.err = wrapCorrupt(err)

		return Sample{}, false, it.err
	}
	it.byteOff, it.bitOff = byteOff, bitOff

	delta := it.lastDelta + dod
	it.lastDelta = delta
	it.lastTS = uint64(int64(it.lastTS) + delta)

	valBits, byteOff, bitOff, err := decodeValue(it.data, it.byteOff, it.bitOff, &it.lastValBits, &it.lastXorLeading, &it.lastXorMeaningful)
	if err != nil {
		it.err = wrapCorrupt(err)

		return Sample{}, false, it.err
	}
	it.byteOff, it.bitOff = byteOff, bitOff

	return Sample{TS: it.lastTS, Val: math.Float64frombits(valBits)}, true, nil
}

// wrapCorrupt classifies a bitstream/value-level error as a corrupt
// block fault, per spec: a short read or an unreachable value control
// code both surface to the caller as errs.ErrCorruptBlock.
func wrapCorrupt(err error) error {
	if errors.Is(err, errs.ErrCorruptBlock) {
		return err
	}

	return fmt.Errorf("%w: %v", errs.ErrCorruptBlock, err)
}

// All returns a standard-library iterator over the block's decoded
// samples. Iteration stops silently on error; callers that need to
// distinguish a clean end from corruption should use Iterator directly.
func (b *Block) All() iter.Seq2[uint64, float64] {
	return func(yield func(uint64, float64) bool) {
		it := b.Iter()
		for {
			s, ok, err := it.Next()
			if err != nil || !ok {
				return
			}
			if !yield(s.TS, s.Val) {
				return
			}
		}
	}
}
