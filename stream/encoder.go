package stream

import (
	"fmt"
	"iter"

	"github.com/arloliu/tscodec/block"
	"github.com/arloliu/tscodec/errs"
)

// Sample is one decoded (timestamp, value) pair.
type Sample = block.Sample

// Encoder owns an ordered list of Encoded Blocks and routes each append
// to the most recent block, or starts a new one when the window no
// longer accepts the timestamp.
//
// An Encoder exclusively owns its blocks; destroying it (dropping the
// last reference, or calling Release) destroys everything it owns.
// Timestamps appended across the lifetime of an Encoder must be
// non-decreasing; see block.Block.Append for the out-of-order fault.
type Encoder struct {
	blocks []*block.Block
}

// NewEncoder returns an empty Encoder. Its first block is created lazily
// on the first Append.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Append routes one (timestamp, value) sample to the most recent block,
// sealing it and starting a new one first if it no longer accepts t.
// The number of blocks grows by at most one per call.
func (e *Encoder) Append(t uint64, v float64) error {
	if len(e.blocks) == 0 {
		b := block.New(t)
		e.blocks = append(e.blocks, b)

		return b.Append(t, v)
	}

	last := e.blocks[len(e.blocks)-1]
	if last.Accepts(t) {
		return last.Append(t, v)
	}
	if t < last.StartTS() {
		return fmt.Errorf("%w: t=%d < block start_ts=%d", errs.ErrOutOfOrderAppend, t, last.StartTS())
	}

	last.Seal()
	b := block.New(t)
	e.blocks = append(e.blocks, b)

	return b.Append(t, v)
}

// Blocks returns the encoder's blocks in append order. The returned
// slice and its elements are owned by the Encoder; callers must not
// retain it past a Release.
func (e *Encoder) Blocks() []*block.Block {
	return e.blocks
}

// Count returns the total number of samples appended across all blocks.
func (e *Encoder) Count() int {
	n := 0
	for _, b := range e.blocks {
		n += b.Count()
	}

	return n
}

// Iter returns a forward iterator over every decoded sample, in the
// order appended, concatenating each block's iterator in turn.
// Iteration stops silently on a corrupt block; callers that need to
// detect that should use Decode instead.
func (e *Encoder) Iter() iter.Seq2[uint64, float64] {
	return func(yield func(uint64, float64) bool) {
		for _, b := range e.blocks {
			it := b.Iter()
			for {
				s, ok, err := it.Next()
				if err != nil {
					return
				}
				if !ok {
					break
				}
				if !yield(s.TS, s.Val) {
					return
				}
			}
		}
	}
}

// Decode walks the iterator to completion and returns the materialized
// sequence of samples.
func (e *Encoder) Decode() ([]Sample, error) {
	out := make([]Sample, 0, e.Count())

	for _, b := range e.blocks {
		it := b.Iter()
		for {
			s, ok, err := it.Next()
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
			out = append(out, s)
		}
	}

	return out, nil
}

// Release returns every block's backing buffer to the pool. The Encoder
// must not be used afterward.
func (e *Encoder) Release() {
	for _, b := range e.blocks {
		b.Release()
	}
	e.blocks = nil
}
