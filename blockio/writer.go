package blockio

import (
	"fmt"

	"github.com/arloliu/tscodec/block"
	"github.com/arloliu/tscodec/compress"
	"github.com/arloliu/tscodec/format"
	"github.com/arloliu/tscodec/internal/hash"
	"github.com/arloliu/tscodec/internal/options"
)

// Writer frames Encoded Blocks for storage or transport, applying a
// fixed compression algorithm to every frame it produces.
type Writer struct {
	compression format.CompressionType
	codec       compress.Codec
}

// NewWriter returns a Writer. With no options, frames are uncompressed.
func NewWriter(opts ...Option) (*Writer, error) {
	cfg := &config{compression: format.CompressionNone}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	return &Writer{compression: cfg.compression, codec: codec}, nil
}

// Encode frames b's current bytes: magic/version/compression/tail_bits
// header, followed by the (possibly compressed) payload. The frame
// carries the uncompressed length and its checksum so Reader.Decode can
// detect truncation or corruption before handing bytes back to the
// block codec.
func (w *Writer) Encode(b *block.Block) ([]byte, error) {
	raw := b.Bytes()

	payload, err := w.codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("blockio: compress: %w", err)
	}

	frame := make([]byte, frameHeaderLen+len(payload))
	putFrameHeader(frame, frameHeader{
		compression: w.compression,
		tailBits:    b.TailBits(),
		rawLen:      uint64(len(raw)),
		checksum:    hash.Checksum(raw),
	})
	copy(frame[frameHeaderLen:], payload)

	return frame, nil
}
