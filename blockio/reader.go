package blockio

import (
	"fmt"

	"github.com/arloliu/tscodec/block"
	"github.com/arloliu/tscodec/compress"
	"github.com/arloliu/tscodec/errs"
	"github.com/arloliu/tscodec/internal/hash"
)

// Reader decodes frames produced by Writer.Encode back into blocks.
// A Reader has no configuration: the frame itself names the
// compression algorithm used, and Decode looks up the matching codec.
type Reader struct{}

// NewReader returns a Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Decode parses one frame and reconstructs the Block it carries,
// verifying the uncompressed payload's length and checksum before
// handing it to the block codec.
func (r *Reader) Decode(data []byte) (*block.Block, error) {
	hdr, err := parseFrameHeader(data)
	if err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(hdr.compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrUnknownCompression, err)
	}

	raw, err := codec.Decompress(data[frameHeaderLen:])
	if err != nil {
		return nil, fmt.Errorf("blockio: decompress: %w", err)
	}

	if uint64(len(raw)) != hdr.rawLen {
		return nil, fmt.Errorf("%w: decompressed length %d, frame says %d", errs.ErrInvalidFrame, len(raw), hdr.rawLen)
	}
	if hash.Checksum(raw) != hdr.checksum {
		return nil, errs.ErrChecksumMismatch
	}

	return block.FromBytes(raw, hdr.tailBits)
}
