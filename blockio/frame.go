package blockio

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/tscodec/errs"
	"github.com/arloliu/tscodec/format"
)

// frame layout:
//
//	offset  size  field
//	0       4     magic
//	4       1     version
//	5       1     compression type (format.CompressionType)
//	6       1     tail_bits
//	7       8     uncompressed payload length, big-endian
//	15      8     xxhash64 of the uncompressed payload, big-endian
//	23      ...   payload (compressed per the compression type field)
const (
	frameVersion   = 1
	frameHeaderLen = 23
)

var frameMagic = [4]byte{'T', 'S', 'C', '1'}

type frameHeader struct {
	compression format.CompressionType
	tailBits    uint8
	rawLen      uint64
	checksum    uint64
}

func putFrameHeader(dst []byte, h frameHeader) {
	copy(dst[0:4], frameMagic[:])
	dst[4] = frameVersion
	dst[5] = byte(h.compression)
	dst[6] = h.tailBits
	binary.BigEndian.PutUint64(dst[7:15], h.rawLen)
	binary.BigEndian.PutUint64(dst[15:23], h.checksum)
}

func parseFrameHeader(data []byte) (frameHeader, error) {
	if len(data) < frameHeaderLen {
		return frameHeader{}, fmt.Errorf("%w: frame shorter than header (%d bytes)", errs.ErrInvalidFrame, len(data))
	}
	if [4]byte(data[0:4]) != frameMagic {
		return frameHeader{}, fmt.Errorf("%w: bad magic", errs.ErrInvalidFrame)
	}
	if data[4] != frameVersion {
		return frameHeader{}, fmt.Errorf("%w: unsupported frame version %d", errs.ErrInvalidFrame, data[4])
	}

	return frameHeader{
		compression: format.CompressionType(data[5]),
		tailBits:    data[6],
		rawLen:      binary.BigEndian.Uint64(data[7:15]),
		checksum:    binary.BigEndian.Uint64(data[15:23]),
	}, nil
}
