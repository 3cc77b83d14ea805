package block

import (
	"math/bits"

	"github.com/arloliu/tscodec/bitstream"
	"github.com/arloliu/tscodec/errs"
)

// noWindow is the value of the (leading, meaningful) XOR window fields
// while no previous non-zero XOR has been seen yet, the sentinel
// spec.md calls "none".
const noWindow = -1

// encodeValue writes one XOR-encoded value record and updates the
// running (lastValBits, leading, meaningful) state in place.
//
//	x == 0                        -> "0"
//	x != 0, reuses previous window -> "1" "0" + meaningful bits
//	x != 0, new window             -> "1" "1" + 6-bit lz + 6-bit meaningful + meaningful bits
func encodeValue(w *bitstream.Writer, valBits uint64, lastValBits *uint64, lastLeading, lastMeaningful *int) {
	x := valBits ^ *lastValBits
	*lastValBits = valBits

	if x == 0 {
		w.AppendBits(1, 0)

		return
	}

	w.AppendBits(1, 1)

	lz := bits.LeadingZeros64(x)
	tz := bits.TrailingZeros64(x)
	meaningful := 64 - lz - tz

	if *lastLeading != noWindow && lz == *lastLeading && meaningful == *lastMeaningful {
		w.AppendBits(1, 0)
		w.AppendBits(meaningful, x>>uint(tz))

		return
	}

	w.AppendBits(1, 1)
	w.AppendBits(6, uint64(lz))
	// meaningful is in [1,64]; 6 bits can only represent [0,63], so 64
	// is carried as the wraparound value 0. meaningful == 0 never occurs
	// on the encode side (that case takes the x == 0 branch above), so
	// the wraparound is unambiguous on decode.
	w.AppendBits(6, uint64(meaningful)&0x3F)
	w.AppendBits(meaningful, x>>uint(tz))

	*lastLeading = lz
	*lastMeaningful = meaningful
}

// decodeValue reads one XOR-encoded value record starting at
// (byteOff, bitOff), returning the decoded raw float64 bits and the
// position immediately after the record.
func decodeValue(data []byte, byteOff, bitOff int, lastValBits *uint64, lastLeading, lastMeaningful *int) (valBits uint64, nByteOff, nBitOff int, err error) {
	ctrl, err := bitstream.ReadBits(data, byteOff, bitOff, 1)
	if err != nil {
		return 0, byteOff, bitOff, err
	}
	byteOff, bitOff = bitstream.Advance(byteOff, bitOff, 1)

	if ctrl == 0 {
		return *lastValBits, byteOff, bitOff, nil
	}

	useWindow, err := bitstream.ReadBits(data, byteOff, bitOff, 1)
	if err != nil {
		return 0, byteOff, bitOff, err
	}
	byteOff, bitOff = bitstream.Advance(byteOff, bitOff, 1)

	var lz, meaningful int

	if useWindow == 0 {
		if *lastLeading == noWindow {
			return 0, byteOff, bitOff, errs.ErrCorruptBlock
		}
		lz, meaningful = *lastLeading, *lastMeaningful
	} else {
		lzRaw, rerr := bitstream.ReadBits(data, byteOff, bitOff, 6)
		if rerr != nil {
			return 0, byteOff, bitOff, rerr
		}
		byteOff, bitOff = bitstream.Advance(byteOff, bitOff, 6)

		mRaw, rerr := bitstream.ReadBits(data, byteOff, bitOff, 6)
		if rerr != nil {
			return 0, byteOff, bitOff, rerr
		}
		byteOff, bitOff = bitstream.Advance(byteOff, bitOff, 6)

		lz = int(lzRaw)
		meaningful = int(mRaw)
		if meaningful == 0 {
			meaningful = 64
		}
	}

	if lz+meaningful > 64 {
		return 0, byteOff, bitOff, errs.ErrCorruptBlock
	}

	raw, err := bitstream.ReadBits(data, byteOff, bitOff, meaningful)
	if err != nil {
		return 0, byteOff, bitOff, err
	}
	byteOff, bitOff = bitstream.Advance(byteOff, bitOff, meaningful)

	tz := 64 - lz - meaningful
	x := raw << uint(tz)
	valBits = x ^ *lastValBits

	*lastValBits = valBits
	*lastLeading = lz
	*lastMeaningful = meaningful

	return valBits, byteOff, bitOff, nil
}
