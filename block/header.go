package block

import (
	"github.com/arloliu/tscodec/bitstream"
)

// HeaderBits is the total width of the fixed-width block header:
// 64-bit aligned start timestamp, 16-bit first-sample delta, 64-bit raw
// IEEE-754 first value.
const HeaderBits = 64 + 16 + 64

// header bundles the three decoded header fields.
type header struct {
	startTS    uint64
	firstDelta uint64
	firstValue uint64
}

// writeHeader appends the 144-bit block header, MSB-first, in the exact
// field order: start_ts (64) || first_delta (16) || first_value (64).
//
// first_delta always fits in 16 bits because WindowSize (7200) < 2^16.
func writeHeader(w *bitstream.Writer, startTS, firstDelta, firstValueBits uint64) {
	w.AppendBits(64, startTS)
	w.AppendBits(16, firstDelta)
	w.AppendBits(64, firstValueBits)
}

// decodeHeader reads the 144-bit header starting at byte 0, bit 0, and
// returns the position immediately after it (always (18, 0), since the
// header is byte-aligned by construction).
func decodeHeader(data []byte) (header, int, int, error) {
	byteOff, bitOff := 0, 0

	startTS, err := bitstream.ReadBits(data, byteOff, bitOff, 64)
	if err != nil {
		return header{}, byteOff, bitOff, err
	}
	byteOff, bitOff = bitstream.Advance(byteOff, bitOff, 64)

	firstDelta, err := bitstream.ReadBits(data, byteOff, bitOff, 16)
	if err != nil {
		return header{}, byteOff, bitOff, err
	}
	byteOff, bitOff = bitstream.Advance(byteOff, bitOff, 16)

	firstValue, err := bitstream.ReadBits(data, byteOff, bitOff, 64)
	if err != nil {
		return header{}, byteOff, bitOff, err
	}
	byteOff, bitOff = bitstream.Advance(byteOff, bitOff, 64)

	return header{startTS: startTS, firstDelta: firstDelta, firstValue: firstValue}, byteOff, bitOff, nil
}
