package block

import (
	"github.com/arloliu/tscodec/bitstream"
)

// dodPayloadWidths maps the number of leading one-bits read from the tag
// (0..4) to the payload width in bits for that bucket. Index 0 (tag "0")
// carries no payload: dod is known to be zero.
var dodPayloadWidths = [5]int{0, 7, 9, 12, 32}

// encodeDod writes a timestamp delta-of-delta using the variable-length
// prefix code:
//
//	dod == 0            -> "0"
//	-63  <= dod <= 64    -> "10"   + 7-bit payload
//	-255 <= dod <= 256   -> "110"  + 9-bit payload
//	-2047<= dod <= 2048  -> "1110" + 12-bit payload
//	otherwise            -> "1111" + 32-bit payload
//
// Payloads are the two's-complement representation of dod truncated to
// the bucket's width; the decoder sign-extends from the payload's top
// bit.
func encodeDod(w *bitstream.Writer, dod int64) {
	switch {
	case dod == 0:
		w.AppendBits(1, 0)
	case dod >= -63 && dod <= 64:
		w.AppendBits(2, 0b10)
		w.AppendBits(7, uint64(dod))
	case dod >= -255 && dod <= 256:
		w.AppendBits(3, 0b110)
		w.AppendBits(9, uint64(dod))
	case dod >= -2047 && dod <= 2048:
		w.AppendBits(4, 0b1110)
		w.AppendBits(12, uint64(dod))
	default:
		w.AppendBits(4, 0b1111)
		w.AppendBits(32, uint64(dod))
	}
}

// decodeDod reads one timestamp delta-of-delta record starting at
// (byteOff, bitOff), returning the decoded value and the position
// immediately after it.
//
// The tag is read one bit at a time: a run of up to four leading 1-bits
// selects the bucket, terminated either by a 0-bit or by reaching four
// 1-bits (the "1111" bucket, which has no terminating zero).
func decodeDod(data []byte, byteOff, bitOff int) (dod int64, nByteOff, nBitOff int, err error) {
	cnt := 0
	for cnt < 4 {
		bit, rerr := bitstream.ReadBits(data, byteOff, bitOff, 1)
		if rerr != nil {
			return 0, byteOff, bitOff, rerr
		}
		byteOff, bitOff = bitstream.Advance(byteOff, bitOff, 1)
		if bit == 0 {
			break
		}
		cnt++
	}

	if cnt == 0 {
		return 0, byteOff, bitOff, nil
	}

	width := dodPayloadWidths[cnt]
	raw, rerr := bitstream.ReadBits(data, byteOff, bitOff, width)
	if rerr != nil {
		return 0, byteOff, bitOff, rerr
	}
	byteOff, bitOff = bitstream.Advance(byteOff, bitOff, width)

	return decodeDodPayload(raw, width), byteOff, bitOff, nil
}

// decodeDodPayload interprets a bucket payload as dod, accounting for the
// asymmetric boundary case: the three bounded buckets' positive edge
// (64, 256, 2048) truncates to the exact bit pattern that plain
// two's-complement sign extension would read as that bucket's most
// negative value. That negative value always belongs to the next wider
// bucket instead, so within this bucket the pattern is unambiguous and
// decodes back to the positive edge.
func decodeDodPayload(raw uint64, width int) int64 {
	if width != 32 && raw == uint64(1)<<uint(width-1) {
		return int64(raw)
	}

	return signExtend(raw, width)
}

// signExtend interprets the low `width` bits of raw as a two's-complement
// signed integer and sign-extends it to 64 bits.
func signExtend(raw uint64, width int) int64 {
	if width == 64 {
		return int64(raw)
	}

	signBit := uint64(1) << uint(width-1)
	if raw&signBit != 0 {
		raw |= ^uint64(0) << uint(width)
	}

	return int64(raw)
}
