package blockio

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tscodec/block"
	"github.com/arloliu/tscodec/errs"
	"github.com/arloliu/tscodec/format"
)

func sampleBlock(t *testing.T) *block.Block {
	t.Helper()

	b := block.New(100)
	require.NoError(t, b.Append(100, 1.0))
	require.NoError(t, b.Append(110, 2.5))
	require.NoError(t, b.Append(120, 2.5))
	require.NoError(t, b.Append(130, -7.25))

	return b
}

func TestWriterReader_RoundTrip_NoCompression(t *testing.T) {
	w, err := NewWriter()
	require.NoError(t, err)

	b := sampleBlock(t)
	frame, err := w.Encode(b)
	require.NoError(t, err)

	r := NewReader()
	got, err := r.Decode(frame)
	require.NoError(t, err)

	require.Equal(t, b.Bytes(), got.Bytes())
	require.Equal(t, b.TailBits(), got.TailBits())
	require.Equal(t, b.Count(), got.Count())
	require.Equal(t, b.StartTS(), got.StartTS())
}

func TestWriterReader_RoundTrip_Compressed(t *testing.T) {
	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			w, err := NewWriter(WithCompression(ct))
			require.NoError(t, err)

			b := sampleBlock(t)
			frame, err := w.Encode(b)
			require.NoError(t, err)

			r := NewReader()
			got, err := r.Decode(frame)
			require.NoError(t, err)
			require.Equal(t, b.Bytes(), got.Bytes())
		})
	}
}

func TestReader_Decode_BadMagic(t *testing.T) {
	frame := make([]byte, frameHeaderLen+4)
	_, err := NewReader().Decode(frame)
	require.ErrorIs(t, err, errs.ErrInvalidFrame)
}

func TestReader_Decode_ShortFrame(t *testing.T) {
	_, err := NewReader().Decode(make([]byte, 4))
	require.ErrorIs(t, err, errs.ErrInvalidFrame)
}

func TestReader_Decode_ChecksumMismatch(t *testing.T) {
	w, err := NewWriter()
	require.NoError(t, err)

	b := sampleBlock(t)
	frame, err := w.Encode(b)
	require.NoError(t, err)

	frame[len(frame)-1] ^= 0xFF

	_, err = NewReader().Decode(frame)
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)
}

func TestReconstructedBlock_AcceptsFurtherAppends(t *testing.T) {
	w, err := NewWriter()
	require.NoError(t, err)

	b := sampleBlock(t)
	frame, err := w.Encode(b)
	require.NoError(t, err)

	got, err := NewReader().Decode(frame)
	require.NoError(t, err)

	require.NoError(t, got.Append(140, 9.5))
	require.Equal(t, 5, got.Count())
}
