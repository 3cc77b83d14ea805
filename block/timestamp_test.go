package block

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tscodec/bitstream"
)

func roundTripDod(t *testing.T, dod int64) int64 {
	t.Helper()

	w := bitstream.NewWriter()
	defer w.Release()

	encodeDod(w, dod)
	got, _, _, err := decodeDod(w.Bytes(), 0, 0)
	require.NoError(t, err)

	return got
}

func TestEncodeDecodeDod_Buckets(t *testing.T) {
	cases := []int64{0, 1, -1, 64, -63, 65, -64, 256, -255, 257, -256, 2048, -2047, 2049, -2048, 1 << 20, -(1 << 20)}
	for _, dod := range cases {
		require.Equal(t, dod, roundTripDod(t, dod), "dod=%d", dod)
	}
}

func TestEncodeDod_TagWidths(t *testing.T) {
	w := bitstream.NewWriter()
	defer w.Release()

	encodeDod(w, 0)
	require.Equal(t, 1, w.BitLen())

	w2 := bitstream.NewWriter()
	defer w2.Release()
	encodeDod(w2, 64)
	require.Equal(t, 2+7, w2.BitLen())

	w3 := bitstream.NewWriter()
	defer w3.Release()
	encodeDod(w3, 256)
	require.Equal(t, 3+9, w3.BitLen())

	w4 := bitstream.NewWriter()
	defer w4.Release()
	encodeDod(w4, 2048)
	require.Equal(t, 4+12, w4.BitLen())

	w5 := bitstream.NewWriter()
	defer w5.Release()
	encodeDod(w5, 1<<20)
	require.Equal(t, 4+32, w5.BitLen())
}

func TestSignExtend(t *testing.T) {
	require.Equal(t, int64(-1), signExtend(0x7F, 7))
	require.Equal(t, int64(63), signExtend(0x3F, 7))
	require.Equal(t, int64(-64), signExtend(0x40, 7))
	require.Equal(t, int64(0), signExtend(0, 7))
}
