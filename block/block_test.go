package block

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tscodec/errs"
)

func collect(t *testing.T, b *Block) []Sample {
	t.Helper()

	it := b.Iter()

	var out []Sample
	for {
		s, ok, err := it.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		out = append(out, s)
	}

	return out
}

func TestBlock_ThreeEvenlySpacedSamples(t *testing.T) {
	b := New(100)
	require.NoError(t, b.Append(100, 1.0))
	require.NoError(t, b.Append(110, 2.0))
	require.NoError(t, b.Append(120, 3.0))

	require.Equal(t, 3, b.Count())
	require.Equal(t, uint64(0), b.StartTS())

	got := collect(t, b)
	require.Equal(t, []Sample{
		{TS: 100, Val: 1.0},
		{TS: 110, Val: 2.0},
		{TS: 120, Val: 3.0},
	}, got)
}

func TestBlock_SingleSample(t *testing.T) {
	b := New(42)
	require.NoError(t, b.Append(42, math.Pi))

	got := collect(t, b)
	require.Equal(t, []Sample{{TS: 42, Val: math.Pi}}, got)
}

func TestBlock_EightSampleSequence(t *testing.T) {
	b := New(0)

	ts := []uint64{0, 60, 120, 180, 245, 300, 360, 420}
	vals := []float64{10, 10, 10, 10.5, 10.5, 11, 11, 11}

	for i := range ts {
		require.NoError(t, b.Append(ts[i], vals[i]))
	}

	got := collect(t, b)
	require.Len(t, got, 8)
	for i := range ts {
		require.Equal(t, ts[i], got[i].TS)
		require.Equal(t, vals[i], got[i].Val)
	}
}

func TestBlock_Accepts(t *testing.T) {
	b := New(100)
	require.True(t, b.Accepts(100))
	require.True(t, b.Accepts(7199))
	require.False(t, b.Accepts(7200))
}

func TestBlock_WindowSplitAcrossTwoBlocks(t *testing.T) {
	first := New(7100)
	require.NoError(t, first.Append(7100, 1.0))
	require.True(t, first.Accepts(7199))
	require.False(t, first.Accepts(7200))
	require.NoError(t, first.Append(7199, 2.0))
	first.Seal()

	second := New(7200)
	require.NoError(t, second.Append(7200, 3.0))

	require.Equal(t, uint64(0), first.StartTS())
	require.Equal(t, uint64(7200), second.StartTS())

	gotFirst := collect(t, first)
	require.Equal(t, []Sample{{TS: 7100, Val: 1.0}, {TS: 7199, Val: 2.0}}, gotFirst)

	gotSecond := collect(t, second)
	require.Equal(t, []Sample{{TS: 7200, Val: 3.0}}, gotSecond)
}

func TestBlock_RepeatedValueIsOneBitRecord(t *testing.T) {
	b := New(0)
	require.NoError(t, b.Append(0, 5.0))
	byteLenBefore := b.ByteLen()
	tailBefore := b.TailBits()

	require.NoError(t, b.Append(60, 5.0))

	bitsBefore := byteLenBefore*8 - int((8-int(tailBefore))%8)
	bitsAfter := b.ByteLen()*8 - int((8-int(b.TailBits()))%8)

	// The header delta is 0 and the second delta is 60, so the
	// delta-of-delta is 60 ("10" + 7-bit payload, 9 bits); the repeated
	// value is the single control bit "0": exactly 10 bits added.
	require.Equal(t, 10, bitsAfter-bitsBefore)
}

func TestBlock_ConstantCadenceTwoBitsPerSample(t *testing.T) {
	b := New(0)
	require.NoError(t, b.Append(0, 1.0))
	require.NoError(t, b.Append(60, 2.0))

	before := b.ByteLen()*8 - int((8-int(b.TailBits()))%8)
	require.NoError(t, b.Append(120, 2.0))
	after := b.ByteLen()*8 - int((8-int(b.TailBits()))%8)

	// Constant cadence: dod == 0 ("0", 1 bit). The value repeats the
	// previous one, so its record is the single bit "0": exactly 2 bits.
	require.Equal(t, 2, after-before)
}

func TestBlock_OutOfOrderAppendRejected(t *testing.T) {
	b := New(0)
	require.NoError(t, b.Append(100, 1.0))
	err := b.Append(50, 2.0)
	require.ErrorIs(t, err, errs.ErrOutOfOrderAppend)
}

func TestBlock_AppendAfterSealRejected(t *testing.T) {
	b := New(0)
	require.NoError(t, b.Append(0, 1.0))
	b.Seal()
	err := b.Append(60, 2.0)
	require.ErrorIs(t, err, errs.ErrEncoderFinished)
}

func TestBlock_XorWindowReuse(t *testing.T) {
	b := New(0)
	// 1.0 and 1.5 differ in a single mantissa bit (XOR 0x0008000000000000:
	// 12 leading zeros, 1 meaningful bit). The second sample opens that
	// window; the third and fourth produce the same XOR and reuse it.
	require.NoError(t, b.Append(0, 1.0))
	require.NoError(t, b.Append(60, 1.5))
	require.NoError(t, b.Append(120, 1.0))
	require.NoError(t, b.Append(180, 1.5))

	got := collect(t, b)
	require.Equal(t, []float64{1.0, 1.5, 1.0, 1.5}, []float64{got[0].Val, got[1].Val, got[2].Val, got[3].Val})
}

func TestBlock_HeaderDeterministic(t *testing.T) {
	b1 := New(100)
	require.NoError(t, b1.Append(100, 42.5))
	b2 := New(100)
	require.NoError(t, b2.Append(100, 42.5))

	require.Equal(t, b1.Bytes(), b2.Bytes())
}

func TestBlock_NegativeAndLargeDeltas(t *testing.T) {
	b := New(0)
	ts := []uint64{0, 1, 3, 7, 8, 7200 - 1}
	for i, tv := range ts {
		require.NoError(t, b.Append(tv, float64(i)))
	}

	got := collect(t, b)
	for i, tv := range ts {
		require.Equal(t, tv, got[i].TS)
		require.Equal(t, float64(i), got[i].Val)
	}
}

func TestBlock_CorruptBlockShortBuffer(t *testing.T) {
	b := New(0)
	require.NoError(t, b.Append(0, 1.0))
	require.NoError(t, b.Append(60, 2.0))

	truncated := append([]byte(nil), b.Bytes()...)
	truncated = truncated[:len(truncated)-1]

	it := newIterator(truncated, 0)
	_, ok, err := it.Next()
	require.True(t, ok)
	require.NoError(t, err)

	for {
		_, ok, err := it.Next()
		if !ok {
			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrCorruptBlock)

			break
		}
	}
}

func TestBlock_RoundTripFuzz(t *testing.T) {
	ts := uint64(1_000)
	vals := []float64{0, 1, -1, 3.14159, 1e100, -1e-100, math.MaxFloat64, 0.0}

	b := New(ts)
	want := make([]Sample, 0, len(vals))
	for i, v := range vals {
		tv := ts + uint64(i)*3
		require.NoError(t, b.Append(tv, v))
		want = append(want, Sample{TS: tv, Val: v})
	}

	got := collect(t, b)
	require.Equal(t, want, got)
}
