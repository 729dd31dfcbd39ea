package sigcond

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurolistening/sigcond/internal/testutil"
)

func TestNewRatio(t *testing.T) {
	tests := []struct {
		source, target float64
		want           Ratio
	}{
		{48000, 16000, Ratio{1, 3}},
		{16000, 48000, Ratio{3, 1}},
		{44100, 48000, Ratio{160, 147}},
		{48000, 44100, Ratio{147, 160}},
		{1000, 200, Ratio{1, 5}},
		{1000, 512, Ratio{64, 125}},
		{256, 256, Ratio{1, 1}},
		{250.5, 501, Ratio{2, 1}},
		{1000, 333.25, Ratio{1333, 4000}},
	}

	for _, tt := range tests {
		got, err := NewRatio(tt.source, tt.target)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%g -> %g", tt.source, tt.target)
	}
}

func TestNewRatio_MaxDenominator(t *testing.T) {
	r, err := NewRatio(1, math.Pi, WithMaxDenominator(7))
	require.NoError(t, err)
	assert.Equal(t, Ratio{22, 7}, r)
}

func TestNewRatio_Invalid(t *testing.T) {
	for _, rates := range [][2]float64{{0, 100}, {100, 0}, {-1, 100}, {math.Inf(1), 100}, {100, math.NaN()}} {
		_, err := NewRatio(rates[0], rates[1])
		assert.ErrorIs(t, err, ErrInvalidSpec, "%v", rates)
	}
}

func TestRatio(t *testing.T) {
	r := Ratio{Up: 160, Down: 147}
	assert.Equal(t, "160/147", r.String())
	assert.InDelta(t, 48000.0, r.OutputRate(44100), 1e-9)
	assert.Equal(t, 48000, r.OutputLen(44100))

	assert.Equal(t, 16001, Ratio{1, 3}.OutputLen(48001))
	assert.Equal(t, 7, Ratio{2, 3}.OutputLen(10))
	assert.Equal(t, 0, Ratio{2, 3}.OutputLen(0))
}

func TestResample_DecimationRejectsAliases(t *testing.T) {
	const (
		source = 48000.0
		target = 16000.0
		n      = 48001
	)

	ratio, err := NewRatio(source, target)
	require.NoError(t, err)
	require.Equal(t, Ratio{1, 3}, ratio)

	x := testutil.Add(
		testutil.Sine(n, 1000, source, 1),
		testutil.Sine(n, 12000, source, 1),
	)

	out, err := Resample(mustSignal(t, x), source, target)
	require.NoError(t, err)
	require.Equal(t, 16001, out.Len())

	// 12 kHz folds onto 4 kHz at the new rate.
	mid := out.Channel(0)[4000:12000]
	tone := testutil.ToneAmplitude(mid, 1000, target)
	alias := testutil.ToneAmplitude(mid, 4000, target)

	assert.InDelta(t, 1.0, tone, 0.01)
	assert.LessOrEqual(t, alias, math.Pow(10, -DefaultStopbandDB/20)*tone)
}

func TestResample_DecimationUsesAntiAliasFilter(t *testing.T) {
	const (
		n  = 600
		n0 = 300
	)

	taps, err := DesignAntiAlias(48000, 16000)
	require.NoError(t, err)
	h := taps.Coeffs()

	x := make([]float64, n)
	x[n0] = 1

	out, err := Resample(mustSignal(t, x), 48000, 16000)
	require.NoError(t, err)
	require.Equal(t, n/3, out.Len())

	y := out.Channel(0)
	for m := range y {
		idx := 3*m + taps.Delay() - n0
		want := 0.0
		if idx >= 0 && idx < len(h) {
			want = h[idx]
		}
		assert.InDelta(t, want, y[m], 1e-15, "output %d", m)
	}
}

func TestResample_RoundTrip(t *testing.T) {
	const n = 5000
	x := testutil.Sine(n, 5, 1000, 1)

	down, err := Resample(mustSignal(t, x), 1000, 200)
	require.NoError(t, err)
	require.Equal(t, 1000, down.Len())

	back, err := Resample(down, 200, 1000)
	require.NoError(t, err)
	require.Equal(t, n, back.Len())

	testutil.AssertSlicesClose(t, x, back.Channel(0), 500, n-500, 0.05)
}

func TestResample_Upsampling(t *testing.T) {
	const n = 1000
	x := testutil.Sine(n, 5, 200, 1)

	out, err := Resample(mustSignal(t, x), 200, 1000)
	require.NoError(t, err)
	require.Equal(t, 5*n, out.Len())

	want := testutil.Sine(5*n, 5, 1000, 1)
	testutil.AssertSlicesClose(t, want, out.Channel(0), 200, 5*n-200, 0.01)
}

func TestResample_Trends(t *testing.T) {
	const n = 999

	constant := testutil.Constant(n, 6.25)
	ramp := make([]float64, n)
	for i := range ramp {
		ramp[i] = 2 + 0.5*float64(i)
	}

	t.Run("constant", func(t *testing.T) {
		for _, mode := range []PadMode{PadLine, PadMean} {
			out, err := Resample(mustSignal(t, constant), 300, 200, WithPadMode(mode))
			require.NoError(t, err)
			for i, v := range out.Channel(0) {
				require.InDelta(t, 6.25, v, 1e-12, "%s sample %d", mode, i)
			}
		}
	})

	t.Run("ramp", func(t *testing.T) {
		out, err := Resample(mustSignal(t, ramp), 300, 200, WithPadMode(PadLine))
		require.NoError(t, err)
		require.Equal(t, 666, out.Len())
		for m, v := range out.Channel(0) {
			require.InDelta(t, 2+0.5*float64(m)*1.5, v, 1e-9, "sample %d", m)
		}
	})
}

func TestResample_SameRate(t *testing.T) {
	x := testutil.Noise(100, 4)
	sig := mustSignal(t, x)

	out, err := Resample(sig, 512, 512)
	require.NoError(t, err)
	assert.Equal(t, sig.Channels(), out.Channels())
}

func TestResample_ParallelMatchesSequential(t *testing.T) {
	channels := make([][]float64, 6)
	for i := range channels {
		channels[i] = testutil.Noise(4410, uint64(10+i))
	}
	sig := mustSignal(t, channels...)

	seq, err := Resample(sig, 44100, 48000)
	require.NoError(t, err)
	par, err := Resample(sig, 44100, 48000, WithParallel(true))
	require.NoError(t, err)

	assert.Equal(t, 4800, seq.Len())
	assert.Equal(t, seq.Channels(), par.Channels())
}

func TestResample_DegradedCache(t *testing.T) {
	logger, _ := newTestLogger()
	cache := NewTapCache(brokenStore{err: errors.New("read-only")}, WithLogger(logger))
	sig := mustSignal(t, testutil.Noise(3000, 5))

	want, err := Resample(sig, 1000, 250)
	require.NoError(t, err)

	got, err := Resample(sig, 1000, 250, WithTapCache(cache))
	assert.ErrorIs(t, err, ErrCacheIO)
	assert.Equal(t, want.Channels(), got.Channels())
}

func TestResample_Errors(t *testing.T) {
	_, err := Resample(Signal{}, 1000, 250)
	assert.ErrorIs(t, err, ErrShape)

	_, err = Resample(mustSignal(t, testutil.Noise(10, 1)), 1000, 0)
	assert.ErrorIs(t, err, ErrInvalidSpec)
}

func TestParsePadMode(t *testing.T) {
	m, err := ParsePadMode("line")
	require.NoError(t, err)
	assert.Equal(t, PadLine, m)

	m, err = ParsePadMode("mean")
	require.NoError(t, err)
	assert.Equal(t, PadMean, m)
	assert.Equal(t, "mean", m.String())

	_, err = ParsePadMode("reflect")
	assert.ErrorIs(t, err, ErrInvalidSpec)
	assert.Equal(t, "pad(4)", PadMode(4).String())
}
