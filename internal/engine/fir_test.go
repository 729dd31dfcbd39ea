package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurolistening/sigcond/internal/filter"
	"github.com/neurolistening/sigcond/internal/testutil"
)

func lowpass(t testing.TB, numTaps int, cutoff float64) []float64 {
	t.Helper()
	h, err := filter.DesignLowPassFilter(filter.FilterParams{
		NumTaps:    numTaps,
		CutoffFreq: cutoff,
		Window:     filter.WindowHamming,
		Gain:       1,
	})
	require.NoError(t, err)
	return h
}

func TestFilterCausal_Seeded(t *testing.T) {
	dst := make([]float64, 4)
	FilterCausal(dst, []float64{1, 2, 3, 4}, []float64{1, 2, 3})
	assert.InDeltaSlice(t, []float64{6, 7, 10, 16}, dst, 1e-12)
}

func TestFilterCausal_ConstantHasNoTransient(t *testing.T) {
	x := testutil.Constant(200, 2.5)
	dst := make([]float64, len(x))
	FilterCausal(dst, x, lowpass(t, 51, 0.1))

	for i, v := range dst {
		assert.InDelta(t, 2.5, v, 1e-12, "sample %d", i)
	}
}

func TestFilterCausal_Delay(t *testing.T) {
	x := make([]float64, 40)
	x[10] = 1
	taps := []float64{1, 2, 3, 2, 1}

	dst := make([]float64, len(x))
	FilterCausal(dst, x, taps)

	assert.InDeltaSlice(t, taps, dst[10:15], 1e-12)
	assert.InDelta(t, 3.0, testutil.MaxAbs(dst, 0, len(dst)), 0)
	assert.InDelta(t, 3.0, dst[12], 0, "peak delayed by (len-1)/2")
}

func TestFilterCausal_InPlace(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	FilterCausal(x, x, []float64{1, 2, 3})
	assert.InDeltaSlice(t, []float64{6, 7, 10, 16}, x, 1e-12)
}

func TestFilterReflect_Centred(t *testing.T) {
	x := make([]float64, 30)
	x[10] = 1
	taps := []float64{1, 2, 3, 2, 1}

	dst := make([]float64, len(x))
	FilterReflect(dst, x, taps)

	assert.InDeltaSlice(t, taps, dst[8:13], 1e-12)
	assert.InDelta(t, 0.0, dst[7], 1e-12)
	assert.InDelta(t, 0.0, dst[13], 1e-12)
}

func naiveReflect(x, taps []float64) []float64 {
	n, l := len(x), len(taps)
	pad := l - 1
	xp := ReflectPad(x, pad)
	full := make([]float64, len(xp)+l-1)
	for i, v := range xp {
		for k, h := range taps {
			full[i+k] += v * h
		}
	}
	start := (l-1)/2 + pad
	return full[start : start+n]
}

func TestFilterReflect_MatchesFullConvolution(t *testing.T) {
	for _, numTaps := range []int{31, 801} {
		t.Run(testName(numTaps), func(t *testing.T) {
			x := testutil.Noise(2000, 3)
			taps := lowpass(t, numTaps, 0.05)

			want := naiveReflect(x, taps)
			got := make([]float64, len(x))
			FilterReflect(got, x, taps)

			testutil.AssertSlicesClose(t, want, got, 0, len(x), 1e-9)
		})
	}
}

func TestFilterTwoPass_MatchesReflectWithSquaredKernel(t *testing.T) {
	const n = 400

	x := testutil.Noise(n, 4)
	h := lowpass(t, 31, 0.1)
	g := filter.Cascade(h, h)

	twoPass := make([]float64, n)
	FilterTwoPass(twoPass, x, h)

	reflect := make([]float64, n)
	FilterReflect(reflect, x, g)

	testutil.AssertSlicesClose(t, reflect, twoPass, 2*len(h), n-2*len(h), 1e-9)
}

func TestFilterTwoPass_ZeroPhase(t *testing.T) {
	const (
		n    = 1000
		rate = 100.0
	)

	x := testutil.Sine(n, 2, rate, 1)
	dst := make([]float64, n)
	FilterTwoPass(dst, x, lowpass(t, 101, 0.1))

	testutil.AssertSlicesClose(t, x, dst, 200, n-200, 0.01)
}

func TestFilters_EmptyInput(t *testing.T) {
	assert.NotPanics(t, func() {
		FilterCausal(nil, nil, []float64{1})
		FilterTwoPass(nil, nil, []float64{1})
		FilterReflect(nil, nil, []float64{1})
	})
}
