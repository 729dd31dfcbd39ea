package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testName(taps int) string {
	return fmt.Sprintf("taps_%d", taps)
}

func TestReflectPad(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		p    int
		want []float64
	}{
		{"short_pad", []float64{1, 2, 3, 4}, 2, []float64{3, 2, 1, 2, 3, 4, 3, 2}},
		{"full_pad", []float64{1, 2, 3, 4}, 3, []float64{4, 3, 2, 1, 2, 3, 4, 3, 2, 1}},
		{"pad_longer_than_signal", []float64{1, 2, 3}, 5,
			[]float64{2, 1, 2, 3, 2, 1, 2, 3, 2, 1, 2, 3, 2}},
		{"single_sample", []float64{5}, 2, []float64{5, 5, 5, 5, 5}},
		{"no_pad", []float64{1, 2}, 0, []float64{1, 2}},
		{"empty", nil, 3, []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReflectPad(tt.x, tt.p))
		})
	}
}

func TestLineTrend(t *testing.T) {
	intercept, slope := LineTrend([]float64{2, 9, -4, 8})
	assert.InDelta(t, 2.0, intercept, 0)
	assert.InDelta(t, 2.0, slope, 1e-15)

	intercept, slope = LineTrend([]float64{3})
	assert.InDelta(t, 3.0, intercept, 0)
	assert.InDelta(t, 0.0, slope, 0)

	intercept, slope = LineTrend(nil)
	assert.Zero(t, intercept)
	assert.Zero(t, slope)
}

func TestSubtractAddLine_RoundTrip(t *testing.T) {
	x := []float64{1, 4, 2, 7, 5}
	intercept, slope := LineTrend(x)

	d := make([]float64, len(x))
	SubtractLine(d, x, intercept, slope)
	assert.InDelta(t, 0.0, d[0], 1e-15)
	assert.InDelta(t, 0.0, d[len(d)-1], 1e-15)

	AddLine(d, intercept, slope, 1)
	assert.InDeltaSlice(t, x, d, 1e-12)
}

func TestAddLine_Step(t *testing.T) {
	d := make([]float64, 3)
	AddLine(d, 1, 2, 0.5)
	assert.InDeltaSlice(t, []float64{1, 2, 3}, d, 1e-15)
}
