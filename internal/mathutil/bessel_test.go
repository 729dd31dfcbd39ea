package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/neurolistening/sigcond/internal/testutil"
)

func TestBesselI0(t *testing.T) {
	tests := []struct {
		x    float64
		want float64
	}{
		{0, 1},
		{0.5, 1.0634833707413236},
		{1, 1.2660658777520082},
		{2, 2.2795853023360673},
		{3, 4.880792585865024},
		{4, 11.301921952136330},
		{5, 27.239871823604442},
		{10, 2815.716628466254},
		{20, 43558282.55955634},
	}

	for _, tt := range tests {
		testutil.AssertRelativeError(t, tt.want, BesselI0(tt.x), 1e-9, "I0(%v)", tt.x)
	}
}

func TestBesselI0_Even(t *testing.T) {
	for _, x := range []float64{0.1, 1, 2.5, 5, 10} {
		assert.Equal(t, BesselI0(x), BesselI0(-x), "x=%v", x)
	}
}

func TestBesselI0_Monotonic(t *testing.T) {
	prev := BesselI0(0)
	for x := 0.1; x < 15; x += 0.1 {
		curr := BesselI0(x)
		assert.Greater(t, curr, prev, "x=%v", x)
		prev = curr
	}
}

func TestKaiserBeta(t *testing.T) {
	tests := []struct {
		att  float64
		want float64
	}{
		{20, 0},
		{21, 0},
		{40, 0.5842*pow04(19) + 0.07886*19},
		{50, 0.5842*pow04(29) + 0.07886*29},
		{53, 0.1102 * 44.3},
		{60, 0.1102 * 51.3},
		{80, 0.1102 * 71.3},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, KaiserBeta(tt.att), 1e-12, "att=%v", tt.att)
	}
}

func TestKaiserBeta_Monotonic(t *testing.T) {
	prev := KaiserBeta(20)
	for att := 21.0; att <= 150; att++ {
		beta := KaiserBeta(att)
		assert.GreaterOrEqual(t, beta, prev, "att=%v", att)
		prev = beta
	}
}

func pow04(x float64) float64 {
	return math.Pow(x, 0.4)
}

func BenchmarkBesselI0(b *testing.B) {
	for b.Loop() {
		_ = BesselI0(7.86)
	}
}
