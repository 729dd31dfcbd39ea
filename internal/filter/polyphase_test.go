package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rampPrototype(n int) []float64 {
	h := make([]float64, n)
	for i := range h {
		h[i] = float64(i)
	}
	return h
}

func TestNewPolyphaseFilterBank_Validation(t *testing.T) {
	_, err := NewPolyphaseFilterBank(rampPrototype(10), 0)
	assert.Error(t, err)
	_, err = NewPolyphaseFilterBank(rampPrototype(10), maxNumPhases+1)
	assert.Error(t, err)
	_, err = NewPolyphaseFilterBank(nil, 3)
	assert.Error(t, err)
}

func TestPolyphaseFilterBank_Layout(t *testing.T) {
	pfb, err := NewPolyphaseFilterBank(rampPrototype(10), 3)
	require.NoError(t, err)

	assert.Equal(t, 3, pfb.NumPhases)
	assert.Equal(t, 4, pfb.TapsPerPhase)
	assert.Equal(t, 10, pfb.TotalTaps)

	assert.Equal(t, []float64{9, 6, 3, 0}, pfb.Phase(0))
	assert.Equal(t, []float64{0, 7, 4, 1}, pfb.Phase(1))
	assert.Equal(t, []float64{0, 8, 5, 2}, pfb.Phase(2))

	assert.InDelta(t, 4.0, pfb.GetCoefficient(1, 1), 0)
	assert.InDelta(t, 0.0, pfb.GetCoefficient(3, 2), 0, "past the prototype end")
	assert.Equal(t, int64(12*8), pfb.GetMemoryUsage())
}

func TestPolyphaseFilterBank_SinglePhase(t *testing.T) {
	pfb, err := NewPolyphaseFilterBank([]float64{1, 2, 3}, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 2, 1}, pfb.Phase(0))
}

func TestPolyphaseFilterBank_PhaseGains(t *testing.T) {
	const up = 4
	p := hammingParams(0.5/up, 0.02)
	p.Gain = up
	h, err := DesignLowPassFilter(p)
	require.NoError(t, err)

	pfb, err := NewPolyphaseFilterBank(h, up)
	require.NoError(t, err)

	var total float64
	for phase := range up {
		g := pfb.PhaseGain(phase)
		assert.InDelta(t, 1.0, g, 0.01, "phase %d DC gain", phase)
		total += g
	}
	assert.InDelta(t, float64(up), total, 1e-9)
}
