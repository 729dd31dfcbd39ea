package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurolistening/sigcond"
)

func TestAnalyze_Highpass(t *testing.T) {
	var buf bytes.Buffer
	err := analyze(&buf, analyzeOptions{rate: 512, low: 1, window: "hamming", points: 5})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "highpass, 3381 taps, delay 1690")
	assert.Contains(t, out, "Delay: 1690 samples")
}

func TestAnalyze_Modes(t *testing.T) {
	tests := []struct {
		name string
		opts analyzeOptions
		want string
	}{
		{"kaiser", analyzeOptions{rate: 1000, high: 40, window: "kaiser", att: 60}, "lowpass"},
		{"notch", analyzeOptions{rate: 512, notch: 50}, "bandstop, 1691 taps"},
		{"decimate", analyzeOptions{rate: 48000, target: 16000}, "lowpass, 191 taps"},
		{"interpolate", analyzeOptions{rate: 200, target: 1000}, "lowpass, 101 taps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, analyze(&buf, tt.opts))
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestAnalyze_Errors(t *testing.T) {
	var buf bytes.Buffer
	err := analyze(&buf, analyzeOptions{rate: 512, high: 40, window: "blackman"})
	assert.ErrorContains(t, err, "unknown window")

	err = analyze(&buf, analyzeOptions{rate: 512, high: 400, window: "hamming"})
	assert.ErrorIs(t, err, sigcond.ErrInvalidSpec)
}

func TestAnalyze_WarmsCache(t *testing.T) {
	dir := t.TempDir()
	opts := analyzeOptions{rate: 256, low: 1, high: 30, window: "hamming", cacheDir: dir}

	var first, second bytes.Buffer
	require.NoError(t, analyze(&first, opts))
	require.NoError(t, analyze(&second, opts))

	assert.Contains(t, first.String(), "Cache: 0 hits, 1 misses")
	assert.Contains(t, second.String(), "Cache: 1 hits, 0 misses")
}

func TestResponseTable(t *testing.T) {
	taps, err := sigcond.Design(sigcond.Lowpass(40, 512))
	require.NoError(t, err)

	table := responseTable(taps.Coeffs(), 512, 5)
	require.Len(t, table, 5)

	assert.InDelta(t, 0.0, table[0].freq, 0)
	assert.InDelta(t, 256.0, table[4].freq, 0)
	assert.InDelta(t, 0.0, table[0].db, 0.05)
	assert.Less(t, table[2].db, -50.0)
}
