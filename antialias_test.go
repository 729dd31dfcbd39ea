package sigcond

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurolistening/sigcond/internal/filter"
	"github.com/neurolistening/sigcond/internal/mathutil"
	"github.com/neurolistening/sigcond/internal/testutil"
)

func TestDesignAntiAlias_48kTo16k(t *testing.T) {
	const (
		source = 48000.0
		target = 16000.0
	)

	taps, err := DesignAntiAlias(source, target)
	require.NoError(t, err)

	assert.Equal(t, 191, taps.Len())
	assert.Equal(t, KindLowpass, taps.Kind())
	testutil.AssertSymmetric(t, taps.Coeffs(), 1e-12)
	testutil.AssertDCGain(t, taps.Coeffs(), 1, 1e-9)

	h := taps.Coeffs()
	for f := 0.0; f <= DefaultCutoffRatio*target/2; f += 100 {
		assert.InDelta(t, 1.0, filter.MagnitudeAt(h, f/source), 0.01, "passband at %g Hz", f)
	}

	limit := math.Pow(10, -(DefaultStopbandDB-3)/20)
	for f := target / 2; f < source/2; f += 50 {
		assert.Less(t, filter.MagnitudeAt(h, f/source), limit, "stopband at %g Hz", f)
	}
}

func TestDesignAntiAlias_Options(t *testing.T) {
	taps, err := DesignAntiAlias(48000, 16000, WithAntiAlias(0.8, 80))
	require.NoError(t, err)
	assert.Equal(t, mathutil.KaiserOrder(80, 1600, 48000), taps.Len())

	// Out-of-range overrides keep the defaults.
	def, err := DesignAntiAlias(48000, 16000, WithAntiAlias(1.5, -3))
	require.NoError(t, err)
	assert.Equal(t, 191, def.Len())
}

func TestDesignAntiAlias_Cached(t *testing.T) {
	cache := NewMemoryTapCache()

	first, err := DesignAntiAlias(1000, 250, WithTapCache(cache))
	require.NoError(t, err)
	second, err := DesignAntiAlias(1000, 250, WithTapCache(cache))
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.Equal(t, CacheStats{Hits: 1, Misses: 1}, cache.Stats())

	direct, err := DesignAntiAlias(1000, 250)
	require.NoError(t, err)
	assert.True(t, direct.Equal(second))
}

func TestDesignAntiAlias_Invalid(t *testing.T) {
	tests := []struct {
		name           string
		source, target float64
	}{
		{"upsampling", 16000, 48000},
		{"same_rate", 1000, 1000},
		{"zero_source", 0, 100},
		{"negative_target", 1000, -250},
		{"nan_target", 1000, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DesignAntiAlias(tt.source, tt.target)
			assert.ErrorIs(t, err, ErrInvalidSpec)
		})
	}
}
