package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGCD(t *testing.T) {
	assert.Equal(t, 16000, GCD(48000, 16000))
	assert.Equal(t, 200, GCD(1000, 200))
	assert.Equal(t, 300, GCD(44100, 48000))
	assert.Equal(t, int64(7), GCD(int64(-21), int64(14)))
	assert.Equal(t, uint(5), GCD(uint(0), uint(5)))
	assert.Equal(t, 0, GCD(0, 0))
}

func TestIsWhole(t *testing.T) {
	assert.True(t, IsWhole(48000))
	assert.True(t, IsWhole(0))
	assert.False(t, IsWhole(44100.5))
	assert.False(t, IsWhole(1e300))
}

func TestApproximateRatio(t *testing.T) {
	tests := []struct {
		name    string
		v       float64
		wantNum int
		wantDen int
	}{
		{"one_third", 1.0 / 3.0, 1, 3},
		{"five", 5, 5, 1},
		{"cd_to_dat", 48000.0 / 44100.0, 160, 147},
		{"degenerate_zero", 0, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			num, den := ApproximateRatio(tt.v, DefaultMaxDenominator)
			assert.Equal(t, tt.wantNum, num)
			assert.Equal(t, tt.wantDen, den)
		})
	}
}
