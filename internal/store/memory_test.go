package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Load("k")
	assert.ErrorIs(t, err, ErrNotFound)

	coeffs := []float64{1, 2, 3}
	require.NoError(t, s.Save("k", coeffs))
	coeffs[0] = 99

	got, err := s.Load("k")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, got, "save copies its input")

	got[1] = 99
	again, err := s.Load("k")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, again, "load returns a copy")

	assert.Equal(t, 1, s.Len())
	assert.ErrorIs(t, s.Save("bad/key", nil), ErrInvalidKey)
}

func TestValidateKey(t *testing.T) {
	assert.NoError(t, ValidateKey("v1-bp-hamming-fs512-lo1-hi40"))
	assert.NoError(t, ValidateKey("a.b_c"))
	assert.ErrorIs(t, ValidateKey(string(make([]byte, maxKeyLength+1))), ErrInvalidKey)
}
