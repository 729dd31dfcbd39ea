package store

import (
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SaveLoad(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "taps"))
	require.NoError(t, err)

	coeffs := []float64{0.25, -0.5, math.Pi, math.SmallestNonzeroFloat64, -0}
	require.NoError(t, s.Save("lp-1", coeffs))

	got, err := s.Load("lp-1")
	require.NoError(t, err)
	assert.Equal(t, coeffs, got)

	info, err := os.Stat(s.Path("lp-1"))
	require.NoError(t, err)
	assert.Equal(t, int64(len(coeffs)*8), info.Size(), "flat float64 payload")
}

func TestFileStore_LittleEndianLayout(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Save("one", []float64{1}))

	raw, err := os.ReadFile(s.Path("one"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0xf0, 0x3f}, raw)
}

func TestFileStore_Miss(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Load("absent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_Corrupt(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(s.Path("short"), []byte{1, 2, 3}, 0o644))
	_, err = s.Load("short")
	assert.ErrorIs(t, err, ErrCorrupt)

	require.NoError(t, os.WriteFile(s.Path("empty"), nil, 0o644))
	_, err = s.Load("empty")
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestFileStore_Overwrite(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save("k", []float64{1, 2, 3}))
	require.NoError(t, s.Save("k", []float64{4}))

	got, err := s.Load("k")
	require.NoError(t, err)
	assert.Equal(t, []float64{4}, got)
}

func TestFileStore_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			assert.NoError(t, s.Save("shared", []float64{1, 2, 3}))
		})
	}
	wg.Wait()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "shared.f64", entries[0].Name())

	got, err := s.Load("shared")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, got)
}

func TestFileStore_Delete(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save("gone", []float64{1}))
	require.NoError(t, s.Delete("gone"))
	require.NoError(t, s.Delete("gone"))

	_, err = s.Load("gone")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_InvalidKeys(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../escape", "a/b", ".hidden", "sp ace"} {
		t.Run(key, func(t *testing.T) {
			assert.ErrorIs(t, s.Save(key, []float64{1}), ErrInvalidKey)
			_, err := s.Load(key)
			assert.ErrorIs(t, err, ErrInvalidKey)
		})
	}
}

func TestNewFileStore_EmptyDir(t *testing.T) {
	_, err := NewFileStore("")
	assert.Error(t, err)
}

func TestFileStore_UnwritableDir(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(dir))

	assert.Error(t, s.Save("k", []float64{1}))
}
