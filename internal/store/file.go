package store

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	fileExt       = ".f64"
	bytesPerCoeff = 8
	dirPerm       = 0o755
)

// FileStore keeps one file per key in a directory. Each file is a flat
// little-endian float64 array; a missing file is a miss. Writes go to a
// temporary file in the same directory which is then renamed over the
// entry, so readers never observe a partially written entry.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("store: empty directory")
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the store's directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Path returns the file backing key.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, key+fileExt)
}

// Load reads the coefficients stored under key.
func (s *FileStore) Load(key string) ([]float64, error) {
	op := "load " + key

	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(data) == 0 || len(data)%bytesPerCoeff != 0 {
		return nil, fmt.Errorf("%s: %w: %d bytes", op, ErrCorrupt, len(data))
	}

	coeffs := make([]float64, len(data)/bytesPerCoeff)
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, coeffs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return coeffs, nil
}

// Save atomically replaces the entry for key.
func (s *FileStore) Save(key string, coeffs []float64) (err error) {
	op := "save " + key

	if err := ValidateKey(key); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	if err = binary.Write(w, binary.LittleEndian, coeffs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = os.Rename(tmp.Name(), s.Path(key)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete removes the entry for key. Deleting a missing entry is not an error.
func (s *FileStore) Delete(key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	err := os.Remove(s.Path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
