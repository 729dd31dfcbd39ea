// Package store persists FIR coefficient arrays under string keys.
package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Load when no entry exists for a key.
	ErrNotFound = errors.New("store: entry not found")

	// ErrCorrupt is returned by Load when an entry cannot be decoded.
	ErrCorrupt = errors.New("store: corrupt entry")

	// ErrInvalidKey is returned for keys that are empty or not usable as a
	// single file name.
	ErrInvalidKey = errors.New("store: invalid key")
)

const maxKeyLength = 200

// ValidateKey accepts non-empty keys of at most 200 ASCII letters, digits,
// '.', '_' and '-', not starting with '.'.
func ValidateKey(key string) error {
	if key == "" || len(key) > maxKeyLength || key[0] == '.' {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.', r == '_', r == '-':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return nil
}
