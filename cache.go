package sigcond

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/neurolistening/sigcond/internal/store"
)

// Store is the durable backing of a TapCache. Load must return an error
// matching store.ErrNotFound (see IsNotFound) for a missing key.
type Store interface {
	Load(key string) ([]float64, error)
	Save(key string, coeffs []float64) error
}

// IsNotFound reports whether err marks a cache miss.
func IsNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}

// CacheStats counts TapCache lookups.
type CacheStats struct {
	Hits   int64
	Misses int64
	// Errors counts store failures; each one also counts as a miss.
	Errors int64
}

// TapCache memoises designed taps in a Store, keyed by design parameters.
// Entries are never invalidated; KeyVersion guards against serving taps
// designed by an older algorithm.
//
// A TapCache is safe for concurrent use. Concurrent misses on one key may
// each design and save the same taps; the last write wins.
type TapCache struct {
	store  Store
	logger *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64
	errors atomic.Int64
}

// CacheOption configures a TapCache.
type CacheOption func(*TapCache)

// WithLogger sets the logger used for store failures. The default is
// slog.Default().
func WithLogger(l *slog.Logger) CacheOption {
	return func(c *TapCache) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewTapCache returns a cache backed by s.
func NewTapCache(s Store, opts ...CacheOption) *TapCache {
	c := &TapCache{store: s, logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// NewFileTapCache returns a cache keeping one file per key in dir.
func NewFileTapCache(dir string, opts ...CacheOption) (*TapCache, error) {
	s, err := store.NewFileStore(dir)
	if err != nil {
		return nil, &CacheIOError{Op: "open", Key: dir, Err: err}
	}
	return NewTapCache(s, opts...), nil
}

// NewMemoryTapCache returns a cache that lives only in this process.
func NewMemoryTapCache(opts ...CacheOption) *TapCache {
	return NewTapCache(store.NewMemoryStore(), opts...)
}

// GetOrBuild returns the taps for spec, from the store when present and
// freshly designed otherwise.
//
// Store failures do not make the result wrong: the taps are designed on
// demand and returned together with a *CacheIOError, which callers may
// treat as a warning. Invalid specs return an *InvalidSpecError and no taps.
func (c *TapCache) GetOrBuild(spec FilterSpec) (TapSet, error) {
	key, err := KeyFor(spec)
	if err != nil {
		return TapSet{}, err
	}
	return c.getOrDesign(key, spec.Kind(), func() (TapSet, error) {
		return Design(spec)
	})
}

// Stats returns a snapshot of the lookup counters.
func (c *TapCache) Stats() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Errors: c.errors.Load(),
	}
}

// getOrDesign is GetOrBuild for an arbitrary key and designer. A nil cache
// designs directly.
func (c *TapCache) getOrDesign(key CacheKey, kind Kind, design func() (TapSet, error)) (TapSet, error) {
	if c == nil || c.store == nil {
		return design()
	}

	var ioErr error

	coeffs, err := c.store.Load(string(key))
	switch {
	case err == nil:
		taps, verr := NewTapSet(coeffs, kind)
		if verr == nil {
			c.hits.Add(1)
			return taps, nil
		}
		ioErr = c.fail("load", key, fmt.Errorf("stored taps rejected: %w", verr))
	case IsNotFound(err):
	default:
		ioErr = c.fail("load", key, err)
	}
	c.misses.Add(1)

	taps, err := design()
	if err != nil {
		return TapSet{}, err
	}

	if err := c.store.Save(string(key), taps.coeffs); err != nil {
		saveErr := c.fail("save", key, err)
		if ioErr == nil {
			ioErr = saveErr
		}
	}
	return taps, ioErr
}

func (c *TapCache) fail(op string, key CacheKey, err error) error {
	c.errors.Add(1)
	c.logger.Warn("tap cache unavailable, designing on demand",
		"op", op,
		"key", string(key),
		"error", err)
	return &CacheIOError{Op: op, Key: string(key), Err: err}
}
