package sigcond

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by the typed errors below through errors.Is.
var (
	// ErrInvalidSpec indicates a malformed cutoff, rate or window combination.
	ErrInvalidSpec = errors.New("invalid filter spec")

	// ErrInvalidPolicy indicates an unknown filtering policy.
	ErrInvalidPolicy = errors.New("invalid filter policy")

	// ErrShape indicates a signal that is empty, ragged or shorter than the taps.
	ErrShape = errors.New("invalid signal shape")

	// ErrCacheIO indicates that the tap cache's store could not be read or written.
	ErrCacheIO = errors.New("tap cache i/o")
)

// InvalidSpecError reports a filter or resampling parameter that cannot be
// designed for.
type InvalidSpecError struct {
	// Field names the offending parameter; empty for whole-spec problems.
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidSpecError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %s", ErrInvalidSpec, e.Reason)
	}
	return fmt.Sprintf("%v: %s=%g: %s", ErrInvalidSpec, e.Field, e.Value, e.Reason)
}

// Is reports whether target is ErrInvalidSpec.
func (e *InvalidSpecError) Is(target error) bool {
	return target == ErrInvalidSpec
}

// InvalidPolicyError reports an unrecognised filtering policy.
type InvalidPolicyError struct {
	Name string
}

func (e *InvalidPolicyError) Error() string {
	return fmt.Sprintf("%v: %q", ErrInvalidPolicy, e.Name)
}

// Is reports whether target is ErrInvalidPolicy.
func (e *InvalidPolicyError) Is(target error) bool {
	return target == ErrInvalidPolicy
}

// ShapeError reports a signal whose dimensions do not fit the operation.
type ShapeError struct {
	Samples  int
	Channels int
	// Required is the minimum sample count, when that is the problem.
	Required int
	Reason   string
}

func (e *ShapeError) Error() string {
	if e.Required > 0 {
		return fmt.Sprintf("%v: %d samples x %d channels: %s (need at least %d samples)",
			ErrShape, e.Samples, e.Channels, e.Reason, e.Required)
	}
	return fmt.Sprintf("%v: %d samples x %d channels: %s", ErrShape, e.Samples, e.Channels, e.Reason)
}

// Is reports whether target is ErrShape.
func (e *ShapeError) Is(target error) bool {
	return target == ErrShape
}

// CacheIOError reports a failed read or write of the tap cache's store.
// Taps returned alongside it are still correct; only persistence failed.
type CacheIOError struct {
	Op  string
	Key string
	Err error
}

func (e *CacheIOError) Error() string {
	return fmt.Sprintf("%v: %s %s: %v", ErrCacheIO, e.Op, e.Key, e.Err)
}

// Unwrap returns the underlying store error.
func (e *CacheIOError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrCacheIO.
func (e *CacheIOError) Is(target error) bool {
	return target == ErrCacheIO
}
