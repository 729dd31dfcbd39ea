package sigcond

import (
	"fmt"
	"math"
	"slices"
)

// Kind is the response type of a TapSet.
type Kind int

// Filter kinds.
const (
	KindLowpass Kind = iota
	KindHighpass
	KindBandpass
	KindBandstop
)

var kindNames = [...]string{
	KindLowpass:  "lowpass",
	KindHighpass: "highpass",
	KindBandpass: "bandpass",
	KindBandstop: "bandstop",
}

// String returns the lowercase kind name.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// TapSet is an immutable odd-length FIR coefficient array. Odd length gives
// every TapSet an integer group delay of (Len()-1)/2 samples.
type TapSet struct {
	coeffs []float64
	kind   Kind
}

// NewTapSet validates and copies coeffs.
func NewTapSet(coeffs []float64, kind Kind) (TapSet, error) {
	if len(coeffs) == 0 || len(coeffs)%2 == 0 {
		return TapSet{}, &InvalidSpecError{Field: "taps", Value: float64(len(coeffs)), Reason: "tap count must be odd"}
	}
	if kind < KindLowpass || kind > KindBandstop {
		return TapSet{}, &InvalidSpecError{Field: "kind", Value: float64(kind), Reason: "unknown filter kind"}
	}
	for i, c := range coeffs {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return TapSet{}, &InvalidSpecError{Field: fmt.Sprintf("taps[%d]", i), Value: c, Reason: "must be finite"}
		}
	}
	return TapSet{coeffs: slices.Clone(coeffs), kind: kind}, nil
}

// Coeffs returns a copy of the coefficients.
func (t TapSet) Coeffs() []float64 {
	return slices.Clone(t.coeffs)
}

// Len returns the number of taps.
func (t TapSet) Len() int {
	return len(t.coeffs)
}

// Delay returns the group delay in samples.
func (t TapSet) Delay() int {
	if len(t.coeffs) == 0 {
		return 0
	}
	return (len(t.coeffs) - 1) / 2
}

// Kind returns the response type.
func (t TapSet) Kind() Kind {
	return t.kind
}

// PreservesDC reports whether the filter passes DC, in which case the
// executor restores each channel's mean after filtering.
func (t TapSet) PreservesDC() bool {
	return t.kind == KindLowpass || t.kind == KindBandstop
}

// Equal reports whether both tap sets have the same kind and bit-identical
// coefficients.
func (t TapSet) Equal(o TapSet) bool {
	if t.kind != o.kind || len(t.coeffs) != len(o.coeffs) {
		return false
	}
	for i, c := range t.coeffs {
		if math.Float64bits(c) != math.Float64bits(o.coeffs[i]) {
			return false
		}
	}
	return true
}

func (t TapSet) String() string {
	return fmt.Sprintf("%s, %d taps, delay %d", t.kind, t.Len(), t.Delay())
}
