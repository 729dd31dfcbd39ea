package engine

import (
	"errors"
	"fmt"

	"github.com/tphakala/simd/f64"

	"github.com/neurolistening/sigcond/internal/filter"
)

// ErrInvalidFactor is returned for non-positive resampling factors.
var ErrInvalidFactor = errors.New("resampling factors must be positive")

// Rational resamples by up/down in a single polyphase pass: upsample by up
// with zero insertion, filter with the prototype, keep every down-th sample.
// The zero-stuffed signal is never materialised; each output sample is one
// dot product of a polyphase branch with a run of input samples.
//
// The prototype must have odd length; its centre tap is aligned with output
// sample 0, so the result carries no group delay.
type Rational struct {
	up, down int
	half     int
	bank     *filter.PolyphaseFilterBank
}

// NewRational builds a resampler from a prototype designed at up times the
// input rate. The prototype's DC gain should be up for unity passband gain.
func NewRational(prototype []float64, up, down int) (*Rational, error) {
	if up < 1 || down < 1 {
		return nil, fmt.Errorf("%w: up=%d down=%d", ErrInvalidFactor, up, down)
	}
	if len(prototype)%2 == 0 {
		return nil, filter.ErrEvenLength
	}

	bank, err := filter.NewPolyphaseFilterBank(prototype, up)
	if err != nil {
		return nil, fmt.Errorf("failed to split prototype: %w", err)
	}

	return &Rational{
		up:   up,
		down: down,
		half: (len(prototype) - 1) / 2,
		bank: bank,
	}, nil
}

// Factors returns the interpolation and decimation factors.
func (r *Rational) Factors() (up, down int) {
	return r.up, r.down
}

// OutputLen returns ceil(n·up/down).
func (r *Rational) OutputLen(n int) int {
	return OutputLength(n, r.up, r.down)
}

// OutputLength returns ceil(n·up/down).
func OutputLength(n, up, down int) int {
	if n <= 0 {
		return 0
	}
	return (n*up + down - 1) / down
}

// Process writes r.OutputLen(len(x)) samples into dst. Input beyond either
// edge is treated as zero.
//
// Output m sits at position t = m·down + half of the upsampled, filtered
// stream, so y[m] = Σ h[t - n·up]·x[n] over the n that keep the tap index
// inside the prototype.
func (r *Rational) Process(dst, x []float64) {
	n := len(x)
	numOut := r.OutputLen(n)
	if numOut == 0 {
		return
	}

	taps := r.bank.TapsPerPhase
	for m := range numOut {
		t := m*r.down + r.half
		phase := t % r.up
		lo := t/r.up - taps + 1

		start := max(0, -lo)
		end := min(taps, n-lo)
		if start >= end {
			dst[m] = 0
			continue
		}

		coeffs := r.bank.Phase(phase)
		dst[m] = f64.DotProduct(coeffs[start:end], x[lo+start:lo+end])
	}
}
