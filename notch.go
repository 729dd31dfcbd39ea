package sigcond

import (
	"fmt"
	"math"

	"github.com/neurolistening/sigcond/internal/filter"
	"github.com/neurolistening/sigcond/internal/mathutil"
)

// DesignNotch designs a linear-phase bandstop around freq, typically mains
// interference at 50 or 60 Hz. It is the sum of a lowpass ending below the
// notch and a highpass starting above it, both Hamming designs sized for
// the notch transition width (1 Hz by default). The stopband is
// freq/200 Hz wide unless WithNotchWidth says otherwise.
func DesignNotch(freq, sampleRate float64, opts ...Option) (TapSet, error) {
	cfg := applyOptions(opts)

	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return TapSet{}, &InvalidSpecError{Field: "sample_rate", Value: sampleRate, Reason: "must be positive and finite"}
	}
	if !(freq > 0) {
		return TapSet{}, &InvalidSpecError{Field: "notch_freq", Value: freq, Reason: "must be positive"}
	}

	width := cfg.notchWidth
	if width == 0 {
		width = freq / defaultNotchWidthDivisor
	}
	transition := cfg.notchTransition

	lowEdge := freq - width/2 - transition/2
	highEdge := freq + width/2 + transition/2
	if lowEdge <= 0 || highEdge >= sampleRate/2 {
		return TapSet{}, &InvalidSpecError{
			Field:  "notch_freq",
			Value:  freq,
			Reason: fmt.Sprintf("notch band %g-%g Hz does not fit between 0 and nyquist", lowEdge, highEdge),
		}
	}

	key := notchKey(freq, sampleRate, width, transition)
	return cfg.cache.getOrDesign(key, KindBandstop, func() (TapSet, error) {
		return notchTaps(lowEdge, highEdge, transition, sampleRate)
	})
}

func notchTaps(lowEdge, highEdge, transition, rate float64) (TapSet, error) {
	params := filter.FilterParams{
		NumTaps: mathutil.HammingOrder(transition, rate),
		Window:  filter.WindowHamming,
		Gain:    1,
	}

	params.CutoffFreq = lowEdge / rate
	lp, err := filter.DesignLowPassFilter(params)
	if err != nil {
		return TapSet{}, &InvalidSpecError{Field: "notch_freq", Value: lowEdge, Reason: err.Error()}
	}

	params.CutoffFreq = highEdge / rate
	hp, err := filter.DesignHighPassFilter(params)
	if err != nil {
		return TapSet{}, &InvalidSpecError{Field: "notch_freq", Value: highEdge, Reason: err.Error()}
	}

	h, err := filter.Parallel(lp, hp)
	if err != nil {
		return TapSet{}, fmt.Errorf("combine notch edges: %w", err)
	}
	return TapSet{coeffs: h, kind: KindBandstop}, nil
}
