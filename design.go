package sigcond

import (
	"fmt"

	"github.com/neurolistening/sigcond/internal/filter"
	"github.com/neurolistening/sigcond/internal/mathutil"
)

// Transition band heuristics. These are preserved exactly so designs stay
// bit-reproducible against pipelines using the same rules.
const (
	lowEdgeLimitHz      = 2.0
	lowEdgeTransitionHz = 0.5
	transitionFraction  = 0.25
	minTransitionHz     = 2.0
)

// HighpassTransition returns the transition width in Hz for a highpass edge
// at f: 0.5 Hz up to 2 Hz, otherwise 0.25·f clamped to [2 Hz, f].
func HighpassTransition(f float64) float64 {
	if f <= lowEdgeLimitHz {
		return lowEdgeTransitionHz
	}
	return clamp(f*transitionFraction, minTransitionHz, f)
}

// LowpassTransition returns the transition width in Hz for a lowpass edge at
// f: 0.25·f clamped to [2 Hz, nyquist-f].
func LowpassTransition(f, nyquist float64) float64 {
	return clamp(f*transitionFraction, minTransitionHz, nyquist-f)
}

func clamp(x, lo, hi float64) float64 {
	return min(max(x, lo), hi)
}

// NumTaps returns the odd tap count for a transition width under spec's
// window: ceil(3.3·fs/tw) for Hamming, Kaiser's order formula otherwise.
func NumTaps(spec FilterSpec, transition float64) int {
	if spec.Window == WindowKaiser {
		return mathutil.KaiserOrder(spec.StopbandDB, transition, spec.SampleRate)
	}
	return mathutil.HammingOrder(transition, spec.SampleRate)
}

// Design builds the TapSet for spec. A bandpass is the convolution of a
// highpass at LowCutoff with a lowpass at HighCutoff, so its length is
// len(hp)+len(lp)-1. Design is deterministic.
func Design(spec FilterSpec) (TapSet, error) {
	if err := spec.Validate(); err != nil {
		return TapSet{}, err
	}

	var hp, lp []float64
	if spec.LowCutoff > 0 {
		h, err := designEdge(spec, spec.LowCutoff, HighpassTransition(spec.LowCutoff), true)
		if err != nil {
			return TapSet{}, err
		}
		hp = h
	}
	if spec.HighCutoff > 0 {
		h, err := designEdge(spec, spec.HighCutoff, LowpassTransition(spec.HighCutoff, spec.Nyquist()), false)
		if err != nil {
			return TapSet{}, err
		}
		lp = h
	}

	switch {
	case hp != nil && lp != nil:
		return TapSet{coeffs: filter.Cascade(hp, lp), kind: KindBandpass}, nil
	case hp != nil:
		return TapSet{coeffs: hp, kind: KindHighpass}, nil
	default:
		return TapSet{coeffs: lp, kind: KindLowpass}, nil
	}
}

// designEdge designs one windowed-sinc edge with its cutoff at f.
func designEdge(spec FilterSpec, f, transition float64, highpass bool) ([]float64, error) {
	params := filter.FilterParams{
		NumTaps:    NumTaps(spec, transition),
		CutoffFreq: f / spec.SampleRate,
		Window:     spec.Window.filterWindow(),
		Gain:       1,
	}
	if spec.Window == WindowKaiser {
		params.Beta = mathutil.KaiserBeta(spec.StopbandDB)
	}

	design := filter.DesignLowPassFilter
	if highpass {
		design = filter.DesignHighPassFilter
	}
	h, err := design(params)
	if err != nil {
		return nil, &InvalidSpecError{
			Field:  "cutoff",
			Value:  f,
			Reason: fmt.Sprintf("cannot design %d taps: %v", params.NumTaps, err),
		}
	}
	return h, nil
}
