package sigcond

import (
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/neurolistening/sigcond/internal/engine"
)

// Apply filters every channel of sig with taps under policy and returns a
// new Signal.
//
// Each channel's mean is removed before filtering. It is added back when
// the taps pass DC (lowpass, bandstop) and left out otherwise, since a
// highpass component is meant to remove it.
func Apply(sig Signal, taps TapSet, policy Policy, opts ...Option) (Signal, error) {
	cfg := applyOptions(opts)

	if err := policy.Validate(); err != nil {
		return Signal{}, err
	}
	if taps.Len() == 0 {
		return Signal{}, &InvalidSpecError{Field: "taps", Reason: "empty tap set"}
	}
	if sig.NumChannels() == 0 || sig.Len() == 0 {
		return Signal{}, sig.shapeError("empty signal", 0)
	}
	if sig.Len() < taps.Len() {
		return Signal{}, sig.shapeError("signal shorter than filter", taps.Len())
	}

	out := make([][]float64, sig.NumChannels())
	err := forEachChannel(sig.NumChannels(), cfg.parallel, func(ch int) error {
		out[ch] = applyChannel(sig.data[ch], taps, policy)
		return nil
	})
	if err != nil {
		return Signal{}, err
	}
	return Signal{data: out}, nil
}

func applyChannel(x []float64, taps TapSet, policy Policy) []float64 {
	mean := stat.Mean(x, nil)
	centred := slices.Clone(x)
	floats.AddConst(-mean, centred)

	y := make([]float64, len(x))
	switch policy {
	case PolicyTwoPassZeroPhase:
		engine.FilterTwoPass(y, centred, taps.coeffs)
	case PolicyCausal, PolicyCausalDelayCut:
		engine.FilterCausal(y, centred, taps.coeffs)
	case PolicyReflectZeroPhase:
		engine.FilterReflect(y, centred, taps.coeffs)
	}

	if policy == PolicyCausalDelayCut {
		y = slices.Clone(y[taps.Delay():])
	}
	if taps.PreservesDC() {
		floats.AddConst(mean, y)
	}
	return y
}
