package filter

import (
	"fmt"
)

const (
	minNumPhases = 1
	maxNumPhases = 1 << 16
)

// PolyphaseFilterBank is a prototype FIR filter split into NumPhases
// branches for rational resampling by NumPhases/down.
//
// Branch p holds the prototype taps h[p], h[p+NumPhases], h[p+2·NumPhases],
// ... stored in reverse order and zero-padded at the front to TapsPerPhase,
// so a branch can be applied to an ascending run of input samples with a
// single dot product.
//
// Layout: [phase0 taps...][phase1 taps...]...[phaseN-1 taps...]
type PolyphaseFilterBank struct {
	Coeffs []float64

	NumPhases    int
	TapsPerPhase int

	// TotalTaps is the prototype length before decomposition.
	TotalTaps int
}

// NewPolyphaseFilterBank decomposes prototype into numPhases branches.
func NewPolyphaseFilterBank(prototype []float64, numPhases int) (*PolyphaseFilterBank, error) {
	if numPhases < minNumPhases || numPhases > maxNumPhases {
		return nil, fmt.Errorf("number of phases %d out of range [%d, %d]",
			numPhases, minNumPhases, maxNumPhases)
	}
	if len(prototype) == 0 {
		return nil, fmt.Errorf("empty prototype filter")
	}

	pfb := &PolyphaseFilterBank{
		NumPhases: numPhases,
		TotalTaps: len(prototype),
	}
	pfb.TapsPerPhase = (pfb.TotalTaps + numPhases - 1) / numPhases
	pfb.Coeffs = decomposePolyphase(prototype, numPhases, pfb.TapsPerPhase)

	return pfb, nil
}

func decomposePolyphase(prototype []float64, numPhases, tapsPerPhase int) []float64 {
	coeffs := make([]float64, numPhases*tapsPerPhase)
	for phase := range numPhases {
		base := phase * tapsPerPhase
		for j := range tapsPerPhase {
			idx := phase + j*numPhases
			if idx >= len(prototype) {
				continue
			}
			coeffs[base+tapsPerPhase-1-j] = prototype[idx]
		}
	}
	return coeffs
}

// Phase returns branch p in application order. The slice aliases Coeffs.
func (pfb *PolyphaseFilterBank) Phase(p int) []float64 {
	base := p * pfb.TapsPerPhase
	return pfb.Coeffs[base : base+pfb.TapsPerPhase]
}

// GetCoefficient returns prototype tap phase+tap·NumPhases, or zero past
// the end of the prototype.
func (pfb *PolyphaseFilterBank) GetCoefficient(tap, phase int) float64 {
	return pfb.Coeffs[phase*pfb.TapsPerPhase+pfb.TapsPerPhase-1-tap]
}

// PhaseGain returns the DC gain of branch p.
func (pfb *PolyphaseFilterBank) PhaseGain(p int) float64 {
	var sum float64
	for _, c := range pfb.Phase(p) {
		sum += c
	}
	return sum
}

// GetMemoryUsage returns the approximate memory usage in bytes.
func (pfb *PolyphaseFilterBank) GetMemoryUsage() int64 {
	const bytesPerFloat64 = 8
	return int64(len(pfb.Coeffs)) * bytesPerFloat64
}
