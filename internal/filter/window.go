// Package filter provides windowed-sinc FIR design primitives: window
// functions, lowpass and highpass kernels, cascades and polyphase splits.
package filter

import (
	"fmt"
	"math"

	"github.com/mjibson/go-dsp/window"

	"github.com/neurolistening/sigcond/internal/mathutil"
)

// WindowType selects the taper applied to the ideal sinc response.
type WindowType int

const (
	// WindowHamming is the fixed 0.54/0.46 raised-cosine window.
	WindowHamming WindowType = iota
	// WindowKaiser is the Kaiser-Bessel window, shaped by β.
	WindowKaiser
)

// String returns the lowercase window name.
func (w WindowType) String() string {
	switch w {
	case WindowHamming:
		return "hamming"
	case WindowKaiser:
		return "kaiser"
	default:
		return fmt.Sprintf("window(%d)", int(w))
	}
}

const (
	windowNormalizationFactor = 2.0
	sincCenterTap             = 1.0
)

// HammingWindow returns a symmetric Hamming window of the given length.
func HammingWindow(length int) []float64 {
	if length < 1 {
		return []float64{}
	}
	return window.Hamming(length)
}

// KaiserWindow generates a Kaiser window of the specified length and β parameter.
//
// The window is symmetric: w[i] = w[length-1-i], with a peak of 1.0 at the
// centre. Typical β values are 0-15; higher values trade a wider main lobe
// for lower sidelobes.
func KaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return []float64{}
	}

	w := make([]float64, length)
	if length == 1 {
		w[0] = sincCenterTap
		return w
	}

	// w[n] = I₀(β * sqrt(1 - ((n - α)/α)²)) / I₀(β), α = (N-1)/2
	alpha := float64(length-1) / windowNormalizationFactor
	i0Beta := mathutil.BesselI0(beta)

	for n := range length {
		x := (float64(n) - alpha) / alpha
		arg := beta * math.Sqrt(max(0, 1.0-x*x))
		w[n] = mathutil.BesselI0(arg) / i0Beta
	}

	return w
}
