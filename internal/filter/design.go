package filter

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/floats"
)

const (
	minFilterTaps = 3
	maxFilterTaps = 1 << 20

	sincZeroThreshold = 1e-10
)

// ErrEvenLength is returned when an operation needs a centre tap.
var ErrEvenLength = errors.New("filter length must be odd")

// FilterParams holds parameters for windowed-sinc design.
type FilterParams struct {
	// NumTaps is the filter length. It must be odd so the filter has an
	// integer group delay.
	NumTaps int

	// CutoffFreq is the normalized cutoff frequency (0 to 0.5), where 0.5
	// is the Nyquist frequency.
	CutoffFreq float64

	// Window selects the taper. Beta is used only by WindowKaiser.
	Window WindowType
	Beta   float64

	// Gain is the passband gain (typically 1.0).
	Gain float64
}

// Validate checks if filter parameters are valid.
func (fp *FilterParams) Validate() error {
	if fp.NumTaps < minFilterTaps {
		return fmt.Errorf("filter too short: %d taps (minimum %d)", fp.NumTaps, minFilterTaps)
	}
	if fp.NumTaps > maxFilterTaps {
		return fmt.Errorf("filter too long: %d taps (maximum %d)", fp.NumTaps, maxFilterTaps)
	}
	if fp.NumTaps%2 == 0 {
		return fmt.Errorf("%w: got %d taps", ErrEvenLength, fp.NumTaps)
	}
	if !(fp.CutoffFreq > 0 && fp.CutoffFreq < 0.5) {
		return fmt.Errorf("invalid cutoff frequency: %f (must be in (0, 0.5))", fp.CutoffFreq)
	}
	switch fp.Window {
	case WindowHamming:
	case WindowKaiser:
		if fp.Beta < 0 || math.IsNaN(fp.Beta) {
			return fmt.Errorf("invalid kaiser beta: %f", fp.Beta)
		}
	default:
		return fmt.Errorf("unknown window %v", fp.Window)
	}
	if fp.Gain <= 0 {
		return fmt.Errorf("invalid gain: %f (must be positive)", fp.Gain)
	}
	return nil
}

func (fp *FilterParams) window() []float64 {
	if fp.Window == WindowKaiser {
		return KaiserWindow(fp.NumTaps, fp.Beta)
	}
	return HammingWindow(fp.NumTaps)
}

// DesignLowPassFilter designs a windowed-sinc lowpass FIR filter.
//
// The ideal sinc response is truncated to NumTaps, tapered by the selected
// window and scaled so the DC gain equals params.Gain. The result is
// symmetric, so it has linear phase and a delay of (NumTaps-1)/2 samples.
func DesignLowPassFilter(params FilterParams) ([]float64, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	w := params.window()
	h := make([]float64, params.NumTaps)
	center := float64(params.NumTaps-1) / windowNormalizationFactor

	for n := range params.NumTaps {
		x := float64(n) - center

		// sin(2πfc·x) / (πx), with limit 2fc at x=0
		var sincValue float64
		if math.Abs(x) < sincZeroThreshold {
			sincValue = windowNormalizationFactor * params.CutoffFreq
		} else {
			arg := windowNormalizationFactor * math.Pi * params.CutoffFreq * x
			sincValue = math.Sin(arg) / (math.Pi * x)
		}
		h[n] = sincValue * w[n]
	}

	sum := f64.Sum(h)
	if math.Abs(sum) > sincZeroThreshold {
		f64.Scale(h, h, params.Gain/sum)
	}

	return h, nil
}

// DesignHighPassFilter designs a highpass filter by spectral inversion of a
// unit-gain lowpass at the same cutoff: h = Gain·(δ − lp). The DC gain of
// the result is zero up to rounding.
func DesignHighPassFilter(params FilterParams) ([]float64, error) {
	gain := params.Gain
	params.Gain = 1
	h, err := DesignLowPassFilter(params)
	if err != nil {
		return nil, err
	}

	f64.Scale(h, h, -1)
	h[len(h)/2] += 1
	if gain != 1 {
		f64.Scale(h, h, gain)
	}
	return h, nil
}

// Cascade returns the full linear convolution of a and b, the single kernel
// equivalent to filtering with a then b. Its length is len(a)+len(b)-1.
func Cascade(a, b []float64) []float64 {
	if len(a) == 0 || len(b) == 0 {
		return []float64{}
	}
	if len(a) < len(b) {
		a, b = b, a
	}

	lb := len(b)
	rev := make([]float64, lb)
	for i, v := range b {
		rev[lb-1-i] = v
	}

	out := make([]float64, len(a)+lb-1)
	for m := range out {
		lo := max(0, m-lb+1)
		hi := min(len(a)-1, m)
		off := lb - 1 - m
		out[m] = f64.DotProduct(a[lo:hi+1], rev[off+lo:off+hi+1])
	}
	return out
}

// Parallel returns the sum of two odd-length kernels aligned on their
// centre taps, the kernel equivalent to filtering with both and adding.
func Parallel(a, b []float64) ([]float64, error) {
	if len(a)%2 == 0 || len(b)%2 == 0 {
		return nil, ErrEvenLength
	}
	if len(a) < len(b) {
		a, b = b, a
	}

	out := make([]float64, len(a))
	copy(out, a)
	off := (len(a) - len(b)) / 2
	floats.Add(out[off:off+len(b)], b)
	return out, nil
}
