package sigcond

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/neurolistening/sigcond/internal/engine"
	"github.com/neurolistening/sigcond/internal/filter"
	"github.com/neurolistening/sigcond/internal/mathutil"
)

// PadMode selects how Resample keeps signal edges from ringing. The chosen
// trend is removed before filtering and added back at the output instants,
// so the zero samples the filter sees past either edge join the signal
// smoothly.
type PadMode int

const (
	// PadLine removes the straight line through the first and last samples.
	PadLine PadMode = iota
	// PadMean removes the channel mean.
	PadMean
)

var padModeNames = [...]string{
	PadLine: "line",
	PadMean: "mean",
}

// ParsePadMode maps "line" or "mean" to a PadMode.
func ParsePadMode(name string) (PadMode, error) {
	for m, n := range padModeNames {
		if n == name {
			return PadMode(m), nil
		}
	}
	return 0, &InvalidSpecError{Field: "pad_mode", Reason: fmt.Sprintf("unknown pad mode %q", name)}
}

// String returns the pad mode name.
func (m PadMode) String() string {
	if m.valid() {
		return padModeNames[m]
	}
	return fmt.Sprintf("pad(%d)", int(m))
}

// Validate returns an *InvalidSpecError for values outside the enum.
func (m PadMode) Validate() error {
	if !m.valid() {
		return &InvalidSpecError{Field: "pad_mode", Value: float64(m), Reason: "unknown pad mode"}
	}
	return nil
}

func (m PadMode) valid() bool {
	return m >= PadLine && int(m) < len(padModeNames)
}

// Prototype parameters for ratios with an interpolation step.
const (
	resampleKaiserBeta    = 5.0
	resampleHalfLenFactor = 10
	resampleNyquist       = 0.5
)

// Ratio is a reduced resampling factor Up/Down, gcd(Up, Down) == 1.
type Ratio struct {
	Up   int
	Down int
}

// NewRatio reduces targetRate/sourceRate to lowest terms. Whole-number rates
// are reduced exactly by their gcd; other rates are approximated by
// continued fractions with a denominator of at most 4096 (see
// WithMaxDenominator).
func NewRatio(sourceRate, targetRate float64, opts ...Option) (Ratio, error) {
	return newRatio(sourceRate, targetRate, applyOptions(opts).maxDen)
}

func newRatio(source, target float64, maxDen int) (Ratio, error) {
	if err := validateRates(source, target); err != nil {
		return Ratio{}, err
	}

	if mathutil.IsWhole(source) && mathutil.IsWhole(target) {
		s, t := int64(source), int64(target)
		g := mathutil.GCD(s, t)
		return Ratio{Up: int(t / g), Down: int(s / g)}, nil
	}

	up, down := mathutil.ApproximateRatio(target/source, maxDen)
	return Ratio{Up: up, Down: down}, nil
}

// String formats the ratio as "up/down".
func (r Ratio) String() string {
	return fmt.Sprintf("%d/%d", r.Up, r.Down)
}

// OutputRate returns the rate produced from sourceRate.
func (r Ratio) OutputRate(sourceRate float64) float64 {
	return sourceRate * float64(r.Up) / float64(r.Down)
}

// OutputLen returns ceil(n·Up/Down).
func (r Ratio) OutputLen(n int) int {
	return engine.OutputLength(n, r.Up, r.Down)
}

// Resample converts sig from sourceRate to targetRate in a single polyphase
// pass. The output has ceil(n·up/down) samples per channel and no delay.
//
// When the reduced ratio has up == 1, the prototype is the anti-alias
// filter of DesignAntiAlias sized for targetRate. Otherwise it is a Kaiser
// (β = 5) lowpass at 0.5/max(up, down) cycles per upsampled sample with
// 10·max(up, down) taps per side.
//
// A *CacheIOError from a WithTapCache cache is returned together with the
// correct result.
func Resample(sig Signal, sourceRate, targetRate float64, opts ...Option) (Signal, error) {
	cfg := applyOptions(opts)

	if sig.NumChannels() == 0 || sig.Len() == 0 {
		return Signal{}, sig.shapeError("empty signal", 0)
	}

	ratio, err := newRatio(sourceRate, targetRate, cfg.maxDen)
	if err != nil {
		return Signal{}, err
	}
	if ratio.Up == ratio.Down {
		return Signal{data: sig.Channels()}, nil
	}

	proto, warn := resamplingPrototype(ratio, sourceRate, targetRate, cfg)
	var ioErr *CacheIOError
	if warn != nil && !errors.As(warn, &ioErr) {
		return Signal{}, warn
	}

	r, err := engine.NewRational(proto, ratio.Up, ratio.Down)
	if err != nil {
		return Signal{}, fmt.Errorf("resample %s: %w", ratio, err)
	}

	out := make([][]float64, sig.NumChannels())
	err = forEachChannel(sig.NumChannels(), cfg.parallel, func(ch int) error {
		out[ch] = resampleChannel(sig.data[ch], r, cfg.padMode)
		return nil
	})
	if err != nil {
		return Signal{}, err
	}

	if ioErr != nil {
		return Signal{data: out}, ioErr
	}
	return Signal{data: out}, nil
}

// ResamplingFilter returns the prototype lowpass Resample would use for
// these rates and options, designed at up times sourceRate with a DC gain
// of up. Identical rates need no filter and yield an *InvalidSpecError.
func ResamplingFilter(sourceRate, targetRate float64, opts ...Option) (TapSet, error) {
	cfg := applyOptions(opts)

	ratio, err := newRatio(sourceRate, targetRate, cfg.maxDen)
	if err != nil {
		return TapSet{}, err
	}
	if ratio.Up == ratio.Down {
		return TapSet{}, &InvalidSpecError{Field: "target_rate", Value: targetRate, Reason: "equal rates need no resampling filter"}
	}

	proto, err := resamplingPrototype(ratio, sourceRate, targetRate, cfg)
	if proto == nil {
		return TapSet{}, err
	}
	return TapSet{coeffs: proto, kind: KindLowpass}, err
}

func resamplingPrototype(ratio Ratio, source, target float64, cfg config) ([]float64, error) {
	if ratio.Up == 1 {
		taps, err := designAntiAlias(source, target, cfg)
		if taps.Len() == 0 {
			return nil, err
		}
		return taps.coeffs, err
	}

	m := max(ratio.Up, ratio.Down)
	half := resampleHalfLenFactor * m
	h, err := filter.DesignLowPassFilter(filter.FilterParams{
		NumTaps:    2*half + 1,
		CutoffFreq: resampleNyquist / float64(m),
		Window:     filter.WindowKaiser,
		Beta:       resampleKaiserBeta,
		Gain:       float64(ratio.Up),
	})
	if err != nil {
		return nil, &InvalidSpecError{
			Field:  "ratio",
			Value:  target / source,
			Reason: fmt.Sprintf("cannot design %s prototype: %v", ratio, err),
		}
	}
	return h, nil
}

func resampleChannel(x []float64, r *engine.Rational, mode PadMode) []float64 {
	var intercept, slope float64
	if mode == PadMean {
		intercept = stat.Mean(x, nil)
	} else {
		intercept, slope = engine.LineTrend(x)
	}

	work := make([]float64, len(x))
	engine.SubtractLine(work, x, intercept, slope)

	out := make([]float64, r.OutputLen(len(x)))
	r.Process(out, work)

	up, down := r.Factors()
	engine.AddLine(out, intercept, slope, float64(down)/float64(up))
	return out
}
