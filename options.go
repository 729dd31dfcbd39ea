package sigcond

import "github.com/neurolistening/sigcond/internal/mathutil"

// Defaults for anti-alias design and notch filters.
const (
	DefaultCutoffRatio = 0.9
	DefaultStopbandDB  = 53.0

	defaultNotchTransitionHz = 1.0
	defaultNotchWidthDivisor = 200.0
)

type config struct {
	parallel bool
	padMode  PadMode

	cutoffRatio float64
	stopbandDB  float64
	maxDen      int

	notchWidth      float64
	notchTransition float64

	cache *TapCache
}

// Option configures Apply, Resample, DesignAntiAlias and DesignNotch.
// Options irrelevant to a call are ignored.
type Option func(*config)

// WithParallel filters channels on separate goroutines. Results are
// identical to sequential processing.
func WithParallel(enabled bool) Option {
	return func(cfg *config) {
		cfg.parallel = enabled
	}
}

// WithPadMode selects how Resample treats signal edges.
func WithPadMode(mode PadMode) Option {
	return func(cfg *config) {
		if mode.valid() {
			cfg.padMode = mode
		}
	}
}

// WithAntiAlias overrides the anti-alias passband ratio, in (0, 1), and the
// stopband attenuation in dB. Out-of-range values keep the defaults.
func WithAntiAlias(cutoffRatio, stopbandDB float64) Option {
	return func(cfg *config) {
		if cutoffRatio > 0 && cutoffRatio < 1 {
			cfg.cutoffRatio = cutoffRatio
		}
		if stopbandDB > 0 {
			cfg.stopbandDB = stopbandDB
		}
	}
}

// WithMaxDenominator caps the denominator used to approximate non-integer
// rate ratios.
func WithMaxDenominator(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxDen = n
		}
	}
}

// WithNotchWidth sets the stopband width in Hz of DesignNotch.
func WithNotchWidth(hz float64) Option {
	return func(cfg *config) {
		if hz > 0 {
			cfg.notchWidth = hz
		}
	}
}

// WithNotchTransition sets the transition width in Hz of each notch edge.
func WithNotchTransition(hz float64) Option {
	return func(cfg *config) {
		if hz > 0 {
			cfg.notchTransition = hz
		}
	}
}

// WithTapCache memoises anti-alias and notch designs in c.
func WithTapCache(c *TapCache) Option {
	return func(cfg *config) {
		cfg.cache = c
	}
}

func defaultConfig() config {
	return config{
		padMode:         PadLine,
		cutoffRatio:     DefaultCutoffRatio,
		stopbandDB:      DefaultStopbandDB,
		maxDen:          mathutil.DefaultMaxDenominator,
		notchTransition: defaultNotchTransitionHz,
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
