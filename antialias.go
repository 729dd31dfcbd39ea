package sigcond

import (
	"fmt"
	"math"

	"github.com/neurolistening/sigcond/internal/filter"
	"github.com/neurolistening/sigcond/internal/mathutil"
)

// DesignAntiAlias designs the Kaiser lowpass applied before decimating from
// sourceRate to targetRate. The passband ends at cutoffRatio·targetRate/2
// (0.9 by default, see WithAntiAlias), the stopband starts at the new
// Nyquist frequency and reaches stopbandDB there (53 dB by default). The
// filter runs at sourceRate.
//
// With WithTapCache the design is memoised; store failures are reported as
// a *CacheIOError alongside valid taps.
func DesignAntiAlias(sourceRate, targetRate float64, opts ...Option) (TapSet, error) {
	return designAntiAlias(sourceRate, targetRate, applyOptions(opts))
}

func designAntiAlias(source, target float64, cfg config) (TapSet, error) {
	if err := validateRates(source, target); err != nil {
		return TapSet{}, err
	}
	if target >= source {
		return TapSet{}, &InvalidSpecError{
			Field:  "target_rate",
			Value:  target,
			Reason: fmt.Sprintf("anti-alias filters need a target below the source rate %g Hz", source),
		}
	}

	key := antiAliasKey(source, target, cfg.cutoffRatio, cfg.stopbandDB)
	return cfg.cache.getOrDesign(key, KindLowpass, func() (TapSet, error) {
		return antiAliasTaps(source, target, cfg.cutoffRatio, cfg.stopbandDB)
	})
}

func antiAliasTaps(source, target, cutoffRatio, stopbandDB float64) (TapSet, error) {
	stopEdge := target / 2
	passEdge := cutoffRatio * stopEdge

	params := filter.FilterParams{
		NumTaps:    mathutil.KaiserOrder(stopbandDB, stopEdge-passEdge, source),
		CutoffFreq: (passEdge + stopEdge) / 2 / source,
		Window:     filter.WindowKaiser,
		Beta:       mathutil.KaiserBeta(stopbandDB),
		Gain:       1,
	}
	h, err := filter.DesignLowPassFilter(params)
	if err != nil {
		return TapSet{}, &InvalidSpecError{
			Field:  "target_rate",
			Value:  target,
			Reason: fmt.Sprintf("cannot design anti-alias filter: %v", err),
		}
	}
	return TapSet{coeffs: h, kind: KindLowpass}, nil
}

func validateRates(source, target float64) error {
	if !(source > 0) || math.IsInf(source, 0) {
		return &InvalidSpecError{Field: "source_rate", Value: source, Reason: "must be positive and finite"}
	}
	if !(target > 0) || math.IsInf(target, 0) {
		return &InvalidSpecError{Field: "target_rate", Value: target, Reason: "must be positive and finite"}
	}
	return nil
}
