package sigcond

import (
	"strconv"
	"strings"
)

// KeyVersion is embedded in every cache key. It changes whenever the design
// algorithm changes in a way that alters coefficients, so entries written
// by older versions are never served.
const KeyVersion = 1

// CacheKey is the canonical encoding of the parameters that determine a
// TapSet's coefficients. Equal keys always design identical taps.
type CacheKey string

// KeyFor returns the cache key of a valid spec. Parameters that do not
// affect the coefficients, such as StopbandDB under a Hamming window, are
// left out so they cannot split the cache.
func KeyFor(spec FilterSpec) (CacheKey, error) {
	if err := spec.Validate(); err != nil {
		return "", err
	}

	fields := []string{
		"v" + strconv.Itoa(KeyVersion),
		spec.Kind().String(),
		spec.Window.String(),
		"fs" + formatKeyFloat(spec.SampleRate),
	}
	if spec.LowCutoff > 0 {
		fields = append(fields, "lo"+formatKeyFloat(spec.LowCutoff))
	}
	if spec.HighCutoff > 0 {
		fields = append(fields, "hi"+formatKeyFloat(spec.HighCutoff))
	}
	if spec.Window == WindowKaiser {
		fields = append(fields, "att"+formatKeyFloat(spec.StopbandDB))
	}
	return CacheKey(strings.Join(fields, "-")), nil
}

func antiAliasKey(source, target, ratio, stopbandDB float64) CacheKey {
	return CacheKey(strings.Join([]string{
		"v" + strconv.Itoa(KeyVersion),
		"antialias",
		"fs" + formatKeyFloat(source),
		"to" + formatKeyFloat(target),
		"r" + formatKeyFloat(ratio),
		"att" + formatKeyFloat(stopbandDB),
	}, "-"))
}

func notchKey(freq, rate, width, transition float64) CacheKey {
	return CacheKey(strings.Join([]string{
		"v" + strconv.Itoa(KeyVersion),
		KindBandstop.String(),
		"fs" + formatKeyFloat(rate),
		"f" + formatKeyFloat(freq),
		"w" + formatKeyFloat(width),
		"tw" + formatKeyFloat(transition),
	}, "-"))
}

// formatKeyFloat prints the shortest decimal that round-trips v, without an
// exponent so keys stay valid file names.
func formatKeyFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
