// Command analyze-filter designs a filter and prints its length, delay and
// magnitude response.
//
// Usage:
//
//	analyze-filter -rate 512 -low 1 -high 40
//	analyze-filter -rate 1000 -high 40 -window kaiser -att 80 -points 32
//	analyze-filter -rate 512 -notch 50
//	analyze-filter -rate 48000 -target 16000        # resampling prototype
//	analyze-filter -rate 512 -low 1 -cache ./taps   # warm a tap cache
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/cmplx"
	"os"

	"github.com/mjibson/go-dsp/fft"

	"github.com/neurolistening/sigcond"
	"github.com/neurolistening/sigcond/internal/filter"
)

const (
	defaultRate   = 512.0
	defaultPoints = 16
	defaultFFT    = 1 << 16
)

type analyzeOptions struct {
	rate, low, high float64
	window          string
	att             float64
	notch           float64
	target          float64
	points          int
	cacheDir        string
}

func main() {
	var opts analyzeOptions
	flag.Float64Var(&opts.rate, "rate", defaultRate, "Sample rate in Hz")
	flag.Float64Var(&opts.low, "low", 0, "Highpass edge in Hz")
	flag.Float64Var(&opts.high, "high", 0, "Lowpass edge in Hz")
	flag.StringVar(&opts.window, "window", "hamming", "Window: hamming, kaiser")
	flag.Float64Var(&opts.att, "att", sigcond.DefaultStopbandDB, "Stopband attenuation in dB (kaiser)")
	flag.Float64Var(&opts.notch, "notch", 0, "Design a notch at this frequency instead")
	flag.Float64Var(&opts.target, "target", 0, "Design the resampling filter for this target rate instead")
	flag.IntVar(&opts.points, "points", defaultPoints, "Number of response points to print")
	flag.StringVar(&opts.cacheDir, "cache", "", "Tap cache directory")
	flag.Parse()

	if err := analyze(os.Stdout, opts); err != nil {
		log.Fatal(err)
	}
}

func analyze(w io.Writer, opts analyzeOptions) error {
	var cache *sigcond.TapCache
	if opts.cacheDir != "" {
		c, err := sigcond.NewFileTapCache(opts.cacheDir)
		if err != nil {
			return err
		}
		cache = c
	}

	taps, rate, err := design(opts, cache)
	if err != nil {
		if !errors.Is(err, sigcond.ErrCacheIO) {
			return err
		}
		log.Printf("warning: %v", err)
	}

	coeffs := taps.Coeffs()
	fmt.Fprintf(w, "Filter: %s\n", taps)
	fmt.Fprintf(w, "  Design rate: %g Hz\n", rate)
	fmt.Fprintf(w, "  Delay: %d samples (%.4f s)\n", taps.Delay(), float64(taps.Delay())/rate)
	fmt.Fprintf(w, "  DC gain: %.6f\n", filter.MagnitudeAt(coeffs, 0))
	if cache != nil {
		s := cache.Stats()
		fmt.Fprintf(w, "  Cache: %d hits, %d misses, %d errors\n", s.Hits, s.Misses, s.Errors)
	}

	fmt.Fprintf(w, "\n%12s %12s\n", "Freq (Hz)", "Mag (dB)")
	for _, pt := range responseTable(coeffs, rate, opts.points) {
		fmt.Fprintf(w, "%12.3f %12.2f\n", pt.freq, pt.db)
	}
	return nil
}

// design returns the requested filter and the rate it runs at.
func design(opts analyzeOptions, cache *sigcond.TapCache) (sigcond.TapSet, float64, error) {
	switch {
	case opts.target > 0:
		taps, err := sigcond.ResamplingFilter(opts.rate, opts.target, sigcond.WithTapCache(cache))
		if taps.Len() == 0 {
			return taps, 0, err
		}
		ratio, rerr := sigcond.NewRatio(opts.rate, opts.target)
		if rerr != nil {
			return sigcond.TapSet{}, 0, rerr
		}
		return taps, opts.rate * float64(ratio.Up), err

	case opts.notch > 0:
		taps, err := sigcond.DesignNotch(opts.notch, opts.rate, sigcond.WithTapCache(cache))
		return taps, opts.rate, err
	}

	spec := sigcond.FilterSpec{LowCutoff: opts.low, HighCutoff: opts.high, SampleRate: opts.rate}
	switch opts.window {
	case "hamming":
	case "kaiser":
		spec = spec.WithKaiser(opts.att)
	default:
		return sigcond.TapSet{}, 0, fmt.Errorf("unknown window %q", opts.window)
	}

	if cache != nil {
		taps, err := cache.GetOrBuild(spec)
		return taps, opts.rate, err
	}
	taps, err := sigcond.Design(spec)
	return taps, opts.rate, err
}

type responsePoint struct {
	freq, db float64
}

// responseTable samples the zero-padded FFT of coeffs at points evenly
// spaced frequencies from DC to Nyquist.
func responseTable(coeffs []float64, rate float64, points int) []responsePoint {
	if points < 2 {
		points = 2
	}

	nfft := defaultFFT
	for nfft < 2*len(coeffs) {
		nfft *= 2
	}
	padded := make([]float64, nfft)
	copy(padded, coeffs)
	spectrum := fft.FFTReal(padded)

	out := make([]responsePoint, points)
	for i := range out {
		freq := rate / 2 * float64(i) / float64(points-1)
		bin := int(math.Round(freq / rate * float64(nfft)))
		out[i] = responsePoint{freq: freq, db: filter.MagnitudeDB(cmplx.Abs(spectrum[bin]))}
	}
	return out
}
