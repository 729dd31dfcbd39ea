// Command condition-wav conditions multichannel recordings stored as PCM WAV
// files: bandpass, notch, resample and re-reference, in that order.
//
// Usage:
//
//	condition-wav -low 1 -high 40 -notch 50 -rate 256 input.wav output.wav
//	condition-wav -high 30 -policy causal_delay_cut input.wav output.wav
//	condition-wav -low 0.5 -high 45 -ref 30,31 -cache ~/.cache/sigcond in.wav out.wav
//
// Designed filters are kept in the -cache directory and reused on later runs.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	"github.com/neurolistening/sigcond"
	"github.com/neurolistening/sigcond/pipeline"
)

const minRequiredArgs = 2

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	low := flag.Float64("low", 0, "Highpass edge in Hz (0 = none)")
	high := flag.Float64("high", 0, "Lowpass edge in Hz (0 = none)")
	notch := flag.String("notch", "", "Comma-separated notch frequencies in Hz (e.g. 50,100)")
	rate := flag.Float64("rate", 0, "Target sample rate in Hz (0 = keep)")
	ref := flag.String("ref", "", "Comma-separated reference channel indices")
	policy := flag.String("policy", sigcond.PolicyTwoPassZeroPhase.String(),
		"Filter policy: two_pass_zero_phase, causal, causal_delay_cut, reflect_zero_phase")
	pad := flag.String("pad", sigcond.PadLine.String(), "Resampler edge handling: line, mean")
	cacheDir := flag.String("cache", "", "Directory for designed filter taps (empty = no cache)")
	parallel := flag.Bool("parallel", true, "Enable parallel channel processing")
	verbose := flag.Bool("v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -low 1 -high 40 -notch 50 -rate 256 eeg.wav eeg_clean.wav\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -high 30 -policy causal eeg.wav eeg_lp.wav\n", os.Args[0])
		return fmt.Errorf("insufficient arguments")
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	inputPath := args[0]
	outputPath := args[1]

	notchFreqs, err := parseFloatList(*notch)
	if err != nil {
		return fmt.Errorf("invalid -notch: %w", err)
	}
	refChannels, err := parseIntList(*ref)
	if err != nil {
		return fmt.Errorf("invalid -ref: %w", err)
	}
	p, err := sigcond.ParsePolicy(*policy)
	if err != nil {
		return err
	}
	padMode, err := sigcond.ParsePadMode(*pad)
	if err != nil {
		return err
	}

	var cache *sigcond.TapCache
	if *cacheDir != "" {
		level := slog.LevelWarn
		if *verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		cache, err = sigcond.NewFileTapCache(*cacheDir, sigcond.WithLogger(logger))
		if err != nil {
			return err
		}
	}

	opts := conditionOptions{
		config: pipeline.Config{
			LowCutoff:         *low,
			HighCutoff:        *high,
			NotchFreqs:        notchFreqs,
			TargetRate:        *rate,
			ReferenceChannels: refChannels,
			Policy:            p,
			PadMode:           padMode,
			Parallel:          *parallel,
		},
		cache:   cache,
		verbose: *verbose,
	}

	if *verbose {
		log.Printf("Input: %s", inputPath)
		log.Printf("Output: %s", outputPath)
		log.Printf("Policy: %s", p)
		if *parallel {
			log.Printf("Parallel: enabled (concurrent channel processing)")
		} else {
			log.Printf("Parallel: disabled (sequential processing)")
		}
	}

	start := time.Now()
	stats, err := conditionWAV(inputPath, outputPath, opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Conditioned %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %d Hz -> %d Hz (%d channels, %d-bit)\n",
		stats.inputRate, stats.outputRate, stats.channels, stats.bitDepth)
	fmt.Printf("  %d samples -> %d samples, %d stages\n", stats.inputSamples, stats.outputSamples, stats.stages)
	fmt.Printf("  Duration: %.2fs, Speed: %.1fx realtime\n",
		elapsed.Seconds(),
		float64(stats.inputSamples)/float64(stats.inputRate)/elapsed.Seconds())
	if cache != nil {
		cs := cache.Stats()
		fmt.Printf("  Tap cache: %d hits, %d misses, %d errors\n", cs.Hits, cs.Misses, cs.Errors)
	}

	return nil
}

type conditionOptions struct {
	config  pipeline.Config
	cache   *sigcond.TapCache
	verbose bool
}

type conditionStats struct {
	inputRate     int
	outputRate    int
	channels      int
	bitDepth      int
	stages        int
	inputSamples  int64
	outputSamples int64
}

// conditionWAV reads inputPath, runs the pipeline and writes outputPath
// with the input's bit depth. Cache failures are logged, not returned.
func conditionWAV(inputPath, outputPath string, opts conditionOptions) (*conditionStats, error) {
	input, err := openWAVInput(inputPath, opts.verbose)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	cfg := opts.config
	cfg.SampleRate = float64(input.rate)

	p, err := pipeline.Build(cfg, opts.cache)
	if err != nil && !isCacheWarning(err) {
		return nil, fmt.Errorf("failed to build pipeline: %w", err)
	}
	if opts.verbose {
		for i, st := range p.Stages() {
			log.Printf("Stage %d: %s", i, st)
		}
	}

	outputRate := int(math.Round(p.OutputRate()))
	if p.OutputRate() != float64(outputRate) {
		return nil, fmt.Errorf("output rate %g Hz is not a whole number", p.OutputRate())
	}

	sig, err := readSignal(input)
	if err != nil {
		return nil, err
	}

	out, err := p.Process(sig)
	if err != nil && !isCacheWarning(err) {
		return nil, fmt.Errorf("failed to condition %s: %w", inputPath, err)
	}

	if err := writeSignal(outputPath, out, outputRate, input.bitDepth); err != nil {
		return nil, err
	}

	return &conditionStats{
		inputRate:     input.rate,
		outputRate:    outputRate,
		channels:      input.channels,
		bitDepth:      input.bitDepth,
		stages:        len(p.Stages()),
		inputSamples:  int64(sig.Len()),
		outputSamples: int64(out.Len()),
	}, nil
}
