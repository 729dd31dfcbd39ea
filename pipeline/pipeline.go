// Package pipeline chains sigcond operations into the conditioning sequence
// used for continuous EEG recordings: bandpass, notch, resample and
// re-reference, in that order. Stages are designed once at Build and can
// process any number of signals recorded at the configured rate.
package pipeline

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/neurolistening/sigcond"
)

// ErrInvalidConfig indicates invalid pipeline configuration parameters.
var ErrInvalidConfig = errors.New("invalid pipeline configuration")

// Config describes a conditioning pipeline. Zero values switch a step off:
// no cutoffs means no bandpass, no NotchFreqs no notch, a zero TargetRate no
// resampling and no ReferenceChannels no re-referencing.
type Config struct {
	// SampleRate is the rate of the signals passed to Process, in Hz.
	SampleRate float64

	// LowCutoff and HighCutoff are the band edges in Hz. Either may be zero
	// for a pure lowpass or highpass.
	LowCutoff  float64
	HighCutoff float64

	// NotchFreqs lists interference frequencies to remove, typically 50 or
	// 60 Hz and their harmonics.
	NotchFreqs []float64

	// TargetRate is the output rate in Hz.
	TargetRate float64

	// ReferenceChannels are averaged and subtracted from every channel
	// after resampling, e.g. the two mastoids.
	ReferenceChannels []int

	// Policy is the execution policy of the bandpass and notch stages.
	Policy sigcond.Policy

	// PadMode selects edge handling for the resampler.
	PadMode sigcond.PadMode

	// Parallel processes channels concurrently in every stage.
	Parallel bool
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !(c.SampleRate > 0) || math.IsInf(c.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be positive", ErrInvalidConfig)
	}

	if c.hasBand() {
		if err := c.bandSpec().Validate(); err != nil {
			return fmt.Errorf("%w: band: %w", ErrInvalidConfig, err)
		}
	}

	nyquist := c.SampleRate / 2
	for _, f := range c.NotchFreqs {
		if !(f > 0) || f >= nyquist {
			return fmt.Errorf("%w: notch frequency %g Hz outside (0, %g)", ErrInvalidConfig, f, nyquist)
		}
	}

	if c.TargetRate < 0 || math.IsNaN(c.TargetRate) || math.IsInf(c.TargetRate, 0) {
		return fmt.Errorf("%w: target rate must be positive or zero", ErrInvalidConfig)
	}

	for _, ch := range c.ReferenceChannels {
		if ch < 0 {
			return fmt.Errorf("%w: negative reference channel %d", ErrInvalidConfig, ch)
		}
	}

	if err := c.Policy.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := c.PadMode.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

func (c *Config) hasBand() bool {
	return c.LowCutoff != 0 || c.HighCutoff != 0
}

func (c *Config) bandSpec() sigcond.FilterSpec {
	return sigcond.FilterSpec{
		LowCutoff:  c.LowCutoff,
		HighCutoff: c.HighCutoff,
		SampleRate: c.SampleRate,
	}
}

func (c *Config) resamples() bool {
	return c.TargetRate > 0 && c.TargetRate != c.SampleRate
}

// Pipeline is an ordered list of stages built from a Config.
type Pipeline struct {
	config       Config
	stages       []Stage
	outputRate   float64
	totalLatency int
}

// Build validates cfg and designs every stage. Designs go through cache
// when it is non-nil.
//
// If the cache's store fails, Build still returns a complete pipeline,
// together with the first *sigcond.CacheIOError it saw.
func Build(cfg Config, cache *sigcond.TapCache) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.NotchFreqs = slices.Clone(cfg.NotchFreqs)
	cfg.ReferenceChannels = slices.Clone(cfg.ReferenceChannels)

	p := &Pipeline{
		config:     cfg,
		stages:     make([]Stage, 0, defaultStageCapacity),
		outputRate: cfg.SampleRate,
	}

	var warn error
	keep := func(err error) error {
		if err == nil {
			return nil
		}
		if isCacheIO(err) {
			if warn == nil {
				warn = err
			}
			return nil
		}
		return err
	}

	if cfg.hasBand() {
		spec := cfg.bandSpec()
		var taps sigcond.TapSet
		var err error
		if cache != nil {
			taps, err = cache.GetOrBuild(spec)
		} else {
			taps, err = sigcond.Design(spec)
		}
		if err := keep(err); err != nil {
			return nil, fmt.Errorf("failed to design band filter: %w", err)
		}
		p.stages = append(p.stages, newFilterStage(taps, cfg.Policy, cfg.Parallel))
	}

	for _, f := range cfg.NotchFreqs {
		taps, err := sigcond.DesignNotch(f, cfg.SampleRate, sigcond.WithTapCache(cache))
		if err := keep(err); err != nil {
			return nil, fmt.Errorf("failed to design %g Hz notch: %w", f, err)
		}
		p.stages = append(p.stages, newNotchStage(f, taps, cfg.Policy, cfg.Parallel))
	}

	if cfg.resamples() {
		st, err := newResampleStage(cfg.SampleRate, cfg.TargetRate, cfg.PadMode, cfg.Parallel, cache)
		if err := keep(err); err != nil {
			return nil, fmt.Errorf("failed to plan resampling: %w", err)
		}
		p.stages = append(p.stages, st)
		p.outputRate = cfg.TargetRate
	}

	if len(cfg.ReferenceChannels) > 0 {
		p.stages = append(p.stages, newReferenceStage(cfg.ReferenceChannels))
	}

	p.calculateLatency()

	return p, warn
}

// calculateLatency sums the delay each stage leaves in its output,
// expressed in input samples.
func (p *Pipeline) calculateLatency() {
	totalLatency := 0.0
	cumulativeRatio := 1.0

	for _, stage := range p.stages {
		totalLatency += float64(stage.GetLatency()) / cumulativeRatio
		cumulativeRatio *= stage.GetRatio()
	}

	p.totalLatency = int(math.Round(totalLatency))
}

// Process runs every stage over sig in order.
//
// A *sigcond.CacheIOError raised by a stage does not stop the pipeline; the
// result is returned together with the first one.
func (p *Pipeline) Process(sig sigcond.Signal) (sigcond.Signal, error) {
	if sig.NumChannels() == 0 || sig.Len() == 0 {
		return sigcond.Signal{}, &sigcond.ShapeError{
			Samples:  sig.Len(),
			Channels: sig.NumChannels(),
			Reason:   "empty signal",
		}
	}

	var warn error
	out := sig
	for i, stage := range p.stages {
		next, err := stage.Process(out)
		if err != nil {
			if !isCacheIO(err) {
				return sigcond.Signal{}, fmt.Errorf("stage %d (%s): %w", i, stage, err)
			}
			if warn == nil {
				warn = err
			}
		}
		out = next
	}

	if len(p.stages) == 0 {
		// Stages always return fresh signals; do the same here.
		return sigcond.NewSignal(sig.Channels()...)
	}
	return out, warn
}

// Config returns a copy of the configuration the pipeline was built from.
func (p *Pipeline) Config() Config {
	cfg := p.config
	cfg.NotchFreqs = slices.Clone(cfg.NotchFreqs)
	cfg.ReferenceChannels = slices.Clone(cfg.ReferenceChannels)
	return cfg
}

// Stages returns the pipeline stages in processing order.
func (p *Pipeline) Stages() []Stage {
	return slices.Clone(p.stages)
}

// OutputRate returns the sample rate of Process's output.
func (p *Pipeline) OutputRate() float64 {
	return p.outputRate
}

// GetTotalRatio returns the combined rate ratio of all stages.
func (p *Pipeline) GetTotalRatio() float64 {
	return p.outputRate / p.config.SampleRate
}

// GetTotalLatency returns the delay of the output relative to the input,
// in input samples. It is zero unless a causal policy is used.
func (p *Pipeline) GetTotalLatency() int {
	return p.totalLatency
}

func isCacheIO(err error) bool {
	var ioErr *sigcond.CacheIOError
	return errors.As(err, &ioErr)
}
