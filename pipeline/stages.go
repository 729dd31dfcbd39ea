package pipeline

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/neurolistening/sigcond"
)

const defaultStageCapacity = 4

// Stage is one step of a Pipeline.
type Stage interface {
	// Process transforms a signal into a new one.
	Process(sig sigcond.Signal) (sigcond.Signal, error)

	// Type identifies the stage.
	Type() StageType

	// GetRatio returns the stage's rate ratio (output/input).
	GetRatio() float64

	// GetLatency returns the delay the stage leaves in its output, in samples
	// at its input rate.
	GetLatency() int

	// GetFilterLength returns the filter length (0 if not applicable).
	GetFilterLength() int

	String() string
}

// StageType identifies the type of processing stage.
type StageType int

const (
	// StageFilter applies the band filter.
	StageFilter StageType = iota

	// StageNotch removes one interference frequency.
	StageNotch

	// StageResample converts the sample rate.
	StageResample

	// StageReference subtracts the mean of the reference channels.
	StageReference
)

func (t StageType) String() string {
	switch t {
	case StageFilter:
		return "filter"
	case StageNotch:
		return "notch"
	case StageResample:
		return "resample"
	case StageReference:
		return "reference"
	default:
		return fmt.Sprintf("stage(%d)", int(t))
	}
}

// FilterStage applies designed taps under an execution policy.
type FilterStage struct {
	taps     sigcond.TapSet
	policy   sigcond.Policy
	parallel bool
}

func newFilterStage(taps sigcond.TapSet, policy sigcond.Policy, parallel bool) *FilterStage {
	return &FilterStage{taps: taps, policy: policy, parallel: parallel}
}

// Process implements Stage.
func (s *FilterStage) Process(sig sigcond.Signal) (sigcond.Signal, error) {
	return sigcond.Apply(sig, s.taps, s.policy, sigcond.WithParallel(s.parallel))
}

// Type implements Stage.
func (s *FilterStage) Type() StageType { return StageFilter }

// GetRatio implements Stage.
func (s *FilterStage) GetRatio() float64 { return 1 }

// GetLatency returns the taps' delay under PolicyCausal and zero otherwise.
func (s *FilterStage) GetLatency() int {
	if s.policy == sigcond.PolicyCausal {
		return s.taps.Delay()
	}
	return 0
}

// GetFilterLength implements Stage.
func (s *FilterStage) GetFilterLength() int { return s.taps.Len() }

// Taps returns the stage's filter.
func (s *FilterStage) Taps() sigcond.TapSet { return s.taps }

// Policy returns the stage's execution policy.
func (s *FilterStage) Policy() sigcond.Policy { return s.policy }

func (s *FilterStage) String() string {
	return fmt.Sprintf("filter %s %s", s.taps, s.policy)
}

// NotchStage is a FilterStage around a bandstop at one frequency.
type NotchStage struct {
	FilterStage
	freq float64
}

func newNotchStage(freq float64, taps sigcond.TapSet, policy sigcond.Policy, parallel bool) *NotchStage {
	return &NotchStage{
		FilterStage: FilterStage{taps: taps, policy: policy, parallel: parallel},
		freq:        freq,
	}
}

// Type implements Stage.
func (s *NotchStage) Type() StageType { return StageNotch }

// Freq returns the notch centre frequency in Hz.
func (s *NotchStage) Freq() float64 { return s.freq }

func (s *NotchStage) String() string {
	return fmt.Sprintf("notch %g Hz %s %s", s.freq, s.taps, s.policy)
}

// ResampleStage converts from one sample rate to another.
type ResampleStage struct {
	source, target float64
	ratio          sigcond.Ratio
	filterLength   int
	opts           []sigcond.Option
}

// newResampleStage may return a usable stage together with a
// *sigcond.CacheIOError.
func newResampleStage(source, target float64, pad sigcond.PadMode, parallel bool, cache *sigcond.TapCache) (*ResampleStage, error) {
	opts := []sigcond.Option{
		sigcond.WithPadMode(pad),
		sigcond.WithParallel(parallel),
		sigcond.WithTapCache(cache),
	}

	ratio, err := sigcond.NewRatio(source, target, opts...)
	if err != nil {
		return nil, err
	}

	proto, err := sigcond.ResamplingFilter(source, target, opts...)
	if proto.Len() == 0 {
		return nil, err
	}

	return &ResampleStage{
		source:       source,
		target:       target,
		ratio:        ratio,
		filterLength: proto.Len(),
		opts:         opts,
	}, err
}

// Process implements Stage.
func (s *ResampleStage) Process(sig sigcond.Signal) (sigcond.Signal, error) {
	return sigcond.Resample(sig, s.source, s.target, s.opts...)
}

// Type implements Stage.
func (s *ResampleStage) Type() StageType { return StageResample }

// GetRatio implements Stage.
func (s *ResampleStage) GetRatio() float64 {
	return float64(s.ratio.Up) / float64(s.ratio.Down)
}

// GetLatency implements Stage. The polyphase resampler is centred.
func (s *ResampleStage) GetLatency() int { return 0 }

// GetFilterLength returns the prototype length.
func (s *ResampleStage) GetFilterLength() int { return s.filterLength }

// Ratio returns the reduced resampling ratio.
func (s *ResampleStage) Ratio() sigcond.Ratio { return s.ratio }

func (s *ResampleStage) String() string {
	return fmt.Sprintf("resample %g -> %g Hz (%s)", s.source, s.target, s.ratio)
}

// ReferenceStage re-references every channel to the mean of a set of
// reference channels.
type ReferenceStage struct {
	channels []int
}

func newReferenceStage(channels []int) *ReferenceStage {
	return &ReferenceStage{channels: channels}
}

// Process implements Stage.
func (s *ReferenceStage) Process(sig sigcond.Signal) (sigcond.Signal, error) {
	for _, ch := range s.channels {
		if ch >= sig.NumChannels() {
			return sigcond.Signal{}, &sigcond.ShapeError{
				Samples:  sig.Len(),
				Channels: sig.NumChannels(),
				Reason:   fmt.Sprintf("reference channel %d does not exist", ch),
			}
		}
	}

	data := sig.Channels()
	ref := make([]float64, sig.Len())
	for _, ch := range s.channels {
		floats.Add(ref, data[ch])
	}
	floats.Scale(1/float64(len(s.channels)), ref)

	for _, ch := range data {
		floats.Sub(ch, ref)
	}
	return sigcond.NewSignal(data...)
}

// Type implements Stage.
func (s *ReferenceStage) Type() StageType { return StageReference }

// GetRatio implements Stage.
func (s *ReferenceStage) GetRatio() float64 { return 1 }

// GetLatency implements Stage.
func (s *ReferenceStage) GetLatency() int { return 0 }

// GetFilterLength implements Stage.
func (s *ReferenceStage) GetFilterLength() int { return 0 }

// Channels returns the reference channel indices.
func (s *ReferenceStage) Channels() []int {
	return append([]int(nil), s.channels...)
}

func (s *ReferenceStage) String() string {
	return fmt.Sprintf("reference to channels %v", s.channels)
}
