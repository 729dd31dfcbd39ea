package sigcond

import (
	"fmt"
	"math"

	"github.com/neurolistening/sigcond/internal/filter"
)

// Window selects the taper used by the windowed-sinc designer.
type Window int

const (
	// WindowHamming sizes filters with the 3.3/Δf rule. It is the default.
	WindowHamming Window = iota
	// WindowKaiser sizes filters with Kaiser's order formula for StopbandDB.
	WindowKaiser
)

// String returns the lowercase window name.
func (w Window) String() string {
	switch w {
	case WindowHamming:
		return "hamming"
	case WindowKaiser:
		return "kaiser"
	default:
		return fmt.Sprintf("window(%d)", int(w))
	}
}

func (w Window) filterWindow() filter.WindowType {
	if w == WindowKaiser {
		return filter.WindowKaiser
	}
	return filter.WindowHamming
}

// FilterSpec describes a target FIR filter by its band edges. A zero cutoff
// is absent: LowCutoff alone designs a highpass, HighCutoff alone a lowpass,
// both a bandpass built as a highpass/lowpass cascade.
type FilterSpec struct {
	// LowCutoff is the highpass edge in Hz.
	LowCutoff float64
	// HighCutoff is the lowpass edge in Hz.
	HighCutoff float64
	// SampleRate is the sampling rate in Hz.
	SampleRate float64

	Window Window
	// StopbandDB is the target attenuation for WindowKaiser; ignored otherwise.
	StopbandDB float64
}

// Highpass returns a Hamming highpass spec.
func Highpass(lowCutoff, sampleRate float64) FilterSpec {
	return FilterSpec{LowCutoff: lowCutoff, SampleRate: sampleRate}
}

// Lowpass returns a Hamming lowpass spec.
func Lowpass(highCutoff, sampleRate float64) FilterSpec {
	return FilterSpec{HighCutoff: highCutoff, SampleRate: sampleRate}
}

// Bandpass returns a Hamming bandpass spec.
func Bandpass(lowCutoff, highCutoff, sampleRate float64) FilterSpec {
	return FilterSpec{LowCutoff: lowCutoff, HighCutoff: highCutoff, SampleRate: sampleRate}
}

// WithKaiser returns a copy of s using a Kaiser window for stopbandDB.
func (s FilterSpec) WithKaiser(stopbandDB float64) FilterSpec {
	s.Window = WindowKaiser
	s.StopbandDB = stopbandDB
	return s
}

// Nyquist returns half the sampling rate.
func (s FilterSpec) Nyquist() float64 {
	return s.SampleRate / 2
}

// Kind returns the response type the spec describes. The result is only
// meaningful for a valid spec.
func (s FilterSpec) Kind() Kind {
	switch {
	case s.LowCutoff > 0 && s.HighCutoff > 0:
		return KindBandpass
	case s.LowCutoff > 0:
		return KindHighpass
	default:
		return KindLowpass
	}
}

// Validate reports whether the spec can be designed.
func (s FilterSpec) Validate() error {
	if !(s.SampleRate > 0) || math.IsInf(s.SampleRate, 0) {
		return &InvalidSpecError{Field: "sample_rate", Value: s.SampleRate, Reason: "must be positive and finite"}
	}

	nyquist := s.Nyquist()
	check := func(field string, v float64) error {
		if math.IsNaN(v) || v < 0 {
			return &InvalidSpecError{Field: field, Value: v, Reason: "must be positive"}
		}
		if v >= nyquist {
			return &InvalidSpecError{Field: field, Value: v, Reason: fmt.Sprintf("must be below nyquist %g Hz", nyquist)}
		}
		return nil
	}
	if err := check("low_cutoff", s.LowCutoff); err != nil {
		return err
	}
	if err := check("high_cutoff", s.HighCutoff); err != nil {
		return err
	}

	if s.LowCutoff == 0 && s.HighCutoff == 0 {
		return &InvalidSpecError{Reason: "no cutoff given"}
	}
	if s.LowCutoff > 0 && s.HighCutoff > 0 && s.LowCutoff >= s.HighCutoff {
		return &InvalidSpecError{
			Field:  "low_cutoff",
			Value:  s.LowCutoff,
			Reason: fmt.Sprintf("must be below high_cutoff %g Hz", s.HighCutoff),
		}
	}

	switch s.Window {
	case WindowHamming:
	case WindowKaiser:
		if !(s.StopbandDB > 0) || math.IsInf(s.StopbandDB, 0) {
			return &InvalidSpecError{Field: "stopband_db", Value: s.StopbandDB, Reason: "kaiser designs need a positive attenuation"}
		}
	default:
		return &InvalidSpecError{Field: "window", Value: float64(s.Window), Reason: "unknown window"}
	}

	return nil
}
