package testutil

import (
	"math"
	"math/cmplx"
	"math/rand/v2"

	"github.com/mjibson/go-dsp/fft"
)

// Sine returns n samples of amplitude*sin(2π·freq·t) sampled at rate Hz.
func Sine(n int, freq, rate, amplitude float64) []float64 {
	out := make([]float64, n)
	omega := 2 * math.Pi * freq / rate
	for i := range out {
		out[i] = amplitude * math.Sin(omega*float64(i))
	}
	return out
}

// Constant returns n copies of v.
func Constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// Noise returns n uniformly distributed samples in [-1, 1) from a seeded source.
func Noise(n int, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]float64, n)
	for i := range out {
		out[i] = 2*rng.Float64() - 1
	}
	return out
}

// Add returns the element-wise sum of equal-length slices.
func Add(parts ...[]float64) []float64 {
	if len(parts) == 0 {
		return nil
	}
	out := make([]float64, len(parts[0]))
	for _, p := range parts {
		for i, v := range p {
			out[i] += v
		}
	}
	return out
}

// ToneAmplitude estimates the amplitude of the freq Hz component of s.
// The segment should hold a whole number of cycles of every tone present,
// otherwise spectral leakage inflates the estimate.
func ToneAmplitude(s []float64, freq, rate float64) float64 {
	n := len(s)
	if n == 0 {
		return 0
	}
	spectrum := fft.FFTReal(s)
	bin := int(math.Round(freq * float64(n) / rate))
	if bin < 0 || bin > n/2 {
		return 0
	}
	amp := cmplx.Abs(spectrum[bin]) / float64(n)
	if bin != 0 && 2*bin != n {
		amp *= 2
	}
	return amp
}
