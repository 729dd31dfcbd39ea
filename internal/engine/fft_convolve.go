// Package engine executes FIR kernels: direct and FFT-based sliding dot
// products, seeded causal filtering, reflective zero-phase filtering and
// rational polyphase resampling.
package engine

import (
	"github.com/tphakala/simd/c128"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	// Kernels shorter than this run through the direct SIMD path.
	minKernelForFFT = 400

	// Smallest transform used by FFTConvolver.
	minFFTSize = 512
)

// FFTConvolver evaluates valid-mode sliding dot products against a fixed
// kernel with overlap-save blocks. Each transform of n points yields
// n-len(kernel)+1 outputs; the leading len(kernel)-1 samples of every
// inverse transform hold circular wrap-around and are dropped.
//
// A FFTConvolver owns scratch buffers and must not be shared between
// goroutines.
type FFTConvolver struct {
	plan *fourier.FFT
	n    int
	taps int
	step int
	norm float64

	spectrum []complex128 // transformed, reversed kernel

	block   []float64
	blockF  []complex128
	product []complex128
	time    []float64
}

// NewFFTConvolver prepares an overlap-save convolver for kernel. It returns
// nil for an empty kernel.
func NewFFTConvolver(kernel []float64) *FFTConvolver {
	taps := len(kernel)
	if taps == 0 {
		return nil
	}

	n := minFFTSize
	for n < 2*taps {
		n <<= 1
	}
	plan := fourier.NewFFT(n)

	// The circular product computes Σ x[(i-k) mod n]·g[k]; with g the
	// reversed kernel that is the sliding dot product Σ x[i+k]·h[k].
	padded := make([]float64, n)
	for i, h := range kernel {
		padded[taps-1-i] = h
	}

	bins := n/2 + 1
	return &FFTConvolver{
		plan:     plan,
		n:        n,
		taps:     taps,
		step:     n - taps + 1,
		norm:     1 / float64(n),
		spectrum: plan.Coefficients(nil, padded),
		block:    make([]float64, n),
		blockF:   make([]complex128, bins),
		product:  make([]complex128, bins),
		time:     make([]float64, n),
	}
}

// Convolve writes dst[i] = Σ signal[i+k]·kernel[k] for every valid i.
// It does nothing when signal is shorter than the kernel or dst is too
// short to hold len(signal)-len(kernel)+1 outputs.
func (c *FFTConvolver) Convolve(dst, signal []float64) {
	total := len(signal) - c.taps + 1
	if total <= 0 || len(dst) < total {
		return
	}

	wrap := c.taps - 1
	for pos := 0; pos < total; {
		clear(c.block)
		copy(c.block, signal[pos:min(pos+c.n, len(signal))])

		c.blockF = c.plan.Coefficients(c.blockF, c.block)
		c128.Mul(c.product, c.blockF, c.spectrum)
		c.time = c.plan.Sequence(c.time, c.product)
		f64.Scale(c.time, c.time, c.norm)

		k := min(c.step, total-pos)
		copy(dst[pos:pos+k], c.time[wrap:wrap+k])
		pos += k
	}
}

// ConvolveValid writes the valid-mode sliding dot product
// dst[i] = Σ signal[i+k]·kernel[k]. Kernels of minKernelForFFT taps or
// more go through overlap-save FFT blocks. Pass the kernel reversed for a
// true convolution; symmetric kernels need no reversal.
func ConvolveValid(dst, signal, kernel []float64) {
	if len(kernel) == 0 || len(signal) < len(kernel) {
		return
	}
	if len(kernel) < minKernelForFFT {
		f64.ConvolveValid(dst, signal, kernel)
		return
	}
	NewFFTConvolver(kernel).Convolve(dst, signal)
}

// Reverse returns a reversed copy of s.
func Reverse(s []float64) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}
