package mathutil

// Bessel series constants
const (
	// Relative size of the last term kept in the I₀ power series.
	besselSeriesEpsilon = 1e-17

	// Upper bound on series terms. Arguments seen in window design stay
	// below 20, which converges in under 40 terms.
	besselMaxTerms = 500
)

// Kaiser β formula (Kaiser & Schafer)
const (
	kaiserHighAtt   = 50.0 // dB, above: linear branch
	kaiserMediumAtt = 21.0 // dB, below: rectangular window

	kaiserHighSlope  = 0.1102
	kaiserHighOffset = 8.7

	kaiserMediumScale = 0.5842
	kaiserMediumPower = 0.4
	kaiserMediumSlope = 0.07886
)

// Filter length estimation constants
const (
	// Kaiser's order formula: N ≈ (att - 7.95) / (2.285 * Δω) + 1
	kaiserOrderOffset     = 7.95
	kaiserOrderMultiplier = 2.285
	kaiserOrderTwoPi      = 2.0

	// Bellanger estimate for Hamming designs: N ≈ 3.3 / Δf
	hammingLengthFactor = 3.3

	minFilterLength = 3 // Shortest filter with a centre tap and two neighbours
)

// Ratio reduction constants
const (
	// DefaultMaxDenominator bounds the denominator of approximated rate ratios.
	DefaultMaxDenominator = 4096

	continuedFractionEpsilon = 1e-12
	maxExactInt              = 1 << 52
)
