// Package mathutil provides the numeric helpers behind FIR design: Bessel and
// Kaiser window formulas, tap-count estimates and integer ratio reduction.
package mathutil

import (
	"math"
)

// BesselI0 computes the modified Bessel function of the first kind, order
// zero, by summing its power series
//
//	I₀(x) = Σ ((x/2)^k / k!)²
//
// until a term drops below besselSeriesEpsilon of the running sum. Every term
// is positive, so the sum is accurate to a few ulps for the arguments used
// by Kaiser windows (|x| ≲ 20).
func BesselI0(x float64) float64 {
	half := x / 2
	sum, term := 1.0, 1.0
	for k := 1; k <= besselMaxTerms; k++ {
		f := half / float64(k)
		term *= f * f
		sum += term
		if term < besselSeriesEpsilon*sum {
			break
		}
	}
	return sum
}

// KaiserBeta returns the Kaiser window β that reaches attenuation dB in the
// stopband:
//
//	att > 50:       β = 0.1102·(att − 8.7)
//	21 ≤ att ≤ 50:  β = 0.5842·(att − 21)^0.4 + 0.07886·(att − 21)
//	att < 21:       β = 0
func KaiserBeta(attenuation float64) float64 {
	switch {
	case attenuation > kaiserHighAtt:
		return kaiserHighSlope * (attenuation - kaiserHighOffset)
	case attenuation >= kaiserMediumAtt:
		d := attenuation - kaiserMediumAtt
		return kaiserMediumScale*math.Pow(d, kaiserMediumPower) + kaiserMediumSlope*d
	default:
		return 0
	}
}
