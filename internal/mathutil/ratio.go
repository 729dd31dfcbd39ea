package mathutil

import (
	"math"

	"golang.org/x/exp/constraints"
)

// GCD returns the greatest common divisor of a and b. GCD(0, 0) is 0.
func GCD[T constraints.Integer](a, b T) T {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// IsWhole reports whether v is a finite float holding an integer value that
// fits comfortably in an int.
func IsWhole(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > maxExactInt {
		return false
	}
	return v == math.Trunc(v)
}

// ApproximateRatio returns num/den ≈ v with den <= maxDen, using the
// continued-fraction expansion of v. The result is reduced. Degenerate input
// (non-positive, NaN or Inf) yields 1/1.
func ApproximateRatio(v float64, maxDen int) (num, den int) {
	if maxDen <= 0 {
		maxDen = DefaultMaxDenominator
	}
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 1, 1
	}

	p0, q0 := 1.0, 0.0
	p1, q1 := math.Floor(v), 1.0
	x := v

	for {
		frac := x - math.Floor(x)
		if frac < continuedFractionEpsilon {
			break
		}

		x = 1 / frac
		a := math.Floor(x)
		p2 := a*p1 + p0
		q2 := a*q1 + q0
		if q2 > float64(maxDen) {
			break
		}

		p0, q0 = p1, q1
		p1, q1 = p2, q2
	}

	num = int(math.Round(p1))
	den = int(math.Round(q1))
	if num <= 0 || den <= 0 {
		return 1, 1
	}

	g := GCD(num, den)
	return num / g, den / g
}
