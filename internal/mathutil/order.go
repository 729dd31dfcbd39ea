package mathutil

import "math"

// HammingOrder returns the tap count of a Hamming windowed-sinc filter whose
// transition band is transitionWidth Hz wide at sampleRate Hz.
//
// The estimate is the empirical Bellanger relation
//
//	N = ceil(3.3 / (transitionWidth / sampleRate))
//
// rounded up to the next odd integer so the filter has an integer group delay.
// Callers must pass a positive transitionWidth and sampleRate.
func HammingOrder(transitionWidth, sampleRate float64) int {
	n := int(math.Ceil(hammingLengthFactor / (transitionWidth / sampleRate)))
	return NextOdd(max(n, minFilterLength))
}

// KaiserOrder returns the tap count of a Kaiser windowed-sinc filter reaching
// attenuation dB in a transition band transitionWidth Hz wide at sampleRate Hz.
//
// Kaiser's formula, with Δω the transition width in radians per sample:
//
//	N = ceil((att - 7.95) / (2.285 * Δω) + 1)
//
// The result is rounded up to the next odd integer.
func KaiserOrder(attenuation, transitionWidth, sampleRate float64) int {
	deltaOmega := kaiserOrderTwoPi * math.Pi * transitionWidth / sampleRate
	n := int(math.Ceil((attenuation-kaiserOrderOffset)/(kaiserOrderMultiplier*deltaOmega) + 1))
	return NextOdd(max(n, minFilterLength))
}

// NextOdd returns n if it is odd and n+1 otherwise.
func NextOdd(n int) int {
	if n%2 == 0 {
		return n + 1
	}
	return n
}
