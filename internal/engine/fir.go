package engine

// FilterCausal runs taps forward over x as dst[n] = Σ h[k]·x[n-k]. Samples
// before the start are taken to equal x[0], which is the steady-state
// initial condition scaled by the first input and avoids a start-up
// transient. The output keeps the filter's group delay. dst must hold at
// least len(x) samples and may alias x.
func FilterCausal(dst, x, taps []float64) {
	n, l := len(x), len(taps)
	if n == 0 || l == 0 {
		return
	}

	ext := make([]float64, n+l-1)
	for i := range l - 1 {
		ext[i] = x[0]
	}
	copy(ext[l-1:], x)

	ConvolveValid(dst[:n], ext, Reverse(taps))
}

// FilterTwoPass filters forward, reverses, filters again and reverses back,
// cancelling the phase response of taps. Both passes are seeded like
// FilterCausal. dst must hold at least len(x) samples and may alias x.
func FilterTwoPass(dst, x, taps []float64) {
	n := len(x)
	if n == 0 {
		return
	}

	tmp := make([]float64, n)
	FilterCausal(tmp, x, taps)
	reverseInPlace(tmp)
	FilterCausal(tmp, tmp, taps)
	reverseInPlace(tmp)
	copy(dst[:n], tmp)
}

// FilterReflect filters x with an odd-length kernel centred on each output
// sample, mirroring the signal across both edges for the samples the kernel
// reaches beyond them. The result has no delay. dst must hold at least
// len(x) samples.
func FilterReflect(dst, x, taps []float64) {
	n, l := len(x), len(taps)
	if n == 0 || l == 0 {
		return
	}

	pad := l - 1
	delay := pad / 2
	xp := ReflectPad(x, pad)

	// Only the centre of the padded signal feeds the retained outputs.
	ConvolveValid(dst[:n], xp[delay:delay+n+l-1], Reverse(taps))
}

func reverseInPlace(s []float64) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
