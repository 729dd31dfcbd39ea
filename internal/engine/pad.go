package engine

// ReflectPad returns x extended by p samples on each side by mirroring about
// the edge samples without repeating them: [... x2 x1 | x0 x1 ... xn-1 | xn-2 xn-3 ...].
// Pads longer than the signal keep reflecting back and forth.
func ReflectPad(x []float64, p int) []float64 {
	n := len(x)
	if n == 0 {
		return []float64{}
	}
	p = max(p, 0)

	out := make([]float64, n+2*p)
	copy(out[p:], x)
	for i := range p {
		out[i] = x[mirrorIndex(i-p, n)]
		out[p+n+i] = x[mirrorIndex(n+i, n)]
	}
	return out
}

func mirrorIndex(j, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * (n - 1)
	j %= period
	if j < 0 {
		j += period
	}
	if j >= n {
		j = period - j
	}
	return j
}

// LineTrend returns the straight line through the first and last samples of
// x as value = intercept + slope·index.
func LineTrend(x []float64) (intercept, slope float64) {
	if len(x) == 0 {
		return 0, 0
	}
	intercept = x[0]
	if len(x) > 1 {
		slope = (x[len(x)-1] - x[0]) / float64(len(x)-1)
	}
	return intercept, slope
}

// SubtractLine writes x[i] - (intercept + slope·i) into dst.
func SubtractLine(dst, x []float64, intercept, slope float64) {
	for i, v := range x {
		dst[i] = v - (intercept + slope*float64(i))
	}
}

// AddLine adds intercept + slope·(i·step) to dst[i], evaluating the line at
// positions spaced step input samples apart.
func AddLine(dst []float64, intercept, slope, step float64) {
	for i := range dst {
		dst[i] += intercept + slope*float64(i)*step
	}
}
