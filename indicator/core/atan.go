package core

import "math"

// atanN2 is the single coefficient of the first-order minimax fit
// atan(x) ≈ (π/4 + n2 − n2·|x|)·x on [-1, 1].
const atanN2 = 0.273

func fastAtanRaw(x float64) float64 {
	return (math.Pi/4 + atanN2 - atanN2*math.Abs(x)) * x
}

// FastAtan approximates math.Atan with a polynomial fit. Arguments outside
// [-1, 1] use atan(x) = ±π/2 − atan(1/x). The absolute error stays around
// 0.004 rad; the cycle filters are calibrated against this approximation, so
// it must not be swapped for math.Atan.
func FastAtan(x float64) float64 {
	if math.Abs(x) > 1 {
		return math.Copysign(math.Pi/2, x) - fastAtanRaw(1/x)
	}
	return fastAtanRaw(x)
}
