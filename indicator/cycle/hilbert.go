package cycle

import "github.com/evdnx/gocycle/indicator/core"

// Hilbert FIR coefficients for taps 0/2/4/6.
const (
	hilbertA = 0.0962
	hilbertB = 0.5769
)

// periodMultiplier corrects the transform gain for the previous period.
func periodMultiplier(prevPeriod float64) float64 {
	return 0.075*prevPeriod + 0.54
}

// hilbert applies the four-tap transform to the newest samples of x.
func hilbert(x *core.Ring, mult float64) float64 {
	return (hilbertA*x.At(0) + hilbertB*x.At(2) - hilbertB*x.At(4) - hilbertA*x.At(6)) * mult
}

// quadrature runs the transform pipeline for the sample just smoothed:
// detrender = H(smooth), I1 = detrender delayed 3 bars, Q1 = H(detrender),
// jI = H(I1), jQ = H(Q1).
func (s *State) quadrature(out *Sample) {
	mult := periodMultiplier(s.period)

	out.Detrender = hilbert(&s.smooth, mult)
	s.detrender.Push(out.Detrender)

	out.I1 = s.detrender.At(3)
	s.i1.Push(out.I1)

	out.Q1 = hilbert(&s.detrender, mult)
	s.q1.Push(out.Q1)

	out.JI = hilbert(&s.i1, mult)
	out.JQ = hilbert(&s.q1, mult)
}
