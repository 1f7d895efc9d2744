package cycle

import "github.com/evdnx/gocycle/indicator/core"

// State is the loop-carried record of one cycle computation.
type State struct {
	lim Limits

	prices    core.Ring // raw prices feeding the smoother
	smooth    core.Ring
	detrender core.Ring
	i1        core.Ring
	q1        core.Ring

	period  float64 // previous SmoothPeriod
	display float64 // previous DisplayPeriod
	i2, q2  float64
	re, im  float64
	phase   float64
	n       int
}

// NewState returns a State ready for the first sample. Limits are assumed to
// have been checked with Validate.
func NewState(lim Limits) *State {
	return &State{
		lim:       lim,
		prices:    core.NewRing(4),
		smooth:    core.NewRing(historySize),
		detrender: core.NewRing(historySize),
		i1:        core.NewRing(historySize),
		q1:        core.NewRing(historySize),
	}
}

// Step consumes the next price and returns the values derived for it.
func (s *State) Step(price float64) Sample {
	var out Sample

	s.prices.Push(price)
	out.Smooth = smoothPrice(&s.prices)
	s.smooth.Push(out.Smooth)

	s.quadrature(&out)
	s.estimatePeriod(&out)
	s.adaptAlpha(&out)

	s.n++
	return out
}

// Count returns the number of samples consumed.
func (s *State) Count() int { return s.n }

// Limits returns the alpha bounds the State was created with.
func (s *State) Limits() Limits { return s.lim }

// Reset returns the State to its initial condition, keeping its limits.
func (s *State) Reset() {
	s.prices.Reset()
	s.smooth.Reset()
	s.detrender.Reset()
	s.i1.Reset()
	s.q1.Reset()
	s.period, s.display = 0, 0
	s.i2, s.q2 = 0, 0
	s.re, s.im = 0, 0
	s.phase = 0
	s.n = 0
}
