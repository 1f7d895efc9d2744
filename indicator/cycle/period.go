package cycle

import (
	"math"

	"github.com/evdnx/gocycle/indicator/core"
)

// blend is the 0.2/0.8 exponential smoothing used throughout the discriminator.
func blend(cur, prev float64) float64 {
	return 0.2*cur + 0.8*prev
}

// estimatePeriod runs the homodyne discriminator: phasor (I2, Q2), its product
// with the previous phasor (Re, Im), and the period 2π/atan(Im/Re).
func (s *State) estimatePeriod(out *Sample) {
	i2 := blend(out.I1-out.JQ, s.i2)
	q2 := blend(out.Q1+out.JI, s.q2)

	re := blend(i2*s.i2+q2*s.q2, s.re)
	im := blend(i2*s.q2-q2*s.i2, s.im)

	s.i2, s.q2 = i2, q2
	s.re, s.im = re, im

	prev := s.period
	period := prev
	if re != 0 && im != 0 {
		period = 2 * math.Pi / core.FastAtan(im/re)
	}
	period = limitChange(period, prev)
	period = core.Clamp(period, MinPeriod, MaxPeriod)

	s.period = blend(period, prev)
	s.display = 0.33*s.period + 0.67*s.display

	out.I2, out.Q2 = i2, q2
	out.Re, out.Im = re, im
	out.Period = period
	out.SmoothPeriod = s.period
	out.DisplayPeriod = s.display
}

// limitChange keeps period within [0.67·prev, 1.5·prev].
func limitChange(period, prev float64) float64 {
	if period > maxGrowth*prev {
		period = maxGrowth * prev
	}
	if period < maxShrink*prev {
		period = maxShrink * prev
	}
	return period
}
