package cycle

import (
	"math"

	"github.com/evdnx/gocycle/indicator/core"
)

const (
	radToDeg      = 180 / math.Pi
	minDeltaPhase = 1.0
)

// adaptAlpha converts the phase advance since the previous bar into the
// smoothing coefficient fast/Δphase, bounded to [SlowLimit, FastLimit].
func (s *State) adaptAlpha(out *Sample) {
	phase := 0.0
	if out.I1 != 0 {
		phase = radToDeg * core.FastAtan(out.Q1/out.I1)
	}

	delta := s.phase - phase
	if delta < minDeltaPhase {
		delta = minDeltaPhase
	}
	s.phase = phase

	alpha := s.lim.FastLimit / delta
	if alpha < s.lim.SlowLimit {
		alpha = s.lim.SlowLimit
	}
	if alpha > s.lim.FastLimit {
		alpha = s.lim.FastLimit
	}

	out.Phase = phase
	out.DeltaPhase = delta
	out.Alpha = alpha
}
