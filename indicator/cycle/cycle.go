// Package cycle estimates the dominant cycle period and phase of a price
// series with a Hilbert-transform discriminator, and derives the adaptive
// smoothing coefficient shared by the MESA filters.
//
// The computation is a chain of causal stages (price smoother, quadrature
// generator, period estimator, phase and alpha) whose loop-carried values live
// in a State record. A State belongs to exactly one series: create it with
// NewState, call Step once per sample in time order and drop it afterwards.
// Separate series use separate States and can be processed concurrently.
package cycle

import (
	"fmt"

	"github.com/evdnx/gocycle/indicator/core"
)

const (
	// MinPeriod and MaxPeriod bound the instantaneous dominant-cycle period.
	MinPeriod = 6.0
	MaxPeriod = 50.0

	// maxGrowth and maxShrink bound the period change against the previous
	// smoothed estimate.
	maxGrowth = 1.5
	maxShrink = 0.67

	DefaultFastLimit = 0.5
	DefaultSlowLimit = 0.05

	// historySize is enough for the 0/2/4/6 offset reads of the transform.
	historySize = 7
)

// Limits bounds the adaptive alpha: SlowLimit ≤ alpha ≤ FastLimit.
type Limits struct {
	FastLimit float64
	SlowLimit float64
}

// DefaultLimits returns the classic 0.5 / 0.05 MESA limits.
func DefaultLimits() Limits {
	return Limits{FastLimit: DefaultFastLimit, SlowLimit: DefaultSlowLimit}
}

// Validate rejects non-positive, NaN or infinite limits and a slow limit above
// the fast one. name prefixes the returned *core.ParamError.
func (l Limits) Validate(name string) error {
	if !core.IsValidLimit(l.FastLimit) {
		return &core.ParamError{Indicator: name, Param: "fast_limit", Value: l.FastLimit}
	}
	if !core.IsValidLimit(l.SlowLimit) {
		return &core.ParamError{Indicator: name, Param: "slow_limit", Value: l.SlowLimit}
	}
	if l.SlowLimit > l.FastLimit {
		return &core.ParamError{
			Indicator: name,
			Param:     "slow_limit",
			Value:     l.SlowLimit,
			Reason:    fmt.Sprintf("must not exceed fast_limit %v", l.FastLimit),
		}
	}
	return nil
}

// Sample holds every intermediate value produced for one input bar.
type Sample struct {
	Smooth    float64 // 4-tap smoothed price
	Detrender float64
	I1        float64 // in-phase component
	Q1        float64 // quadrature component
	JI        float64 // I1 advanced by 90°
	JQ        float64 // Q1 advanced by 90°
	I2        float64 // smoothed phasor, real part
	Q2        float64 // smoothed phasor, imaginary part
	Re        float64
	Im        float64

	// Period is the instantaneous dominant cycle after the growth/shrink and
	// [MinPeriod, MaxPeriod] clamps.
	Period float64
	// SmoothPeriod is Period blended 0.2/0.8 with its previous value; it sizes
	// the next bar's transform.
	SmoothPeriod float64
	// DisplayPeriod is SmoothPeriod blended 0.33/0.67 again; it sizes the
	// instantaneous trendline window.
	DisplayPeriod float64

	Phase      float64 // degrees
	DeltaPhase float64 // degrees, at least 1
	Alpha      float64
}
