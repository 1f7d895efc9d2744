package config

import (
	"fmt"

	"github.com/evdnx/gocycle/indicator/core"
)

// -----------------------------------------------------------------------------
// Exported constants (magic numbers made visible)
// -----------------------------------------------------------------------------
const (
	DefaultFastLimit    = 0.5  // upper bound on the adaptive alpha
	DefaultSlowLimit    = 0.05 // lower bound on the adaptive alpha
	DefaultWarmupBars   = 12   // trendline pass-through bars
	DefaultMaxDCPeriod  = 50   // trendline averaging window ceiling
	DefaultMinSamples   = 10   // shortest series MAMA accepts
	DefaultHistoryLimit = 256  // outputs retained by streaming filters
)

// -----------------------------------------------------------------------------
// CycleConfig – central place for all tunable parameters
// -----------------------------------------------------------------------------
type CycleConfig struct {
	FastLimit float64 // alpha never exceeds this
	SlowLimit float64 // alpha never drops below this

	// WarmupBars is the number of leading bars the instantaneous trendline
	// passes through unchanged while its recursive filters settle.
	WarmupBars int
	// MaxDCPeriod caps the number of raw prices averaged by the trendline.
	MaxDCPeriod int

	MinSamples   int // MAMA rejects shorter series
	HistoryLimit int // per-filter history kept for crossovers and plots
}

// DefaultConfig returns the classic MESA parameters.
func DefaultConfig() CycleConfig {
	return CycleConfig{
		FastLimit:    DefaultFastLimit,
		SlowLimit:    DefaultSlowLimit,
		WarmupBars:   DefaultWarmupBars,
		MaxDCPeriod:  DefaultMaxDCPeriod,
		MinSamples:   DefaultMinSamples,
		HistoryLimit: DefaultHistoryLimit,
	}
}

// -------------------------------------------------------------------
// Validate – checks that the configuration values are sensible.
// Every error wraps core.ErrInvalidParameter.
// -------------------------------------------------------------------
func (c CycleConfig) Validate() error {
	if !core.IsValidLimit(c.FastLimit) {
		return &core.ParamError{Indicator: "config", Param: "FastLimit", Value: c.FastLimit}
	}
	if !core.IsValidLimit(c.SlowLimit) {
		return &core.ParamError{Indicator: "config", Param: "SlowLimit", Value: c.SlowLimit}
	}
	if c.SlowLimit > c.FastLimit {
		return &core.ParamError{
			Indicator: "config",
			Param:     "SlowLimit",
			Value:     c.SlowLimit,
			Reason:    fmt.Sprintf("must not exceed FastLimit %v", c.FastLimit),
		}
	}
	if c.WarmupBars < 0 {
		return &core.ParamError{Indicator: "config", Param: "WarmupBars", Value: c.WarmupBars}
	}
	if c.MaxDCPeriod < 1 {
		return &core.ParamError{Indicator: "config", Param: "MaxDCPeriod", Value: c.MaxDCPeriod}
	}
	if c.MinSamples < 1 {
		return &core.ParamError{Indicator: "config", Param: "MinSamples", Value: c.MinSamples}
	}
	if c.HistoryLimit < 2 {
		return &core.ParamError{Indicator: "config", Param: "HistoryLimit", Value: c.HistoryLimit}
	}

	// Upper‑bound sanity check – any value that is absurdly large is treated
	// as an error (covers the wrap‑around case when a negative literal is
	// forced into an unsigned type elsewhere).
	const maxReasonablePeriod = 1_000_000
	for name, v := range map[string]int{
		"WarmupBars":   c.WarmupBars,
		"MaxDCPeriod":  c.MaxDCPeriod,
		"MinSamples":   c.MinSamples,
		"HistoryLimit": c.HistoryLimit,
	} {
		if v > maxReasonablePeriod {
			return &core.ParamError{
				Indicator: "config",
				Param:     name,
				Value:     v,
				Reason:    fmt.Sprintf("must be ≤ %d", maxReasonablePeriod),
			}
		}
	}
	return nil
}
