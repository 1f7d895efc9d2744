// Package gocycle estimates the dominant cycle of a price series with a
// Hilbert-transform discriminator and uses it to drive two adaptive filters:
// the MESA adaptive moving average pair (MAMA/FAMA) and the instantaneous
// trendline.
package gocycle

import (
	"github.com/evdnx/gocycle/config"
	"github.com/evdnx/gocycle/indicator"
	"github.com/evdnx/gocycle/suite"
)

// ---- Shared data helpers ----
type PlotData = indicator.PlotData

func GenerateTimestamps(startTime int64, count int, interval int64) []int64 {
	return indicator.GenerateTimestamps(startTime, count, interval)
}

func FormatPlotDataJSON(data []indicator.PlotData) (string, error) {
	return indicator.FormatPlotDataJSON(data)
}

func FormatPlotDataCSV(data []indicator.PlotData) (string, error) {
	return indicator.FormatPlotDataCSV(data)
}

// ---- Config ----
type CycleConfig = config.CycleConfig

func DefaultConfig() config.CycleConfig { return config.DefaultConfig() }

// ---- Errors ----
var (
	ErrInsufficientData = indicator.ErrInsufficientData
	ErrInvalidParameter = indicator.ErrInvalidParameter
	ErrInvalidPrice     = indicator.ErrInvalidPrice
)

// ---- Cycle ----
type CycleLimits = indicator.CycleLimits
type CycleSample = indicator.CycleSample

func EstimateCycle(src []float64, lim indicator.CycleLimits) ([]indicator.CycleSample, error) {
	return indicator.EstimateCycle(src, lim)
}

func DominantCycle(src []float64) ([]float64, error) { return indicator.DominantCycle(src) }

// ---- MAMA ----
type MAMAParams = indicator.MAMAParams
type MAMAOutput = indicator.MAMAOutput
type MesaAdaptiveMovingAverage = indicator.MesaAdaptiveMovingAverage

func DefaultMAMAParams() indicator.MAMAParams { return indicator.DefaultMAMAParams() }

func MAMA(src []float64, p indicator.MAMAParams) (indicator.MAMAOutput, error) {
	return indicator.MAMA(src, p)
}

func NewMesaAdaptiveMovingAverage(opts ...indicator.Option) (*indicator.MesaAdaptiveMovingAverage, error) {
	return indicator.NewMesaAdaptiveMovingAverage(opts...)
}

func NewMesaAdaptiveMovingAverageWithParams(fastLimit, slowLimit float64, opts ...indicator.Option) (*indicator.MesaAdaptiveMovingAverage, error) {
	return indicator.NewMesaAdaptiveMovingAverageWithParams(fastLimit, slowLimit, opts...)
}

// ---- Instantaneous trendline ----
type ITrendParams = indicator.ITrendParams
type InstantaneousTrendline = indicator.InstantaneousTrendline

func DefaultITrendParams() indicator.ITrendParams { return indicator.DefaultITrendParams() }

func ITrend(src []float64, p indicator.ITrendParams) ([]float64, error) {
	return indicator.ITrend(src, p)
}

func NewInstantaneousTrendline(opts ...indicator.Option) (*indicator.InstantaneousTrendline, error) {
	return indicator.NewInstantaneousTrendline(opts...)
}

func NewInstantaneousTrendlineWithParams(warmupBars, maxDCPeriod int, opts ...indicator.Option) (*indicator.InstantaneousTrendline, error) {
	return indicator.NewInstantaneousTrendlineWithParams(warmupBars, maxDCPeriod, opts...)
}

// ---- Suite ----
type CycleSuite = suite.CycleSuite

func NewCycleSuite(opts ...suite.Option) (*suite.CycleSuite, error) {
	return suite.NewCycleSuite(opts...)
}

func NewCycleSuiteWithConfig(cfg config.CycleConfig, opts ...suite.Option) (*suite.CycleSuite, error) {
	return suite.NewCycleSuiteWithConfig(cfg, opts...)
}
