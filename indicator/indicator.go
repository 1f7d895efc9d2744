package indicator

import (
	"github.com/sdcoffey/techan"

	"github.com/evdnx/gocycle/config"
	"github.com/evdnx/gocycle/indicator/bridge"
	"github.com/evdnx/gocycle/indicator/core"
	"github.com/evdnx/gocycle/indicator/cycle"
	"github.com/evdnx/gocycle/indicator/trend"
)

// ---- Shared data helpers ----
type PlotData = core.PlotData

func GenerateTimestamps(startTime int64, count int, interval int64) []int64 {
	return core.GenerateTimestamps(startTime, count, interval)
}

func FormatPlotDataJSON(data []PlotData) (string, error) {
	return core.FormatPlotDataJSON(data)
}

func FormatPlotDataCSV(data []PlotData) (string, error) {
	return core.FormatPlotDataCSV(data)
}

func KeepLast[T any](s []T, n int) []T { return core.KeepLast(s, n) }

func Clamp(value, min, max float64) float64 { return core.Clamp(value, min, max) }
func FastAtan(x float64) float64            { return core.FastAtan(x) }
func IsFinite(v float64) bool               { return core.IsFinite(v) }

// ---- Errors ----
var (
	ErrInsufficientData      = core.ErrInsufficientData
	ErrInvalidParameter      = core.ErrInvalidParameter
	ErrEmptyInput            = core.ErrEmptyInput
	ErrAllValuesNaN          = core.ErrAllValuesNaN
	ErrInvalidPrice          = core.ErrInvalidPrice
	ErrInsufficientMAMAData  = trend.ErrInsufficientMAMAData
	ErrInsufficientTrendData = trend.ErrInsufficientTrendData
	ErrInsufficientCrossData = trend.ErrInsufficientCrossData
)

type ParamError = core.ParamError
type InsufficientDataError = core.InsufficientDataError

// ---- Cycle estimation ----
type CycleLimits = cycle.Limits
type CycleSample = cycle.Sample
type CycleState = cycle.State

func DefaultCycleLimits() cycle.Limits { return cycle.DefaultLimits() }

func NewCycleState(lim cycle.Limits) *cycle.State { return cycle.NewState(lim) }

func EstimateCycle(src []float64, lim cycle.Limits) ([]cycle.Sample, error) {
	return cycle.Estimate(src, lim)
}

func DominantCycle(src []float64) ([]float64, error) { return cycle.DominantCycle(src) }

// ---- MESA adaptive moving average ----
type MAMAParams = trend.MAMAParams
type MAMAOutput = trend.MAMAOutput
type MesaAdaptiveMovingAverage = trend.MesaAdaptiveMovingAverage
type MAMAFilter = trend.MAMAFilter
type Option = trend.Option

const MAMAMinSamples = trend.MAMAMinSamples

func DefaultMAMAParams() trend.MAMAParams { return trend.DefaultMAMAParams() }

func MAMA(src []float64, p trend.MAMAParams) (trend.MAMAOutput, error) { return trend.MAMA(src, p) }

func NewMAMAFilter(p trend.MAMAParams) (*trend.MAMAFilter, error) { return trend.NewMAMAFilter(p) }

func NewMesaAdaptiveMovingAverage(opts ...trend.Option) (*trend.MesaAdaptiveMovingAverage, error) {
	return trend.NewMesaAdaptiveMovingAverage(opts...)
}

func NewMesaAdaptiveMovingAverageWithParams(fastLimit, slowLimit float64, opts ...trend.Option) (*trend.MesaAdaptiveMovingAverage, error) {
	return trend.NewMesaAdaptiveMovingAverageWithParams(fastLimit, slowLimit, opts...)
}

func NewMesaAdaptiveMovingAverageWithConfig(cfg config.CycleConfig, opts ...trend.Option) (*trend.MesaAdaptiveMovingAverage, error) {
	return trend.NewMesaAdaptiveMovingAverageWithConfig(cfg, opts...)
}

// ---- Instantaneous trendline ----
type ITrendParams = trend.ITrendParams
type InstantaneousTrendline = trend.InstantaneousTrendline
type ITrendFilter = trend.ITrendFilter

func DefaultITrendParams() trend.ITrendParams { return trend.DefaultITrendParams() }

func ITrend(src []float64, p trend.ITrendParams) ([]float64, error) { return trend.ITrend(src, p) }

func NewITrendFilter(p trend.ITrendParams) (*trend.ITrendFilter, error) { return trend.NewITrendFilter(p) }

func NewInstantaneousTrendline(opts ...trend.Option) (*trend.InstantaneousTrendline, error) {
	return trend.NewInstantaneousTrendline(opts...)
}

func NewInstantaneousTrendlineWithParams(warmupBars, maxDCPeriod int, opts ...trend.Option) (*trend.InstantaneousTrendline, error) {
	return trend.NewInstantaneousTrendlineWithParams(warmupBars, maxDCPeriod, opts...)
}

func NewInstantaneousTrendlineWithConfig(cfg config.CycleConfig, opts ...trend.Option) (*trend.InstantaneousTrendline, error) {
	return trend.NewInstantaneousTrendlineWithConfig(cfg, opts...)
}

// ---- Streaming options ----
var (
	WithLogger       = trend.WithLogger
	WithHistoryLimit = trend.WithHistoryLimit
)

// ---- techan adapters ----
func NewMAMAIndicators(src techan.Indicator, series *techan.TimeSeries, p trend.MAMAParams) (mama, fama techan.Indicator) {
	return bridge.NewMAMAIndicators(src, series, p)
}

func NewITrendIndicator(src techan.Indicator, series *techan.TimeSeries, p trend.ITrendParams) techan.Indicator {
	return bridge.NewITrendIndicator(src, series, p)
}

func NewDominantCycleIndicator(src techan.Indicator, series *techan.TimeSeries) techan.Indicator {
	return bridge.NewDominantCycleIndicator(src, series)
}
