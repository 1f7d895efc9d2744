package trend

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/evdnx/gocycle/config"
	"github.com/evdnx/gocycle/indicator/core"
	"github.com/evdnx/gocycle/indicator/cycle"
)

// ---------------------------------------------------------------------------
// Sentinel errors – exported so callers can compare with errors.Is()
// ---------------------------------------------------------------------------
var (
	ErrInsufficientTrendData = fmt.Errorf("%w: no trendline data", core.ErrInsufficientData)
)

// ITrendParams configures the instantaneous trendline.
type ITrendParams struct {
	// WarmupBars leading outputs repeat the raw price.
	WarmupBars int
	// MaxDCPeriod caps the averaging window and sizes the price ring.
	MaxDCPeriod int
}

// DefaultITrendParams returns 12 warm-up bars and a 50-bar window ceiling.
func DefaultITrendParams() ITrendParams {
	return ITrendParams{WarmupBars: config.DefaultWarmupBars, MaxDCPeriod: config.DefaultMaxDCPeriod}
}

func (p ITrendParams) validate() error {
	if p.WarmupBars < 0 {
		return &core.ParamError{Indicator: "itrend", Param: "warmup_bars", Value: p.WarmupBars}
	}
	if p.MaxDCPeriod < 1 {
		return &core.ParamError{Indicator: "itrend", Param: "max_dc_period", Value: p.MaxDCPeriod}
	}
	return nil
}

// trendFilter averages the last round(DisplayPeriod) raw prices and smooths
// the result with the 4/3/2/1 weights.
type trendFilter struct {
	maxDC int
	raw   core.Ring
	trend core.Ring
}

func newTrendFilter(maxDC int) trendFilter {
	return trendFilter{
		maxDC: maxDC,
		raw:   core.NewRing(maxDC),
		trend: core.NewRing(4),
	}
}

func (f *trendFilter) next(price, displayPeriod float64) float64 {
	f.raw.Push(price)
	n := f.window(displayPeriod)
	f.trend.Push(f.raw.Sum(n) / float64(n))
	return core.WeightedFourTap(&f.trend)
}

// window rounds the period and clamps it to [1, maxDC].
func (f *trendFilter) window(period float64) int {
	if math.IsNaN(period) {
		return 1
	}
	p := math.Floor(period + 0.5)
	if p < 1 {
		return 1
	}
	if p > float64(f.maxDC) {
		return f.maxDC
	}
	return int(p)
}

func (f *trendFilter) reset() {
	f.raw.Reset()
	f.trend.Reset()
}

// ITrendFilter is the trendline recurrence without retained history. It owns
// a cycle State with the default limits and substitutes the raw price for the
// first WarmupBars outputs. Callers must not pass NaN or infinite prices.
type ITrendFilter struct {
	warmup int
	state  *cycle.State
	avg    trendFilter
	count  int
}

// NewITrendFilter returns a filter for p, or a ParamError for invalid params.
func NewITrendFilter(p ITrendParams) (*ITrendFilter, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	return newITrendFilter(p), nil
}

func newITrendFilter(p ITrendParams) *ITrendFilter {
	return &ITrendFilter{
		warmup: p.WarmupBars,
		state:  cycle.NewState(cycle.DefaultLimits()),
		avg:    newTrendFilter(p.MaxDCPeriod),
	}
}

// Next advances the filter by one bar and returns the trendline value with
// the cycle sample that sized its window.
func (f *ITrendFilter) Next(price float64) (float64, cycle.Sample) {
	s := f.state.Step(price)
	v := f.avg.next(price, s.DisplayPeriod)
	if f.count < f.warmup {
		v = price
	}
	f.count++
	return v, s
}

// Count returns the number of bars consumed since creation or Reset.
func (f *ITrendFilter) Count() int { return f.count }

// Reset returns the filter to its freshly constructed state.
func (f *ITrendFilter) Reset() {
	f.state.Reset()
	f.avg.reset()
	f.count = 0
}

// ITrend computes the instantaneous trendline over src. The first WarmupBars
// outputs are the raw prices. Empty or all-NaN input, any other NaN or
// infinite price, and a warm-up that covers the whole series are rejected
// before anything is computed.
func ITrend(src []float64, p ITrendParams) ([]float64, error) {
	if len(src) == 0 {
		return nil, fmt.Errorf("itrend: %w", core.ErrEmptyInput)
	}
	if core.AllNaN(src) {
		return nil, fmt.Errorf("itrend: %w", core.ErrAllValuesNaN)
	}
	if err := core.CheckPrices("itrend", src); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	if p.WarmupBars >= len(src) {
		return nil, &core.ParamError{
			Indicator: "itrend",
			Param:     "warmup_bars",
			Value:     p.WarmupBars,
			Reason:    fmt.Sprintf("must be less than data length %d", len(src)),
		}
	}

	f := newITrendFilter(p)
	out := make([]float64, len(src))
	for i, price := range src {
		out[i], _ = f.Next(price)
	}
	return out, nil
}

// ITrendOf is ITrend for any numeric price type.
func ITrendOf[T core.Number](src []T, p ITrendParams) ([]float64, error) {
	return ITrend(core.Float64s(src), p)
}

// ---------------------------------------------------------------------------
// Streaming form
// ---------------------------------------------------------------------------

// InstantaneousTrendline is the bar-by-bar form of ITrend. After n calls to
// Add its latest value equals ITrend over the same n prices.
type InstantaneousTrendline struct {
	params ITrendParams
	opts   options

	filter *ITrendFilter

	prices      []float64
	trendValues []float64
	periods     []float64 // display periods
}

// NewInstantaneousTrendline initializes with 12 warm-up bars and a 50-bar ceiling.
func NewInstantaneousTrendline(opts ...Option) (*InstantaneousTrendline, error) {
	return NewInstantaneousTrendlineWithParams(config.DefaultWarmupBars, config.DefaultMaxDCPeriod, opts...)
}

// NewInstantaneousTrendlineWithParams initializes with custom warm-up and window ceiling.
func NewInstantaneousTrendlineWithParams(warmupBars, maxDCPeriod int, opts ...Option) (*InstantaneousTrendline, error) {
	cfg := config.DefaultConfig()
	cfg.WarmupBars = warmupBars
	cfg.MaxDCPeriod = maxDCPeriod
	return NewInstantaneousTrendlineWithConfig(cfg, opts...)
}

// NewInstantaneousTrendlineWithConfig takes WarmupBars, MaxDCPeriod and
// HistoryLimit from cfg.
func NewInstantaneousTrendlineWithConfig(cfg config.CycleConfig, opts ...Option) (*InstantaneousTrendline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := applyOptions(append([]Option{WithHistoryLimit(cfg.HistoryLimit)}, opts...))
	params := ITrendParams{WarmupBars: cfg.WarmupBars, MaxDCPeriod: cfg.MaxDCPeriod}
	return &InstantaneousTrendline{
		params:      params,
		opts:        o,
		filter:      newITrendFilter(params),
		prices:      make([]float64, 0, o.historyLimit),
		trendValues: make([]float64, 0, o.historyLimit),
		periods:     make([]float64, 0, o.historyLimit),
	}, nil
}

// Add feeds the next price. NaN and infinite prices are rejected.
func (it *InstantaneousTrendline) Add(price float64) error {
	if !core.IsFinite(price) {
		it.opts.logger.Debug("rejected price", slog.String("indicator", "itrend"), slog.Float64("price", price))
		return fmt.Errorf("%w: %v", core.ErrInvalidPrice, price)
	}
	v, s := it.filter.Next(price)

	it.prices = append(it.prices, price)
	it.trendValues = append(it.trendValues, v)
	it.periods = append(it.periods, s.DisplayPeriod)
	it.trimSlices()

	if it.opts.logger.Enabled(context.Background(), slog.LevelDebug) {
		if bull, _ := it.IsBullishCrossover(); bull {
			it.opts.logger.Debug("price crossed above trendline", it.logAttrs()...)
		} else if bear, _ := it.IsBearishCrossover(); bear {
			it.opts.logger.Debug("price crossed below trendline", it.logAttrs()...)
		}
	}
	return nil
}

func (it *InstantaneousTrendline) logAttrs() []any {
	return []any{
		slog.String("indicator", "itrend"),
		slog.Float64("price", it.prices[len(it.prices)-1]),
		slog.Float64("trend", it.trendValues[len(it.trendValues)-1]),
	}
}

func (it *InstantaneousTrendline) trimSlices() {
	n := it.opts.historyLimit
	it.prices = core.KeepLast(it.prices, n)
	it.trendValues = core.KeepLast(it.trendValues, n)
	it.periods = core.KeepLast(it.periods, n)
}

// Ready reports whether the warm-up is over.
func (it *InstantaneousTrendline) Ready() bool {
	return it.filter.Count() > it.params.WarmupBars
}

// Calculate returns the latest trendline value, or ErrInsufficientTrendData
// while the warm-up is still running.
func (it *InstantaneousTrendline) Calculate() (float64, error) {
	if !it.Ready() {
		return 0, fmt.Errorf("%w: warm-up needs %d prices, have %d", ErrInsufficientTrendData, it.params.WarmupBars+1, it.filter.Count())
	}
	return it.trendValues[len(it.trendValues)-1], nil
}

// postWarmup returns how many retained values were produced after the warm-up.
func (it *InstantaneousTrendline) postWarmup() int {
	n := it.filter.Count() - it.params.WarmupBars
	if n < 0 {
		return 0
	}
	if n > len(it.trendValues) {
		n = len(it.trendValues)
	}
	return n
}

// IsBullishCrossover reports whether price just crossed above the trendline.
func (it *InstantaneousTrendline) IsBullishCrossover() (bool, error) {
	if it.postWarmup() < 2 {
		return false, ErrInsufficientCrossData
	}
	n := len(it.trendValues)
	return it.prices[n-2] <= it.trendValues[n-2] && it.prices[n-1] > it.trendValues[n-1], nil
}

// IsBearishCrossover reports whether price just crossed below the trendline.
func (it *InstantaneousTrendline) IsBearishCrossover() (bool, error) {
	if it.postWarmup() < 2 {
		return false, ErrInsufficientCrossData
	}
	n := len(it.trendValues)
	return it.prices[n-2] >= it.trendValues[n-2] && it.prices[n-1] < it.trendValues[n-1], nil
}

// GetTrendDirection returns the trendline's short-term slope as "Bullish",
// "Bearish" or "Neutral".
func (it *InstantaneousTrendline) GetTrendDirection() (string, error) {
	if it.postWarmup() < 2 {
		return "", ErrInsufficientTrendData
	}
	n := len(it.trendValues)
	curr, prev := it.trendValues[n-1], it.trendValues[n-2]
	switch {
	case curr > prev:
		return "Bullish", nil
	case curr < prev:
		return "Bearish", nil
	default:
		return "Neutral", nil
	}
}

// DetectSignals marks price/trendline crossovers in the retained history
// (1 bullish, -1 bearish, 0 none). Warm-up bars never signal.
func (it *InstantaneousTrendline) DetectSignals() []float64 {
	signals := make([]float64, len(it.trendValues))
	first := len(it.trendValues) - it.postWarmup() + 1
	if first < 1 {
		first = 1
	}
	for i := first; i < len(it.trendValues); i++ {
		prevP, prevT := it.prices[i-1], it.trendValues[i-1]
		curP, curT := it.prices[i], it.trendValues[i]
		if prevP <= prevT && curP > curT {
			signals[i] = 1
		} else if prevP >= prevT && curP < curT {
			signals[i] = -1
		}
	}
	return signals
}

// GetPlotData builds the trendline, price and signal series.
func (it *InstantaneousTrendline) GetPlotData(startTime, interval int64) []core.PlotData {
	if len(it.trendValues) == 0 {
		return nil
	}
	x := core.Index(len(it.trendValues))
	ts := core.GenerateTimestamps(startTime, len(it.trendValues), interval)
	return []core.PlotData{
		{Name: "Instantaneous Trendline", X: x, Y: core.CopySlice(it.trendValues), Type: "line", Timestamp: ts},
		{Name: "Price", X: x, Y: core.CopySlice(it.prices), Type: "line", Timestamp: ts},
		{Name: "Signals", X: x, Y: it.DetectSignals(), Type: "scatter", Timestamp: ts},
	}
}

// Reset clears all stored data and the cycle state.
func (it *InstantaneousTrendline) Reset() {
	it.filter.Reset()
	it.prices = it.prices[:0]
	it.trendValues = it.trendValues[:0]
	it.periods = it.periods[:0]
}

// Count returns the number of prices consumed since creation or Reset.
func (it *InstantaneousTrendline) Count() int { return it.filter.Count() }

// Params returns the warm-up and window ceiling in use.
func (it *InstantaneousTrendline) Params() ITrendParams { return it.params }

// GetPrices returns a copy of the retained prices.
func (it *InstantaneousTrendline) GetPrices() []float64 { return core.CopySlice(it.prices) }

// GetTrendValues returns a copy of the retained trendline, warm-up bars included.
func (it *InstantaneousTrendline) GetTrendValues() []float64 { return core.CopySlice(it.trendValues) }

// GetPeriods returns a copy of the retained display periods.
func (it *InstantaneousTrendline) GetPeriods() []float64 { return core.CopySlice(it.periods) }
