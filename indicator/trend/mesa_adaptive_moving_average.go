package trend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/evdnx/gocycle/config"
	"github.com/evdnx/gocycle/indicator/core"
	"github.com/evdnx/gocycle/indicator/cycle"
)

// ---------------------------------------------------------------------------
// Sentinel errors – exported so callers can compare with errors.Is()
// ---------------------------------------------------------------------------
var (
	ErrInsufficientMAMAData  = fmt.Errorf("%w: no MAMA data", core.ErrInsufficientData)
	ErrInsufficientCrossData = errors.New("insufficient data for crossover")
)

// MAMAMinSamples is the shortest series MAMA accepts.
const MAMAMinSamples = config.DefaultMinSamples

// MAMAParams configures the MESA adaptive moving average.
type MAMAParams struct {
	FastLimit float64
	SlowLimit float64
}

// DefaultMAMAParams returns fast 0.5 / slow 0.05.
func DefaultMAMAParams() MAMAParams {
	return MAMAParams{FastLimit: config.DefaultFastLimit, SlowLimit: config.DefaultSlowLimit}
}

func (p MAMAParams) limits() cycle.Limits {
	return cycle.Limits{FastLimit: p.FastLimit, SlowLimit: p.SlowLimit}
}

// MAMAOutput holds the adaptive average (MAMA) and its following average
// (FAMA), both index-aligned with the input.
type MAMAOutput struct {
	MAMA []float64
	FAMA []float64
}

// mamaPair is the cascaded smoother: MAMA follows price with alpha, FAMA
// follows MAMA with alpha/2. Both are seeded with the first price.
type mamaPair struct {
	mama, fama float64
}

func newMAMAPair(seed float64) mamaPair {
	return mamaPair{mama: seed, fama: seed}
}

func (p *mamaPair) next(price, alpha float64) (float64, float64) {
	p.mama = alpha*price + (1-alpha)*p.mama
	half := 0.5 * alpha
	p.fama = half*p.mama + (1-half)*p.fama
	return p.mama, p.fama
}

// MAMAFilter is the MAMA recurrence without retained history: one cycle
// State feeding the MAMA/FAMA pair. Callers must not pass NaN or infinite
// prices.
type MAMAFilter struct {
	state *cycle.State
	pair  mamaPair
	count int
}

// NewMAMAFilter returns a filter for p, or a ParamError for invalid limits.
func NewMAMAFilter(p MAMAParams) (*MAMAFilter, error) {
	lim := p.limits()
	if err := lim.Validate("mama"); err != nil {
		return nil, err
	}
	return newMAMAFilter(lim), nil
}

func newMAMAFilter(lim cycle.Limits) *MAMAFilter {
	return &MAMAFilter{state: cycle.NewState(lim)}
}

// Next advances the filter by one bar. The first price seeds both averages.
func (f *MAMAFilter) Next(price float64) (mama, fama float64, s cycle.Sample) {
	if f.count == 0 {
		f.pair = newMAMAPair(price)
	}
	s = f.state.Step(price)
	mama, fama = f.pair.next(price, s.Alpha)
	f.count++
	return mama, fama, s
}

// Count returns the number of bars consumed since creation or Reset.
func (f *MAMAFilter) Count() int { return f.count }

// Reset returns the filter to its freshly constructed state.
func (f *MAMAFilter) Reset() {
	f.state.Reset()
	f.pair = mamaPair{}
	f.count = 0
}

// MAMA computes the MESA adaptive moving average pair over src.
// The series must hold at least MAMAMinSamples finite values and both limits
// must be finite and positive; otherwise nothing is computed.
func MAMA(src []float64, p MAMAParams) (MAMAOutput, error) {
	if len(src) < MAMAMinSamples {
		return MAMAOutput{}, &core.InsufficientDataError{Indicator: "mama", Needed: MAMAMinSamples, Found: len(src)}
	}
	lim := p.limits()
	if err := lim.Validate("mama"); err != nil {
		return MAMAOutput{}, err
	}
	if err := core.CheckPrices("mama", src); err != nil {
		return MAMAOutput{}, err
	}

	f := newMAMAFilter(lim)
	out := MAMAOutput{
		MAMA: make([]float64, len(src)),
		FAMA: make([]float64, len(src)),
	}
	for i, price := range src {
		out.MAMA[i], out.FAMA[i], _ = f.Next(price)
	}
	return out, nil
}

// MAMAOf is MAMA for any numeric price type.
func MAMAOf[T core.Number](src []T, p MAMAParams) (MAMAOutput, error) {
	return MAMA(core.Float64s(src), p)
}

// ---------------------------------------------------------------------------
// Streaming form
// ---------------------------------------------------------------------------

// MesaAdaptiveMovingAverage is the bar-by-bar form of MAMA. After n calls to
// Add its latest values equal MAMA over the same n prices.
type MesaAdaptiveMovingAverage struct {
	params     MAMAParams
	minSamples int
	opts       options

	filter *MAMAFilter

	prices     []float64
	mamaValues []float64
	famaValues []float64
	periods    []float64
	alphas     []float64
}

// NewMesaAdaptiveMovingAverage initializes with the standard limits (0.5, 0.05).
func NewMesaAdaptiveMovingAverage(opts ...Option) (*MesaAdaptiveMovingAverage, error) {
	return NewMesaAdaptiveMovingAverageWithParams(config.DefaultFastLimit, config.DefaultSlowLimit, opts...)
}

// NewMesaAdaptiveMovingAverageWithParams initializes with custom limits.
func NewMesaAdaptiveMovingAverageWithParams(fastLimit, slowLimit float64, opts ...Option) (*MesaAdaptiveMovingAverage, error) {
	cfg := config.DefaultConfig()
	cfg.FastLimit = fastLimit
	cfg.SlowLimit = slowLimit
	return NewMesaAdaptiveMovingAverageWithConfig(cfg, opts...)
}

// NewMesaAdaptiveMovingAverageWithConfig takes limits, MinSamples and
// HistoryLimit from cfg. Options override the configured history limit.
func NewMesaAdaptiveMovingAverageWithConfig(cfg config.CycleConfig, opts ...Option) (*MesaAdaptiveMovingAverage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := applyOptions(append([]Option{WithHistoryLimit(cfg.HistoryLimit)}, opts...))
	params := MAMAParams{FastLimit: cfg.FastLimit, SlowLimit: cfg.SlowLimit}
	return &MesaAdaptiveMovingAverage{
		params:     params,
		minSamples: cfg.MinSamples,
		opts:       o,
		filter:     newMAMAFilter(params.limits()),
		prices:     make([]float64, 0, o.historyLimit),
		mamaValues: make([]float64, 0, o.historyLimit),
		famaValues: make([]float64, 0, o.historyLimit),
		periods:    make([]float64, 0, o.historyLimit),
		alphas:     make([]float64, 0, o.historyLimit),
	}, nil
}

// Add feeds the next price. NaN and infinite prices are rejected and leave the
// filter untouched.
func (m *MesaAdaptiveMovingAverage) Add(price float64) error {
	if !core.IsFinite(price) {
		m.opts.logger.Debug("rejected price", slog.String("indicator", "mama"), slog.Float64("price", price))
		return fmt.Errorf("%w: %v", core.ErrInvalidPrice, price)
	}
	mama, fama, s := m.filter.Next(price)

	m.prices = append(m.prices, price)
	m.mamaValues = append(m.mamaValues, mama)
	m.famaValues = append(m.famaValues, fama)
	m.periods = append(m.periods, s.Period)
	m.alphas = append(m.alphas, s.Alpha)
	m.trimSlices()

	if m.opts.logger.Enabled(context.Background(), slog.LevelDebug) {
		if bull, _ := m.IsBullishCrossover(); bull {
			m.opts.logger.Debug("mama crossed above fama", m.logAttrs()...)
		} else if bear, _ := m.IsBearishCrossover(); bear {
			m.opts.logger.Debug("mama crossed below fama", m.logAttrs()...)
		}
	}
	return nil
}

func (m *MesaAdaptiveMovingAverage) logAttrs() []any {
	return []any{
		slog.String("indicator", "mama"),
		slog.Float64("price", m.prices[len(m.prices)-1]),
		slog.Float64("mama", m.mamaValues[len(m.mamaValues)-1]),
		slog.Float64("fama", m.famaValues[len(m.famaValues)-1]),
	}
}

// trimSlices limits the size of the internal slices to keep memory bounded.
func (m *MesaAdaptiveMovingAverage) trimSlices() {
	n := m.opts.historyLimit
	m.prices = core.KeepLast(m.prices, n)
	m.mamaValues = core.KeepLast(m.mamaValues, n)
	m.famaValues = core.KeepLast(m.famaValues, n)
	m.periods = core.KeepLast(m.periods, n)
	m.alphas = core.KeepLast(m.alphas, n)
}

// Ready reports whether at least MinSamples prices have been added.
func (m *MesaAdaptiveMovingAverage) Ready() bool {
	return m.filter.Count() >= m.minSamples
}

// Calculate returns the latest MAMA and FAMA values.
// Before MinSamples prices have been added ErrInsufficientMAMAData is returned.
func (m *MesaAdaptiveMovingAverage) Calculate() (mama, fama float64, err error) {
	if !m.Ready() {
		return 0, 0, fmt.Errorf("%w: need %d prices, have %d", ErrInsufficientMAMAData, m.minSamples, m.filter.Count())
	}
	return m.mamaValues[len(m.mamaValues)-1], m.famaValues[len(m.famaValues)-1], nil
}

// IsBullishCrossover reports whether MAMA just crossed above FAMA.
func (m *MesaAdaptiveMovingAverage) IsBullishCrossover() (bool, error) {
	if !m.Ready() || len(m.mamaValues) < 2 {
		return false, ErrInsufficientCrossData
	}
	n := len(m.mamaValues)
	return m.mamaValues[n-2] <= m.famaValues[n-2] && m.mamaValues[n-1] > m.famaValues[n-1], nil
}

// IsBearishCrossover reports whether MAMA just crossed below FAMA.
func (m *MesaAdaptiveMovingAverage) IsBearishCrossover() (bool, error) {
	if !m.Ready() || len(m.mamaValues) < 2 {
		return false, ErrInsufficientCrossData
	}
	n := len(m.mamaValues)
	return m.mamaValues[n-2] >= m.famaValues[n-2] && m.mamaValues[n-1] < m.famaValues[n-1], nil
}

// GetTrendDirection returns "Bullish" while MAMA is above FAMA, "Bearish"
// while below, "Neutral" otherwise.
func (m *MesaAdaptiveMovingAverage) GetTrendDirection() (string, error) {
	mama, fama, err := m.Calculate()
	if err != nil {
		return "", err
	}
	switch {
	case mama > fama:
		return "Bullish", nil
	case mama < fama:
		return "Bearish", nil
	default:
		return "Neutral", nil
	}
}

// DetectSignals walks the retained history and produces a slice where:
//
//	 1  → MAMA crossed above FAMA
//	-1  → MAMA crossed below FAMA
//	 0  → no signal
func (m *MesaAdaptiveMovingAverage) DetectSignals() []float64 {
	signals := make([]float64, len(m.mamaValues))
	for i := 1; i < len(m.mamaValues); i++ {
		prevM, prevF := m.mamaValues[i-1], m.famaValues[i-1]
		curM, curF := m.mamaValues[i], m.famaValues[i]
		if prevM <= prevF && curM > curF {
			signals[i] = 1
		} else if prevM >= prevF && curM < curF {
			signals[i] = -1
		}
	}
	return signals
}

// GetPlotData builds the MAMA, FAMA, price and signal series ready for
// JSON/CSV export.
func (m *MesaAdaptiveMovingAverage) GetPlotData(startTime, interval int64) []core.PlotData {
	if len(m.mamaValues) == 0 {
		return nil
	}
	x := core.Index(len(m.mamaValues))
	ts := core.GenerateTimestamps(startTime, len(m.mamaValues), interval)
	return []core.PlotData{
		{Name: "MAMA", X: x, Y: core.CopySlice(m.mamaValues), Type: "line", Timestamp: ts},
		{Name: "FAMA", X: x, Y: core.CopySlice(m.famaValues), Type: "line", Timestamp: ts},
		{Name: "Price", X: x, Y: core.CopySlice(m.prices), Type: "line", Timestamp: ts},
		{Name: "Signals", X: x, Y: m.DetectSignals(), Type: "scatter", Timestamp: ts},
	}
}

// Reset clears all stored data and the cycle state.
func (m *MesaAdaptiveMovingAverage) Reset() {
	m.filter.Reset()
	m.prices = m.prices[:0]
	m.mamaValues = m.mamaValues[:0]
	m.famaValues = m.famaValues[:0]
	m.periods = m.periods[:0]
	m.alphas = m.alphas[:0]
}

// Count returns the number of prices consumed since creation or Reset.
func (m *MesaAdaptiveMovingAverage) Count() int { return m.filter.Count() }

// Params returns the alpha limits in use.
func (m *MesaAdaptiveMovingAverage) Params() MAMAParams { return m.params }

// GetPrices returns a copy of the retained prices.
func (m *MesaAdaptiveMovingAverage) GetPrices() []float64 { return core.CopySlice(m.prices) }

// GetMAMAValues returns a copy of the retained MAMA series.
func (m *MesaAdaptiveMovingAverage) GetMAMAValues() []float64 { return core.CopySlice(m.mamaValues) }

// GetFAMAValues returns a copy of the retained FAMA series.
func (m *MesaAdaptiveMovingAverage) GetFAMAValues() []float64 { return core.CopySlice(m.famaValues) }

// GetPeriods returns a copy of the retained instantaneous periods.
func (m *MesaAdaptiveMovingAverage) GetPeriods() []float64 { return core.CopySlice(m.periods) }

// GetAlphas returns a copy of the retained adaptive alphas.
func (m *MesaAdaptiveMovingAverage) GetAlphas() []float64 { return core.CopySlice(m.alphas) }
