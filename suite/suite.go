package suite

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/evdnx/gocycle/config"
	"github.com/evdnx/gocycle/indicator/core"
	"github.com/evdnx/gocycle/indicator/trend"
)

// ---------------------------------------------------------------------
// CycleSuite – feeds one price stream into both cycle filters.
// ---------------------------------------------------------------------

type CycleSuite struct {
	mama   *trend.MesaAdaptiveMovingAverage
	itrend *trend.InstantaneousTrendline
	logger *slog.Logger
}

// Option configures a CycleSuite.
type Option func(*suiteOptions)

type suiteOptions struct {
	logger       *slog.Logger
	historyLimit int
}

// WithLogger routes suite and filter debug output to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *suiteOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithHistoryLimit overrides the configured history limit of both filters.
func WithHistoryLimit(n int) Option {
	return func(o *suiteOptions) { o.historyLimit = n }
}

// NewCycleSuite creates a suite with the library defaults.
func NewCycleSuite(opts ...Option) (*CycleSuite, error) {
	return NewCycleSuiteWithConfig(config.DefaultConfig(), opts...)
}

// NewCycleSuiteWithConfig builds both filters from cfg.
func NewCycleSuiteWithConfig(cfg config.CycleConfig, opts ...Option) (*CycleSuite, error) {
	o := suiteOptions{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	filterOpts := []trend.Option{trend.WithLogger(o.logger)}
	if o.historyLimit > 0 {
		filterOpts = append(filterOpts, trend.WithHistoryLimit(o.historyLimit))
	}

	/* -------------------- MAMA ------------------- */
	mama, err := trend.NewMesaAdaptiveMovingAverageWithConfig(cfg, filterOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create MAMA: %w", err)
	}

	/* ------------------- ITrend ------------------ */
	it, err := trend.NewInstantaneousTrendlineWithConfig(cfg, filterOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create ITrend: %w", err)
	}

	return &CycleSuite{mama: mama, itrend: it, logger: o.logger}, nil
}

// ---------------------------------------------------------------------
// Add – forwards the price to both filters.
// ---------------------------------------------------------------------
func (s *CycleSuite) Add(price float64) error {
	if !core.IsFinite(price) {
		return fmt.Errorf("%w: %v", core.ErrInvalidPrice, price)
	}
	if err := s.mama.Add(price); err != nil {
		return fmt.Errorf("MAMA add failed: %w", err)
	}
	if err := s.itrend.Add(price); err != nil {
		return fmt.Errorf("ITrend add failed: %w", err)
	}
	return nil
}

// Ready reports whether both filters have produced a usable value.
func (s *CycleSuite) Ready() bool {
	return s.mama.Ready() && s.itrend.Ready()
}

// relTol treats values this close as equal so rounding noise on flat input
// does not register as a trend.
const relTol = 1e-9

func compare(a, b float64) int {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	switch d := a - b; {
	case d > relTol*scale:
		return 1
	case d < -relTol*scale:
		return -1
	default:
		return 0
	}
}

// crossVote returns +0.5 or -0.5 for a fresh crossover that agrees with the
// current ordering, 0 otherwise.
func crossVote(order int, bull, bear bool) float64 {
	switch {
	case order > 0 && bull:
		return 0.5
	case order < 0 && bear:
		return -0.5
	default:
		return 0
	}
}

// GetCombinedSignal scores MAMA against FAMA and price against the
// trendline (±1 each), adding ±0.5 for each fresh crossover that confirms
// its ordering.
func (s *CycleSuite) GetCombinedSignal() (string, error) {
	mama, fama, err := s.mama.Calculate()
	if err != nil {
		return "", fmt.Errorf("MAMA not ready: %w", err)
	}
	it, err := s.itrend.Calculate()
	if err != nil {
		return "", fmt.Errorf("ITrend not ready: %w", err)
	}
	prices := s.itrend.GetPrices()
	price := prices[len(prices)-1]

	mamaOrder := compare(mama, fama)
	trendOrder := compare(price, it)
	score := float64(mamaOrder + trendOrder)

	// Crossover checks need two values; a filter that has only one yet
	// contributes its ordering alone.

	/* ---- MAMA/FAMA crossover ---- */
	if mamaBull, err := s.mama.IsBullishCrossover(); err == nil {
		mamaBear, _ := s.mama.IsBearishCrossover()
		score += crossVote(mamaOrder, mamaBull, mamaBear)
	}

	/* ---- price/trendline crossover ---- */
	if itBull, err := s.itrend.IsBullishCrossover(); err == nil {
		itBear, _ := s.itrend.IsBearishCrossover()
		score += crossVote(trendOrder, itBull, itBear)
	}

	var signal string
	switch {
	case score >= 2.5:
		signal = "Strong Bullish"
	case score >= 1:
		signal = "Bullish"
	case score <= -2.5:
		signal = "Strong Bearish"
	case score <= -1:
		signal = "Bearish"
	default:
		signal = "Neutral"
	}
	if s.logger.Enabled(context.Background(), slog.LevelDebug) {
		s.logger.Debug("combined signal",
			slog.String("signal", signal),
			slog.Float64("score", score),
			slog.Float64("mama", mama),
			slog.Float64("fama", fama),
			slog.Float64("trend", it),
			slog.Float64("price", price),
		)
	}
	return signal, nil
}

// GetDominantCycle returns the latest smoothed dominant cycle period.
func (s *CycleSuite) GetDominantCycle() (float64, error) {
	periods := s.itrend.GetPeriods()
	if len(periods) == 0 {
		return 0, fmt.Errorf("dominant cycle: %w", core.ErrInsufficientData)
	}
	return periods[len(periods)-1], nil
}

// Reset clears both filters.
func (s *CycleSuite) Reset() {
	s.mama.Reset()
	s.itrend.Reset()
}

// GetMAMA returns the MAMA filter.
func (s *CycleSuite) GetMAMA() *trend.MesaAdaptiveMovingAverage {
	return s.mama
}

// GetITrend returns the instantaneous trendline filter.
func (s *CycleSuite) GetITrend() *trend.InstantaneousTrendline {
	return s.itrend
}

// GetPlotData returns the MAMA series followed by the trendline series.
func (s *CycleSuite) GetPlotData(startTime, interval int64) []core.PlotData {
	var plotData []core.PlotData
	plotData = append(plotData, s.mama.GetPlotData(startTime, interval)...)
	for _, pd := range s.itrend.GetPlotData(startTime, interval) {
		if pd.Name == "Price" {
			continue
		}
		if pd.Name == "Signals" {
			pd.Name = "Trendline Signals"
		}
		plotData = append(plotData, pd)
	}
	return plotData
}
