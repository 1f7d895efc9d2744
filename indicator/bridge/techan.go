// Package bridge exposes the cycle filters as techan indicators so they can be
// combined with techan rules, strategies and the rest of its indicator set.
//
// techan indicators are evaluated by index against a growing TimeSeries. The
// wrappers here keep a streaming filter per output set and advance it only over
// candles added since the last call, so a backtest over n candles costs O(n).
// Source values already read are assumed not to change. They are not safe for
// concurrent use.
package bridge

import (
	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"

	"github.com/evdnx/gocycle/indicator/core"
	"github.com/evdnx/gocycle/indicator/cycle"
	"github.com/evdnx/gocycle/indicator/trend"
)

// stepper is a streaming filter that writes one value per output column.
type stepper interface {
	step(price float64, row []float64)
	reset()
}

// lazySeries holds the outputs of a stepper for the candles seen so far.
// Values read as zero while fewer than minLen candles exist, and for the
// rest of the series once a non-finite source value was read, matching the
// batch functions' refusal to compute.
type lazySeries struct {
	src    techan.Indicator
	series *techan.TimeSeries
	filter stepper
	minLen int

	consumed int
	invalid  bool
	row      []float64
	out      [][]float64
}

func newLazySeries(src techan.Indicator, series *techan.TimeSeries, filter stepper, width, minLen int) *lazySeries {
	return &lazySeries{
		src:    src,
		series: series,
		filter: filter,
		minLen: minLen,
		row:    make([]float64, width),
		out:    make([][]float64, width),
	}
}

func (l *lazySeries) restart() {
	l.filter.reset()
	l.consumed = 0
	l.invalid = false
	for k := range l.out {
		l.out[k] = l.out[k][:0]
	}
}

// refresh advances the filter over candles appended since the last call. A
// series that shrank is replayed from the start.
func (l *lazySeries) refresh() {
	n := len(l.series.Candles)
	if n < l.consumed {
		l.restart()
	}
	for ; l.consumed < n && !l.invalid; l.consumed++ {
		price := l.src.Calculate(l.consumed).Float()
		if !core.IsFinite(price) {
			l.invalid = true
			break
		}
		l.filter.step(price, l.row)
		for k, v := range l.row {
			l.out[k] = append(l.out[k], v)
		}
	}
	if l.invalid {
		l.consumed = n
	}
}

func (l *lazySeries) value(k, index int) big.Decimal {
	l.refresh()
	if l.invalid || l.consumed < l.minLen || index < 0 || index >= len(l.out[k]) {
		return big.ZERO
	}
	v := l.out[k][index]
	if !core.IsFinite(v) {
		return big.ZERO
	}
	return big.NewDecimal(v)
}

// column is one output of a shared lazySeries.
type column struct {
	cache *lazySeries
	k     int
}

// Calculate returns the value at index, or zero while the series is too short
// for the filter.
func (c column) Calculate(index int) big.Decimal {
	return c.cache.value(c.k, index)
}

type mamaStepper struct{ f *trend.MAMAFilter }

func (s mamaStepper) step(price float64, row []float64) { row[0], row[1], _ = s.f.Next(price) }
func (s mamaStepper) reset()                            { s.f.Reset() }

type itrendStepper struct{ f *trend.ITrendFilter }

func (s itrendStepper) step(price float64, row []float64) { row[0], _ = s.f.Next(price) }
func (s itrendStepper) reset()                            { s.f.Reset() }

type cycleStepper struct{ st *cycle.State }

func (s cycleStepper) step(price float64, row []float64) { row[0] = s.st.Step(price).DisplayPeriod }
func (s cycleStepper) reset()                            { s.st.Reset() }

// zeroIndicator stands in when the parameters are invalid.
type zeroIndicator struct{}

func (zeroIndicator) Calculate(int) big.Decimal { return big.ZERO }

// Prices evaluates ind at indices 0..n-1.
func Prices(ind techan.Indicator, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = ind.Calculate(i).Float()
	}
	return out
}

// NewMAMAIndicators returns the MAMA and FAMA lines of src. Both share one
// filter. Invalid limits yield indicators that always read zero.
func NewMAMAIndicators(src techan.Indicator, series *techan.TimeSeries, p trend.MAMAParams) (mama, fama techan.Indicator) {
	f, err := trend.NewMAMAFilter(p)
	if err != nil {
		return zeroIndicator{}, zeroIndicator{}
	}
	cache := newLazySeries(src, series, mamaStepper{f: f}, 2, trend.MAMAMinSamples)
	return column{cache: cache, k: 0}, column{cache: cache, k: 1}
}

// NewMAMAIndicator returns the MESA adaptive moving average of src.
func NewMAMAIndicator(src techan.Indicator, series *techan.TimeSeries, p trend.MAMAParams) techan.Indicator {
	mama, _ := NewMAMAIndicators(src, series, p)
	return mama
}

// NewFAMAIndicator returns the following adaptive moving average of src.
func NewFAMAIndicator(src techan.Indicator, series *techan.TimeSeries, p trend.MAMAParams) techan.Indicator {
	_, fama := NewMAMAIndicators(src, series, p)
	return fama
}

// NewITrendIndicator returns the instantaneous trendline of src. Values read
// zero until the series is longer than the warm-up.
func NewITrendIndicator(src techan.Indicator, series *techan.TimeSeries, p trend.ITrendParams) techan.Indicator {
	f, err := trend.NewITrendFilter(p)
	if err != nil {
		return zeroIndicator{}
	}
	return column{cache: newLazySeries(src, series, itrendStepper{f: f}, 1, p.WarmupBars+1)}
}

// NewDominantCycleIndicator returns the smoothed dominant cycle period of src.
func NewDominantCycleIndicator(src techan.Indicator, series *techan.TimeSeries) techan.Indicator {
	st := cycle.NewState(cycle.DefaultLimits())
	return column{cache: newLazySeries(src, series, cycleStepper{st: st}, 1, 1)}
}

// NewClosePriceMAMA is the common case: MAMA and FAMA over close prices with
// the default limits.
func NewClosePriceMAMA(series *techan.TimeSeries) (mama, fama techan.Indicator) {
	return NewMAMAIndicators(techan.NewClosePriceIndicator(series), series, trend.DefaultMAMAParams())
}
