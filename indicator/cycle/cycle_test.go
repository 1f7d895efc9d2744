package cycle

import (
	"errors"
	"math"
	"testing"

	"github.com/markcheno/go-talib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evdnx/gocycle/indicator/core"
)

func sine(n int, period, amp float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + amp*math.Sin(2*math.Pi*float64(i)/period)
	}
	return out
}

func noisyTrend(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		x := float64(i)
		out[i] = 50 + 0.3*x + 4*math.Sin(x/3.1) + 2*math.Cos(x/1.7)
	}
	return out
}

func TestLimitsValidate(t *testing.T) {
	cases := []struct {
		name    string
		lim     Limits
		wantErr bool
	}{
		{"defaults", DefaultLimits(), false},
		{"equal limits", Limits{FastLimit: 0.3, SlowLimit: 0.3}, false},
		{"zero fast", Limits{FastLimit: 0, SlowLimit: 0.05}, true},
		{"negative slow", Limits{FastLimit: 0.5, SlowLimit: -0.1}, true},
		{"NaN fast", Limits{FastLimit: math.NaN(), SlowLimit: 0.05}, true},
		{"infinite slow", Limits{FastLimit: 0.5, SlowLimit: math.Inf(1)}, true},
		{"slow above fast", Limits{FastLimit: 0.1, SlowLimit: 0.5}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.lim.Validate("mama")
			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrInvalidParameter))
			var pe *core.ParamError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, "mama", pe.Indicator)
		})
	}
}

func TestStep_PeriodAndAlphaStayBounded(t *testing.T) {
	lim := DefaultLimits()
	for name, src := range map[string][]float64{
		"sine":     sine(400, 20, 10),
		"trend":    noisyTrend(400),
		"constant": make([]float64, 50),
	} {
		st := NewState(lim)
		for i, p := range src {
			s := st.Step(p)
			require.GreaterOrEqual(t, s.Period, MinPeriod, "%s bar %d", name, i)
			require.LessOrEqual(t, s.Period, MaxPeriod, "%s bar %d", name, i)
			require.GreaterOrEqual(t, s.Alpha, lim.SlowLimit, "%s bar %d", name, i)
			require.LessOrEqual(t, s.Alpha, lim.FastLimit, "%s bar %d", name, i)
			require.GreaterOrEqual(t, s.DeltaPhase, 1.0, "%s bar %d", name, i)
		}
		assert.Equal(t, len(src), st.Count())
	}
}

func TestStep_PeriodChangeIsLimited(t *testing.T) {
	for name, src := range map[string][]float64{
		"sine":  sine(400, 20, 10),
		"trend": noisyTrend(400),
	} {
		st := NewState(DefaultLimits())
		prev := 0.0
		checked, limited := 0, 0
		for i, p := range src {
			s := st.Step(p)
			if s.Period > MinPeriod && s.Period < MaxPeriod {
				checked++
				lo, hi := maxShrink*prev, maxGrowth*prev
				require.GreaterOrEqual(t, s.Period, lo-1e-9, "%s bar %d", name, i)
				require.LessOrEqual(t, s.Period, hi+1e-9, "%s bar %d", name, i)
				if math.Abs(s.Period-lo) < 1e-9 || math.Abs(s.Period-hi) < 1e-9 {
					limited++
				}
			}
			assert.InDelta(t, 0.2*s.Period+0.8*prev, s.SmoothPeriod, 1e-9, "%s bar %d", name, i)
			prev = s.SmoothPeriod
		}
		assert.Greater(t, checked, 300, name)
		assert.Positive(t, limited, "%s: the change limit never engaged", name)
	}
}

func TestStep_ZeroPhasorKeepsPreviousPeriod(t *testing.T) {
	st := NewState(DefaultLimits())
	prev := 0.0
	for i := 0; i < 40; i++ {
		s := st.Step(0)
		require.Zero(t, s.Re, "bar %d", i)
		require.Zero(t, s.Im, "bar %d", i)
		assert.Equal(t, core.Clamp(limitChange(prev, prev), MinPeriod, MaxPeriod), s.Period, "bar %d", i)
		prev = s.SmoothPeriod
	}

	// A period carried in from earlier bars survives a silent input unchanged
	// instead of being pulled towards the shrink limit.
	st = NewState(DefaultLimits())
	st.period = 30
	for i := 0; i < 20; i++ {
		s := st.Step(0)
		require.Equal(t, 30.0, s.Period, "bar %d", i)
		require.Equal(t, 30.0, s.SmoothPeriod, "bar %d", i)
	}
}

func TestStep_FirstBarClampsToMinPeriod(t *testing.T) {
	st := NewState(DefaultLimits())
	s := st.Step(100)
	assert.Equal(t, MinPeriod, s.Period)
	assert.InDelta(t, 0.2*MinPeriod, s.SmoothPeriod, 1e-12)
	assert.InDelta(t, 0.33*0.2*MinPeriod, s.DisplayPeriod, 1e-12)
	assert.Equal(t, 100.0, s.Smooth, "missing history reads the current price")
	assert.InDelta(t, 0.0, s.Detrender, 1e-9)
}

func TestStep_InPhaseIsDetrenderDelayedThreeBars(t *testing.T) {
	samples, err := Estimate(noisyTrend(60), DefaultLimits())
	require.NoError(t, err)
	for i := 3; i < len(samples); i++ {
		assert.Equal(t, samples[i-3].Detrender, samples[i].I1, "bar %d", i)
	}
	for i := 0; i < 3; i++ {
		assert.Equal(t, samples[i].Detrender, samples[i].I1, "bar %d reads the current detrender", i)
	}
}

func TestStep_ConvergesOnPureCycle(t *testing.T) {
	samples, err := Estimate(sine(300, 20, 10), DefaultLimits())
	require.NoError(t, err)
	for _, s := range samples[len(samples)-100:] {
		assert.InDelta(t, 20, s.SmoothPeriod, 3)
		assert.InDelta(t, 20, s.DisplayPeriod, 3)
	}
}

func TestStep_Deterministic(t *testing.T) {
	src := noisyTrend(200)
	a, err := Estimate(src, DefaultLimits())
	require.NoError(t, err)
	b, err := Estimate(src, DefaultLimits())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestState_ResetMatchesFreshState(t *testing.T) {
	src := noisyTrend(80)
	st := NewState(DefaultLimits())
	for _, p := range sine(40, 15, 3) {
		st.Step(p)
	}
	st.Reset()
	require.Equal(t, 0, st.Count())

	want, err := Estimate(src, DefaultLimits())
	require.NoError(t, err)
	for i, p := range src {
		assert.Equal(t, want[i], st.Step(p), "bar %d", i)
	}
	assert.Equal(t, DefaultLimits(), st.Limits())
}

func TestEstimate_Rejections(t *testing.T) {
	_, err := Estimate(nil, DefaultLimits())
	assert.ErrorIs(t, err, core.ErrEmptyInput)
	assert.ErrorIs(t, err, core.ErrInsufficientData)

	_, err = Estimate([]float64{1, 2, 3}, Limits{FastLimit: math.NaN(), SlowLimit: 0.05})
	assert.ErrorIs(t, err, core.ErrInvalidParameter)

	leading := sine(200, 20, 5)
	leading[0] = math.NaN()
	out, err := Estimate(leading, DefaultLimits())
	assert.ErrorIs(t, err, core.ErrInvalidPrice)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
	assert.Nil(t, out)

	inner := sine(200, 20, 5)
	inner[150] = math.Inf(1)
	_, err = DominantCycle(inner)
	assert.ErrorIs(t, err, core.ErrInvalidPrice)
	assert.Contains(t, err.Error(), "index 150")
}

func TestDominantCycle(t *testing.T) {
	src := sine(120, 20, 5)
	dc, err := DominantCycle(src)
	require.NoError(t, err)
	require.Len(t, dc, len(src))

	samples, err := Estimate(src, DefaultLimits())
	require.NoError(t, err)
	for i := range dc {
		assert.Equal(t, samples[i].DisplayPeriod, dc[i])
	}

	_, err = DominantCycle(nil)
	assert.Error(t, err)
}

// TA-Lib uses an exact arctangent and starts emitting after its lookback; on a
// clean cycle both estimators settle on the same period.
func TestDominantCycle_AgreesWithTALib(t *testing.T) {
	src := sine(300, 20, 10)
	ours, err := DominantCycle(src)
	require.NoError(t, err)
	ref := talib.HtDcPeriod(src)
	require.Len(t, ref, len(src))

	for i := len(src) - 100; i < len(src); i++ {
		assert.InDelta(t, 20, ref[i], 3, "talib bar %d", i)
		assert.InDelta(t, ref[i], ours[i], 1.5, "bar %d", i)
	}
}
