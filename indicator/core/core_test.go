package core

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Ring
// ---------------------------------------------------------------------------

func TestRing_FallsBackToNewestWithoutHistory(t *testing.T) {
	r := NewRing(7)
	assert.Equal(t, 0.0, r.At(0), "empty ring reads zero")

	r.Push(10)
	for _, off := range []int{0, 2, 4, 6} {
		assert.Equal(t, 10.0, r.At(off), "offset %d", off)
	}

	r.Push(11)
	r.Push(12)
	assert.Equal(t, 12.0, r.At(0))
	assert.Equal(t, 10.0, r.At(2))
	assert.Equal(t, 12.0, r.At(4), "offset beyond history reads newest")
}

func TestRing_OverwritesOneSlotPerPush(t *testing.T) {
	r := NewRing(7)
	for i := 0; i < 20; i++ {
		r.Push(float64(i))
	}
	require.Equal(t, 7, r.Len())
	require.Equal(t, 7, r.Cap())
	for off := 0; off < 7; off++ {
		assert.Equal(t, float64(19-off), r.At(off), "offset %d", off)
	}
	// Offsets at or past capacity are treated as missing history.
	assert.Equal(t, 19.0, r.At(7))
	assert.Equal(t, 19.0, r.At(-1))
}

func TestRing_Sum(t *testing.T) {
	r := NewRing(5)
	r.Push(1)
	r.Push(2)
	// Two real samples plus one fallback read of the newest.
	assert.Equal(t, 2.0+1.0+2.0, r.Sum(3))

	for _, v := range []float64{3, 4, 5, 6} {
		r.Push(v)
	}
	assert.Equal(t, 6.0+5.0+4.0, r.Sum(3))
	assert.Equal(t, 6.0+5.0+4.0+3.0+2.0, r.Sum(50), "n is capped at capacity")
}

func TestRing_Reset(t *testing.T) {
	r := NewRing(3)
	r.Push(1)
	r.Push(2)
	r.Reset()
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 0.0, r.At(0))
	r.Push(9)
	assert.Equal(t, 9.0, r.At(2))
}

func TestNewRing_MinimumCapacity(t *testing.T) {
	r := NewRing(0)
	assert.Equal(t, 1, r.Cap())
	r.Push(3)
	r.Push(4)
	assert.Equal(t, 4.0, r.At(0))
}

func TestWeightedFourTap(t *testing.T) {
	r := NewRing(4)
	r.Push(5)
	assert.InDelta(t, 5.0, WeightedFourTap(&r), 1e-12, "single sample smooths to itself")

	for _, v := range []float64{1, 2, 3, 4} {
		r.Push(v)
	}
	// (4*4 + 3*3 + 2*2 + 1) / 10
	assert.InDelta(t, 3.0, WeightedFourTap(&r), 1e-12)
}

// ---------------------------------------------------------------------------
// FastAtan
// ---------------------------------------------------------------------------

func TestFastAtan_CloseToAtan(t *testing.T) {
	for x := -20.0; x <= 20.0; x += 0.01 {
		assert.InDelta(t, math.Atan(x), FastAtan(x), 0.005, "x=%v", x)
	}
}

func TestFastAtan_ExactPoints(t *testing.T) {
	assert.Equal(t, 0.0, FastAtan(0))
	assert.InDelta(t, math.Pi/4, FastAtan(1), 1e-12)
	assert.InDelta(t, -math.Pi/4, FastAtan(-1), 1e-12)
	assert.InDelta(t, math.Pi/2, FastAtan(math.Inf(1)), 1e-12)
	assert.InDelta(t, -math.Pi/2, FastAtan(math.Inf(-1)), 1e-12)
	assert.True(t, math.IsNaN(FastAtan(math.NaN())))
}

func TestFastAtan_OddSymmetry(t *testing.T) {
	for _, x := range []float64{0.1, 0.5, 0.99, 1.5, 7, 1e6} {
		assert.Equal(t, -FastAtan(x), FastAtan(-x), "x=%v", x)
	}
}

// ---------------------------------------------------------------------------
// Validation helpers and conversion
// ---------------------------------------------------------------------------

func TestValidationHelpers(t *testing.T) {
	assert.True(t, IsFinite(-3))
	assert.False(t, IsFinite(math.NaN()))
	assert.False(t, IsFinite(math.Inf(-1)))

	assert.True(t, IsValidLimit(0.05))
	for _, v := range []float64{0, -0.5, math.NaN(), math.Inf(1)} {
		assert.False(t, IsValidLimit(v), "limit %v", v)
	}

	assert.False(t, AllNaN(nil))
	assert.False(t, AllNaN([]float64{math.NaN(), 1}))
	assert.True(t, AllNaN([]float64{math.NaN(), math.NaN()}))

	assert.NoError(t, CheckPrices("test", nil))
	assert.NoError(t, CheckPrices("test", []float64{1, -2, 0}))
	err := CheckPrices("test", []float64{1, 2, math.Inf(1), math.NaN()})
	assert.ErrorIs(t, err, ErrInvalidPrice)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.Contains(t, err.Error(), "index 2")
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 6.0, Clamp(2, 6, 50))
	assert.Equal(t, 50.0, Clamp(80, 6, 50))
	assert.Equal(t, 17.0, Clamp(17, 6, 50))
	assert.Equal(t, 3.0, Clamp(17, 3, 3))
}

func TestFloat64s(t *testing.T) {
	assert.Equal(t, []float64{10050, 10100}, Float64s([]int64{10050, 10100}))
	assert.Equal(t, []float64{1.5, 2.5}, Float64s([]float32{1.5, 2.5}))
	assert.Nil(t, Float64s[int](nil))
}

func TestKeepLastAndCopySlice(t *testing.T) {
	s := []float64{1, 2, 3, 4}
	assert.Equal(t, []float64{3, 4}, KeepLast(s, 2))
	assert.Equal(t, s, KeepLast(s, 10))

	c := CopySlice(s)
	c[0] = 99
	assert.Equal(t, 1.0, s[0])
	assert.Nil(t, CopySlice(nil))
}

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

func TestErrorTaxonomy(t *testing.T) {
	assert.True(t, errors.Is(ErrEmptyInput, ErrInsufficientData))
	assert.True(t, errors.Is(ErrAllValuesNaN, ErrInsufficientData))
	assert.True(t, errors.Is(ErrInvalidPrice, ErrInvalidParameter))

	var err error = &InsufficientDataError{Indicator: "mama", Needed: 10, Found: 3}
	assert.True(t, errors.Is(err, ErrInsufficientData))
	assert.Equal(t, "mama: not enough data: need 10, have 3", err.Error())

	err = &ParamError{Indicator: "mama", Param: "fast_limit", Value: 0.0}
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	assert.False(t, errors.Is(err, ErrInsufficientData))
	assert.Equal(t, "mama: invalid fast_limit: 0", err.Error())

	var pe *ParamError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "fast_limit", pe.Param)
}

// ---------------------------------------------------------------------------
// Plot formatting
// ---------------------------------------------------------------------------

func TestFormatPlotData(t *testing.T) {
	data := []PlotData{{
		Name:      "MAMA",
		X:         Index(2),
		Y:         []float64{1, 2},
		Type:      "line",
		Timestamp: GenerateTimestamps(100, 2, 60),
	}}

	js, err := FormatPlotDataJSON(data)
	require.NoError(t, err)
	var decoded []PlotData
	require.NoError(t, json.Unmarshal([]byte(js), &decoded))
	assert.Equal(t, []int64{100, 160}, decoded[0].Timestamp)

	csv, err := FormatPlotDataCSV(data)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(csv), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "MAMA,1.000000,2.000000,line,,160", lines[2])

	empty, err := FormatPlotDataJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", empty)

	_, err = FormatPlotDataCSV([]PlotData{{Name: "bad", X: []float64{1}}})
	assert.Error(t, err)
}
