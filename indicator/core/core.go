package core

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// -----------------------------------------------------------------------------
// Generic helpers
// -----------------------------------------------------------------------------

// keepLast returns the last n elements of a slice (or the whole slice if it is
// shorter). It works for any element type thanks to Go generics.
func keepLast[T any](s []T, n int) []T {
	if len(s) > n {
		return s[len(s)-n:]
	}
	return s
}

// KeepLast is the exported wrapper for keepLast to share slice logic across packages.
func KeepLast[T any](s []T, n int) []T {
	return keepLast(s, n)
}

func copySlice(src []float64) []float64 {
	if src == nil {
		return nil
	}
	dst := make([]float64, len(src))
	copy(dst, src)
	return dst
}

// CopySlice exposes the defensive copy helper to other packages.
func CopySlice(src []float64) []float64 {
	return copySlice(src)
}

/* -------------------------------------------------------------------------
   Numeric helpers
--------------------------------------------------------------------------*/

func clamp(value, min, max float64) float64 {
	if min == max {
		return min
	}
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Clamp exposes clamp to other packages.
func Clamp(value, min, max float64) float64 {
	return clamp(value, min, max)
}

// WeightedFourTap returns (4·x0 + 3·x1 + 2·x2 + x3) / 10 where xk is the value
// k samples back in r. Missing history reads the newest value.
func WeightedFourTap(r *Ring) float64 {
	return (4*r.At(0) + 3*r.At(1) + 2*r.At(2) + r.At(3)) / 10
}

/* -------------------------------------------------------------------------
   Validation helpers
--------------------------------------------------------------------------*/

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool { return isFinite(v) }

// IsValidLimit reports whether v is usable as a smoothing-coefficient bound.
func IsValidLimit(v float64) bool { return v > 0 && isFinite(v) }

// AllNaN reports whether every element of src is NaN. An empty slice is not
// considered all-NaN.
func AllNaN(src []float64) bool {
	if len(src) == 0 {
		return false
	}
	for _, v := range src {
		if !math.IsNaN(v) {
			return false
		}
	}
	return true
}

// CheckPrices returns an ErrInvalidPrice error naming the first NaN or
// infinite element of src, or nil when every element is finite.
func CheckPrices(indicator string, src []float64) error {
	for i, v := range src {
		if !isFinite(v) {
			return fmt.Errorf("%s: %w: %v at index %d", indicator, ErrInvalidPrice, v, i)
		}
	}
	return nil
}

/* -------------------------------------------------------------------------
   Plotting utilities
--------------------------------------------------------------------------*/

type PlotData struct {
	Name      string    `json:"name"`
	X         []float64 `json:"x"`
	Y         []float64 `json:"y"`
	Type      string    `json:"type,omitempty"`
	Signal    string    `json:"signal,omitempty"`
	Timestamp []int64   `json:"timestamp,omitempty"`
}

func GenerateTimestamps(startTime int64, count int, interval int64) []int64 {
	if count <= 0 {
		return nil
	}
	ts := make([]int64, count)
	for i := 0; i < count; i++ {
		ts[i] = startTime + int64(i)*interval
	}
	return ts
}

// Index returns 0..n-1 as float64, the X axis shared by every plot series.
func Index(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
	}
	return x
}

func FormatPlotDataJSON(data []PlotData) (string, error) {
	if len(data) == 0 {
		return "[]", nil
	}
	for _, d := range data {
		if len(d.X) != len(d.Y) {
			return "", fmt.Errorf("mismatched X and Y lengths for %s: %d vs %d", d.Name, len(d.X), len(d.Y))
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal plot data: %w", err)
	}
	return string(b), nil
}

func FormatPlotDataCSV(data []PlotData) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	var sb strings.Builder
	sb.WriteString("Name,X,Y,Type,Signal,Timestamp\n")
	for _, d := range data {
		if len(d.X) != len(d.Y) {
			return "", fmt.Errorf("mismatched X and Y lengths for %s: %d vs %d", d.Name, len(d.X), len(d.Y))
		}
		for i := 0; i < len(d.X); i++ {
			ts := ""
			if i < len(d.Timestamp) {
				ts = fmt.Sprintf("%d", d.Timestamp[i])
			}
			fmt.Fprintf(&sb, "%s,%f,%f,%s,%s,%s\n",
				d.Name, d.X[i], d.Y[i], d.Type, d.Signal, ts)
		}
	}
	return sb.String(), nil
}
