package core

import "golang.org/x/exp/constraints"

// Number is any built-in integer or floating point type a price series may
// arrive in (integer paise, ticks, float32 feeds).
type Number interface {
	constraints.Integer | constraints.Float
}

// Float64s converts a price series of any numeric type into a fresh []float64.
func Float64s[T Number](src []T) []float64 {
	if src == nil {
		return nil
	}
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = float64(v)
	}
	return out
}
