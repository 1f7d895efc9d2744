package cycle

import (
	"fmt"

	"github.com/evdnx/gocycle/indicator/core"
)

// Estimate runs the cycle stages over src and returns one Sample per bar.
// A NaN or infinite price anywhere in src is rejected before any bar is
// computed.
func Estimate(src []float64, lim Limits) ([]Sample, error) {
	if len(src) == 0 {
		return nil, fmt.Errorf("cycle: %w", core.ErrEmptyInput)
	}
	if err := lim.Validate("cycle"); err != nil {
		return nil, err
	}
	if err := core.CheckPrices("cycle", src); err != nil {
		return nil, err
	}

	st := NewState(lim)
	out := make([]Sample, len(src))
	for i, price := range src {
		out[i] = st.Step(price)
	}
	return out, nil
}

// DominantCycle returns the display-smoothed dominant cycle period of src.
func DominantCycle(src []float64) ([]float64, error) {
	samples, err := Estimate(src, DefaultLimits())
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.DisplayPeriod
	}
	return out, nil
}
