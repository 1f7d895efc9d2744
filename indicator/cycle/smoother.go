package cycle

import "github.com/evdnx/gocycle/indicator/core"

// smoothPrice damps bar-to-bar noise before cycle analysis:
// (4·p[i] + 3·p[i-1] + 2·p[i-2] + p[i-3]) / 10.
func smoothPrice(prices *core.Ring) float64 {
	return core.WeightedFourTap(prices)
}
