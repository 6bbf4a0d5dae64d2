package scoring

import (
	"math"
	"sort"
)

// BandCategory is an individual's standing relative to a peer population.
type BandCategory string

const (
	BandTop10        BandCategory = "top_10"
	BandTop25        BandCategory = "top_25"
	BandAboveAverage BandCategory = "above_average"
	BandBelowAverage BandCategory = "below_average"
	BandBottom25     BandCategory = "bottom_25"
)

// Percentile returns the nearest-rank percentile of the population:
// sort ascending, index = ceil(p/100*n)-1 clamped to [0,n-1]. The second
// return is false for an empty population. Nearest-rank is intentional;
// interpolation would shift boundary values for small populations.
func Percentile(population []float64, p int) (float64, bool) {
	n := len(population)
	if n == 0 {
		return 0, false
	}
	sorted := make([]float64, n)
	copy(sorted, population)
	sort.Float64s(sorted)

	index := int(math.Ceil(float64(p)/100*float64(n))) - 1
	if index < 0 {
		index = 0
	}
	if index > n-1 {
		index = n - 1
	}
	return sorted[index], true
}

// ClassifyPosition places a score into a standing band given the population
// cut points. Higher bands are checked first so a score clearing several
// thresholds lands in the highest one.
func ClassifyPosition(score, p25, p50, p75, p90 float64) BandCategory {
	switch {
	case score >= p90:
		return BandTop10
	case score >= p75:
		return BandTop25
	case score >= p50:
		return BandAboveAverage
	case score >= p25:
		return BandBelowAverage
	default:
		return BandBottom25
	}
}
