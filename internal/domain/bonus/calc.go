package bonus

import (
	"sort"

	"perfhub/internal/domain/scoring"
)

// CompositeScore reduces the bonus inputs (evaluation composite, goal
// attainment, compliance factor) under the policy's category weights.
func CompositeScore(weights map[scoring.Category]int, inputs map[scoring.Category]float64) float64 {
	items := make([]scoring.WeightedScore, 0, len(weights))
	for category, percent := range weights {
		score, ok := inputs[category]
		if !ok {
			continue
		}
		items = append(items, scoring.WeightedScore{Score: score, Weight: float64(percent)})
	}
	return scoring.Aggregate(items)
}

// PercentForScore picks the payout percentage of the highest band whose floor
// the score clears. A score under every band pays nothing.
func PercentForScore(bands []Band, score float64) float64 {
	sorted := make([]Band, len(bands))
	copy(sorted, bands)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MinScore > sorted[j].MinScore })

	for _, band := range sorted {
		if score >= band.MinScore {
			return band.Percent
		}
	}
	return 0
}

// Amount is the payout for a base salary at a band percentage.
func Amount(baseSalary, percent float64) float64 {
	return baseSalary * percent / 100
}
