package evaluation

import "perfhub/internal/domain/scoring"

// Composite reduces category sub-scores to one final score using the
// configured category percentages as aggregation weights. A category with a
// configured weight but no sub-score is left out of the reduction; its weight
// is not redistributed beforehand because the aggregator normalizes by the
// weight total it actually sees.
func Composite(weights map[scoring.Category]int, subScores map[scoring.Category]float64) float64 {
	items := make([]scoring.WeightedScore, 0, len(weights))
	for category, percent := range weights {
		score, ok := subScores[category]
		if !ok {
			continue
		}
		items = append(items, scoring.WeightedScore{Score: score, Weight: float64(percent)})
	}
	return scoring.Aggregate(items)
}
