package scoring

import "math"

// WeightedScore pairs a score in [0,100] with a positive weight.
type WeightedScore struct {
	Score  float64
	Weight float64
}

// Aggregate combines weighted scores into one normalized final score,
// rounded half-up to the nearest integer. Empty input or zero total weight
// yields 0; that fallback is policy, not an error.
func Aggregate(items []WeightedScore) float64 {
	var weightedSum, totalWeight float64
	for _, item := range items {
		if item.Weight <= 0 {
			continue
		}
		weightedSum += item.Score * item.Weight
		totalWeight += item.Weight
	}
	if totalWeight == 0 {
		return 0
	}
	return math.Floor(weightedSum/totalWeight + 0.5)
}
