package goals

import "perfhub/internal/domain/scoring"

// ProgressPercent derives completion from a (current, target) pair, clamped
// to [0,100]. A zero target yields 0 rather than dividing by zero.
func ProgressPercent(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	percent := current / target * 100
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// FinalScore is the employee's weighted goal score: each goal contributes its
// progress percent at its own weight.
func FinalScore(items []Goal) float64 {
	weighted := make([]scoring.WeightedScore, 0, len(items))
	for _, goal := range items {
		weighted = append(weighted, scoring.WeightedScore{
			Score:  ProgressPercent(goal.CurrentValue, goal.TargetValue),
			Weight: float64(goal.Weight),
		})
	}
	return scoring.Aggregate(weighted)
}
