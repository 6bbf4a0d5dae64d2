package evaluation

import (
	"testing"

	"perfhub/internal/domain/scoring"
)

func TestComposite(t *testing.T) {
	weights := map[scoring.Category]int{
		scoring.CategoryCompetencies: 40,
		scoring.CategoryGoals:        30,
		scoring.CategoryPIR:          15,
		scoring.CategoryFeedback:     15,
	}
	subScores := map[scoring.Category]float64{
		scoring.CategoryCompetencies: 80,
		scoring.CategoryGoals:        90,
		scoring.CategoryPIR:          70,
		scoring.CategoryFeedback:     85,
	}
	if got := Composite(weights, subScores); got != 82 {
		t.Fatalf("expected 82, got %v", got)
	}
}

func TestCompositeMissingCategory(t *testing.T) {
	weights := map[scoring.Category]int{
		scoring.CategoryCompetencies: 50,
		scoring.CategoryGoals:        50,
	}
	subScores := map[scoring.Category]float64{
		scoring.CategoryCompetencies: 80,
	}
	// Only the present category counts; the aggregator renormalizes.
	if got := Composite(weights, subScores); got != 80 {
		t.Fatalf("expected 80, got %v", got)
	}
}

func TestCompositeNoScores(t *testing.T) {
	weights := map[scoring.Category]int{scoring.CategoryGoals: 100}
	if got := Composite(weights, nil); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}
