package bonus

import (
	"testing"

	"perfhub/internal/domain/scoring"
)

func TestCompositeScore(t *testing.T) {
	weights := map[scoring.Category]int{
		scoring.CategoryEvaluation: 50,
		scoring.CategoryGoals:      30,
		scoring.CategoryCompliance: 20,
	}
	inputs := map[scoring.Category]float64{
		scoring.CategoryEvaluation: 80,
		scoring.CategoryGoals:      90,
		scoring.CategoryCompliance: 100,
	}
	// 0.5*80 + 0.3*90 + 0.2*100 = 87
	if got := CompositeScore(weights, inputs); got != 87 {
		t.Fatalf("expected 87, got %v", got)
	}
}

func TestPercentForScore(t *testing.T) {
	bands := []Band{
		{MinScore: 90, Percent: 20},
		{MinScore: 75, Percent: 10},
		{MinScore: 50, Percent: 5},
	}
	cases := []struct {
		score, want float64
	}{
		{95, 20},
		{90, 20},
		{80, 10},
		{50, 5},
		{49, 0},
	}
	for _, c := range cases {
		if got := PercentForScore(bands, c.score); got != c.want {
			t.Fatalf("PercentForScore(%v) = %v, want %v", c.score, got, c.want)
		}
	}
}

func TestPercentForScoreUnsortedBands(t *testing.T) {
	bands := []Band{
		{MinScore: 50, Percent: 5},
		{MinScore: 90, Percent: 20},
		{MinScore: 75, Percent: 10},
	}
	if got := PercentForScore(bands, 92); got != 20 {
		t.Fatalf("expected highest matching band regardless of order, got %v", got)
	}
}

func TestAmount(t *testing.T) {
	if got := Amount(50000, 10); got != 5000 {
		t.Fatalf("expected 5000, got %v", got)
	}
}
