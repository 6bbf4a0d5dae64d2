package competency

import (
	"testing"

	"perfhub/internal/domain/scoring"
)

func TestClassify(t *testing.T) {
	a := Classify(Assignment{RequiredLevel: 4, CurrentLevel: 2})
	if a.Gap != 2 || a.GapCategory != scoring.GapSignificant {
		t.Fatalf("expected significant gap of 2, got gap=%d category=%s", a.Gap, a.GapCategory)
	}

	a = Classify(Assignment{RequiredLevel: 3, CurrentLevel: 5})
	if a.Gap != -2 || a.GapCategory != scoring.GapMeets {
		t.Fatalf("expected meets with gap -2, got gap=%d category=%s", a.Gap, a.GapCategory)
	}
}

func TestWeightedScore(t *testing.T) {
	assignments := []Assignment{
		{RequiredLevel: 4, CurrentLevel: 4, Weight: 50}, // 100
		{RequiredLevel: 4, CurrentLevel: 2, Weight: 50}, // 50
	}
	if got := WeightedScore(assignments); got != 75 {
		t.Fatalf("expected 75, got %v", got)
	}
}

func TestWeightedScoreEmpty(t *testing.T) {
	if got := WeightedScore(nil); got != 0 {
		t.Fatalf("expected 0 for no assignments, got %v", got)
	}
}

func TestGapMatrix(t *testing.T) {
	assignments := []Assignment{
		{CompetencyID: "c1", CompetencyName: "Go", RequiredLevel: 3, CurrentLevel: 3},
		{CompetencyID: "c1", CompetencyName: "Go", RequiredLevel: 3, CurrentLevel: 2},
		{CompetencyID: "c1", CompetencyName: "Go", RequiredLevel: 4, CurrentLevel: 1},
		{CompetencyID: "c2", CompetencyName: "SQL", RequiredLevel: 2, CurrentLevel: 2},
	}
	cells := GapMatrix(assignments)
	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(cells))
	}
	if cells[0].CompetencyID != "c1" || cells[0].Meets != 1 || cells[0].Close != 1 || cells[0].Significant != 1 {
		t.Fatalf("unexpected c1 cell: %+v", cells[0])
	}
	if cells[1].Meets != 1 {
		t.Fatalf("unexpected c2 cell: %+v", cells[1])
	}
}
