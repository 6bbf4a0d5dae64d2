package benchmark

import (
	"context"
	"errors"
	"testing"

	"perfhub/internal/domain/scoring"
)

type fakeStore struct {
	scores []float64
	calls  int
}

func (f *fakeStore) PopulationScores(ctx context.Context, tenantID, cycleID, departmentID string) ([]float64, error) {
	f.calls++
	return f.scores, nil
}

func TestCutPointsFor(t *testing.T) {
	store := &fakeStore{scores: []float64{60, 70, 75, 80, 85, 90, 95, 100}}
	svc := NewService(store, nil)

	points, err := svc.CutPointsFor(context.Background(), "t1", "c1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if points.P50 != 80 {
		t.Fatalf("expected p50 = 80, got %v", points.P50)
	}
	if points.P25 != 70 || points.P75 != 90 || points.P90 != 100 {
		t.Fatalf("unexpected cut points: %+v", points)
	}
	if points.Size != 8 {
		t.Fatalf("expected size 8, got %d", points.Size)
	}
}

func TestCutPointsForEmptyPopulation(t *testing.T) {
	svc := NewService(&fakeStore{}, nil)
	if _, err := svc.CutPointsFor(context.Background(), "t1", "c1", ""); !errors.Is(err, ErrEmptyPopulation) {
		t.Fatalf("expected empty population error, got %v", err)
	}
}

func TestStandingFor(t *testing.T) {
	store := &fakeStore{scores: []float64{60, 70, 75, 80, 85, 90, 95, 100}}
	svc := NewService(store, nil)

	standing, err := svc.StandingFor(context.Background(), "t1", "c1", "", 96)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if standing.Band != scoring.BandTop25 {
		t.Fatalf("expected top_25 for 96 against p90=100, got %s", standing.Band)
	}

	standing, err = svc.StandingFor(context.Background(), "t1", "c1", "", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if standing.Band != scoring.BandTop10 {
		t.Fatalf("expected top_10 for 100, got %s", standing.Band)
	}
}
