package weights

import (
	"testing"

	"perfhub/internal/domain/scoring"
)

func evenWeights() map[scoring.Category]int {
	return map[scoring.Category]int{
		scoring.CategoryCompetencies: 25,
		scoring.CategoryGoals:        25,
		scoring.CategoryPIR:          25,
		scoring.CategoryFeedback:     25,
	}
}

func TestResolvePositionOverridesDepartment(t *testing.T) {
	configs := []Configuration{
		{ID: "g", Scope: ScopeGlobal, Active: true, Weights: evenWeights()},
		{ID: "d", Scope: ScopeDepartment, ScopeRef: "dep-1", Active: true, Weights: evenWeights()},
		{ID: "p", Scope: ScopePosition, ScopeRef: "pos-1", Active: true, Weights: evenWeights()},
	}

	cfg, ok := Resolve(configs, Subject{DepartmentID: "dep-1", PositionID: "pos-1"})
	if !ok || cfg.ID != "p" {
		t.Fatalf("expected position config, got %+v ok=%v", cfg, ok)
	}
}

func TestResolveFallsBackToDepartmentThenGlobal(t *testing.T) {
	configs := []Configuration{
		{ID: "g", Scope: ScopeGlobal, Active: true, Weights: evenWeights()},
		{ID: "d", Scope: ScopeDepartment, ScopeRef: "dep-1", Active: true, Weights: evenWeights()},
	}

	cfg, ok := Resolve(configs, Subject{DepartmentID: "dep-1", PositionID: "pos-9"})
	if !ok || cfg.ID != "d" {
		t.Fatalf("expected department config, got %+v ok=%v", cfg, ok)
	}

	cfg, ok = Resolve(configs, Subject{DepartmentID: "dep-9"})
	if !ok || cfg.ID != "g" {
		t.Fatalf("expected global config, got %+v ok=%v", cfg, ok)
	}
}

func TestResolveSkipsInactive(t *testing.T) {
	configs := []Configuration{
		{ID: "g", Scope: ScopeGlobal, Active: true, Weights: evenWeights()},
		{ID: "p", Scope: ScopePosition, ScopeRef: "pos-1", Active: false, Weights: evenWeights()},
	}

	cfg, ok := Resolve(configs, Subject{PositionID: "pos-1"})
	if !ok || cfg.ID != "g" {
		t.Fatalf("expected global config when position config inactive, got %+v ok=%v", cfg, ok)
	}
}

func TestResolveNothingApplies(t *testing.T) {
	if _, ok := Resolve(nil, Subject{}); ok {
		t.Fatal("expected no configuration")
	}
}
