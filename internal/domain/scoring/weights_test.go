package scoring

import "testing"

func TestValidateWeights(t *testing.T) {
	weights := map[Category]int{
		CategoryCompetencies: 40,
		CategoryGoals:        30,
		CategoryPIR:          15,
		CategoryFeedback:     15,
	}
	if err := ValidateWeights(weights); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateWeightsWrongSum(t *testing.T) {
	weights := map[Category]int{
		CategoryCompetencies: 40,
		CategoryGoals:        30,
		CategoryPIR:          15,
		CategoryFeedback:     10,
	}
	if err := ValidateWeights(weights); err == nil {
		t.Fatal("expected error for weights summing to 95")
	}
}

func TestValidateWeightsEmpty(t *testing.T) {
	if err := ValidateWeights(nil); err == nil {
		t.Fatal("expected error for empty weight set")
	}
	if err := ValidateWeights(map[Category]int{}); err == nil {
		t.Fatal("expected error for empty weight set")
	}
}

func TestValidateWeightsNegative(t *testing.T) {
	weights := map[Category]int{
		CategoryCompetencies: 120,
		CategoryGoals:        -20,
	}
	if err := ValidateWeights(weights); err == nil {
		t.Fatal("expected error for negative weight")
	}
}
