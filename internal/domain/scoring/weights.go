package scoring

import (
	"errors"
	"fmt"
)

// ErrInvalidWeights wraps every weight validation failure so callers can
// branch without string matching.
var ErrInvalidWeights = errors.New("invalid weight set")

// Category is a weighted scoring category in an evaluation composite.
type Category string

const (
	CategoryCompetencies Category = "competencies"
	CategoryGoals        Category = "goals"
	CategoryPIR          Category = "pir"
	CategoryFeedback     Category = "feedback"

	// Bonus composite categories.
	CategoryEvaluation Category = "evaluation"
	CategoryCompliance Category = "compliance"
)

var KnownCategories = []Category{
	CategoryCompetencies,
	CategoryGoals,
	CategoryPIR,
	CategoryFeedback,
}

// ValidateWeights checks that a category weight mapping is usable: non-empty,
// no negative entries, and percentages summing to exactly 100. An invalid
// mapping is rejected, never normalized.
func ValidateWeights(weights map[Category]int) error {
	if len(weights) == 0 {
		return fmt.Errorf("%w: weight set is empty, weights must sum to 100", ErrInvalidWeights)
	}
	sum := 0
	for category, percent := range weights {
		if percent < 0 {
			return fmt.Errorf("%w: weight for %q is negative", ErrInvalidWeights, category)
		}
		sum += percent
	}
	if sum != 100 {
		return fmt.Errorf("%w: weights sum to %d, must sum to exactly 100", ErrInvalidWeights, sum)
	}
	return nil
}
