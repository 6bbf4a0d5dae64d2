package evaluation

import (
	"time"

	"perfhub/internal/domain/scoring"
)

type Cycle struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Status    string    `json:"status"`
}

// Evaluation is one employee's scoring sheet within a cycle: per-category
// sub-scores plus the composite once finalized.
type Evaluation struct {
	ID             string                       `json:"id"`
	TenantID       string                       `json:"tenantId"`
	CycleID        string                       `json:"cycleId"`
	EmployeeID     string                       `json:"employeeId"`
	SubScores      map[scoring.Category]float64 `json:"subScores"`
	CompositeScore *float64                     `json:"compositeScore,omitempty"`
	WeightConfigID string                       `json:"weightConfigId,omitempty"`
	Status         string                       `json:"status"`
	FinalizedAt    *time.Time                   `json:"finalizedAt,omitempty"`
}
