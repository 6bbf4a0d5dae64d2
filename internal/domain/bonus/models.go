package bonus

import (
	"time"

	"perfhub/internal/domain/scoring"
)

// Policy defines how composite bonus scores map to payout percentages.
// Policies are workflow subjects: changes take effect only after the
// manager and HR stages approve them.
type Policy struct {
	ID        string                   `json:"id"`
	TenantID  string                   `json:"tenantId"`
	Name      string                   `json:"name"`
	Weights   map[scoring.Category]int `json:"weights"`
	Bands     []Band                   `json:"bands"`
	Status    string                   `json:"status"`
	Version   int                      `json:"version"`
	CreatedAt time.Time                `json:"createdAt"`
	UpdatedAt time.Time                `json:"updatedAt"`
}

// Band grants a payout percentage to any composite score at or above its
// floor.
type Band struct {
	MinScore float64 `json:"minScore"`
	Percent  float64 `json:"percent"`
}

// Calculation is a stored bonus computation with its inputs, kept for audit
// replay.
type Calculation struct {
	ID             string                       `json:"id"`
	TenantID       string                       `json:"tenantId"`
	EmployeeID     string                       `json:"employeeId"`
	PolicyID       string                       `json:"policyId"`
	BaseSalary     float64                      `json:"baseSalary"`
	Inputs         map[scoring.Category]float64 `json:"inputs"`
	CompositeScore float64                      `json:"compositeScore"`
	BonusPercent   float64                      `json:"bonusPercent"`
	Amount         float64                      `json:"amount"`
	CreatedAt      time.Time                    `json:"createdAt"`
}
