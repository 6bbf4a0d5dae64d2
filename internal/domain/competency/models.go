package competency

import (
	"time"

	"perfhub/internal/domain/scoring"
)

// Competency is a named skill with a level scale, usually 1-5.
type Competency struct {
	ID          string `json:"id"`
	TenantID    string `json:"tenantId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MaxLevel    int    `json:"maxLevel"`
}

// Assignment pins a competency to an employee with a required level, the
// employee's assessed current level, and a weight for score aggregation.
type Assignment struct {
	ID             string              `json:"id"`
	TenantID       string              `json:"tenantId"`
	CompetencyID   string              `json:"competencyId"`
	CompetencyName string              `json:"competencyName"`
	EmployeeID     string              `json:"employeeId"`
	RequiredLevel  int                 `json:"requiredLevel"`
	CurrentLevel   int                 `json:"currentLevel"`
	Weight         int                 `json:"weight"`
	Gap            int                 `json:"gap"`
	GapCategory    scoring.GapCategory `json:"gapCategory"`
	AssessedAt     time.Time           `json:"assessedAt"`
}

// GapCell is one entry of a department gap matrix.
type GapCell struct {
	CompetencyID   string `json:"competencyId"`
	CompetencyName string `json:"competencyName"`
	Meets          int    `json:"meets"`
	Close          int    `json:"close"`
	Significant    int    `json:"significant"`
}
