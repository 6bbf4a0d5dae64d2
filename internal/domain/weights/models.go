package weights

import (
	"time"

	"perfhub/internal/domain/scoring"
)

const (
	ScopeGlobal     = "global"
	ScopeDepartment = "department"
	ScopePosition   = "position"
)

// Configuration maps scoring categories to integer percentages for one
// administrative scope. Only active configurations participate in resolution,
// and an active configuration always sums to exactly 100.
type Configuration struct {
	ID        string                   `json:"id"`
	TenantID  string                   `json:"tenantId"`
	Name      string                   `json:"name"`
	Scope     string                   `json:"scope"`
	ScopeRef  string                   `json:"scopeRef,omitempty"`
	Weights   map[scoring.Category]int `json:"weights"`
	Active    bool                     `json:"active"`
	CreatedAt time.Time                `json:"createdAt"`
	UpdatedAt time.Time                `json:"updatedAt"`
}

// Subject identifies who a configuration is being resolved for.
type Subject struct {
	DepartmentID string
	PositionID   string
}
