package pdi

import "time"

const (
	ActionStatusOpen       = "open"
	ActionStatusInProgress = "in_progress"
	ActionStatusDone       = "done"
)

// Action is one time-boxed development item in an employee's plan,
// optionally linked to the competency whose gap it addresses.
type Action struct {
	ID           string     `json:"id"`
	TenantID     string     `json:"tenantId"`
	EmployeeID   string     `json:"employeeId"`
	CompetencyID string     `json:"competencyId,omitempty"`
	Title        string     `json:"title"`
	ActionType   string     `json:"actionType"`
	DueDate      time.Time  `json:"dueDate"`
	Status       string     `json:"status"`
	Overdue      bool       `json:"overdue"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// PlanSummary describes one employee's plan progress.
type PlanSummary struct {
	EmployeeID     string  `json:"employeeId"`
	Total          int     `json:"total"`
	Done           int     `json:"done"`
	Overdue        int     `json:"overdue"`
	CompletionRate float64 `json:"completionRate"`
}
