package goals

import "time"

// Goal is a scorable item: a (current, target) pair with a positive integer
// weight and a derived progress percent. Weight changes are never applied
// retroactively; aggregations always read the weight as it currently stands.
type Goal struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenantId"`
	EmployeeID   string    `json:"employeeId"`
	ManagerID    string    `json:"managerId"`
	DepartmentID string    `json:"departmentId,omitempty"`
	ParentGoalID string    `json:"parentGoalId,omitempty"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Metric       string    `json:"metric"`
	DueDate      time.Time `json:"dueDate"`
	Weight       int       `json:"weight"`
	CurrentValue float64   `json:"currentValue"`
	TargetValue  float64   `json:"targetValue"`
	Status       string    `json:"status"`
	Version      int       `json:"version"`
	Progress     float64   `json:"progress"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DepartmentGoal is a department objective whose score rolls up from the
// individual goals linked to it.
type DepartmentGoal struct {
	ID           string  `json:"id"`
	DepartmentID string  `json:"departmentId"`
	Title        string  `json:"title"`
	LinkedCount  int     `json:"linkedCount"`
	Score        float64 `json:"score"`
}
