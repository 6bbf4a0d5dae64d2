package goals

import "context"

type StoreAPI interface {
	Create(ctx context.Context, goal Goal) (string, error)
	Get(ctx context.Context, tenantID, goalID string) (Goal, error)
	List(ctx context.Context, tenantID, employeeID, managerID string) ([]Goal, error)
	ListApprovedByEmployee(ctx context.Context, tenantID, employeeID string) ([]Goal, error)
	ListByParentGoal(ctx context.Context, tenantID, parentGoalID string) ([]Goal, error)
	UpdateProgress(ctx context.Context, tenantID, goalID string, currentValue float64) error
	UpdateWeight(ctx context.Context, tenantID, goalID string, weight int) error
	Duplicate(ctx context.Context, tenantID, goalID string) (string, error)
	ListDepartmentGoals(ctx context.Context, tenantID, departmentID string) ([]DepartmentGoal, error)
	CreateDepartmentGoal(ctx context.Context, tenantID, departmentID, title string) (string, error)
}
