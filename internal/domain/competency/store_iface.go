package competency

import "context"

type StoreAPI interface {
	ListCompetencies(ctx context.Context, tenantID string) ([]Competency, error)
	CreateCompetency(ctx context.Context, c Competency) (string, error)
	ListAssignments(ctx context.Context, tenantID, employeeID string) ([]Assignment, error)
	ListAssignmentsByDepartment(ctx context.Context, tenantID, departmentID string) ([]Assignment, error)
	CreateAssignment(ctx context.Context, a Assignment) (string, error)
	UpdateCurrentLevel(ctx context.Context, tenantID, assignmentID string, currentLevel int) error
}
