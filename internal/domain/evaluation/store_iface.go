package evaluation

import (
	"context"

	"perfhub/internal/domain/scoring"
)

type StoreAPI interface {
	CreateCycle(ctx context.Context, cycle Cycle) (string, error)
	ListCycles(ctx context.Context, tenantID string) ([]Cycle, error)
	CycleStatus(ctx context.Context, tenantID, cycleID string) (string, error)
	UpdateCycleStatus(ctx context.Context, tenantID, cycleID, status string) error
	UpsertEvaluation(ctx context.Context, tenantID, cycleID, employeeID string) (string, error)
	GetEvaluation(ctx context.Context, tenantID, cycleID, employeeID string) (Evaluation, error)
	ListEvaluations(ctx context.Context, tenantID, cycleID string) ([]Evaluation, error)
	SetSubScore(ctx context.Context, tenantID, evaluationID string, category scoring.Category, score float64) error
	Finalize(ctx context.Context, tenantID, evaluationID string, composite float64, weightConfigID string) error
	EmployeeSubject(ctx context.Context, tenantID, employeeID string) (departmentID, positionID string, err error)
}
