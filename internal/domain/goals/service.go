package goals

import (
	"context"

	"perfhub/internal/domain/scoring"
	"perfhub/internal/domain/workflow"
)

type Service struct {
	Store    StoreAPI
	Workflow *workflow.Service
}

func NewService(store StoreAPI, wf *workflow.Service) *Service {
	return &Service{Store: store, Workflow: wf}
}

func (s *Service) Create(ctx context.Context, goal Goal) (string, error) {
	if goal.Weight <= 0 {
		return "", ErrInvalidWeight
	}
	if goal.TargetValue <= 0 {
		return "", ErrInvalidTarget
	}
	return s.Store.Create(ctx, goal)
}

func (s *Service) Get(ctx context.Context, tenantID, goalID string) (Goal, error) {
	return s.Store.Get(ctx, tenantID, goalID)
}

func (s *Service) List(ctx context.Context, tenantID, employeeID, managerID string) ([]Goal, error) {
	return s.Store.List(ctx, tenantID, employeeID, managerID)
}

func (s *Service) UpdateProgress(ctx context.Context, tenantID, goalID string, currentValue float64) error {
	return s.Store.UpdateProgress(ctx, tenantID, goalID, currentValue)
}

// UpdateWeight changes a goal's weight going forward. Past aggregations are
// never renormalized.
func (s *Service) UpdateWeight(ctx context.Context, tenantID, goalID string, weight int) error {
	if weight <= 0 {
		return ErrInvalidWeight
	}
	return s.Store.UpdateWeight(ctx, tenantID, goalID, weight)
}

func (s *Service) Submit(ctx context.Context, tenantID, goalID string, actor workflow.Actor) (workflow.ApprovalRecord, error) {
	return s.Workflow.Submit(ctx, tenantID, workflow.KindGoalApproval, goalID, actor)
}

func (s *Service) Approve(ctx context.Context, tenantID, goalID string, actor workflow.Actor, comments string) (workflow.ApprovalRecord, error) {
	return s.Workflow.Approve(ctx, tenantID, workflow.KindGoalApproval, goalID, actor, comments)
}

func (s *Service) Reject(ctx context.Context, tenantID, goalID string, actor workflow.Actor, comments string) (workflow.ApprovalRecord, error) {
	return s.Workflow.Reject(ctx, tenantID, workflow.KindGoalApproval, goalID, actor, comments)
}

func (s *Service) Duplicate(ctx context.Context, tenantID, goalID string) (string, error) {
	return s.Store.Duplicate(ctx, tenantID, goalID)
}

func (s *Service) History(ctx context.Context, goalID string) ([]workflow.ApprovalRecord, error) {
	return s.Workflow.History(ctx, workflow.KindGoalApproval, goalID)
}

// EmployeeFinalScore aggregates the employee's approved goals into one
// weighted score.
func (s *Service) EmployeeFinalScore(ctx context.Context, tenantID, employeeID string) (float64, error) {
	items, err := s.Store.ListApprovedByEmployee(ctx, tenantID, employeeID)
	if err != nil {
		return 0, err
	}
	return FinalScore(items), nil
}

// DepartmentRollup scores each department goal from the approved individual
// goals linked to it.
func (s *Service) DepartmentRollup(ctx context.Context, tenantID, departmentID string) ([]DepartmentGoal, error) {
	deptGoals, err := s.Store.ListDepartmentGoals(ctx, tenantID, departmentID)
	if err != nil {
		return nil, err
	}
	for i, dg := range deptGoals {
		linked, err := s.Store.ListByParentGoal(ctx, tenantID, dg.ID)
		if err != nil {
			return nil, err
		}
		weighted := make([]scoring.WeightedScore, 0, len(linked))
		for _, goal := range linked {
			weighted = append(weighted, scoring.WeightedScore{
				Score:  ProgressPercent(goal.CurrentValue, goal.TargetValue),
				Weight: float64(goal.Weight),
			})
		}
		deptGoals[i].LinkedCount = len(linked)
		deptGoals[i].Score = scoring.Aggregate(weighted)
	}
	return deptGoals, nil
}
