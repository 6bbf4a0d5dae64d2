package bonus

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

// CreatePolicy validates the weight set and bands before the draft is stored.
func (s *Service) CreatePolicy(ctx context.Context, policy Policy) (string, error) {
	if err := scoring.ValidateWeights(policy.Weights); err != nil {
		return "", err
	}
	for _, band := range policy.Bands {
		if band.MinScore < 0 || band.Percent < 0 {
			return "", ErrInvalidBand
		}
	}
	return s.Store.CreatePolicy(ctx, policy)
}

func (s *Service) GetPolicy(ctx context.Context, tenantID, policyID string) (Policy, error) {
	return s.Store.GetPolicy(ctx, tenantID, policyID)
}

func (s *Service) ListPolicies(ctx context.Context, tenantID string) ([]Policy, error) {
	return s.Store.ListPolicies(ctx, tenantID)
}

func (s *Service) SubmitPolicy(ctx context.Context, tenantID, policyID string, actor workflow.Actor) (workflow.ApprovalRecord, error) {
	return s.Workflow.Submit(ctx, tenantID, workflow.KindBonusPolicy, policyID, actor)
}

func (s *Service) ApprovePolicy(ctx context.Context, tenantID, policyID string, actor workflow.Actor, comments string) (workflow.ApprovalRecord, error) {
	return s.Workflow.Approve(ctx, tenantID, workflow.KindBonusPolicy, policyID, actor, comments)
}

func (s *Service) RejectPolicy(ctx context.Context, tenantID, policyID string, actor workflow.Actor, comments string) (workflow.ApprovalRecord, error) {
	return s.Workflow.Reject(ctx, tenantID, workflow.KindBonusPolicy, policyID, actor, comments)
}

func (s *Service) PolicyHistory(ctx context.Context, policyID string) ([]workflow.ApprovalRecord, error) {
	return s.Workflow.History(ctx, workflow.KindBonusPolicy, policyID)
}

// Calculate runs the approved policy over the supplied inputs and stores the
// result with its inputs for later audit replay.
func (s *Service) Calculate(ctx context.Context, tenantID, employeeID string, baseSalary float64, inputs map[scoring.Category]float64) (Calculation, error) {
	policy, err := s.Store.ApprovedPolicy(ctx, tenantID)
	if err != nil {
		return Calculation{}, err
	}

	composite := CompositeScore(policy.Weights, inputs)
	percent := PercentForScore(policy.Bands, composite)

	calc := Calculation{
		TenantID:       tenantID,
		EmployeeID:     employeeID,
		PolicyID:       policy.ID,
		BaseSalary:     baseSalary,
		Inputs:         inputs,
		CompositeScore: composite,
		BonusPercent:   percent,
		Amount:         Amount(baseSalary, percent),
	}
	id, err := s.Store.CreateCalculation(ctx, calc)
	if err != nil {
		return Calculation{}, err
	}
	calc.ID = id
	return calc, nil
}

func (s *Service) ListCalculations(ctx context.Context, tenantID, employeeID string) ([]Calculation, error) {
	return s.Store.ListCalculations(ctx, tenantID, employeeID)
}
