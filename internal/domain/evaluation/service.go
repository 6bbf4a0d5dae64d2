package evaluation

import (
	"context"
	"errors"

	"perfhub/internal/domain/scoring"
	"perfhub/internal/domain/weights"
)

var (
	ErrCycleNotActive  = errors.New("evaluation cycle is not active")
	ErrInvalidSubScore = errors.New("sub-score must be between 0 and 100")
	ErrInvalidCycle    = errors.New("cycle type must be self, manager or 360")
)

// ScoreSource yields an employee's category sub-score computed by another
// domain (goals, competencies).
type ScoreSource func(ctx context.Context, tenantID, employeeID string) (float64, error)

type Service struct {
	Store      StoreAPI
	Weights    *weights.Service
	GoalScores ScoreSource
	Competency ScoreSource
}

func NewService(store StoreAPI, weightSvc *weights.Service, goalScores, competencyScores ScoreSource) *Service {
	return &Service{Store: store, Weights: weightSvc, GoalScores: goalScores, Competency: competencyScores}
}

func (s *Service) CreateCycle(ctx context.Context, cycle Cycle) (string, error) {
	switch cycle.Type {
	case CycleTypeSelf, CycleTypeManager, CycleTypeThreeSixty:
	default:
		return "", ErrInvalidCycle
	}
	cycle.Status = CycleStatusDraft
	return s.Store.CreateCycle(ctx, cycle)
}

func (s *Service) ListCycles(ctx context.Context, tenantID string) ([]Cycle, error) {
	return s.Store.ListCycles(ctx, tenantID)
}

func (s *Service) ActivateCycle(ctx context.Context, tenantID, cycleID string) error {
	return s.transitionCycle(ctx, tenantID, cycleID, CycleStatusDraft, CycleStatusActive)
}

func (s *Service) CloseCycle(ctx context.Context, tenantID, cycleID string) error {
	return s.transitionCycle(ctx, tenantID, cycleID, CycleStatusActive, CycleStatusClosed)
}

func (s *Service) transitionCycle(ctx context.Context, tenantID, cycleID, from, to string) error {
	status, err := s.Store.CycleStatus(ctx, tenantID, cycleID)
	if err != nil {
		return err
	}
	if status != from {
		return ErrCycleNotActive
	}
	return s.Store.UpdateCycleStatus(ctx, tenantID, cycleID, to)
}

// Open ensures an evaluation sheet exists for the employee in an active cycle.
func (s *Service) Open(ctx context.Context, tenantID, cycleID, employeeID string) (string, error) {
	status, err := s.Store.CycleStatus(ctx, tenantID, cycleID)
	if err != nil {
		return "", err
	}
	if status != CycleStatusActive {
		return "", ErrCycleNotActive
	}
	return s.Store.UpsertEvaluation(ctx, tenantID, cycleID, employeeID)
}

// SetSubScore records a manually assessed category score (PIR, feedback).
func (s *Service) SetSubScore(ctx context.Context, tenantID, evaluationID string, category scoring.Category, score float64) error {
	if score < 0 || score > 100 {
		return ErrInvalidSubScore
	}
	return s.Store.SetSubScore(ctx, tenantID, evaluationID, category, score)
}

func (s *Service) Get(ctx context.Context, tenantID, cycleID, employeeID string) (Evaluation, error) {
	return s.Store.GetEvaluation(ctx, tenantID, cycleID, employeeID)
}

func (s *Service) List(ctx context.Context, tenantID, cycleID string) ([]Evaluation, error) {
	return s.Store.ListEvaluations(ctx, tenantID, cycleID)
}

// Finalize pulls the computed goal and competency sub-scores, resolves the
// weight configuration for the employee's position/department, and stores the
// composite. The configuration was validated on activation; resolution always
// yields a set summing to 100.
func (s *Service) Finalize(ctx context.Context, tenantID, cycleID, employeeID string) (Evaluation, error) {
	ev, err := s.Store.GetEvaluation(ctx, tenantID, cycleID, employeeID)
	if err != nil {
		return Evaluation{}, err
	}

	goalScore, err := s.GoalScores(ctx, tenantID, employeeID)
	if err != nil {
		return Evaluation{}, err
	}
	competencyScore, err := s.Competency(ctx, tenantID, employeeID)
	if err != nil {
		return Evaluation{}, err
	}
	ev.SubScores[scoring.CategoryGoals] = goalScore
	ev.SubScores[scoring.CategoryCompetencies] = competencyScore

	departmentID, positionID, err := s.Store.EmployeeSubject(ctx, tenantID, employeeID)
	if err != nil {
		return Evaluation{}, err
	}
	cfg, err := s.Weights.ResolveFor(ctx, tenantID, weights.Subject{DepartmentID: departmentID, PositionID: positionID})
	if err != nil {
		return Evaluation{}, err
	}

	composite := Composite(cfg.Weights, ev.SubScores)
	if err := s.Store.SetSubScore(ctx, tenantID, ev.ID, scoring.CategoryGoals, goalScore); err != nil {
		return Evaluation{}, err
	}
	if err := s.Store.SetSubScore(ctx, tenantID, ev.ID, scoring.CategoryCompetencies, competencyScore); err != nil {
		return Evaluation{}, err
	}
	if err := s.Store.Finalize(ctx, tenantID, ev.ID, composite, cfg.ID); err != nil {
		return Evaluation{}, err
	}

	ev.CompositeScore = &composite
	ev.WeightConfigID = cfg.ID
	ev.Status = EvaluationStatusFinalized
	return ev, nil
}
