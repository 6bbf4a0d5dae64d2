package competency

import (
	"context"
	"errors"
)

var ErrInvalidLevel = errors.New("competency level must be between 0 and the competency max level")

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func (s *Service) ListCompetencies(ctx context.Context, tenantID string) ([]Competency, error) {
	return s.Store.ListCompetencies(ctx, tenantID)
}

func (s *Service) CreateCompetency(ctx context.Context, c Competency) (string, error) {
	if c.MaxLevel <= 0 {
		c.MaxLevel = 5
	}
	return s.Store.CreateCompetency(ctx, c)
}

func (s *Service) ListAssignments(ctx context.Context, tenantID, employeeID string) ([]Assignment, error) {
	return s.Store.ListAssignments(ctx, tenantID, employeeID)
}

func (s *Service) CreateAssignment(ctx context.Context, a Assignment) (string, error) {
	if a.RequiredLevel < 0 || a.CurrentLevel < 0 {
		return "", ErrInvalidLevel
	}
	if a.Weight <= 0 {
		a.Weight = 1
	}
	return s.Store.CreateAssignment(ctx, a)
}

func (s *Service) UpdateCurrentLevel(ctx context.Context, tenantID, assignmentID string, currentLevel int) error {
	if currentLevel < 0 {
		return ErrInvalidLevel
	}
	return s.Store.UpdateCurrentLevel(ctx, tenantID, assignmentID, currentLevel)
}

// EmployeeScore is the employee's weighted competency score.
func (s *Service) EmployeeScore(ctx context.Context, tenantID, employeeID string) (float64, error) {
	assignments, err := s.Store.ListAssignments(ctx, tenantID, employeeID)
	if err != nil {
		return 0, err
	}
	return WeightedScore(assignments), nil
}

// DepartmentGapMatrix buckets a department's assignments by gap severity.
func (s *Service) DepartmentGapMatrix(ctx context.Context, tenantID, departmentID string) ([]GapCell, error) {
	assignments, err := s.Store.ListAssignmentsByDepartment(ctx, tenantID, departmentID)
	if err != nil {
		return nil, err
	}
	return GapMatrix(assignments), nil
}
