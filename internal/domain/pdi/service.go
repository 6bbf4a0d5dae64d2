package pdi

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidStatus = errors.New("status must be open, in_progress or done")

type Service struct {
	Store StoreAPI
	Now   func() time.Time
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store, Now: time.Now}
}

func (s *Service) Create(ctx context.Context, action Action) (string, error) {
	return s.Store.Create(ctx, action)
}

func (s *Service) ListByEmployee(ctx context.Context, tenantID, employeeID string) ([]Action, error) {
	actions, err := s.Store.ListByEmployee(ctx, tenantID, employeeID)
	if err != nil {
		return nil, err
	}
	return MarkOverdue(actions, s.Now()), nil
}

func (s *Service) UpdateStatus(ctx context.Context, tenantID, actionID, status string) error {
	switch status {
	case ActionStatusOpen, ActionStatusInProgress, ActionStatusDone:
	default:
		return ErrInvalidStatus
	}
	return s.Store.UpdateStatus(ctx, tenantID, actionID, status)
}

func (s *Service) Summary(ctx context.Context, tenantID, employeeID string) (PlanSummary, error) {
	actions, err := s.ListByEmployee(ctx, tenantID, employeeID)
	if err != nil {
		return PlanSummary{}, err
	}
	return Summarize(employeeID, actions), nil
}
