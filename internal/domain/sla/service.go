package sla

import (
	"context"
	"log/slog"
	"time"

	"perfhub/internal/domain/notifications"
	"perfhub/internal/domain/workflow"
)

type StoreAPI interface {
	Items(ctx context.Context, tenantID, kind string) ([]Item, error)
	OverdueSubjects(ctx context.Context, tenantID, kind string, cutoff time.Time) ([]OverdueSubject, error)
	HRUserIDs(ctx context.Context, tenantID string) ([]string, error)
	TenantIDs(ctx context.Context) ([]string, error)
}

type Notifier interface {
	Notify(ctx context.Context, tenantID, userID string, n notifications.Notification) error
}

type Service struct {
	Store         StoreAPI
	Notifier      Notifier
	ThresholdDays int
	Now           func() time.Time
}

func New(store StoreAPI, notifier Notifier, thresholdDays int) *Service {
	return &Service{Store: store, Notifier: notifier, ThresholdDays: thresholdDays, Now: time.Now}
}

func (s *Service) ReportFor(ctx context.Context, tenantID, kind string) (Report, error) {
	items, err := s.Store.Items(ctx, tenantID, kind)
	if err != nil {
		return Report{}, err
	}
	return Compute(items, s.ThresholdDays, s.Now()), nil
}

// ReportAll computes one panel per workflow kind.
func (s *Service) ReportAll(ctx context.Context, tenantID string) ([]KindReport, error) {
	kinds := []string{workflow.KindGoalApproval, workflow.KindJobDescription, workflow.KindBonusPolicy}
	out := make([]KindReport, 0, len(kinds))
	for _, kind := range kinds {
		report, err := s.ReportFor(ctx, tenantID, kind)
		if err != nil {
			return nil, err
		}
		out = append(out, KindReport{Kind: kind, Report: report})
	}
	return out, nil
}

func (s *Service) Overdue(ctx context.Context, tenantID, kind string) ([]OverdueSubject, error) {
	cutoff := s.Now().AddDate(0, 0, -s.ThresholdDays)
	return s.Store.OverdueSubjects(ctx, tenantID, kind, cutoff)
}

// Escalate notifies HR about every kind with overdue approvals. Notification
// failures are logged, not returned; a half-delivered escalation run should
// still cover the remaining recipients.
func (s *Service) Escalate(ctx context.Context, tenantID string) error {
	recipients, err := s.Store.HRUserIDs(ctx, tenantID)
	if err != nil {
		return err
	}
	if len(recipients) == 0 || s.Notifier == nil {
		return nil
	}

	kinds := []string{workflow.KindGoalApproval, workflow.KindJobDescription, workflow.KindBonusPolicy}
	for _, kind := range kinds {
		overdue, err := s.Overdue(ctx, tenantID, kind)
		if err != nil {
			return err
		}
		if len(overdue) == 0 {
			continue
		}
		n := notifications.SLABreach(kind, len(overdue), s.ThresholdDays)
		for _, userID := range recipients {
			if err := s.Notifier.Notify(ctx, tenantID, userID, n); err != nil {
				slog.Warn("sla escalation notify failed", "kind", kind, "user", userID, "err", err)
			}
		}
	}
	return nil
}

// TenantIDs exposes the tenant list for the escalation loop.
func (s *Service) TenantIDs(ctx context.Context) ([]string, error) {
	return s.Store.TenantIDs(ctx)
}
