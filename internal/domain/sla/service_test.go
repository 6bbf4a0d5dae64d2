package sla

import (
	"context"
	"testing"
	"time"

	"perfhub/internal/domain/notifications"
	"perfhub/internal/domain/workflow"
)

type fakeSLAStore struct {
	items   map[string][]Item
	overdue map[string][]OverdueSubject
	hr      []string
}

func (f *fakeSLAStore) Items(_ context.Context, _, kind string) ([]Item, error) {
	return f.items[kind], nil
}

func (f *fakeSLAStore) OverdueSubjects(_ context.Context, _, kind string, _ time.Time) ([]OverdueSubject, error) {
	return f.overdue[kind], nil
}

func (f *fakeSLAStore) HRUserIDs(_ context.Context, _ string) ([]string, error) {
	return f.hr, nil
}

func (f *fakeSLAStore) TenantIDs(_ context.Context) ([]string, error) {
	return []string{"t1"}, nil
}

type captureNotifier struct {
	sent []string
}

func (c *captureNotifier) Notify(_ context.Context, _, userID string, _ notifications.Notification) error {
	c.sent = append(c.sent, userID)
	return nil
}

func TestReportForUsesThreshold(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeSLAStore{items: map[string][]Item{
		workflow.KindGoalApproval: {
			{CreatedAt: now.AddDate(0, 0, -10), Status: ItemStatusPending},
			{CreatedAt: now.AddDate(0, 0, -2), Status: ItemStatusPending},
		},
	}}
	svc := New(store, nil, 5)
	svc.Now = func() time.Time { return now }

	report, err := svc.ReportFor(context.Background(), "t1", workflow.KindGoalApproval)
	if err != nil {
		t.Fatalf("ReportFor: %v", err)
	}
	if report.CriticalCount != 1 {
		t.Fatalf("CriticalCount = %d, want 1", report.CriticalCount)
	}
	if report.ComplianceRate != 50 {
		t.Fatalf("ComplianceRate = %v, want 50", report.ComplianceRate)
	}
}

func TestEscalateNotifiesHRPerKind(t *testing.T) {
	store := &fakeSLAStore{
		overdue: map[string][]OverdueSubject{
			workflow.KindGoalApproval: {{SubjectID: "g1"}, {SubjectID: "g2"}},
		},
		hr: []string{"hr-1", "hr-2"},
	}
	notifier := &captureNotifier{}
	svc := New(store, notifier, 5)

	if err := svc.Escalate(context.Background(), "t1"); err != nil {
		t.Fatalf("Escalate: %v", err)
	}
	if len(notifier.sent) != 2 {
		t.Fatalf("sent %d notifications, want 2", len(notifier.sent))
	}
}

func TestEscalateNoRecipients(t *testing.T) {
	store := &fakeSLAStore{overdue: map[string][]OverdueSubject{
		workflow.KindGoalApproval: {{SubjectID: "g1"}},
	}}
	svc := New(store, &captureNotifier{}, 5)
	if err := svc.Escalate(context.Background(), "t1"); err != nil {
		t.Fatalf("Escalate: %v", err)
	}
}
