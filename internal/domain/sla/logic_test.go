package sla

import (
	"testing"
	"time"
)

func decided(created time.Time, afterDays int) Item {
	at := created.AddDate(0, 0, afterDays)
	return Item{CreatedAt: created, DecidedAt: &at, Status: ItemStatusDecided}
}

func TestComputeComplianceRate(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	base := now.AddDate(0, 0, -10)

	items := make([]Item, 0, 10)
	for i := 0; i < 8; i++ {
		items = append(items, decided(base, 2))
	}
	// Two pending items past the threshold.
	items = append(items,
		Item{CreatedAt: now.AddDate(0, 0, -9), Status: ItemStatusPending},
		Item{CreatedAt: now.AddDate(0, 0, -15), Status: ItemStatusPending},
	)

	report := Compute(items, 5, now)
	if report.CriticalCount != 2 {
		t.Fatalf("expected 2 critical items, got %d", report.CriticalCount)
	}
	if report.ComplianceRate != 80 {
		t.Fatalf("expected compliance rate 80, got %v", report.ComplianceRate)
	}
	if report.AvgDays != 2 {
		t.Fatalf("expected avg 2 days, got %v", report.AvgDays)
	}
}

func TestComputeEmpty(t *testing.T) {
	report := Compute(nil, 5, time.Now())
	if report.AvgDays != 0 || report.CriticalCount != 0 || report.ComplianceRate != 0 {
		t.Fatalf("expected zero report for no items, got %+v", report)
	}
}

func TestComputePendingWithinThreshold(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	items := []Item{
		{CreatedAt: now.AddDate(0, 0, -3), Status: ItemStatusPending},
	}
	report := Compute(items, 5, now)
	if report.CriticalCount != 0 {
		t.Fatalf("expected no critical items, got %d", report.CriticalCount)
	}
	if report.ComplianceRate != 100 {
		t.Fatalf("expected compliance rate 100, got %v", report.ComplianceRate)
	}
}

func TestComputeNoDecidedItems(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	items := []Item{
		{CreatedAt: now.AddDate(0, 0, -1), Status: ItemStatusPending},
	}
	report := Compute(items, 5, now)
	if report.AvgDays != 0 {
		t.Fatalf("expected avg 0 with no decided items, got %v", report.AvgDays)
	}
}
