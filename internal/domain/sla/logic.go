package sla

import "time"

const (
	ItemStatusPending = "pending"
	ItemStatusDecided = "decided"
)

// Item is one workflow subject observed by the monitor.
type Item struct {
	CreatedAt time.Time
	DecidedAt *time.Time
	Status    string
}

// Report summarizes workflow timeliness for a set of items. The monitor is
// advisory; it never mutates item state.
type Report struct {
	AvgDays        float64 `json:"avgDays"`
	CriticalCount  int     `json:"criticalCount"`
	ComplianceRate float64 `json:"complianceRate"`
	Total          int     `json:"total"`
}

// Compute measures elapsed whole days between creation and decision, counts
// still-pending items older than the threshold as critical, and reports
// compliance as (total-critical)/total*100, 0 when there are no items.
func Compute(items []Item, thresholdDays int, now time.Time) Report {
	var report Report
	report.Total = len(items)
	if report.Total == 0 {
		return report
	}

	decided := 0
	totalDays := 0
	for _, item := range items {
		if item.DecidedAt != nil {
			totalDays += wholeDays(item.CreatedAt, *item.DecidedAt)
			decided++
			continue
		}
		if item.Status == ItemStatusPending && wholeDays(item.CreatedAt, now) > thresholdDays {
			report.CriticalCount++
		}
	}

	if decided > 0 {
		report.AvgDays = float64(totalDays) / float64(decided)
	}
	report.ComplianceRate = float64(report.Total-report.CriticalCount) / float64(report.Total) * 100
	return report
}

func wholeDays(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours() / 24)
}
