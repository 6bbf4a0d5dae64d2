package pdi

import (
	"testing"
	"time"
)

func TestMarkOverdue(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	actions := []Action{
		{Status: ActionStatusOpen, DueDate: now.AddDate(0, 0, -1)},
		{Status: ActionStatusDone, DueDate: now.AddDate(0, 0, -1)},
		{Status: ActionStatusInProgress, DueDate: now.AddDate(0, 0, 1)},
	}
	marked := MarkOverdue(actions, now)
	if !marked[0].Overdue {
		t.Fatal("expected open past-due action to be overdue")
	}
	if marked[1].Overdue {
		t.Fatal("done actions are never overdue")
	}
	if marked[2].Overdue {
		t.Fatal("actions before due date are not overdue")
	}
}

func TestSummarize(t *testing.T) {
	actions := []Action{
		{Status: ActionStatusDone},
		{Status: ActionStatusDone},
		{Status: ActionStatusOpen, Overdue: true},
		{Status: ActionStatusInProgress},
	}
	summary := Summarize("e1", actions)
	if summary.Total != 4 || summary.Done != 2 || summary.Overdue != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.CompletionRate != 50 {
		t.Fatalf("expected 50%% completion, got %v", summary.CompletionRate)
	}
}

func TestSummarizeEmptyPlan(t *testing.T) {
	summary := Summarize("e1", nil)
	if summary.CompletionRate != 0 {
		t.Fatalf("expected 0 for empty plan, got %v", summary.CompletionRate)
	}
}
