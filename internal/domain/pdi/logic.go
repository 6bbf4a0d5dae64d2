package pdi

import "time"

// MarkOverdue flags open actions past their due date. Flags are derived at
// read time; stored rows are untouched.
func MarkOverdue(actions []Action, now time.Time) []Action {
	for i, action := range actions {
		if action.Status != ActionStatusDone && now.After(action.DueDate) {
			actions[i].Overdue = true
		}
	}
	return actions
}

// Summarize reduces an employee's actions to plan progress. An empty plan is
// 0% complete.
func Summarize(employeeID string, actions []Action) PlanSummary {
	summary := PlanSummary{EmployeeID: employeeID, Total: len(actions)}
	for _, action := range actions {
		if action.Status == ActionStatusDone {
			summary.Done++
		}
		if action.Overdue {
			summary.Overdue++
		}
	}
	if summary.Total > 0 {
		summary.CompletionRate = float64(summary.Done) / float64(summary.Total) * 100
	}
	return summary
}
