package notifications

import (
	"fmt"

	"perfhub/internal/domain/workflow"
)

// subjectLabels maps a workflow kind to the noun used in notification text.
var subjectLabels = map[string]string{
	workflow.KindGoalApproval:   "Goal",
	workflow.KindJobDescription: "Job description",
	workflow.KindBonusPolicy:    "Bonus policy",
}

func subjectLabel(kind string) string {
	if l, ok := subjectLabels[kind]; ok {
		return l
	}
	return "Item"
}

// FromDecision builds the notification for the owner of a workflow subject
// after an approver has acted on it.
func FromDecision(rec workflow.ApprovalRecord, subjectName string) Notification {
	label := subjectLabel(rec.Kind)
	n := Notification{
		Type:  TypeStageAdvanced,
		Title: fmt.Sprintf("%s moved to %s", label, rec.ToStatus),
		Body:  fmt.Sprintf("%q is now %s.", subjectName, rec.ToStatus),
		Link:  fmt.Sprintf("/%s/%s", rec.Kind, rec.SubjectID),
	}
	switch rec.ToStatus {
	case workflow.StatusApproved:
		n.Type = TypeGoalApproved
		n.Title = fmt.Sprintf("%s approved", label)
		n.Body = fmt.Sprintf("%q has been approved.", subjectName)
	case workflow.StatusRejected:
		n.Type = TypeGoalRejected
		n.Title = fmt.Sprintf("%s rejected", label)
		n.Body = fmt.Sprintf("%q was rejected: %s", subjectName, rec.Comments)
	}
	return n
}

// SLABreach builds the notification sent to an approver whose queue holds
// items past the decision threshold.
func SLABreach(kind string, count, thresholdDays int) Notification {
	label := subjectLabel(kind)
	return Notification{
		Type:  TypeSLABreach,
		Title: fmt.Sprintf("%d %s approvals overdue", count, kind),
		Body: fmt.Sprintf("%s approvals have been pending for more than %d days. %d items need a decision.",
			label, thresholdDays, count),
		Link: "/approvals",
	}
}
