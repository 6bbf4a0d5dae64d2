package notifications

import (
	"strings"
	"testing"

	"perfhub/internal/domain/workflow"
)

func TestFromDecisionApproved(t *testing.T) {
	rec := workflow.ApprovalRecord{
		Kind:     workflow.KindGoalApproval,
		ToStatus: workflow.StatusApproved,
	}
	n := FromDecision(rec, "Q3 revenue target")
	if n.Type != TypeGoalApproved {
		t.Fatalf("type = %s, want %s", n.Type, TypeGoalApproved)
	}
	if !strings.Contains(n.Body, "Q3 revenue target") {
		t.Fatalf("body missing subject name: %s", n.Body)
	}
}

func TestFromDecisionRejectedCarriesComment(t *testing.T) {
	rec := workflow.ApprovalRecord{
		Kind:     workflow.KindBonusPolicy,
		ToStatus: workflow.StatusRejected,
		Comments: "bands overlap at 85",
	}
	n := FromDecision(rec, "FY26 policy")
	if n.Type != TypeGoalRejected {
		t.Fatalf("type = %s", n.Type)
	}
	if !strings.Contains(n.Body, "bands overlap at 85") {
		t.Fatalf("rejection comment not carried: %s", n.Body)
	}
}

func TestFromDecisionIntermediateStage(t *testing.T) {
	rec := workflow.ApprovalRecord{
		Kind:     workflow.KindJobDescription,
		ToStatus: workflow.StatusPendingHR,
	}
	n := FromDecision(rec, "Senior Engineer JD")
	if n.Type != TypeStageAdvanced {
		t.Fatalf("type = %s, want %s", n.Type, TypeStageAdvanced)
	}
}

func TestSLABreach(t *testing.T) {
	n := SLABreach(workflow.KindGoalApproval, 3, 5)
	if n.Type != TypeSLABreach {
		t.Fatalf("type = %s", n.Type)
	}
	if !strings.Contains(n.Body, "5 days") {
		t.Fatalf("threshold missing from body: %s", n.Body)
	}
}
