package workflow

import (
	"errors"
	"testing"
)

func TestDecideHappyPathHierarchical(t *testing.T) {
	def, err := DefinitionFor(KindJobDescription)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	status := def.FirstStage()
	steps := []struct {
		role string
		want string
	}{
		{RoleEmployee, StatusPendingManager},
		{RoleManager, StatusPendingHR},
		{RoleHR, StatusApproved},
	}
	for _, step := range steps {
		next, err := def.Decide(status, DecisionApproved, step.role, "")
		if err != nil {
			t.Fatalf("decide at %s failed: %v", status, err)
		}
		if next != step.want {
			t.Fatalf("expected %s after %s, got %s", step.want, status, next)
		}
		status = next
	}
}

func TestDecideTerminalIsImmutable(t *testing.T) {
	def, _ := DefinitionFor(KindGoalApproval)
	for _, terminal := range []string{StatusApproved, StatusRejected} {
		if _, err := def.Decide(terminal, DecisionApproved, RoleManager, ""); !errors.Is(err, ErrInvalidState) {
			t.Fatalf("expected invalid state error from %s, got %v", terminal, err)
		}
		if _, err := def.Decide(terminal, DecisionRejected, RoleManager, "a perfectly valid reason"); !errors.Is(err, ErrInvalidState) {
			t.Fatalf("expected invalid state error from %s, got %v", terminal, err)
		}
	}
}

func TestDecideRejectCommentLength(t *testing.T) {
	def, _ := DefinitionFor(KindGoalApproval)

	if _, err := def.Decide(StatusPendingManager, DecisionRejected, RoleManager, "too short"); !errors.Is(err, ErrCommentTooShort) {
		t.Fatalf("expected comment-too-short error, got %v", err)
	}
	next, err := def.Decide(StatusPendingManager, DecisionRejected, RoleManager, "needs more detail")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != StatusRejected {
		t.Fatalf("expected rejected, got %s", next)
	}
}

func TestDecideCommentCheckedBeforeRole(t *testing.T) {
	def, _ := DefinitionFor(KindJobDescription)
	// Wrong role AND short comment: the validation error wins.
	if _, err := def.Decide(StatusPendingHR, DecisionRejected, RoleEmployee, "nope"); !errors.Is(err, ErrCommentTooShort) {
		t.Fatalf("expected comment-too-short error, got %v", err)
	}
}

func TestDecideRoleAuthorization(t *testing.T) {
	def, _ := DefinitionFor(KindJobDescription)
	if _, err := def.Decide(StatusPendingHR, DecisionApproved, RoleManager, ""); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("expected authorization error, got %v", err)
	}
}

func TestDecideDirectApprovalFromDraft(t *testing.T) {
	goal, _ := DefinitionFor(KindGoalApproval)
	next, err := goal.Decide(StatusDraft, DecisionApproved, RoleManager, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != StatusApproved {
		t.Fatalf("expected approved, got %s", next)
	}

	jd, _ := DefinitionFor(KindJobDescription)
	if _, err := jd.Decide(StatusDraft, DecisionApproved, RoleEmployee, ""); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected invalid state for draft decision without direct approval, got %v", err)
	}
}

func TestDefinitionForUnknownKind(t *testing.T) {
	if _, err := DefinitionFor("vacation_request"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected unknown kind error, got %v", err)
	}
}

func TestFold(t *testing.T) {
	if got := Fold(nil); got != StatusDraft {
		t.Fatalf("expected draft for empty history, got %s", got)
	}
	records := []ApprovalRecord{
		{Decision: DecisionApproved, ToStatus: StatusPendingManager},
		{Decision: DecisionApproved, ToStatus: StatusPendingHR},
		{Decision: DecisionRejected, ToStatus: StatusRejected},
	}
	if got := Fold(records); got != StatusRejected {
		t.Fatalf("expected rejected, got %s", got)
	}
}
