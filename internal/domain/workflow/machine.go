package workflow

import "strings"

// Stage binds a pending status to the role authorized to decide it.
type Stage struct {
	Status string
	Role   string
}

// Definition is the stage chain of one workflow kind. AllowDirectApproval
// permits deciding a subject still in draft, for two-party flows where the
// draft is the request itself.
type Definition struct {
	Kind                string
	Stages              []Stage
	AllowDirectApproval bool
}

var definitions = map[string]Definition{
	KindGoalApproval: {
		Kind:                KindGoalApproval,
		Stages:              []Stage{{Status: StatusPendingManager, Role: RoleManager}},
		AllowDirectApproval: true,
	},
	KindJobDescription: {
		Kind: KindJobDescription,
		Stages: []Stage{
			{Status: StatusPendingOccupant, Role: RoleEmployee},
			{Status: StatusPendingManager, Role: RoleManager},
			{Status: StatusPendingHR, Role: RoleHR},
		},
	},
	KindBonusPolicy: {
		Kind: KindBonusPolicy,
		Stages: []Stage{
			{Status: StatusPendingManager, Role: RoleManager},
			{Status: StatusPendingHR, Role: RoleHR},
		},
	},
}

func DefinitionFor(kind string) (Definition, error) {
	def, ok := definitions[kind]
	if !ok {
		return Definition{}, ErrUnknownKind
	}
	return def, nil
}

func IsTerminal(status string) bool {
	return status == StatusApproved || status == StatusRejected
}

// FirstStage is the status a draft moves to on submission.
func (d Definition) FirstStage() string {
	return d.Stages[0].Status
}

func (d Definition) stageIndex(status string) (int, error) {
	if status == StatusDraft {
		if !d.AllowDirectApproval {
			return 0, ErrInvalidState
		}
		return 0, nil
	}
	for i, stage := range d.Stages {
		if stage.Status == status {
			return i, nil
		}
	}
	return 0, ErrInvalidState
}

// RequiredRole is the role authorized to decide a subject in the given status.
func (d Definition) RequiredRole(status string) (string, error) {
	index, err := d.stageIndex(status)
	if err != nil {
		return "", err
	}
	return d.Stages[index].Role, nil
}

// NextStatus is the status an approval advances the subject to: the next
// pending stage, or terminal approved at the final one.
func (d Definition) NextStatus(current string) (string, error) {
	index, err := d.stageIndex(current)
	if err != nil {
		return "", err
	}
	if index == len(d.Stages)-1 {
		return StatusApproved, nil
	}
	return d.Stages[index+1].Status, nil
}

// Decide validates a decision against the current status and returns the
// resulting status. All checks run before any mutation: terminal state first,
// then the rejection-comment rule (independent of role), then the stage role.
func (d Definition) Decide(current, decision, role, comments string) (string, error) {
	if IsTerminal(current) {
		return "", ErrInvalidState
	}
	if decision == DecisionRejected && len(strings.TrimSpace(comments)) < MinRejectCommentLen {
		return "", ErrCommentTooShort
	}

	required, err := d.RequiredRole(current)
	if err != nil {
		return "", err
	}
	if role != required {
		return "", ErrNotAuthorized
	}

	if decision == DecisionRejected {
		return StatusRejected, nil
	}
	return d.NextStatus(current)
}

// Fold derives the current status from the append-only record history:
// the latest record is authoritative, a subject with no records is draft.
// Records must be ordered oldest first.
func Fold(records []ApprovalRecord) string {
	if len(records) == 0 {
		return StatusDraft
	}
	return records[len(records)-1].ToStatus
}
