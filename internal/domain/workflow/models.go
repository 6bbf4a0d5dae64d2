package workflow

import "time"

// ApprovalRecord is one decision in a subject's append-only approval history.
// Records are never mutated after creation; corrections require a new record.
type ApprovalRecord struct {
	ID           string    `json:"id"`
	SubjectID    string    `json:"subjectId"`
	Kind         string    `json:"kind"`
	Stage        string    `json:"stage"`
	Decision     string    `json:"decision"`
	ToStatus     string    `json:"toStatus"`
	ApproverID   string    `json:"approverId"`
	ApproverRole string    `json:"approverRole"`
	Comments     string    `json:"comments,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Actor is the already-authenticated approver; role resolution happened
// upstream, the engine only re-checks role against stage.
type Actor struct {
	ID   string
	Role string
}

// SubjectState is the persisted status snapshot of a workflow subject,
// versioned for optimistic locking.
type SubjectState struct {
	ID       string
	TenantID string
	Status   string
	Version  int
}
