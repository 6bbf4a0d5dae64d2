package workflow

import "context"

type StoreAPI interface {
	SubjectState(ctx context.Context, tenantID, kind, subjectID string) (SubjectState, error)
	// AdvanceSubject performs the optimistic compare-and-set: the status
	// update and the history insert commit in one transaction, and a stale
	// version yields ErrVersionConflict with nothing applied.
	AdvanceSubject(ctx context.Context, tenantID, kind string, seen SubjectState, record ApprovalRecord) (ApprovalRecord, error)
	ListRecords(ctx context.Context, kind, subjectID string) ([]ApprovalRecord, error)
}
