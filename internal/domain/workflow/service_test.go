package workflow

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeStore struct {
	state    SubjectState
	records  []ApprovalRecord
	conflict bool
}

func (f *fakeStore) SubjectState(ctx context.Context, tenantID, kind, subjectID string) (SubjectState, error) {
	return f.state, nil
}

func (f *fakeStore) AdvanceSubject(ctx context.Context, tenantID, kind string, seen SubjectState, record ApprovalRecord) (ApprovalRecord, error) {
	if f.conflict {
		return ApprovalRecord{}, ErrVersionConflict
	}
	record.ID = "rec-1"
	record.CreatedAt = time.Now()
	f.records = append(f.records, record)
	f.state.Status = record.ToStatus
	f.state.Version++
	return record, nil
}

func (f *fakeStore) ListRecords(ctx context.Context, kind, subjectID string) ([]ApprovalRecord, error) {
	out := make([]ApprovalRecord, len(f.records))
	copy(out, f.records)
	return out, nil
}

func TestServiceApproveAdvances(t *testing.T) {
	store := &fakeStore{state: SubjectState{ID: "jd-1", Status: StatusPendingOccupant, Version: 3}}
	svc := NewService(store)

	record, err := svc.Approve(context.Background(), "t1", KindJobDescription, "jd-1", Actor{ID: "u1", Role: RoleEmployee}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.ToStatus != StatusPendingManager {
		t.Fatalf("expected pending_manager, got %s", record.ToStatus)
	}
	if store.state.Version != 4 {
		t.Fatalf("expected version bump to 4, got %d", store.state.Version)
	}
}

func TestServiceTerminalStateRejected(t *testing.T) {
	store := &fakeStore{state: SubjectState{ID: "g-1", Status: StatusRejected}}
	svc := NewService(store)

	if _, err := svc.Approve(context.Background(), "t1", KindGoalApproval, "g-1", Actor{ID: "u1", Role: RoleManager}, ""); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected invalid state error, got %v", err)
	}
	if len(store.records) != 0 {
		t.Fatal("no record must be written on a failed decision")
	}
}

func TestServiceRejectRequiresComment(t *testing.T) {
	store := &fakeStore{state: SubjectState{ID: "g-1", Status: StatusPendingManager}}
	svc := NewService(store)

	if _, err := svc.Reject(context.Background(), "t1", KindGoalApproval, "g-1", Actor{ID: "u1", Role: RoleManager}, "too short"); !errors.Is(err, ErrCommentTooShort) {
		t.Fatalf("expected comment-too-short error, got %v", err)
	}

	record, err := svc.Reject(context.Background(), "t1", KindGoalApproval, "g-1", Actor{ID: "u1", Role: RoleManager}, "needs more detail")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.ToStatus != StatusRejected {
		t.Fatalf("expected rejected, got %s", record.ToStatus)
	}
}

func TestServiceVersionConflictSurfaces(t *testing.T) {
	store := &fakeStore{state: SubjectState{ID: "g-1", Status: StatusPendingManager}, conflict: true}
	svc := NewService(store)

	if _, err := svc.Approve(context.Background(), "t1", KindGoalApproval, "g-1", Actor{ID: "u1", Role: RoleManager}, ""); !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected version conflict error, got %v", err)
	}
}

func TestServiceSubmitOnlyFromDraft(t *testing.T) {
	store := &fakeStore{state: SubjectState{ID: "jd-1", Status: StatusDraft}}
	svc := NewService(store)

	record, err := svc.Submit(context.Background(), "t1", KindJobDescription, "jd-1", Actor{ID: "u1", Role: RoleEmployee})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.ToStatus != StatusPendingOccupant {
		t.Fatalf("expected pending_occupant, got %s", record.ToStatus)
	}

	if _, err := svc.Submit(context.Background(), "t1", KindJobDescription, "jd-1", Actor{ID: "u1", Role: RoleEmployee}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected invalid state on double submit, got %v", err)
	}
}

func TestServiceHistoryNewestFirst(t *testing.T) {
	store := &fakeStore{state: SubjectState{ID: "jd-1", Status: StatusPendingOccupant}}
	svc := NewService(store)

	_, _ = svc.Approve(context.Background(), "t1", KindJobDescription, "jd-1", Actor{ID: "u1", Role: RoleEmployee}, "")
	_, _ = svc.Approve(context.Background(), "t1", KindJobDescription, "jd-1", Actor{ID: "u2", Role: RoleManager}, "")

	history, err := svc.History(context.Background(), KindJobDescription, "jd-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 records, got %d", len(history))
	}
	if history[0].ApproverID != "u2" {
		t.Fatalf("expected newest record first, got approver %s", history[0].ApproverID)
	}

	status, err := svc.CurrentStatus(context.Background(), KindJobDescription, "jd-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != StatusPendingHR {
		t.Fatalf("expected folded status pending_hr, got %s", status)
	}
}
