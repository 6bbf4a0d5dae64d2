package workflow

import "context"

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

// Submit moves a draft subject to its first pending stage. Submitting a
// subject that already left draft is an invalid-state error.
func (s *Service) Submit(ctx context.Context, tenantID, kind, subjectID string, actor Actor) (ApprovalRecord, error) {
	def, err := DefinitionFor(kind)
	if err != nil {
		return ApprovalRecord{}, err
	}
	state, err := s.Store.SubjectState(ctx, tenantID, kind, subjectID)
	if err != nil {
		return ApprovalRecord{}, err
	}
	if state.Status != StatusDraft {
		return ApprovalRecord{}, ErrInvalidState
	}

	record := ApprovalRecord{
		SubjectID:    subjectID,
		Kind:         kind,
		Stage:        StatusDraft,
		Decision:     DecisionSubmitted,
		ToStatus:     def.FirstStage(),
		ApproverID:   actor.ID,
		ApproverRole: actor.Role,
	}
	return s.Store.AdvanceSubject(ctx, tenantID, kind, state, record)
}

// Approve advances the subject one stage, or to terminal approved at the
// final stage. Stage-role authorization and state checks run before any write.
func (s *Service) Approve(ctx context.Context, tenantID, kind, subjectID string, actor Actor, comments string) (ApprovalRecord, error) {
	return s.decide(ctx, tenantID, kind, subjectID, actor, DecisionApproved, comments)
}

// Reject moves the subject to terminal rejected. Comments are mandatory and
// must be descriptive; that check precedes the role check.
func (s *Service) Reject(ctx context.Context, tenantID, kind, subjectID string, actor Actor, comments string) (ApprovalRecord, error) {
	return s.decide(ctx, tenantID, kind, subjectID, actor, DecisionRejected, comments)
}

func (s *Service) decide(ctx context.Context, tenantID, kind, subjectID string, actor Actor, decision, comments string) (ApprovalRecord, error) {
	def, err := DefinitionFor(kind)
	if err != nil {
		return ApprovalRecord{}, err
	}
	state, err := s.Store.SubjectState(ctx, tenantID, kind, subjectID)
	if err != nil {
		return ApprovalRecord{}, err
	}

	next, err := def.Decide(state.Status, decision, actor.Role, comments)
	if err != nil {
		return ApprovalRecord{}, err
	}

	record := ApprovalRecord{
		SubjectID:    subjectID,
		Kind:         kind,
		Stage:        state.Status,
		Decision:     decision,
		ToStatus:     next,
		ApproverID:   actor.ID,
		ApproverRole: actor.Role,
		Comments:     comments,
	}
	return s.Store.AdvanceSubject(ctx, tenantID, kind, state, record)
}

// History returns the subject's approval records, newest first.
func (s *Service) History(ctx context.Context, kind, subjectID string) ([]ApprovalRecord, error) {
	records, err := s.Store.ListRecords(ctx, kind, subjectID)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// CurrentStatus recomputes the subject status as a fold of its history,
// bypassing the denormalized column.
func (s *Service) CurrentStatus(ctx context.Context, kind, subjectID string) (string, error) {
	records, err := s.Store.ListRecords(ctx, kind, subjectID)
	if err != nil {
		return "", err
	}
	return Fold(records), nil
}
