package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// Subject rows live in their own tables; every subject table carries
// tenant_id, status and version columns.
var subjectTables = map[string]string{
	KindGoalApproval:   "goals",
	KindJobDescription: "job_descriptions",
	KindBonusPolicy:    "bonus_policies",
}

func subjectTable(kind string) (string, error) {
	table, ok := subjectTables[kind]
	if !ok {
		return "", ErrUnknownKind
	}
	return table, nil
}

func (s *Store) SubjectState(ctx context.Context, tenantID, kind, subjectID string) (SubjectState, error) {
	table, err := subjectTable(kind)
	if err != nil {
		return SubjectState{}, err
	}

	state := SubjectState{ID: subjectID, TenantID: tenantID}
	query := fmt.Sprintf("SELECT status, version FROM %s WHERE tenant_id = $1 AND id = $2", table)
	if err := s.DB.QueryRow(ctx, query, tenantID, subjectID).Scan(&state.Status, &state.Version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SubjectState{}, ErrSubjectNotFound
		}
		return SubjectState{}, err
	}
	return state, nil
}

func (s *Store) AdvanceSubject(ctx context.Context, tenantID, kind string, seen SubjectState, record ApprovalRecord) (ApprovalRecord, error) {
	table, err := subjectTable(kind)
	if err != nil {
		return ApprovalRecord{}, err
	}

	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return ApprovalRecord{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	update := fmt.Sprintf(`
    UPDATE %s SET status = $1, version = version + 1, updated_at = now()
    WHERE tenant_id = $2 AND id = $3 AND version = $4
  `, table)
	tag, err := tx.Exec(ctx, update, record.ToStatus, tenantID, seen.ID, seen.Version)
	if err != nil {
		return ApprovalRecord{}, err
	}
	if tag.RowsAffected() == 0 {
		return ApprovalRecord{}, ErrVersionConflict
	}

	if err := tx.QueryRow(ctx, `
    INSERT INTO approval_records (tenant_id, subject_id, kind, stage, decision, to_status, approver_id, approver_role, comments)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    RETURNING id, created_at
  `, tenantID, record.SubjectID, record.Kind, record.Stage, record.Decision, record.ToStatus,
		record.ApproverID, record.ApproverRole, record.Comments,
	).Scan(&record.ID, &record.CreatedAt); err != nil {
		return ApprovalRecord{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return ApprovalRecord{}, err
	}
	return record, nil
}

func (s *Store) ListRecords(ctx context.Context, kind, subjectID string) ([]ApprovalRecord, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, subject_id, kind, stage, decision, to_status, approver_id, approver_role, comments, created_at
    FROM approval_records
    WHERE kind = $1 AND subject_id = $2
    ORDER BY created_at ASC
  `, kind, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ApprovalRecord
	for rows.Next() {
		var record ApprovalRecord
		if err := rows.Scan(&record.ID, &record.SubjectID, &record.Kind, &record.Stage, &record.Decision,
			&record.ToStatus, &record.ApproverID, &record.ApproverRole, &record.Comments, &record.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
