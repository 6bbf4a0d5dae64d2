package sla

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Items reconstructs the monitor view of one workflow kind from approval
// history. An item exists from its submit record; it is decided once a
// terminal record appears.
func (s *Store) Items(ctx context.Context, tenantID, kind string) ([]Item, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT
			MIN(created_at) FILTER (WHERE decision = 'submitted') AS submitted_at,
			MAX(created_at) FILTER (WHERE to_status IN ('approved', 'rejected')) AS decided_at
		FROM approval_records
		WHERE tenant_id = $1 AND kind = $2
		GROUP BY subject_id`,
		tenantID, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var submittedAt, decidedAt *time.Time
		if err := rows.Scan(&submittedAt, &decidedAt); err != nil {
			return nil, err
		}
		if submittedAt == nil {
			continue
		}
		item := Item{CreatedAt: *submittedAt, DecidedAt: decidedAt, Status: ItemStatusDecided}
		if decidedAt == nil {
			item.Status = ItemStatusPending
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// OverdueSubjects lists still-pending subjects submitted before the cutoff,
// oldest first, for escalation.
func (s *Store) OverdueSubjects(ctx context.Context, tenantID, kind string, cutoff time.Time) ([]OverdueSubject, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT subject_id, MIN(created_at) FILTER (WHERE decision = 'submitted') AS submitted_at
		FROM approval_records
		WHERE tenant_id = $1 AND kind = $2
		GROUP BY subject_id
		HAVING MAX(created_at) FILTER (WHERE to_status IN ('approved', 'rejected')) IS NULL
			AND MIN(created_at) FILTER (WHERE decision = 'submitted') < $3
		ORDER BY 2`,
		tenantID, kind, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OverdueSubject
	for rows.Next() {
		var sub OverdueSubject
		if err := rows.Scan(&sub.SubjectID, &sub.SubmittedAt); err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// HRUserIDs returns the users who receive SLA escalations.
func (s *Store) HRUserIDs(ctx context.Context, tenantID string) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT u.id
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.tenant_id = $1 AND r.name = 'hr' AND u.status = 'active'`,
		tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// TenantIDs lists tenants for the periodic escalation sweep.
func (s *Store) TenantIDs(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT id FROM tenants ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
