package pdi

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrActionNotFound = errors.New("development action not found")

type StoreAPI interface {
	Create(ctx context.Context, action Action) (string, error)
	ListByEmployee(ctx context.Context, tenantID, employeeID string) ([]Action, error)
	UpdateStatus(ctx context.Context, tenantID, actionID, status string) error
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Create(ctx context.Context, action Action) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO pdi_actions (tenant_id, employee_id, competency_id, title, action_type, due_date, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, action.TenantID, action.EmployeeID, nullable(action.CompetencyID),
		action.Title, action.ActionType, action.DueDate, ActionStatusOpen).Scan(&id)
	return id, err
}

func (s *Store) ListByEmployee(ctx context.Context, tenantID, employeeID string) ([]Action, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, tenant_id, employee_id, COALESCE(competency_id::text, ''), title, action_type, due_date, status, completed_at, created_at
    FROM pdi_actions
    WHERE tenant_id = $1 AND employee_id = $2
    ORDER BY due_date
  `, tenantID, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []Action
	for rows.Next() {
		var action Action
		if err := rows.Scan(&action.ID, &action.TenantID, &action.EmployeeID, &action.CompetencyID,
			&action.Title, &action.ActionType, &action.DueDate, &action.Status, &action.CompletedAt, &action.CreatedAt); err != nil {
			return nil, err
		}
		actions = append(actions, action)
	}
	return actions, rows.Err()
}

func (s *Store) UpdateStatus(ctx context.Context, tenantID, actionID, status string) error {
	query := "UPDATE pdi_actions SET status = $1 WHERE tenant_id = $2 AND id = $3"
	if status == ActionStatusDone {
		query = "UPDATE pdi_actions SET status = $1, completed_at = now() WHERE tenant_id = $2 AND id = $3"
	}
	tag, err := s.DB.Exec(ctx, query, status, tenantID, actionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrActionNotFound
	}
	return nil
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}
