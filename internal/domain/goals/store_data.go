package goals

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"perfhub/internal/domain/workflow"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const goalColumns = `
  id, tenant_id, employee_id, manager_id, COALESCE(department_id::text, ''), COALESCE(parent_goal_id::text, ''),
  title, description, metric, due_date, weight, current_value, target_value, status, version, created_at, updated_at
`

func (s *Store) Create(ctx context.Context, goal Goal) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO goals (tenant_id, employee_id, manager_id, department_id, parent_goal_id, title, description, metric, due_date, weight, current_value, target_value, status, version)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,0)
    RETURNING id
  `, goal.TenantID, goal.EmployeeID, goal.ManagerID, nullable(goal.DepartmentID), nullable(goal.ParentGoalID),
		goal.Title, goal.Description, goal.Metric, goal.DueDate, goal.Weight,
		goal.CurrentValue, goal.TargetValue, workflow.StatusDraft,
	).Scan(&id)
	return id, err
}

func (s *Store) Get(ctx context.Context, tenantID, goalID string) (Goal, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+goalColumns+" FROM goals WHERE tenant_id = $1 AND id = $2", tenantID, goalID)
	goal, err := scanGoal(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Goal{}, ErrNotFound
	}
	return goal, err
}

func (s *Store) List(ctx context.Context, tenantID, employeeID, managerID string) ([]Goal, error) {
	query := "SELECT " + goalColumns + " FROM goals WHERE tenant_id = $1"
	args := []any{tenantID}
	if employeeID != "" {
		query += " AND employee_id = $2"
		args = append(args, employeeID)
	} else if managerID != "" {
		query += " AND (manager_id = $2 OR employee_id = $2)"
		args = append(args, managerID)
	}
	query += " ORDER BY created_at DESC"
	return s.queryGoals(ctx, query, args...)
}

func (s *Store) ListApprovedByEmployee(ctx context.Context, tenantID, employeeID string) ([]Goal, error) {
	return s.queryGoals(ctx,
		"SELECT "+goalColumns+" FROM goals WHERE tenant_id = $1 AND employee_id = $2 AND status = $3 ORDER BY created_at",
		tenantID, employeeID, workflow.StatusApproved)
}

func (s *Store) ListByParentGoal(ctx context.Context, tenantID, parentGoalID string) ([]Goal, error) {
	return s.queryGoals(ctx,
		"SELECT "+goalColumns+" FROM goals WHERE tenant_id = $1 AND parent_goal_id = $2 AND status = $3 ORDER BY created_at",
		tenantID, parentGoalID, workflow.StatusApproved)
}

func (s *Store) UpdateProgress(ctx context.Context, tenantID, goalID string, currentValue float64) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE goals SET current_value = $1, updated_at = now()
    WHERE tenant_id = $2 AND id = $3
  `, currentValue, tenantID, goalID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdateWeight(ctx context.Context, tenantID, goalID string, weight int) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE goals SET weight = $1, updated_at = now()
    WHERE tenant_id = $2 AND id = $3
  `, weight, tenantID, goalID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Duplicate copies the structural fields of a goal into a fresh draft.
// Approval history never carries over; the copy starts at version 0 with no
// approval records.
func (s *Store) Duplicate(ctx context.Context, tenantID, goalID string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO goals (tenant_id, employee_id, manager_id, department_id, parent_goal_id, title, description, metric, due_date, weight, current_value, target_value, status, version)
    SELECT tenant_id, employee_id, manager_id, department_id, parent_goal_id, title, description, metric, due_date, weight, 0, target_value, $3, 0
    FROM goals WHERE tenant_id = $1 AND id = $2
    RETURNING id
  `, tenantID, goalID, workflow.StatusDraft).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return id, err
}

func (s *Store) ListDepartmentGoals(ctx context.Context, tenantID, departmentID string) ([]DepartmentGoal, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, department_id, title
    FROM department_goals
    WHERE tenant_id = $1 AND department_id = $2
    ORDER BY created_at DESC
  `, tenantID, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DepartmentGoal
	for rows.Next() {
		var dg DepartmentGoal
		if err := rows.Scan(&dg.ID, &dg.DepartmentID, &dg.Title); err != nil {
			return nil, err
		}
		out = append(out, dg)
	}
	return out, rows.Err()
}

func (s *Store) CreateDepartmentGoal(ctx context.Context, tenantID, departmentID, title string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO department_goals (tenant_id, department_id, title)
    VALUES ($1,$2,$3)
    RETURNING id
  `, tenantID, departmentID, title).Scan(&id)
	return id, err
}

func (s *Store) queryGoals(ctx context.Context, query string, args ...any) ([]Goal, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, goal)
	}
	return out, rows.Err()
}

func scanGoal(row pgx.Row) (Goal, error) {
	var goal Goal
	if err := row.Scan(&goal.ID, &goal.TenantID, &goal.EmployeeID, &goal.ManagerID, &goal.DepartmentID, &goal.ParentGoalID,
		&goal.Title, &goal.Description, &goal.Metric, &goal.DueDate, &goal.Weight,
		&goal.CurrentValue, &goal.TargetValue, &goal.Status, &goal.Version, &goal.CreatedAt, &goal.UpdatedAt); err != nil {
		return Goal{}, err
	}
	goal.Progress = ProgressPercent(goal.CurrentValue, goal.TargetValue)
	return goal, nil
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}
