package competency

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrAssignmentNotFound = errors.New("competency assignment not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListCompetencies(ctx context.Context, tenantID string) ([]Competency, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, tenant_id, name, description, max_level
    FROM competencies
    WHERE tenant_id = $1
    ORDER BY name
  `, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Competency
	for rows.Next() {
		var c Competency
		if err := rows.Scan(&c.ID, &c.TenantID, &c.Name, &c.Description, &c.MaxLevel); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) CreateCompetency(ctx context.Context, c Competency) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO competencies (tenant_id, name, description, max_level)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, c.TenantID, c.Name, c.Description, c.MaxLevel).Scan(&id)
	return id, err
}

const assignmentQuery = `
  SELECT a.id, a.tenant_id, a.competency_id, c.name, a.employee_id, a.required_level, a.current_level, a.weight, a.assessed_at
  FROM competency_assignments a
  JOIN competencies c ON c.id = a.competency_id
`

func (s *Store) ListAssignments(ctx context.Context, tenantID, employeeID string) ([]Assignment, error) {
	return s.queryAssignments(ctx, assignmentQuery+`
    WHERE a.tenant_id = $1 AND a.employee_id = $2
    ORDER BY c.name
  `, tenantID, employeeID)
}

func (s *Store) ListAssignmentsByDepartment(ctx context.Context, tenantID, departmentID string) ([]Assignment, error) {
	return s.queryAssignments(ctx, assignmentQuery+`
    JOIN employees e ON e.id = a.employee_id
    WHERE a.tenant_id = $1 AND e.department_id = $2
    ORDER BY c.name
  `, tenantID, departmentID)
}

func (s *Store) CreateAssignment(ctx context.Context, a Assignment) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO competency_assignments (tenant_id, competency_id, employee_id, required_level, current_level, weight)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, a.TenantID, a.CompetencyID, a.EmployeeID, a.RequiredLevel, a.CurrentLevel, a.Weight).Scan(&id)
	return id, err
}

func (s *Store) UpdateCurrentLevel(ctx context.Context, tenantID, assignmentID string, currentLevel int) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE competency_assignments SET current_level = $1, assessed_at = now()
    WHERE tenant_id = $2 AND id = $3
  `, currentLevel, tenantID, assignmentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

func (s *Store) queryAssignments(ctx context.Context, query string, args ...any) ([]Assignment, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Assignment
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.ID, &a.TenantID, &a.CompetencyID, &a.CompetencyName, &a.EmployeeID,
			&a.RequiredLevel, &a.CurrentLevel, &a.Weight, &a.AssessedAt); err != nil {
			return nil, err
		}
		out = append(out, Classify(a))
	}
	return out, rows.Err()
}
