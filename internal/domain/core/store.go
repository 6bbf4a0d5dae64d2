package core

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"perfhub/internal/domain/workflow"
)

var ErrNotFound = errors.New("record not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
  id, tenant_id, COALESCE(user_id::text, ''), first_name, last_name, email,
  COALESCE(department_id::text, ''), COALESCE(position_id::text, ''), COALESCE(manager_id::text, ''),
  base_salary, hired_at, status
`

func (s *Store) ListEmployees(ctx context.Context, tenantID, departmentID string) ([]Employee, error) {
	query := "SELECT " + employeeColumns + " FROM employees WHERE tenant_id = $1"
	args := []any{tenantID}
	if departmentID != "" {
		query += " AND department_id = $2"
		args = append(args, departmentID)
	}
	query += " ORDER BY last_name, first_name"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}

func (s *Store) GetEmployee(ctx context.Context, tenantID, employeeID string) (Employee, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+employeeColumns+" FROM employees WHERE tenant_id = $1 AND id = $2", tenantID, employeeID)
	employee, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return employee, err
}

func (s *Store) EmployeeIDByUserID(ctx context.Context, tenantID, userID string) (string, error) {
	var employeeID string
	err := s.DB.QueryRow(ctx, "SELECT id FROM employees WHERE tenant_id = $1 AND user_id = $2", tenantID, userID).Scan(&employeeID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return employeeID, err
}

func (s *Store) UserIDByEmployeeID(ctx context.Context, tenantID, employeeID string) (string, error) {
	var userID string
	err := s.DB.QueryRow(ctx, "SELECT COALESCE(user_id::text, '') FROM employees WHERE tenant_id = $1 AND id = $2", tenantID, employeeID).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return userID, err
}

func (s *Store) IsManagerOfEmployee(ctx context.Context, tenantID, employeeID, managerID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM employees WHERE tenant_id = $1 AND id = $2 AND manager_id = $3
  `, tenantID, employeeID, managerID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) CreateEmployee(ctx context.Context, e Employee) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (tenant_id, user_id, first_name, last_name, email, department_id, position_id, manager_id, base_salary, hired_at, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,'active')
    RETURNING id
  `, e.TenantID, nullable(e.UserID), e.FirstName, e.LastName, e.Email,
		nullable(e.DepartmentID), nullable(e.PositionID), nullable(e.ManagerID), e.BaseSalary, e.HiredAt).Scan(&id)
	return id, err
}

func (s *Store) ListDepartments(ctx context.Context, tenantID string) ([]Department, error) {
	rows, err := s.DB.Query(ctx, "SELECT id, tenant_id, name FROM departments WHERE tenant_id = $1 ORDER BY name", tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []Department
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.ID, &d.TenantID, &d.Name); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (s *Store) ListPositions(ctx context.Context, tenantID string) ([]Position, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, tenant_id, COALESCE(department_id::text, ''), title
    FROM positions WHERE tenant_id = $1 ORDER BY title
  `, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []Position
	for rows.Next() {
		var p Position
		if err := rows.Scan(&p.ID, &p.TenantID, &p.DepartmentID, &p.Title); err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

const jobDescriptionColumns = `
  id, tenant_id, position_id, summary, responsibilities, requirements, status, version, created_at, updated_at
`

func (s *Store) CreateJobDescription(ctx context.Context, jd JobDescription) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO job_descriptions (tenant_id, position_id, summary, responsibilities, requirements, status, version)
    VALUES ($1,$2,$3,$4,$5,$6,0)
    RETURNING id
  `, jd.TenantID, jd.PositionID, jd.Summary, jd.Responsibilities, jd.Requirements, workflow.StatusDraft).Scan(&id)
	return id, err
}

func (s *Store) GetJobDescription(ctx context.Context, tenantID, jdID string) (JobDescription, error) {
	row := s.DB.QueryRow(ctx,
		"SELECT "+jobDescriptionColumns+" FROM job_descriptions WHERE tenant_id = $1 AND id = $2",
		tenantID, jdID)
	var jd JobDescription
	err := row.Scan(&jd.ID, &jd.TenantID, &jd.PositionID, &jd.Summary, &jd.Responsibilities,
		&jd.Requirements, &jd.Status, &jd.Version, &jd.CreatedAt, &jd.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return JobDescription{}, ErrNotFound
	}
	return jd, err
}

func (s *Store) ListJobDescriptions(ctx context.Context, tenantID, positionID string) ([]JobDescription, error) {
	query := "SELECT " + jobDescriptionColumns + " FROM job_descriptions WHERE tenant_id = $1"
	args := []any{tenantID}
	if positionID != "" {
		query += " AND position_id = $2"
		args = append(args, positionID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var descriptions []JobDescription
	for rows.Next() {
		var jd JobDescription
		if err := rows.Scan(&jd.ID, &jd.TenantID, &jd.PositionID, &jd.Summary, &jd.Responsibilities,
			&jd.Requirements, &jd.Status, &jd.Version, &jd.CreatedAt, &jd.UpdatedAt); err != nil {
			return nil, err
		}
		descriptions = append(descriptions, jd)
	}
	return descriptions, rows.Err()
}

// DuplicateJobDescription copies the structural fields into a fresh draft
// with no approval history.
func (s *Store) DuplicateJobDescription(ctx context.Context, tenantID, jdID string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO job_descriptions (tenant_id, position_id, summary, responsibilities, requirements, status, version)
    SELECT tenant_id, position_id, summary, responsibilities, requirements, $3, 0
    FROM job_descriptions WHERE tenant_id = $1 AND id = $2
    RETURNING id
  `, tenantID, jdID, workflow.StatusDraft).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return id, err
}

func scanEmployee(row pgx.Row) (Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.TenantID, &e.UserID, &e.FirstName, &e.LastName, &e.Email,
		&e.DepartmentID, &e.PositionID, &e.ManagerID, &e.BaseSalary, &e.HiredAt, &e.Status)
	return e, err
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}
