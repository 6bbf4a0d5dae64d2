package bonus

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"perfhub/internal/domain/scoring"
	"perfhub/internal/domain/workflow"
)

type StoreAPI interface {
	CreatePolicy(ctx context.Context, policy Policy) (string, error)
	GetPolicy(ctx context.Context, tenantID, policyID string) (Policy, error)
	ListPolicies(ctx context.Context, tenantID string) ([]Policy, error)
	ApprovedPolicy(ctx context.Context, tenantID string) (Policy, error)
	CreateCalculation(ctx context.Context, calc Calculation) (string, error)
	ListCalculations(ctx context.Context, tenantID, employeeID string) ([]Calculation, error)
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) CreatePolicy(ctx context.Context, policy Policy) (string, error) {
	weightsJSON, err := json.Marshal(policy.Weights)
	if err != nil {
		return "", err
	}
	bandsJSON, err := json.Marshal(policy.Bands)
	if err != nil {
		return "", err
	}
	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO bonus_policies (tenant_id, name, weights, bands, status, version)
    VALUES ($1,$2,$3,$4,$5,0)
    RETURNING id
  `, policy.TenantID, policy.Name, weightsJSON, bandsJSON, workflow.StatusDraft).Scan(&id)
	return id, err
}

const policyColumns = "id, tenant_id, name, weights, bands, status, version, created_at, updated_at"

func (s *Store) GetPolicy(ctx context.Context, tenantID, policyID string) (Policy, error) {
	row := s.DB.QueryRow(ctx,
		"SELECT "+policyColumns+" FROM bonus_policies WHERE tenant_id = $1 AND id = $2",
		tenantID, policyID)
	policy, err := scanPolicy(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Policy{}, ErrPolicyNotFound
	}
	return policy, err
}

func (s *Store) ListPolicies(ctx context.Context, tenantID string) ([]Policy, error) {
	rows, err := s.DB.Query(ctx,
		"SELECT "+policyColumns+" FROM bonus_policies WHERE tenant_id = $1 ORDER BY created_at DESC",
		tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var policies []Policy
	for rows.Next() {
		policy, err := scanPolicy(rows)
		if err != nil {
			return nil, err
		}
		policies = append(policies, policy)
	}
	return policies, rows.Err()
}

// ApprovedPolicy returns the most recently approved policy; only approved
// policies drive calculations.
func (s *Store) ApprovedPolicy(ctx context.Context, tenantID string) (Policy, error) {
	row := s.DB.QueryRow(ctx,
		"SELECT "+policyColumns+" FROM bonus_policies WHERE tenant_id = $1 AND status = $2 ORDER BY updated_at DESC LIMIT 1",
		tenantID, workflow.StatusApproved)
	policy, err := scanPolicy(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Policy{}, ErrPolicyNotApproved
	}
	return policy, err
}

func (s *Store) CreateCalculation(ctx context.Context, calc Calculation) (string, error) {
	inputsJSON, err := json.Marshal(calc.Inputs)
	if err != nil {
		return "", err
	}
	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO bonus_calculations (tenant_id, employee_id, policy_id, base_salary, inputs, composite_score, bonus_percent, amount)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id
  `, calc.TenantID, calc.EmployeeID, calc.PolicyID, calc.BaseSalary, inputsJSON,
		calc.CompositeScore, calc.BonusPercent, calc.Amount).Scan(&id)
	return id, err
}

func (s *Store) ListCalculations(ctx context.Context, tenantID, employeeID string) ([]Calculation, error) {
	query := `
    SELECT id, tenant_id, employee_id, policy_id, base_salary, inputs, composite_score, bonus_percent, amount, created_at
    FROM bonus_calculations
    WHERE tenant_id = $1
  `
	args := []any{tenantID}
	if employeeID != "" {
		query += " AND employee_id = $2"
		args = append(args, employeeID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var calcs []Calculation
	for rows.Next() {
		var calc Calculation
		var inputsJSON []byte
		if err := rows.Scan(&calc.ID, &calc.TenantID, &calc.EmployeeID, &calc.PolicyID, &calc.BaseSalary,
			&inputsJSON, &calc.CompositeScore, &calc.BonusPercent, &calc.Amount, &calc.CreatedAt); err != nil {
			return nil, err
		}
		calc.Inputs = make(map[scoring.Category]float64)
		if err := json.Unmarshal(inputsJSON, &calc.Inputs); err != nil {
			return nil, err
		}
		calcs = append(calcs, calc)
	}
	return calcs, rows.Err()
}

func scanPolicy(row pgx.Row) (Policy, error) {
	var policy Policy
	var weightsJSON, bandsJSON []byte
	if err := row.Scan(&policy.ID, &policy.TenantID, &policy.Name, &weightsJSON, &bandsJSON,
		&policy.Status, &policy.Version, &policy.CreatedAt, &policy.UpdatedAt); err != nil {
		return Policy{}, err
	}
	policy.Weights = make(map[scoring.Category]int)
	if err := json.Unmarshal(weightsJSON, &policy.Weights); err != nil {
		return Policy{}, err
	}
	if err := json.Unmarshal(bandsJSON, &policy.Bands); err != nil {
		return Policy{}, err
	}
	return policy, nil
}
