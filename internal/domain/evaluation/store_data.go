package evaluation

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"perfhub/internal/domain/scoring"
)

var (
	ErrCycleNotFound      = errors.New("evaluation cycle not found")
	ErrEvaluationNotFound = errors.New("evaluation not found")
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) CreateCycle(ctx context.Context, cycle Cycle) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO evaluation_cycles (tenant_id, name, cycle_type, start_date, end_date, status)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, cycle.TenantID, cycle.Name, cycle.Type, cycle.StartDate, cycle.EndDate, cycle.Status).Scan(&id)
	return id, err
}

func (s *Store) ListCycles(ctx context.Context, tenantID string) ([]Cycle, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, tenant_id, name, cycle_type, start_date, end_date, status
    FROM evaluation_cycles
    WHERE tenant_id = $1
    ORDER BY start_date DESC
  `, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cycles []Cycle
	for rows.Next() {
		var cycle Cycle
		if err := rows.Scan(&cycle.ID, &cycle.TenantID, &cycle.Name, &cycle.Type, &cycle.StartDate, &cycle.EndDate, &cycle.Status); err != nil {
			return nil, err
		}
		cycles = append(cycles, cycle)
	}
	return cycles, rows.Err()
}

func (s *Store) CycleStatus(ctx context.Context, tenantID, cycleID string) (string, error) {
	var status string
	err := s.DB.QueryRow(ctx, "SELECT status FROM evaluation_cycles WHERE tenant_id = $1 AND id = $2", tenantID, cycleID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrCycleNotFound
	}
	return status, err
}

func (s *Store) UpdateCycleStatus(ctx context.Context, tenantID, cycleID, status string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE evaluation_cycles SET status = $1 WHERE tenant_id = $2 AND id = $3", status, tenantID, cycleID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCycleNotFound
	}
	return nil
}

func (s *Store) UpsertEvaluation(ctx context.Context, tenantID, cycleID, employeeID string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO evaluations (tenant_id, cycle_id, employee_id, sub_scores, status)
    VALUES ($1,$2,$3,'{}',$4)
    ON CONFLICT (tenant_id, cycle_id, employee_id) DO UPDATE SET tenant_id = EXCLUDED.tenant_id
    RETURNING id
  `, tenantID, cycleID, employeeID, EvaluationStatusOpen).Scan(&id)
	return id, err
}

func (s *Store) GetEvaluation(ctx context.Context, tenantID, cycleID, employeeID string) (Evaluation, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, tenant_id, cycle_id, employee_id, sub_scores, composite_score, COALESCE(weight_config_id::text, ''), status, finalized_at
    FROM evaluations
    WHERE tenant_id = $1 AND cycle_id = $2 AND employee_id = $3
  `, tenantID, cycleID, employeeID)
	ev, err := scanEvaluation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Evaluation{}, ErrEvaluationNotFound
	}
	return ev, err
}

func (s *Store) ListEvaluations(ctx context.Context, tenantID, cycleID string) ([]Evaluation, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, tenant_id, cycle_id, employee_id, sub_scores, composite_score, COALESCE(weight_config_id::text, ''), status, finalized_at
    FROM evaluations
    WHERE tenant_id = $1 AND cycle_id = $2
    ORDER BY employee_id
  `, tenantID, cycleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evaluations []Evaluation
	for rows.Next() {
		ev, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		evaluations = append(evaluations, ev)
	}
	return evaluations, rows.Err()
}

func (s *Store) SetSubScore(ctx context.Context, tenantID, evaluationID string, category scoring.Category, score float64) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE evaluations
    SET sub_scores = sub_scores || jsonb_build_object($1::text, $2::numeric)
    WHERE tenant_id = $3 AND id = $4 AND status = $5
  `, string(category), score, tenantID, evaluationID, EvaluationStatusOpen)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEvaluationNotFound
	}
	return nil
}

func (s *Store) Finalize(ctx context.Context, tenantID, evaluationID string, composite float64, weightConfigID string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE evaluations
    SET composite_score = $1, weight_config_id = $2, status = $3, finalized_at = now()
    WHERE tenant_id = $4 AND id = $5
  `, composite, weightConfigID, EvaluationStatusFinalized, tenantID, evaluationID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEvaluationNotFound
	}
	return nil
}

func (s *Store) EmployeeSubject(ctx context.Context, tenantID, employeeID string) (string, string, error) {
	var departmentID, positionID string
	err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(department_id::text, ''), COALESCE(position_id::text, '')
    FROM employees
    WHERE tenant_id = $1 AND id = $2
  `, tenantID, employeeID).Scan(&departmentID, &positionID)
	return departmentID, positionID, err
}

func scanEvaluation(row pgx.Row) (Evaluation, error) {
	var ev Evaluation
	var payload []byte
	if err := row.Scan(&ev.ID, &ev.TenantID, &ev.CycleID, &ev.EmployeeID, &payload,
		&ev.CompositeScore, &ev.WeightConfigID, &ev.Status, &ev.FinalizedAt); err != nil {
		return Evaluation{}, err
	}
	ev.SubScores = make(map[scoring.Category]float64)
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &ev.SubScores); err != nil {
			return Evaluation{}, err
		}
	}
	return ev, nil
}
