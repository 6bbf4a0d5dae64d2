package reports

import (
	"context"
	"errors"
	"time"

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

func (s *Store) EmployeeIDByUserID(ctx context.Context, tenantID, userID string) (string, error) {
	var employeeID string
	err := s.DB.QueryRow(ctx, "SELECT id FROM employees WHERE tenant_id = $1 AND user_id = $2", tenantID, userID).Scan(&employeeID)
	if err != nil {
		return "", err
	}
	return employeeID, nil
}

func (s *Store) GoalCounts(ctx context.Context, tenantID, employeeID string) (total, approved int, err error) {
	err = s.DB.QueryRow(ctx, `
		SELECT COUNT(1), COUNT(1) FILTER (WHERE status = $3)
		FROM goals WHERE tenant_id = $1 AND employee_id = $2`,
		tenantID, employeeID, workflow.StatusApproved).Scan(&total, &approved)
	return total, approved, err
}

func (s *Store) AvgGoalProgress(ctx context.Context, tenantID, employeeID string) (float64, error) {
	var avg float64
	err := s.DB.QueryRow(ctx, `
		SELECT COALESCE(AVG(LEAST(current_value / NULLIF(target_value, 0) * 100, 100)), 0)
		FROM goals
		WHERE tenant_id = $1 AND employee_id = $2 AND status = $3`,
		tenantID, employeeID, workflow.StatusApproved).Scan(&avg)
	return avg, err
}

// LatestComposite returns the most recent finalized composite score, or
// (0, false) when the employee has none yet.
func (s *Store) LatestComposite(ctx context.Context, tenantID, employeeID string) (float64, bool, error) {
	var score float64
	err := s.DB.QueryRow(ctx, `
		SELECT composite_score FROM evaluations
		WHERE tenant_id = $1 AND employee_id = $2 AND composite_score IS NOT NULL
		ORDER BY updated_at DESC LIMIT 1`,
		tenantID, employeeID).Scan(&score)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return score, true, nil
}

func (s *Store) PendingByKind(ctx context.Context, tenantID string) (map[string]int, error) {
	out := map[string]int{}
	queries := map[string]string{
		workflow.KindGoalApproval:   "SELECT COUNT(1) FROM goals WHERE tenant_id = $1 AND status LIKE 'pending%'",
		workflow.KindJobDescription: "SELECT COUNT(1) FROM job_descriptions WHERE tenant_id = $1 AND status LIKE 'pending%'",
		workflow.KindBonusPolicy:    "SELECT COUNT(1) FROM bonus_policies WHERE tenant_id = $1 AND status LIKE 'pending%'",
	}
	for kind, q := range queries {
		var n int
		if err := s.DB.QueryRow(ctx, q, tenantID).Scan(&n); err != nil {
			return nil, err
		}
		out[kind] = n
	}
	return out, nil
}

func (s *Store) TeamPendingGoals(ctx context.Context, tenantID, managerEmployeeID string) (int, error) {
	var n int
	err := s.DB.QueryRow(ctx, `
		SELECT COUNT(1)
		FROM goals g
		JOIN employees e ON e.id = g.employee_id AND e.tenant_id = g.tenant_id
		WHERE g.tenant_id = $1 AND e.manager_id = $2 AND g.status = $3`,
		tenantID, managerEmployeeID, workflow.StatusPendingManager).Scan(&n)
	return n, err
}

func (s *Store) TeamSize(ctx context.Context, tenantID, managerEmployeeID string) (int, error) {
	var n int
	err := s.DB.QueryRow(ctx,
		"SELECT COUNT(1) FROM employees WHERE tenant_id = $1 AND manager_id = $2 AND status = 'active'",
		tenantID, managerEmployeeID).Scan(&n)
	return n, err
}

func (s *Store) ActiveCycles(ctx context.Context, tenantID string) (int, error) {
	var n int
	err := s.DB.QueryRow(ctx,
		"SELECT COUNT(1) FROM evaluation_cycles WHERE tenant_id = $1 AND status = 'active'",
		tenantID).Scan(&n)
	return n, err
}

func (s *Store) HeadCount(ctx context.Context, tenantID string) (int, error) {
	var n int
	err := s.DB.QueryRow(ctx,
		"SELECT COUNT(1) FROM employees WHERE tenant_id = $1 AND status = 'active'", tenantID).Scan(&n)
	return n, err
}

// EvaluationSummary loads everything the PDF export needs in one row.
type EvaluationSummary struct {
	EmployeeName string
	Position     string
	Department   string
	CycleName    string
	CycleEnd     time.Time
	Type         string
	SubScores    map[string]float64
	Composite    *float64
}

func (s *Store) EvaluationSummary(ctx context.Context, tenantID, evaluationID string) (EvaluationSummary, error) {
	var sum EvaluationSummary
	err := s.DB.QueryRow(ctx, `
		SELECT e.first_name || ' ' || e.last_name,
		       COALESCE(p.title, ''), COALESCE(d.name, ''),
		       c.name, c.end_date, c.cycle_type, ev.sub_scores, ev.composite_score
		FROM evaluations ev
		JOIN employees e ON e.id = ev.employee_id AND e.tenant_id = ev.tenant_id
		LEFT JOIN positions p ON p.id = e.position_id
		LEFT JOIN departments d ON d.id = e.department_id
		JOIN evaluation_cycles c ON c.id = ev.cycle_id
		WHERE ev.tenant_id = $1 AND ev.id = $2`,
		tenantID, evaluationID).Scan(
		&sum.EmployeeName, &sum.Position, &sum.Department,
		&sum.CycleName, &sum.CycleEnd, &sum.Type, &sum.SubScores, &sum.Composite)
	return sum, err
}
