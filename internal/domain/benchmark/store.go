package benchmark

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type StoreAPI interface {
	PopulationScores(ctx context.Context, tenantID, cycleID, departmentID string) ([]float64, error)
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// PopulationScores reads the peer group's composite scores for a cycle.
// The population is an on-demand snapshot, never a persisted entity.
func (s *Store) PopulationScores(ctx context.Context, tenantID, cycleID, departmentID string) ([]float64, error) {
	query := `
    SELECT ev.composite_score
    FROM evaluations ev
    JOIN employees e ON e.id = ev.employee_id
    WHERE ev.tenant_id = $1 AND ev.cycle_id = $2 AND ev.composite_score IS NOT NULL
  `
	args := []any{tenantID, cycleID}
	if departmentID != "" {
		query += " AND e.department_id = $3"
		args = append(args, departmentID)
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []float64
	for rows.Next() {
		var score float64
		if err := rows.Scan(&score); err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	return scores, rows.Err()
}
