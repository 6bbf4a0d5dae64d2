package weights

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"perfhub/internal/domain/scoring"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Create(ctx context.Context, cfg Configuration) (string, error) {
	payload, err := json.Marshal(cfg.Weights)
	if err != nil {
		return "", err
	}
	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO weight_configurations (tenant_id, name, scope, scope_ref, weights, active)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, cfg.TenantID, cfg.Name, cfg.Scope, nullable(cfg.ScopeRef), payload, cfg.Active).Scan(&id)
	return id, err
}

func (s *Store) Update(ctx context.Context, cfg Configuration) error {
	payload, err := json.Marshal(cfg.Weights)
	if err != nil {
		return err
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE weight_configurations
    SET name = $1, scope = $2, scope_ref = $3, weights = $4, updated_at = now()
    WHERE tenant_id = $5 AND id = $6
  `, cfg.Name, cfg.Scope, nullable(cfg.ScopeRef), payload, cfg.TenantID, cfg.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Get(ctx context.Context, tenantID, configID string) (Configuration, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, tenant_id, name, scope, COALESCE(scope_ref, ''), weights, active, created_at, updated_at
    FROM weight_configurations
    WHERE tenant_id = $1 AND id = $2
  `, tenantID, configID)
	cfg, err := scanConfiguration(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Configuration{}, ErrNotFound
	}
	return cfg, err
}

func (s *Store) List(ctx context.Context, tenantID, scope string) ([]Configuration, error) {
	query := `
    SELECT id, tenant_id, name, scope, COALESCE(scope_ref, ''), weights, active, created_at, updated_at
    FROM weight_configurations
    WHERE tenant_id = $1
  `
	args := []any{tenantID}
	if scope != "" {
		query += " AND scope = $2"
		args = append(args, scope)
	}
	query += " ORDER BY created_at DESC"
	return s.queryConfigurations(ctx, query, args...)
}

func (s *Store) ListActive(ctx context.Context, tenantID string) ([]Configuration, error) {
	return s.queryConfigurations(ctx, `
    SELECT id, tenant_id, name, scope, COALESCE(scope_ref, ''), weights, active, created_at, updated_at
    FROM weight_configurations
    WHERE tenant_id = $1 AND active = true
    ORDER BY created_at DESC
  `, tenantID)
}

func (s *Store) SetActive(ctx context.Context, tenantID, configID string, active bool) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE weight_configurations SET active = $1, updated_at = now()
    WHERE tenant_id = $2 AND id = $3
  `, active, tenantID, configID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) queryConfigurations(ctx context.Context, query string, args ...any) ([]Configuration, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []Configuration
	for rows.Next() {
		cfg, err := scanConfiguration(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return configs, rows.Err()
}

func scanConfiguration(row pgx.Row) (Configuration, error) {
	var cfg Configuration
	var payload []byte
	if err := row.Scan(&cfg.ID, &cfg.TenantID, &cfg.Name, &cfg.Scope, &cfg.ScopeRef, &payload, &cfg.Active, &cfg.CreatedAt, &cfg.UpdatedAt); err != nil {
		return Configuration{}, err
	}
	cfg.Weights = make(map[scoring.Category]int)
	if err := json.Unmarshal(payload, &cfg.Weights); err != nil {
		return Configuration{}, err
	}
	return cfg, nil
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}
