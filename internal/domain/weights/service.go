package weights

import (
	"context"

	"perfhub/internal/domain/scoring"
)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func validScope(scope string) bool {
	return scope == ScopeGlobal || scope == ScopeDepartment || scope == ScopePosition
}

// Create validates the weight set before anything is persisted. Invalid sets
// are rejected, never normalized.
func (s *Service) Create(ctx context.Context, cfg Configuration) (string, error) {
	if !validScope(cfg.Scope) {
		return "", ErrInvalidScope
	}
	if err := scoring.ValidateWeights(cfg.Weights); err != nil {
		return "", err
	}
	return s.Store.Create(ctx, cfg)
}

func (s *Service) Update(ctx context.Context, cfg Configuration) error {
	if !validScope(cfg.Scope) {
		return ErrInvalidScope
	}
	if err := scoring.ValidateWeights(cfg.Weights); err != nil {
		return err
	}
	return s.Store.Update(ctx, cfg)
}

// Activate re-validates the stored weights; a configuration that drifted
// out of shape can never become active.
func (s *Service) Activate(ctx context.Context, tenantID, configID string) error {
	cfg, err := s.Store.Get(ctx, tenantID, configID)
	if err != nil {
		return err
	}
	if err := scoring.ValidateWeights(cfg.Weights); err != nil {
		return err
	}
	return s.Store.SetActive(ctx, tenantID, configID, true)
}

func (s *Service) Deactivate(ctx context.Context, tenantID, configID string) error {
	return s.Store.SetActive(ctx, tenantID, configID, false)
}

func (s *Service) Get(ctx context.Context, tenantID, configID string) (Configuration, error) {
	return s.Store.Get(ctx, tenantID, configID)
}

func (s *Service) List(ctx context.Context, tenantID, scope string) ([]Configuration, error) {
	return s.Store.List(ctx, tenantID, scope)
}

// ResolveFor finds the active configuration applying to a subject,
// most-specific scope first.
func (s *Service) ResolveFor(ctx context.Context, tenantID string, subject Subject) (Configuration, error) {
	configs, err := s.Store.ListActive(ctx, tenantID)
	if err != nil {
		return Configuration{}, err
	}
	cfg, ok := Resolve(configs, subject)
	if !ok {
		return Configuration{}, ErrNoActive
	}
	return cfg, nil
}
