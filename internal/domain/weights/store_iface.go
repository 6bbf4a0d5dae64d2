package weights

import "context"

type StoreAPI interface {
	Create(ctx context.Context, cfg Configuration) (string, error)
	Update(ctx context.Context, cfg Configuration) error
	Get(ctx context.Context, tenantID, configID string) (Configuration, error)
	List(ctx context.Context, tenantID, scope string) ([]Configuration, error)
	ListActive(ctx context.Context, tenantID string) ([]Configuration, error)
	SetActive(ctx context.Context, tenantID, configID string, active bool) error
}
