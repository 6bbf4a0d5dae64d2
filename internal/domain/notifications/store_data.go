package notifications

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Insert(ctx context.Context, n *Notification) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO notifications (tenant_id, user_id, type, title, body, link)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		n.TenantID, n.UserID, n.Type, n.Title, n.Body, n.Link,
	).Scan(&n.ID, &n.CreatedAt)
}

func (s *Store) ListForUser(ctx context.Context, tenantID, userID string, unreadOnly bool, limit, offset int) ([]Notification, error) {
	q := `
		SELECT id, tenant_id, user_id, type, title, body, link, read, created_at
		FROM notifications
		WHERE tenant_id = $1 AND user_id = $2`
	if unreadOnly {
		q += ` AND read = FALSE`
	}
	q += ` ORDER BY created_at DESC LIMIT $3 OFFSET $4`

	rows, err := s.pool.Query(ctx, q, tenantID, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.TenantID, &n.UserID, &n.Type, &n.Title, &n.Body, &n.Link, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) MarkRead(ctx context.Context, tenantID, userID, id string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE notifications SET read = TRUE
		WHERE tenant_id = $1 AND user_id = $2 AND id = $3`,
		tenantID, userID, id)
	return err
}

func (s *Store) MarkAllRead(ctx context.Context, tenantID, userID string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE notifications SET read = TRUE
		WHERE tenant_id = $1 AND user_id = $2 AND read = FALSE`,
		tenantID, userID)
	return err
}

func (s *Store) UnreadCount(ctx context.Context, tenantID, userID string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications
		WHERE tenant_id = $1 AND user_id = $2 AND read = FALSE`,
		tenantID, userID).Scan(&n)
	return n, err
}

func (s *Store) UserEmail(ctx context.Context, tenantID, userID string) (string, error) {
	var email string
	err := s.pool.QueryRow(ctx, `
		SELECT email FROM users WHERE tenant_id = $1 AND id = $2`,
		tenantID, userID).Scan(&email)
	return email, err
}

