package notifications

import "context"

type StoreAPI interface {
	Insert(ctx context.Context, n *Notification) error
	ListForUser(ctx context.Context, tenantID, userID string, unreadOnly bool, limit, offset int) ([]Notification, error)
	MarkRead(ctx context.Context, tenantID, userID, id string) error
	MarkAllRead(ctx context.Context, tenantID, userID string) error
	UnreadCount(ctx context.Context, tenantID, userID string) (int, error)
	UserEmail(ctx context.Context, tenantID, userID string) (string, error)
}
