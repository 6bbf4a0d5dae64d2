package notifications

import (
	"context"
	"log/slog"
)

type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

type Service struct {
	store       StoreAPI
	Mailer      Mailer
	DefaultFrom string
}

func New(store StoreAPI, mailer Mailer) *Service {
	return &Service{store: store, Mailer: mailer, DefaultFrom: "no-reply@perfhub.local"}
}

// Notify persists an in-app notification and mirrors it to email on a
// best-effort basis. A failed email never fails the caller's operation.
func (s *Service) Notify(ctx context.Context, tenantID, userID string, n Notification) error {
	n.TenantID = tenantID
	n.UserID = userID
	if err := s.store.Insert(ctx, &n); err != nil {
		return err
	}

	if s.Mailer == nil {
		return nil
	}
	email, err := s.store.UserEmail(ctx, tenantID, userID)
	if err != nil {
		slog.Warn("notification email lookup failed", "err", err)
		return nil
	}
	if email == "" {
		return nil
	}
	if err := s.Mailer.Send(ctx, s.DefaultFrom, email, n.Title, n.Body); err != nil {
		slog.Warn("notification email send failed", "err", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, tenantID, userID string, unreadOnly bool, limit, offset int) ([]Notification, error) {
	return s.store.ListForUser(ctx, tenantID, userID, unreadOnly, limit, offset)
}

func (s *Service) UnreadCount(ctx context.Context, tenantID, userID string) (int, error) {
	return s.store.UnreadCount(ctx, tenantID, userID)
}

func (s *Service) MarkRead(ctx context.Context, tenantID, userID, id string) error {
	return s.store.MarkRead(ctx, tenantID, userID, id)
}

func (s *Service) MarkAllRead(ctx context.Context, tenantID, userID string) error {
	return s.store.MarkAllRead(ctx, tenantID, userID)
}
