package app

import (
	"context"
	"fmt"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/notification"
)

type Logger interface {
	Info(msg string)
	Error(msg string)
}

// Notifier is the best-effort dispatch side the lifecycle services depend on.
type Notifier interface {
	Dispatch(ctx context.Context, n notification.Notification)
}

type NotificationService struct {
	repo   notification.Repository
	logger Logger
}

func NewNotificationService(repo notification.Repository, logger Logger) *NotificationService {
	return &NotificationService{repo: repo, logger: logger}
}

// Dispatch inserts the notification and swallows any failure. The triggering
// action has already succeeded by the time this runs; delivery is at most
// once and never blocks or fails the primary response.
func (s *NotificationService) Dispatch(ctx context.Context, n notification.Notification) {
	if _, err := s.repo.Create(ctx, n); err != nil {
		s.logError(fmt.Sprintf("notification dispatch failed type=%s user_id=%s: %v", n.Type, n.UserID, err))
	}
}

func (s *NotificationService) List(ctx context.Context, userID common.UUID, limit, offset int) ([]notification.Notification, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID common.UUID) (int, error) {
	return s.repo.UnreadCount(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID common.UUID) error {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID common.UUID) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *NotificationService) logError(msg string) {
	if s.logger == nil {
		return
	}
	s.logger.Error(msg)
}
