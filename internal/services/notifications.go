package services

import (
	"context"

	"github.com/xteonlyone/portfolio/backend/internal/auth"
	"github.com/xteonlyone/portfolio/backend/internal/models"
	"github.com/xteonlyone/portfolio/backend/internal/repositories"
	"go.uber.org/zap"
)

// NotificationService is the read side of the notification bell.
type NotificationService struct {
	repo   repositories.NotificationRepository
	logger *zap.Logger
}

func NewNotificationService(repo repositories.NotificationRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{repo: repo, logger: logger}
}

// List returns the subject's newest notifications. Anonymous callers get an
// empty list.
func (s *NotificationService) List(ctx context.Context, subject auth.Subject) ([]models.NotificationView, error) {
	if !subject.Authenticated() {
		return []models.NotificationView{}, nil
	}

	notifications, err := s.repo.GetRecentByUserID(ctx, subject.ID, models.NotificationListLimit)
	if err != nil {
		return nil, fail(s.logger, "Failed to fetch notifications", err, zap.String("user_id", subject.ID))
	}

	views := make([]models.NotificationView, len(notifications))
	for i, n := range notifications {
		views[i] = models.NotificationView{Notification: n}
		if n.TriggerUser != nil {
			compact := n.TriggerUser.ToCompact()
			views[i].TriggerUser = &compact
		}
	}
	return views, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, subject auth.Subject) (int64, error) {
	if !subject.Authenticated() {
		return 0, nil
	}

	count, err := s.repo.GetUnreadCount(ctx, subject.ID)
	if err != nil {
		return 0, fail(s.logger, "Failed to count notifications", err, zap.String("user_id", subject.ID))
	}
	return count, nil
}

// MarkAsRead flips one notification owned by the subject. Ids belonging to
// someone else match nothing.
func (s *NotificationService) MarkAsRead(ctx context.Context, subject auth.Subject, id string) error {
	if !subject.Authenticated() {
		return ErrUnauthenticated
	}

	if err := s.repo.MarkAsRead(ctx, id, subject.ID); err != nil {
		return fail(s.logger, "Failed to update notification", err, zap.String("notification_id", id))
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, subject auth.Subject) error {
	if !subject.Authenticated() {
		return ErrUnauthenticated
	}

	if err := s.repo.MarkAllAsRead(ctx, subject.ID); err != nil {
		return fail(s.logger, "Failed to update notifications", err, zap.String("user_id", subject.ID))
	}
	return nil
}
