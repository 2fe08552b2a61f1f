package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rinkside/league-api/internal/domain"
	"github.com/rinkside/league-api/internal/repository"
)

var ErrNotificationNotFound = repository.ErrNotificationNotFound

type NotificationRepository interface {
	Create(ctx context.Context, notification domain.Notification) (domain.Notification, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, userID uint) error
}

type NotificationService struct {
	repo NotificationRepository
}

func NewNotificationService(repo NotificationRepository) *NotificationService {
	return &NotificationService{
		repo: repo,
	}
}

// Notify records a notification without failing the caller. A registration
// or draft assignment that succeeded should not be rolled back because a
// notification row did not land.
func (s *NotificationService) Notify(ctx context.Context, userID uint, message string) {
	if _, err := s.repo.Create(ctx, domain.Notification{
		UserID:  userID,
		Message: message,
	}); err != nil {
		zap.L().Warn("notification not recorded",
			zap.Uint("userID", userID),
			zap.Error(err))
	}
}

func (s *NotificationService) ListForUser(ctx context.Context, userID uint) ([]domain.Notification, error) {
	notifications, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUserID -> %w", err)
	}

	return notifications, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID uint) error {
	if err := s.repo.MarkRead(ctx, id, userID); err != nil {
		return fmt.Errorf("s.repo.MarkRead -> %w", err)
	}

	return nil
}
