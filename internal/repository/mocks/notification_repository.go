package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/equitask/equitask-api/internal/domain"
	"github.com/equitask/equitask-api/internal/repository"
)

// NotificationRepository is a testify mock of repository.NotificationRepository.
type NotificationRepository struct {
	mock.Mock
}

var _ repository.NotificationRepository = (*NotificationRepository)(nil)

func (m *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *NotificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, limit)
	list, _ := args.Get(0).([]domain.Notification)
	return list, args.Error(1)
}

func (m *NotificationRepository) MarkRead(ctx context.Context, id, userID string) (*domain.Notification, error) {
	args := m.Called(ctx, id, userID)
	n, _ := args.Get(0).(*domain.Notification)
	return n, args.Error(1)
}

func (m *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationRepository) Delete(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}
