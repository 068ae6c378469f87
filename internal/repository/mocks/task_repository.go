package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/equitask/equitask-api/internal/domain"
	"github.com/equitask/equitask-api/internal/repository"
)

// TaskRepository is a testify mock of repository.TaskRepository.
type TaskRepository struct {
	mock.Mock
}

var _ repository.TaskRepository = (*TaskRepository)(nil)

func (m *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *TaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *TaskRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *TaskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	args := m.Called(ctx, filter)
	tasks, _ := args.Get(0).([]domain.Task)
	return tasks, args.Error(1)
}

func (m *TaskRepository) MarkOverdue(ctx context.Context, now time.Time) ([]domain.Task, error) {
	args := m.Called(ctx, now)
	tasks, _ := args.Get(0).([]domain.Task)
	return tasks, args.Error(1)
}
