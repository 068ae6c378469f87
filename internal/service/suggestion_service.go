package service

import (
	"context"

	"github.com/equitask/equitask-api/internal/domain"
	"github.com/equitask/equitask-api/internal/repository"
	"github.com/equitask/equitask-api/internal/suggestion"
	apperrors "github.com/equitask/equitask-api/pkg/util/errorutil"
)

// SuggestionService ranks employees for a task that is about to be assigned.
// It only reads; workload is recomputed from the task table on every call.
type SuggestionService struct {
	users repository.UserRepository
	tasks repository.TaskRepository
}

// NewSuggestionService creates the service.
func NewSuggestionService(users repository.UserRepository, tasks repository.TaskRepository) *SuggestionService {
	return &SuggestionService{users: users, tasks: tasks}
}

// SuggestAssignees loads employees and active tasks and returns ranked candidates.
// Any read failure fails the whole call.
func (s *SuggestionService) SuggestAssignees(ctx context.Context, req suggestion.Request) ([]suggestion.Candidate, error) {
	role := domain.UserRoleEmployee
	employees, err := s.users.List(ctx, repository.UserFilter{Role: &role})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	active, err := s.tasks.List(ctx, repository.TaskFilter{Statuses: domain.ActiveTaskStatuses})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	return suggestion.Suggest(employees, active, req), nil
}
