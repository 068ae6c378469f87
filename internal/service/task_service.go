package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/equitask/equitask-api/internal/domain"
	"github.com/equitask/equitask-api/internal/events"
	"github.com/equitask/equitask-api/internal/repository"
	apperrors "github.com/equitask/equitask-api/pkg/util/errorutil"
)

// TaskService coordinates task workflows.
type TaskService struct {
	tasks      repository.TaskRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// TaskDependencies bundles repositories for task service.
type TaskDependencies struct {
	TaskRepo   repository.TaskRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// TaskCreateInput describes task creation payload.
type TaskCreateInput struct {
	Title          string
	Description    string
	EstimatedHours float64
	Priority       domain.TaskPriority
	AssigneeID     *string
	DueDate        *time.Time
}

// TaskUpdateInput holds the fields a lead may change. Nil means unchanged;
// an empty AssigneeID clears the assignee.
type TaskUpdateInput struct {
	Title          *string
	Description    *string
	EstimatedHours *float64
	Priority       *domain.TaskPriority
	Status         *domain.TaskStatus
	AssigneeID     *string
	DueDate        *time.Time
}

// NewTaskService creates the service.
func NewTaskService(deps TaskDependencies) *TaskService {
	return &TaskService{
		tasks:      deps.TaskRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		now:        time.Now,
	}
}

// ListTasks returns every task with assignee and creator summaries.
func (s *TaskService) ListTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.tasks.List(ctx, repository.TaskFilter{})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tasks, nil
}

// CreateTask creates a task on behalf of a lead.
func (s *TaskService) CreateTask(ctx context.Context, actor *domain.User, input TaskCreateInput) (*domain.Task, error) {
	if err := requireLead(actor, "Only leads can create tasks"); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	if input.EstimatedHours < 0 {
		return nil, apperrors.NewValidationError("estimatedHours must be non-negative", nil)
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.TaskPriorityMedium
	}
	if !priority.Valid() {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": priority})
	}

	task := &domain.Task{
		Title:          title,
		Description:    input.Description,
		EstimatedHours: input.EstimatedHours,
		Priority:       priority,
		Status:         domain.TaskStatusPending,
		CreatedByID:    &actor.ID,
		DueDate:        input.DueDate,
		CreatedBy:      summarize(actor),
	}
	if input.AssigneeID != nil && *input.AssigneeID != "" {
		assignee, err := s.lookupAssignee(ctx, *input.AssigneeID)
		if err != nil {
			return nil, err
		}
		task.AssigneeID = &assignee.ID
		task.Assignee = summarize(assignee)
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventTaskCreated,
		TaskID:  task.ID,
		ActorID: &actor.ID,
		Payload: events.TaskCreatedPayload{
			Title:          task.Title,
			Priority:       task.Priority,
			EstimatedHours: task.EstimatedHours,
			CreatedByID:    task.CreatedByID,
		},
	})
	if task.AssigneeID != nil {
		s.publishEvent(ctx, events.Event{
			Type:    events.EventTaskAssigned,
			TaskID:  task.ID,
			ActorID: &actor.ID,
			Payload: events.TaskAssignedPayload{Title: task.Title, NewAssigneeID: task.AssigneeID},
		})
	}
	return task, nil
}

// UpdateTask applies a lead's partial update.
func (s *TaskService) UpdateTask(ctx context.Context, actor *domain.User, taskID string, input TaskUpdateInput) (*domain.Task, error) {
	if err := requireLead(actor, "Only leads can update tasks"); err != nil {
		return nil, err
	}
	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	oldStatus := task.Status
	oldAssignee := task.AssigneeID

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, apperrors.NewValidationError("title required", nil)
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.EstimatedHours != nil {
		if *input.EstimatedHours < 0 {
			return nil, apperrors.NewValidationError("estimatedHours must be non-negative", nil)
		}
		task.EstimatedHours = *input.EstimatedHours
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": *input.Priority})
		}
		task.Priority = *input.Priority
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": *input.Status})
		}
		task.Status = *input.Status
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.AssigneeID != nil {
		if *input.AssigneeID == "" {
			task.AssigneeID = nil
			task.Assignee = nil
		} else {
			assignee, err := s.lookupAssignee(ctx, *input.AssigneeID)
			if err != nil {
				return nil, err
			}
			task.AssigneeID = &assignee.ID
			task.Assignee = summarize(assignee)
		}
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, apperrors.MapError(err)
	}

	if !sameID(oldAssignee, task.AssigneeID) {
		s.publishEvent(ctx, events.Event{
			Type:    events.EventTaskAssigned,
			TaskID:  task.ID,
			ActorID: &actor.ID,
			Payload: events.TaskAssignedPayload{
				Title:         task.Title,
				OldAssigneeID: oldAssignee,
				NewAssigneeID: task.AssigneeID,
			},
		})
	}
	if oldStatus != task.Status {
		s.publishStatusChange(ctx, &actor.ID, task, oldStatus)
	}
	return task, nil
}

// UpdateStatus changes only the status. Employees may only move their own tasks.
func (s *TaskService) UpdateStatus(ctx context.Context, actor *domain.User, taskID string, status domain.TaskStatus) (*domain.Task, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": status})
	}
	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.UserRoleEmployee && (task.AssigneeID == nil || *task.AssigneeID != actor.ID) {
		return nil, apperrors.NewForbidden("Not allowed")
	}

	oldStatus := task.Status
	task.Status = status
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, apperrors.MapError(err)
	}
	if oldStatus != status {
		s.publishStatusChange(ctx, &actor.ID, task, oldStatus)
	}
	return task, nil
}

// DeleteTask removes a task on behalf of a lead.
func (s *TaskService) DeleteTask(ctx context.Context, actor *domain.User, taskID string) error {
	if err := requireLead(actor, "Only leads can delete tasks"); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, taskID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("task", map[string]any{"task_id": taskID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// MarkOverdueTasks flags open tasks past their due date and announces each one.
func (s *TaskService) MarkOverdueTasks(ctx context.Context) (int, error) {
	updated, err := s.tasks.MarkOverdue(ctx, s.now())
	if err != nil {
		return 0, err
	}
	for i := range updated {
		// The previous status (pending or in_progress) is not returned by the update.
		s.publishStatusChange(ctx, nil, &updated[i], "")
	}
	return len(updated), nil
}

func (s *TaskService) getTask(ctx context.Context, taskID string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("task", map[string]any{"task_id": taskID})
		}
		return nil, apperrors.MapError(err)
	}
	return task, nil
}

func (s *TaskService) lookupAssignee(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("assignee not found", map[string]any{"assignee": userID})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

func (s *TaskService) publishStatusChange(ctx context.Context, actorID *string, task *domain.Task, oldStatus domain.TaskStatus) {
	s.publishEvent(ctx, events.Event{
		Type:    events.EventTaskStatusChanged,
		TaskID:  task.ID,
		ActorID: actorID,
		Payload: events.TaskStatusChangedPayload{
			Title:       task.Title,
			OldStatus:   oldStatus,
			NewStatus:   task.Status,
			AssigneeID:  task.AssigneeID,
			CreatedByID: task.CreatedByID,
		},
	})
}

func (s *TaskService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func requireLead(actor *domain.User, message string) error {
	if actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if !actor.IsLead() {
		return apperrors.NewForbidden(message)
	}
	return nil
}

func summarize(user *domain.User) *domain.UserSummary {
	if user == nil {
		return nil
	}
	return &domain.UserSummary{ID: user.ID, Username: user.Username, Email: user.Email, Role: user.Role}
}

func sameID(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
