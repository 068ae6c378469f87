package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/equitask/equitask-api/internal/api/dto"
	"github.com/equitask/equitask-api/internal/auth"
	"github.com/equitask/equitask-api/internal/domain"
	"github.com/equitask/equitask-api/internal/observability"
	"github.com/equitask/equitask-api/internal/service"
	"github.com/equitask/equitask-api/internal/suggestion"
	apperrors "github.com/equitask/equitask-api/pkg/util/errorutil"
)

// TasksHandler manages task endpoints and assignee suggestions.
type TasksHandler struct {
	tasks       *service.TaskService
	suggestions *service.SuggestionService
	metrics     *observability.Metrics
}

// NewTasksHandler constructs handler.
func NewTasksHandler(tasks *service.TaskService, suggestions *service.SuggestionService, metrics *observability.Metrics) *TasksHandler {
	return &TasksHandler{tasks: tasks, suggestions: suggestions, metrics: metrics}
}

// ListTasks GET /tasks.
func (h *TasksHandler) ListTasks(c *fiber.Ctx) error {
	tasks, err := h.tasks.ListTasks(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		items = append(items, taskResponse(&tasks[i]))
	}
	return c.JSON(items)
}

// CreateTask POST /tasks.
func (h *TasksHandler) CreateTask(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return err
	}

	input := service.TaskCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.TaskPriority(req.Priority),
		AssigneeID:  req.Assignee,
		DueDate:     dueDate,
	}
	if req.EstimatedHours != nil {
		input.EstimatedHours = *req.EstimatedHours
	}
	task, err := h.tasks.CreateTask(c.UserContext(), principal, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(taskResponse(task))
}

// UpdateTask PUT /tasks/:id.
func (h *TasksHandler) UpdateTask(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return err
	}

	input := service.TaskUpdateInput{
		Title:          req.Title,
		Description:    req.Description,
		EstimatedHours: req.EstimatedHours,
		AssigneeID:     req.Assignee,
		DueDate:        dueDate,
	}
	if req.Priority != nil {
		p := domain.TaskPriority(*req.Priority)
		input.Priority = &p
	}
	if req.Status != nil {
		s := domain.TaskStatus(*req.Status)
		input.Status = &s
	}
	task, err := h.tasks.UpdateTask(c.UserContext(), principal, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(taskResponse(task))
}

// UpdateStatus PATCH /tasks/:id/status.
func (h *TasksHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateTaskStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	task, err := h.tasks.UpdateStatus(c.UserContext(), principal, c.Params("id"), domain.TaskStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(taskResponse(task))
}

// DeleteTask DELETE /tasks/:id.
func (h *TasksHandler) DeleteTask(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.tasks.DeleteTask(c.UserContext(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Task deleted"})
}

// Suggest POST /tasks/suggest. Missing fields default to no required skills
// and zero hours.
func (h *TasksHandler) Suggest(c *fiber.Ctx) error {
	var req dto.SuggestRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	request := suggestion.Request{RequiredSkills: req.RequiredSkills}
	if request.RequiredSkills == nil {
		request.RequiredSkills = []string{}
	}
	if req.EstimatedHours != nil {
		request.EstimatedHours = *req.EstimatedHours
	}

	candidates, err := h.suggestions.SuggestAssignees(c.UserContext(), request)
	if err != nil {
		return err
	}
	h.metrics.RecordSuggestion(len(candidates))
	if candidates == nil {
		candidates = []suggestion.Candidate{}
	}
	return c.JSON(candidates)
}
