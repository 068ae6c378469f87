package dto

import "time"

// CreateTaskRequest payload for POST /tasks.
type CreateTaskRequest struct {
	Title          string   `json:"title" validate:"required"`
	Description    string   `json:"description"`
	EstimatedHours *float64 `json:"estimatedHours" validate:"omitempty,gte=0"`
	Priority       string   `json:"priority" validate:"omitempty,oneof=urgent high medium low"`
	Assignee       *string  `json:"assignee"`
	DueDate        *string  `json:"dueDate"`
}

// UpdateTaskRequest payload for PUT /tasks/:id. Absent or null fields are left
// unchanged; an empty assignee unassigns the task.
type UpdateTaskRequest struct {
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	EstimatedHours *float64 `json:"estimatedHours" validate:"omitempty,gte=0"`
	Priority       *string  `json:"priority" validate:"omitempty,oneof=urgent high medium low"`
	Status         *string  `json:"status" validate:"omitempty,oneof=pending in_progress completed overdue"`
	Assignee       *string  `json:"assignee"`
	DueDate        *string  `json:"dueDate"`
}

// UpdateTaskStatusRequest payload for PATCH /tasks/:id/status.
type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed overdue"`
}

// TaskResponse is the public view of a task.
type TaskResponse struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	EstimatedHours float64      `json:"estimatedHours"`
	Priority       string       `json:"priority"`
	Status         string       `json:"status"`
	Assignee       *UserSummary `json:"assignee"`
	CreatedBy      *UserSummary `json:"createdBy"`
	DueDate        *time.Time   `json:"dueDate"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}
