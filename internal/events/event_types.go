package events

import (
	"time"

	"github.com/equitask/equitask-api/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTaskCreated       EventType = "task_created"
	EventTaskAssigned      EventType = "task_assigned"
	EventTaskStatusChanged EventType = "task_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TaskID    string      `json:"task_id"`
	ActorID   *string     `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TaskCreatedPayload payload.
type TaskCreatedPayload struct {
	Title          string              `json:"title"`
	Priority       domain.TaskPriority `json:"priority"`
	EstimatedHours float64             `json:"estimated_hours"`
	CreatedByID    *string             `json:"created_by,omitempty"`
}

// TaskAssignedPayload payload.
type TaskAssignedPayload struct {
	Title         string  `json:"title"`
	OldAssigneeID *string `json:"old_assignee_id,omitempty"`
	NewAssigneeID *string `json:"new_assignee_id,omitempty"`
}

// TaskStatusChangedPayload payload.
type TaskStatusChangedPayload struct {
	Title       string            `json:"title"`
	OldStatus   domain.TaskStatus `json:"old_status"`
	NewStatus   domain.TaskStatus `json:"new_status"`
	AssigneeID  *string           `json:"assignee_id,omitempty"`
	CreatedByID *string           `json:"created_by,omitempty"`
}
