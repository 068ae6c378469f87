package domain

import "time"

// TaskStatus enumerates lifecycle states for tasks.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusOverdue    TaskStatus = "overdue"
)

// ActiveTaskStatuses lists the statuses that count toward workload.
var ActiveTaskStatuses = []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusOverdue}

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusOverdue:
		return true
	}
	return false
}

// Active reports whether the task still consumes its assignee's hours.
func (s TaskStatus) Active() bool {
	return s.Valid() && s != TaskStatusCompleted
}

// TaskPriority enumerates urgency.
type TaskPriority string

const (
	TaskPriorityUrgent TaskPriority = "urgent"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityLow    TaskPriority = "low"
)

// Valid reports whether p is a known priority.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityUrgent, TaskPriorityHigh, TaskPriorityMedium, TaskPriorityLow:
		return true
	}
	return false
}

// Task is a unit of work created by a lead.
type Task struct {
	ID             string
	Title          string
	Description    string
	EstimatedHours float64
	Priority       TaskPriority
	Status         TaskStatus
	AssigneeID     *string
	CreatedByID    *string
	DueDate        *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Populated on reads only.
	Assignee  *UserSummary
	CreatedBy *UserSummary
}
