// Package suggestion ranks employees as assignees for a proposed task based on
// their current workload, weekly capacity and skill overlap.
package suggestion

import (
	"math"

	"github.com/equitask/equitask-api/internal/domain"
)

// Workload maps a user id to the estimated hours of their active tasks.
// Users without active tasks are absent and read as zero.
type Workload map[string]float64

// Hours returns the aggregated hours for userID.
func (w Workload) Hours(userID string) float64 {
	return w[userID]
}

// AggregateWorkload sums estimated hours of active, assigned tasks per assignee.
// Callers normally pass only active tasks; the status check is a guard so that
// completed tasks never count if a caller passes the full task set.
func AggregateWorkload(tasks []domain.Task) Workload {
	load := make(Workload)
	for i := range tasks {
		task := &tasks[i]
		if task.AssigneeID == nil || *task.AssigneeID == "" {
			continue
		}
		if !task.Status.Active() {
			continue
		}
		load[*task.AssigneeID] += sanitizeHours(task.EstimatedHours)
	}
	return load
}

// sanitizeHours treats negative and non-finite values as missing.
func sanitizeHours(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) || h < 0 {
		return 0
	}
	return h
}
