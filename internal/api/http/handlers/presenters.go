package handlers

import (
	"strings"
	"time"

	"github.com/equitask/equitask-api/internal/api/dto"
	"github.com/equitask/equitask-api/internal/domain"
	"github.com/equitask/equitask-api/internal/service"
	apperrors "github.com/equitask/equitask-api/pkg/util/errorutil"
)

func userSummary(u *domain.UserSummary) *dto.UserSummary {
	if u == nil {
		return nil
	}
	return &dto.UserSummary{ID: u.ID, Username: u.Username, Email: u.Email, Role: string(u.Role)}
}

func userResponse(u *domain.User) dto.UserResponse {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return dto.UserResponse{
		ID:                  u.ID,
		Username:            u.Username,
		Email:               u.Email,
		Role:                string(u.Role),
		Skills:              skills,
		Status:              string(u.Status),
		WeeklyCapacityHours: u.Capacity(),
		NotificationPrefs: dto.NotificationPrefs{
			Email: u.NotificationPrefs.Email,
			InApp: u.NotificationPrefs.InApp,
		},
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func taskResponse(t *domain.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		EstimatedHours: t.EstimatedHours,
		Priority:       string(t.Priority),
		Status:         string(t.Status),
		Assignee:       userSummary(t.Assignee),
		CreatedBy:      userSummary(t.CreatedBy),
		DueDate:        t.DueDate,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func notificationResponse(n *domain.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      string(n.Type),
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

func weeklyReportResponse(r *service.WeeklyReport) dto.WeeklyReportResponse {
	performers := make([]dto.Performer, 0, len(r.TopPerformers))
	for _, p := range r.TopPerformers {
		performers = append(performers, dto.Performer{Name: p.Name, CompletedTasks: p.CompletedTasks})
	}
	return dto.WeeklyReportResponse{
		TotalTasks:            r.TotalTasks,
		CompletedTasks:        r.CompletedTasks,
		OverdueTasks:          r.OverdueTasks,
		AverageCompletionTime: r.AverageCompletionTime,
		TeamUtilization:       r.TeamUtilization,
		TopPerformers:         performers,
	}
}

// parseDueDate accepts RFC3339 timestamps and plain dates. An empty string
// yields nil.
func parseDueDate(val *string) (*time.Time, error) {
	if val == nil || strings.TrimSpace(*val) == "" {
		return nil, nil
	}
	raw := strings.TrimSpace(*val)
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, apperrors.NewValidationError("invalid dueDate", map[string]any{"dueDate": raw})
}
