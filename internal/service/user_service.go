package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/equitask/equitask-api/internal/domain"
	"github.com/equitask/equitask-api/internal/repository"
	apperrors "github.com/equitask/equitask-api/pkg/util/errorutil"
)

// UserService manages team members and their profiles.
type UserService struct {
	users repository.UserRepository
	tasks repository.TaskRepository
}

// MemberStats summarizes one member's task counts.
type MemberStats struct {
	ActiveTasks    int
	CompletedTasks int
	Efficiency     int
}

// TeamOverview is the team page payload.
type TeamOverview struct {
	Users []domain.User
	Stats map[string]MemberStats
}

// UserUpdateInput lists profile fields; nil means unchanged.
type UserUpdateInput struct {
	Username            *string
	Skills              []string
	SkillsSet           bool
	Status              *domain.UserStatus
	WeeklyCapacityHours *float64
	NotificationPrefs   *domain.NotificationPrefs
	Role                *domain.UserRole
}

// NewUserService creates the service.
func NewUserService(users repository.UserRepository, tasks repository.TaskRepository) *UserService {
	return &UserService{users: users, tasks: tasks}
}

// ListTeam returns every user with per-user task statistics.
func (s *UserService) ListTeam(ctx context.Context) (*TeamOverview, error) {
	users, err := s.users.List(ctx, repository.UserFilter{})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	tasks, err := s.tasks.List(ctx, repository.TaskFilter{})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &TeamOverview{Users: users, Stats: memberStats(users, tasks)}, nil
}

// UpdateProfile applies a profile change. Users may edit themselves; leads may
// edit anyone and are the only ones allowed to change roles.
func (s *UserService) UpdateProfile(ctx context.Context, actor *domain.User, userID string, input UserUpdateInput) (*domain.User, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if actor.ID != userID && !actor.IsLead() {
		return nil, apperrors.NewForbidden("Not allowed")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, apperrors.MapError(err)
	}

	if input.Username != nil {
		name := strings.TrimSpace(*input.Username)
		if name == "" {
			return nil, apperrors.NewValidationError("username required", nil)
		}
		user.Username = name
	}
	if input.SkillsSet {
		user.Skills = normalizeSkills(input.Skills)
	}
	if input.Status != nil {
		if *input.Status != domain.UserStatusAvailable && *input.Status != domain.UserStatusBusy {
			return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": *input.Status})
		}
		user.Status = *input.Status
	}
	if input.WeeklyCapacityHours != nil {
		if *input.WeeklyCapacityHours <= 0 {
			return nil, apperrors.NewValidationError("weeklyCapacityHours must be positive", nil)
		}
		user.WeeklyCapacityHours = *input.WeeklyCapacityHours
	}
	if input.NotificationPrefs != nil {
		user.NotificationPrefs = *input.NotificationPrefs
	}
	if input.Role != nil && *input.Role != user.Role {
		if !actor.IsLead() {
			return nil, apperrors.NewForbidden("Only leads can change roles")
		}
		if *input.Role != domain.UserRoleEmployee && *input.Role != domain.UserRoleLead {
			return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": *input.Role})
		}
		user.Role = *input.Role
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

func memberStats(users []domain.User, tasks []domain.Task) map[string]MemberStats {
	stats := make(map[string]MemberStats, len(users))
	for _, u := range users {
		stats[u.ID] = MemberStats{}
	}
	for i := range tasks {
		t := &tasks[i]
		if t.AssigneeID == nil {
			continue
		}
		st, ok := stats[*t.AssigneeID]
		if !ok {
			continue
		}
		switch {
		case t.Status == domain.TaskStatusCompleted:
			st.CompletedTasks++
		case t.Status.Active():
			st.ActiveTasks++
		}
		stats[*t.AssigneeID] = st
	}
	for id, st := range stats {
		total := st.ActiveTasks + st.CompletedTasks
		if total > 0 {
			st.Efficiency = int(math.Round(100 * float64(st.CompletedTasks) / float64(total)))
			stats[id] = st
		}
	}
	return stats
}

// normalizeSkills trims entries and drops blanks and exact duplicates.
func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
