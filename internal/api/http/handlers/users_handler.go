package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/equitask/equitask-api/internal/api/dto"
	"github.com/equitask/equitask-api/internal/auth"
	"github.com/equitask/equitask-api/internal/domain"
	"github.com/equitask/equitask-api/internal/service"
	apperrors "github.com/equitask/equitask-api/pkg/util/errorutil"
)

// UsersHandler exposes the team directory and profile updates.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// ListUsers GET /users.
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	team, err := h.users.ListTeam(c.UserContext())
	if err != nil {
		return err
	}
	resp := dto.TeamResponse{
		Users: make([]dto.UserResponse, 0, len(team.Users)),
		Stats: make(map[string]dto.MemberStats, len(team.Stats)),
	}
	for i := range team.Users {
		resp.Users = append(resp.Users, userResponse(&team.Users[i]))
	}
	for id, s := range team.Stats {
		resp.Stats[id] = dto.MemberStats{
			ActiveTasks:    s.ActiveTasks,
			CompletedTasks: s.CompletedTasks,
			Efficiency:     s.Efficiency,
		}
	}
	return c.JSON(resp)
}

// UpdateUser PATCH /users/:id.
func (h *UsersHandler) UpdateUser(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	input := service.UserUpdateInput{
		Username:            req.Username,
		WeeklyCapacityHours: req.WeeklyCapacityHours,
	}
	if req.Skills != nil {
		input.Skills = *req.Skills
		input.SkillsSet = true
	}
	if req.Status != nil {
		s := domain.UserStatus(*req.Status)
		input.Status = &s
	}
	if req.Role != nil {
		r := domain.UserRole(*req.Role)
		input.Role = &r
	}
	if req.NotificationPrefs != nil {
		input.NotificationPrefs = &domain.NotificationPrefs{
			Email: req.NotificationPrefs.Email,
			InApp: req.NotificationPrefs.InApp,
		}
	}

	user, err := h.users.UpdateProfile(c.UserContext(), principal, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(userResponse(user))
}
