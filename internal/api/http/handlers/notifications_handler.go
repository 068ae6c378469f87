package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/equitask/equitask-api/internal/api/dto"
	"github.com/equitask/equitask-api/internal/auth"
	"github.com/equitask/equitask-api/internal/service"
	apperrors "github.com/equitask/equitask-api/pkg/util/errorutil"
)

// NotificationsHandler serves the caller's notification inbox.
type NotificationsHandler struct {
	notifications *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notifications *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications}
}

// List GET /notifications.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	list, err := h.notifications.List(c.UserContext(), principal.ID)
	if err != nil {
		return err
	}
	items := make([]dto.NotificationResponse, 0, len(list))
	for i := range list {
		items = append(items, notificationResponse(&list[i]))
	}
	return c.JSON(items)
}

// MarkRead PATCH /notifications/:id/read.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	notif, err := h.notifications.MarkRead(c.UserContext(), principal.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(notificationResponse(notif))
}

// MarkAllRead PATCH /notifications/read-all.
func (h *NotificationsHandler) MarkAllRead(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	count, err := h.notifications.MarkAllRead(c.UserContext(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.MarkAllReadResponse{Message: "All notifications marked as read", Updated: count})
}

// Delete DELETE /notifications/:id.
func (h *NotificationsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.notifications.Delete(c.UserContext(), principal.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Notification deleted"})
}
