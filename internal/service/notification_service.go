package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/equitask/equitask-api/internal/config"
	"github.com/equitask/equitask-api/internal/domain"
	"github.com/equitask/equitask-api/internal/events"
	"github.com/equitask/equitask-api/internal/repository"
	apperrors "github.com/equitask/equitask-api/pkg/util/errorutil"
)

const notificationListLimit = 20

// NotificationService turns task events into per-user notifications and serves
// the notification inbox.
type NotificationService struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
	cfg           config.NotificationConfig
}

// NotificationDependencies bundles collaborators.
type NotificationDependencies struct {
	NotificationRepo repository.NotificationRepository
	UserRepo         repository.UserRepository
	Dispatcher       events.Dispatcher
	Logger           *zap.Logger
	Config           config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(deps NotificationDependencies) *NotificationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		notifications: deps.NotificationRepo,
		users:         deps.UserRepo,
		dispatcher:    deps.Dispatcher,
		logger:        logger,
		cfg:           deps.Config,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTaskCreated, n.handleTaskCreated)
	n.dispatcher.Subscribe(events.EventTaskAssigned, n.handleTaskAssigned)
	n.dispatcher.Subscribe(events.EventTaskStatusChanged, n.handleTaskStatusChanged)
}

// List returns the newest notifications for userID.
func (n *NotificationService) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	list, err := n.notifications.ListByUser(ctx, userID, notificationListLimit)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// MarkRead marks one of the caller's notifications as read.
func (n *NotificationService) MarkRead(ctx context.Context, userID, id string) (*domain.Notification, error) {
	notif, err := n.notifications.MarkRead(ctx, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("notification", map[string]any{"notification_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return notif, nil
}

// MarkAllRead marks every unread notification of the caller as read.
func (n *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	count, err := n.notifications.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	return count, nil
}

// Delete removes one of the caller's notifications.
func (n *NotificationService) Delete(ctx context.Context, userID, id string) error {
	if err := n.notifications.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("notification", map[string]any{"notification_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (n *NotificationService) handleTaskCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("TaskCreated", zap.String("task_id", event.TaskID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleTaskAssigned(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TaskAssignedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	n.logger.Info("TaskAssigned", zap.String("task_id", event.TaskID), zap.Any("payload", payload))
	n.sendWebhookNotificationStub(ctx, event)

	if payload.NewAssigneeID == nil {
		return nil
	}
	return n.notify(ctx, event, *payload.NewAssigneeID, domain.Notification{
		Title:   "New task assigned",
		Message: fmt.Sprintf("You have been assigned %q", payload.Title),
		Type:    domain.NotificationTypeInfo,
	})
}

func (n *NotificationService) handleTaskStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TaskStatusChangedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	n.logger.Info("TaskStatusChanged", zap.String("task_id", event.TaskID), zap.Any("payload", payload))
	n.sendWebhookNotificationStub(ctx, event)

	switch payload.NewStatus {
	case domain.TaskStatusCompleted:
		if payload.CreatedByID == nil {
			return nil
		}
		return n.notify(ctx, event, *payload.CreatedByID, domain.Notification{
			Title:   "Task completed",
			Message: fmt.Sprintf("%q was marked completed", payload.Title),
			Type:    domain.NotificationTypeSuccess,
		})
	case domain.TaskStatusOverdue:
		if payload.AssigneeID == nil {
			return nil
		}
		return n.notify(ctx, event, *payload.AssigneeID, domain.Notification{
			Title:   "Task overdue",
			Message: fmt.Sprintf("%q is past its due date", payload.Title),
			Type:    domain.NotificationTypeWarning,
		})
	}
	return nil
}

// notify delivers to recipientID over the channels they opted into. The actor
// is never notified about their own change.
func (n *NotificationService) notify(ctx context.Context, event events.Event, recipientID string, notif domain.Notification) error {
	if event.ActorID != nil && *event.ActorID == recipientID {
		return nil
	}
	recipient, err := n.users.GetByID(ctx, recipientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}

	if recipient.NotificationPrefs.Email {
		n.sendEmailNotificationStub(ctx, recipient, event)
	}
	if !recipient.NotificationPrefs.InApp {
		return nil
	}
	notif.UserID = recipient.ID
	return n.notifications.Create(ctx, &notif)
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, recipient *domain.User, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("to", recipient.Email),
		zap.String("task_id", event.TaskID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("task_id", event.TaskID),
		zap.String("event_type", string(event.Type)))
}
