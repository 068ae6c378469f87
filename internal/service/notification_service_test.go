package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/equitask/equitask-api/internal/config"
	"github.com/equitask/equitask-api/internal/domain"
	"github.com/equitask/equitask-api/internal/events"
	"github.com/equitask/equitask-api/internal/repository/mocks"
)

func newNotificationServiceForTest() (*NotificationService, *mocks.NotificationRepository, *mocks.UserRepository, *recordingDispatcher) {
	notifications := &mocks.NotificationRepository{}
	users := &mocks.UserRepository{}
	dispatcher := newRecordingDispatcher()
	svc := NewNotificationService(NotificationDependencies{
		NotificationRepo: notifications,
		UserRepo:         users,
		Dispatcher:       dispatcher,
		Config:           config.NotificationConfig{EmailFrom: "noreply@test"},
	})
	svc.RegisterHandlers()
	return svc, notifications, users, dispatcher
}

func notificationFor(userID string, typ domain.NotificationType) interface{} {
	return mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == userID && n.Type == typ
	})
}

func TestAssignmentNotifiesAssignee(t *testing.T) {
	_, notifications, users, dispatcher := newNotificationServiceForTest()
	users.On("GetByID", mock.Anything, "emp-1").Return(&domain.User{
		ID: "emp-1", NotificationPrefs: domain.NotificationPrefs{InApp: true, Email: true},
	}, nil)
	notifications.On("Create", mock.Anything, notificationFor("emp-1", domain.NotificationTypeInfo)).Return(nil)

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		Type:    events.EventTaskAssigned,
		TaskID:  "t1",
		ActorID: strPtr("lead-1"),
		Payload: events.TaskAssignedPayload{Title: "Docs", NewAssigneeID: strPtr("emp-1")},
	}))
	notifications.AssertExpectations(t)
}

func TestAssignmentRespectsPreferences(t *testing.T) {
	_, notifications, users, dispatcher := newNotificationServiceForTest()
	users.On("GetByID", mock.Anything, "emp-1").Return(&domain.User{
		ID: "emp-1", NotificationPrefs: domain.NotificationPrefs{InApp: false, Email: true},
	}, nil)

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		Type:    events.EventTaskAssigned,
		TaskID:  "t1",
		Payload: events.TaskAssignedPayload{Title: "Docs", NewAssigneeID: strPtr("emp-1")},
	}))
	notifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSelfAssignmentIsSilent(t *testing.T) {
	_, notifications, users, dispatcher := newNotificationServiceForTest()

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		Type:    events.EventTaskAssigned,
		TaskID:  "t1",
		ActorID: strPtr("lead-1"),
		Payload: events.TaskAssignedPayload{Title: "Docs", NewAssigneeID: strPtr("lead-1")},
	}))
	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	notifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestStatusChangeNotifications(t *testing.T) {
	_, notifications, users, dispatcher := newNotificationServiceForTest()
	prefs := domain.NotificationPrefs{InApp: true}
	users.On("GetByID", mock.Anything, "lead-1").Return(&domain.User{ID: "lead-1", NotificationPrefs: prefs}, nil)
	users.On("GetByID", mock.Anything, "emp-1").Return(&domain.User{ID: "emp-1", NotificationPrefs: prefs}, nil)
	notifications.On("Create", mock.Anything, notificationFor("lead-1", domain.NotificationTypeSuccess)).Return(nil).Once()
	notifications.On("Create", mock.Anything, notificationFor("emp-1", domain.NotificationTypeWarning)).Return(nil).Once()

	base := events.TaskStatusChangedPayload{Title: "Docs", AssigneeID: strPtr("emp-1"), CreatedByID: strPtr("lead-1")}

	completed := base
	completed.OldStatus, completed.NewStatus = domain.TaskStatusInProgress, domain.TaskStatusCompleted
	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		Type: events.EventTaskStatusChanged, TaskID: "t1", ActorID: strPtr("emp-1"), Payload: completed,
	}))

	overdue := base
	overdue.NewStatus = domain.TaskStatusOverdue
	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		Type: events.EventTaskStatusChanged, TaskID: "t1", Payload: overdue,
	}))

	inProgress := base
	inProgress.NewStatus = domain.TaskStatusInProgress
	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		Type: events.EventTaskStatusChanged, TaskID: "t1", Payload: inProgress,
	}))

	notifications.AssertExpectations(t)
	notifications.AssertNumberOfCalls(t, "Create", 2)
}

func TestNotificationInbox(t *testing.T) {
	svc, notifications, _, _ := newNotificationServiceForTest()
	ctx := context.Background()

	notifications.On("ListByUser", mock.Anything, "u1", 20).Return([]domain.Notification{{ID: "n1"}}, nil)
	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	notifications.On("MarkRead", mock.Anything, "n1", "u1").Return(&domain.Notification{ID: "n1", Read: true}, nil)
	notifications.On("MarkRead", mock.Anything, "n2", "u1").Return(nil, pgx.ErrNoRows)
	n, err := svc.MarkRead(ctx, "u1", "n1")
	require.NoError(t, err)
	assert.True(t, n.Read)
	_, err = svc.MarkRead(ctx, "u1", "n2")
	requireDomainCode(t, err, "NOT_FOUND")

	notifications.On("MarkAllRead", mock.Anything, "u1").Return(int64(3), nil)
	count, err := svc.MarkAllRead(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	notifications.On("Delete", mock.Anything, "n1", "u1").Return(nil)
	notifications.On("Delete", mock.Anything, "n9", "u1").Return(pgx.ErrNoRows)
	require.NoError(t, svc.Delete(ctx, "u1", "n1"))
	requireDomainCode(t, svc.Delete(ctx, "u1", "n9"), "NOT_FOUND")
}
