package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/equitask/equitask-api/internal/domain"
	"github.com/equitask/equitask-api/internal/repository/mocks"
)

func TestListTeamStats(t *testing.T) {
	users := &mocks.UserRepository{}
	tasks := &mocks.TaskRepository{}
	users.On("List", mock.Anything, mock.Anything).Return([]domain.User{{ID: "a"}, {ID: "b"}}, nil)
	tasks.On("List", mock.Anything, mock.Anything).Return([]domain.Task{
		{AssigneeID: strPtr("a"), Status: domain.TaskStatusCompleted},
		{AssigneeID: strPtr("a"), Status: domain.TaskStatusCompleted},
		{AssigneeID: strPtr("a"), Status: domain.TaskStatusInProgress},
		{AssigneeID: strPtr("ghost"), Status: domain.TaskStatusPending},
		{Status: domain.TaskStatusPending},
	}, nil)

	team, err := NewUserService(users, tasks).ListTeam(context.Background())
	require.NoError(t, err)
	assert.Len(t, team.Users, 2)
	assert.Equal(t, MemberStats{ActiveTasks: 1, CompletedTasks: 2, Efficiency: 67}, team.Stats["a"])
	assert.Equal(t, MemberStats{}, team.Stats["b"])
	assert.NotContains(t, team.Stats, "ghost")
}

func TestUpdateProfilePermissions(t *testing.T) {
	users := &mocks.UserRepository{}
	svc := NewUserService(users, &mocks.TaskRepository{})

	_, err := svc.UpdateProfile(context.Background(), employee, "someone-else", UserUpdateInput{})
	de := requireDomainCode(t, err, "FORBIDDEN")
	assert.Equal(t, "Not allowed", de.Message)

	self := &domain.User{ID: employee.ID, Role: domain.UserRoleEmployee}
	users.On("GetByID", mock.Anything, employee.ID).Return(self, nil)
	promote := domain.UserRoleLead
	_, err = svc.UpdateProfile(context.Background(), employee, employee.ID, UserUpdateInput{Role: &promote})
	requireDomainCode(t, err, "FORBIDDEN")
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateProfileApplies(t *testing.T) {
	users := &mocks.UserRepository{}
	target := &domain.User{ID: "emp-9", Username: "old", Role: domain.UserRoleEmployee, Skills: []string{"go"}}
	users.On("GetByID", mock.Anything, "emp-9").Return(target, nil)
	users.On("Update", mock.Anything, target).Return(nil)

	capacity := 30.0
	busy := domain.UserStatusBusy
	role := domain.UserRoleLead
	updated, err := NewUserService(users, &mocks.TaskRepository{}).UpdateProfile(context.Background(), lead, "emp-9", UserUpdateInput{
		Username:            strPtr(" new "),
		Skills:              []string{" sql ", "", "sql", "Go"},
		SkillsSet:           true,
		Status:              &busy,
		WeeklyCapacityHours: &capacity,
		NotificationPrefs:   &domain.NotificationPrefs{Email: false, InApp: true},
		Role:                &role,
	})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Username)
	assert.Equal(t, []string{"sql", "Go"}, updated.Skills)
	assert.Equal(t, domain.UserStatusBusy, updated.Status)
	assert.Equal(t, 30.0, updated.WeeklyCapacityHours)
	assert.Equal(t, domain.UserRoleLead, updated.Role)
	assert.True(t, updated.NotificationPrefs.InApp)
	users.AssertExpectations(t)
}

func TestUpdateProfileValidation(t *testing.T) {
	users := &mocks.UserRepository{}
	users.On("GetByID", mock.Anything, "missing").Return(nil, pgx.ErrNoRows)
	users.On("GetByID", mock.Anything, "emp-1").Return(&domain.User{ID: "emp-1"}, nil)
	svc := NewUserService(users, &mocks.TaskRepository{})

	_, err := svc.UpdateProfile(context.Background(), lead, "missing", UserUpdateInput{})
	requireDomainCode(t, err, "NOT_FOUND")

	zero := 0.0
	_, err = svc.UpdateProfile(context.Background(), lead, "emp-1", UserUpdateInput{WeeklyCapacityHours: &zero})
	requireDomainCode(t, err, "VALIDATION_FAILED")
}
