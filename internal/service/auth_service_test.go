package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/equitask/equitask-api/internal/auth"
	"github.com/equitask/equitask-api/internal/config"
	"github.com/equitask/equitask-api/internal/domain"
	"github.com/equitask/equitask-api/internal/repository"
	"github.com/equitask/equitask-api/internal/repository/mocks"
)

var testAuthConfig = config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 5, BcryptCost: 4}

func TestRegister(t *testing.T) {
	users := &mocks.UserRepository{}
	users.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, pgx.ErrNoRows)
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := NewAuthService(testAuthConfig, users).Register(context.Background(), RegisterInput{
		Username: "newbie",
		Email:    " new@example.com ",
		Password: "secret",
		Role:     "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.UserRoleEmployee, user.Role)
	assert.Equal(t, domain.DefaultWeeklyCapacityHours, user.WeeklyCapacityHours)
	assert.NotEqual(t, "secret", user.PasswordHash)
	assert.NoError(t, auth.ComparePassword(user.PasswordHash, "secret"))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Run("lookup", func(t *testing.T) {
		users := &mocks.UserRepository{}
		users.On("GetByEmail", mock.Anything, "dup@example.com").Return(&domain.User{ID: "x"}, nil)

		_, err := NewAuthService(testAuthConfig, users).Register(context.Background(), RegisterInput{Email: "dup@example.com", Password: "p"})
		de := requireDomainCode(t, err, "BAD_REQUEST")
		assert.Equal(t, "Email already exists", de.Message)
	})

	t.Run("unique violation", func(t *testing.T) {
		users := &mocks.UserRepository{}
		users.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, pgx.ErrNoRows)
		users.On("Create", mock.Anything, mock.Anything).Return(repository.ErrEmailTaken)

		_, err := NewAuthService(testAuthConfig, users).Register(context.Background(), RegisterInput{Email: "race@example.com", Password: "p"})
		de := requireDomainCode(t, err, "BAD_REQUEST")
		assert.Equal(t, "Email already exists", de.Message)
	})
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("right", testAuthConfig.BcryptCost)
	require.NoError(t, err)
	stored := &domain.User{ID: "u1", Email: "a@example.com", PasswordHash: hash, Role: domain.UserRoleLead}

	users := &mocks.UserRepository{}
	users.On("GetByEmail", mock.Anything, "a@example.com").Return(stored, nil)
	users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, pgx.ErrNoRows)
	users.On("GetByEmail", mock.Anything, "broken@example.com").Return(nil, errors.New("conn reset"))
	svc := NewAuthService(testAuthConfig, users)

	user, token, _, err := svc.Login(context.Background(), "a@example.com", "right")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)

	_, _, _, err = svc.Login(context.Background(), "a@example.com", "wrong")
	assert.Equal(t, "Invalid password", requireDomainCode(t, err, "BAD_REQUEST").Message)

	_, _, _, err = svc.Login(context.Background(), "nobody@example.com", "x")
	assert.Equal(t, "User not found", requireDomainCode(t, err, "BAD_REQUEST").Message)

	_, _, _, err = svc.Login(context.Background(), "broken@example.com", "x")
	requireDomainCode(t, err, "INTERNAL_ERROR")
}
