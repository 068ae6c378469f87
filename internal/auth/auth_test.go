package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/equitask/equitask-api/internal/domain"
	"github.com/equitask/equitask-api/internal/repository/mocks"
	apperrors "github.com/equitask/equitask-api/pkg/util/errorutil"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	user := &domain.User{ID: "u1", Role: domain.UserRoleLead}

	token, exp, err := tm.GenerateToken(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, domain.UserRoleLead, claims.Role)
}

func TestParseTokenRejectsForeignSecretAndExpiry(t *testing.T) {
	user := &domain.User{ID: "u1", Role: domain.UserRoleEmployee}

	foreign, _, err := NewTokenManager("other", 60).GenerateToken(user)
	require.NoError(t, err)
	_, err = NewTokenManager("secret", 60).ParseToken(foreign)
	assert.Error(t, err)

	expired := NewTokenManager("secret", 60)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.GenerateToken(user)
	require.NoError(t, err)
	_, err = NewTokenManager("secret", 60).ParseToken(old)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2", 4)
	require.NoError(t, err)
	assert.NoError(t, ComparePassword(hash, "hunter2"))
	assert.Error(t, ComparePassword(hash, "hunter3"))
}

func newTestApp(users *mocks.UserRepository, tm *TokenManager) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Code)
		},
	})
	mw := NewAuthMiddleware(tm, users)
	app.Get("/me", mw.Handle, func(c *fiber.Ctx) error {
		user, _ := PrincipalFromContext(c)
		return c.SendString(user.ID)
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	employee := &domain.User{ID: "e1", Role: domain.UserRoleEmployee}
	lead := &domain.User{ID: "l1", Role: domain.UserRoleLead}
	employeeToken, _, _ := tm.GenerateToken(employee)
	leadToken, _, _ := tm.GenerateToken(lead)
	ghostToken, _, _ := tm.GenerateToken(&domain.User{ID: "ghost"})

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{name: "missing header", path: "/me", want: http.StatusUnauthorized},
		{name: "wrong scheme", path: "/me", header: "Basic abc", want: http.StatusUnauthorized},
		{name: "garbage token", path: "/me", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "deleted user", path: "/me", header: "Bearer " + ghostToken, want: http.StatusUnauthorized},
		{name: "valid employee", path: "/me", header: "Bearer " + employeeToken, want: http.StatusOK},
		{name: "valid lead", path: "/me", header: "Bearer " + leadToken, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mocks.UserRepository)
			users.On("GetByID", mock.Anything, "e1").Return(employee, nil).Maybe()
			users.On("GetByID", mock.Anything, "l1").Return(lead, nil).Maybe()
			users.On("GetByID", mock.Anything, "ghost").Return(nil, pgx.ErrNoRows).Maybe()

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := newTestApp(users, tm).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
