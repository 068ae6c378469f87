package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestReadyReportsFailingDependency(t *testing.T) {
	h := NewHealthHandler("equitask-api", "test", map[string]Pinger{
		"postgres": stubPinger{},
		"redis":    stubPinger{err: errors.New("dial tcp: refused")},
	})
	app := fiber.New()
	app.Get("/ready", h.Ready)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ready", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "DEPENDENCY_UNAVAILABLE", body.Error.Code)
	assert.Equal(t, "ok", body.Error.Details["postgres"])
	assert.Equal(t, "dial tcp: refused", body.Error.Details["redis"])
}

func TestParseDueDate(t *testing.T) {
	str := func(s string) *string { return &s }

	got, err := parseDueDate(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = parseDueDate(str("  "))
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = parseDueDate(str("2024-06-01"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), *got)

	got, err = parseDueDate(str("2024-06-01T09:30:00+02:00"))
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 6, 1, 7, 30, 0, 0, time.UTC)))

	_, err = parseDueDate(str("next tuesday"))
	assert.Error(t, err)
}
