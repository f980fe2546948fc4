package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidationError("bad"), http.StatusBadRequest},
		{"unauthenticated", NewUnauthenticatedError("who"), http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("no"), http.StatusForbidden},
		{"not found", NewNotFoundError("Bucketlist", 1), http.StatusNotFound},
		{"conflict", NewConflictError("dup"), http.StatusConflict},
		{"internal", NewInternalError(errors.New("boom")), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("outer: %w", NewForbiddenError("no")), http.StatusForbidden},
		{"plain error", errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestIsCode(t *testing.T) {
	err := fmt.Errorf("ctx: %w", NewConflictError("dup"))
	assert.True(t, IsCode(err, CodeConflict))
	assert.False(t, IsCode(err, CodeNotFound))
	assert.False(t, IsCode(errors.New("x"), CodeConflict))
}

func TestRespond_HidesInternalDetails(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return Respond(c, NewInternalError(errors.New("pq: connection refused")))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.NotContains(t, string(raw), "connection refused")

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "fail", body.Status)
	assert.Equal(t, CodeInternal, body.Code)
}

func TestNewPageMeta(t *testing.T) {
	m := NewPageMeta(2, 10, 25)
	assert.Equal(t, 3, m.Pages)
	assert.True(t, m.HasNext())
	assert.True(t, m.HasPrev())

	last := NewPageMeta(3, 10, 25)
	assert.False(t, last.HasNext())

	empty := NewPageMeta(1, 10, 0)
	assert.Equal(t, 0, empty.Pages)
	assert.False(t, empty.HasNext())
	assert.False(t, empty.HasPrev())
}
