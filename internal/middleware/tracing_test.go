package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"bucketlist/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func withRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	previous := observability.Tracer
	observability.Tracer = tp.Tracer("test")
	t.Cleanup(func() { observability.Tracer = previous })
	return recorder
}

func TestTracingMiddleware_NamesSpanByRoute(t *testing.T) {
	recorder := withRecorder(t)

	app := fiber.New()
	app.Use(TracingMiddleware())
	app.Get("/v1/bucketlists/:id", func(c *fiber.Ctx) error {
		c.Locals(LocalsIdentity, "a@x.com")
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/boom", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusServiceUnavailable) })
	app.Get("/health/live", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/bucketlists/7", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))

	_, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.NoError(t, err)

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "GET /v1/bucketlists/:id", ended[0].Name())
	assert.Equal(t, codes.Unset, ended[0].Status().Code)
	assert.Equal(t, "GET /boom", ended[1].Name())
	assert.Equal(t, codes.Error, ended[1].Status().Code)
}
