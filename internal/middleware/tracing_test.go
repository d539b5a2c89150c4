package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	"dentalreach/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracingMiddlewareSetsTraceHeader(t *testing.T) {
	shutdown, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:  "dentalreach-test",
		Environment:  "test",
		Enabled:      true,
		Exporter:     "stdout",
		SamplerRatio: 1.0,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(context.Background()) })

	app := fiber.New()
	app.Use(TracingMiddleware())

	var traceID string
	app.Get("/ping", func(c *fiber.Ctx) error {
		traceID, _ = c.Locals("traceID").(string)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
	assert.Equal(t, resp.Header.Get("X-Trace-ID"), traceID)
	assert.NotEqual(t, "00000000000000000000000000000000", traceID)
}

func TestInitTracingDisabledIsNoop(t *testing.T) {
	shutdown, err := observability.InitTracing(observability.TracingConfig{
		ServiceName: "dentalreach-test",
		Enabled:     false,
	})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}
