package middleware

import (
	"encoding/base64"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/HookFox/internal/pkg/config"
)

func newCORSApp() *fiber.App {
	app := fiber.New()
	app.Use("/hook", WebhookCORS("x-onesignal-signature"))
	app.Post("/hook", func(c *fiber.Ctx) error { return c.SendString("posted") })
	app.All("/hook", MethodNotAllowed)
	return app
}

func TestWebhookCORS_Preflight(t *testing.T) {
	app := newCORSApp()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodOptions, "/hook", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	assert.Contains(t, resp.Header.Get(fiber.HeaderAccessControlAllowHeaders), "x-onesignal-signature")

	body, _ := io.ReadAll(resp.Body)
	assert.Empty(t, body)
}

func TestWebhookCORS_MethodNotAllowed(t *testing.T) {
	app := newCORSApp()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/hook", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusMethodNotAllowed, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"success":false,"message":"Method not allowed"}`, string(body))

	resp, err = app.Test(httptest.NewRequest(fiber.MethodPost, "/hook", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}

func TestRequireMetricsAuth(t *testing.T) {
	handler := func(c *fiber.Ctx) error { return c.SendString("stats") }

	disabled := fiber.New()
	disabled.Get("/admin", RequireMetricsAuth(config.MetricsConfig{}), handler)
	resp, err := disabled.Test(httptest.NewRequest(fiber.MethodGet, "/admin", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	enabled := fiber.New()
	enabled.Get("/admin", RequireMetricsAuth(config.MetricsConfig{User: "ops", Password: "secret"}), handler)

	resp, err = enabled.Test(httptest.NewRequest(fiber.MethodGet, "/admin", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(fiber.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("ops:secret")))
	resp, err = enabled.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
