package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"

	"github.com/ManuelReschke/HookFox/internal/pkg/config"
)

// RequireMetricsAuth guards the admin endpoints with basic auth. Without
// configured credentials the endpoints are hidden behind a 404.
func RequireMetricsAuth(cfg config.MetricsConfig) fiber.Handler {
	if !cfg.Enabled() {
		return func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Not found",
			})
		}
	}
	return basicauth.New(basicauth.Config{
		Users: map[string]string{
			cfg.User: cfg.Password,
		},
		Realm: "HookFox Admin",
	})
}
