package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

var baseAllowHeaders = []string{"authorization", "x-client-info", "apikey", "content-type"}

// WebhookCORS answers preflight requests with 200 and an empty body and adds
// the permissive CORS headers to every response. extraHeaders lists the
// provider signature headers.
func WebhookCORS(extraHeaders ...string) fiber.Handler {
	allowHeaders := strings.Join(append(append([]string{}, baseAllowHeaders...), extraHeaders...), ", ")

	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		c.Set(fiber.HeaderAccessControlAllowHeaders, allowHeaders)
		c.Set(fiber.HeaderAccessControlAllowMethods, "POST, OPTIONS")

		if c.Method() == fiber.MethodOptions {
			return c.Status(fiber.StatusOK).Send(nil)
		}
		return c.Next()
	}
}

// MethodNotAllowed is registered after the POST route of a webhook path.
func MethodNotAllowed(c *fiber.Ctx) error {
	c.Set(fiber.HeaderAllow, "POST, OPTIONS")
	return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{
		"success": false,
		"message": "Method not allowed",
	})
}
