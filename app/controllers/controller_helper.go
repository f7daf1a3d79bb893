package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// requestHeaders exposes the request headers of a fiber context to the
// webhook verifiers.
type requestHeaders struct {
	c *fiber.Ctx
}

func (h requestHeaders) Get(key string) string {
	return h.c.Get(key)
}

// ClientIP determines the client address behind Cloudflare or a proxy. It is
// used as the rate limiter key.
func ClientIP(c *fiber.Ctx) string {
	// 1. Cloudflare provides the original client IP
	if cfIP := strings.TrimSpace(c.Get("CF-Connecting-IP")); cfIP != "" {
		return cfIP
	}

	// 2. X-Forwarded-For, the first entry is the original client
	if xff := c.Get(fiber.HeaderXForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	// 3. X-Real-IP set by nginx
	if realIP := strings.TrimSpace(c.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	// 4. Remote address, IPv4-mapped IPv6 unwrapped
	return strings.TrimPrefix(c.IP(), "::ffff:")
}
