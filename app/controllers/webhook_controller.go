package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/HookFox/internal/pkg/webhook"
)

const defaultWebhookTimeout = 15 * time.Second

// WebhookController serves the POST endpoint of one provider.
type WebhookController struct {
	pipeline *webhook.Pipeline
	timeout  time.Duration
}

func NewWebhookController(pipeline *webhook.Pipeline, timeout time.Duration) *WebhookController {
	if timeout <= 0 {
		timeout = defaultWebhookTimeout
	}
	return &WebhookController{pipeline: pipeline, timeout: timeout}
}

// HandleWebhook passes the exact request bytes to the pipeline. fiber reuses
// the body buffer after the handler returns, so it is copied first.
func (w *WebhookController) HandleWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)

	ctx, cancel := context.WithTimeout(c.UserContext(), w.timeout)
	defer cancel()

	resp := w.pipeline.Process(ctx, rawBody, requestHeaders{c: c})
	return c.Status(resp.Status).JSON(resp.Result)
}
