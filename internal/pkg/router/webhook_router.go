package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/ManuelReschke/HookFox/app/controllers"
	"github.com/ManuelReschke/HookFox/internal/pkg/cache"
	"github.com/ManuelReschke/HookFox/internal/pkg/config"
	"github.com/ManuelReschke/HookFox/internal/pkg/middleware"
	"github.com/ManuelReschke/HookFox/internal/pkg/webhook"
)

type WebhookRouter struct {
	cfg       *config.Config
	pipelines map[string]*webhook.Pipeline
}

func NewWebhookRouter(cfg *config.Config, pipelines map[string]*webhook.Pipeline) *WebhookRouter {
	return &WebhookRouter{cfg: cfg, pipelines: pipelines}
}

func (w WebhookRouter) InstallRouter(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(webhook.Success("ok"))
	})

	var limit []fiber.Handler
	if w.cfg.Webhook.RateLimit > 0 {
		limit = append(limit, w.limiter())
	}
	hooks := app.Group("/webhooks")

	for _, provider := range providerNames(w.pipelines) {
		ctrl := controllers.NewWebhookController(w.pipelines[provider], w.cfg.Webhook.Timeout)
		cors := middleware.WebhookCORS(signatureHeaders[provider]...)
		mount(hooks, "/"+provider, cors, ctrl.HandleWebhook, limit...)

		// single endpoint deployments post to "/"
		if provider == w.cfg.App.RootProvider {
			mount(app, "/", cors, ctrl.HandleWebhook, limit...)
		}
	}
}

// mount registers OPTIONS, POST and the 405 fallback for one webhook path.
// Only POST runs through the limiter.
func mount(r fiber.Router, path string, cors, handler fiber.Handler, limit ...fiber.Handler) {
	post := append([]fiber.Handler{cors}, limit...)
	post = append(post, handler)

	r.Options(path, cors)
	r.Post(path, post...)
	r.All(path, cors, middleware.MethodNotAllowed)
}

func (w WebhookRouter) limiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          w.cfg.Webhook.RateLimit,
		Expiration:   time.Minute,
		KeyGenerator: controllers.ClientIP,
		Storage:      cache.LimiterStorage(w.cfg.Cache),
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(webhook.Failure("Too many requests"))
		},
	})
}
