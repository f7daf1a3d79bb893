package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/ManuelReschke/HookFox/app/repository"
	"github.com/ManuelReschke/HookFox/internal/pkg/config"
	"github.com/ManuelReschke/HookFox/internal/pkg/metrics/counter"
	"github.com/ManuelReschke/HookFox/internal/pkg/webhook"
)

type Router interface {
	InstallRouter(app *fiber.App)
}

// Dependencies are constructed once in main and shared by all routes.
type Dependencies struct {
	Config *config.Config
	Repos  *repository.Repositories
	// Cache is optional; without it counters and the shared limiter are off.
	Cache *redis.Client
	// Archive is optional.
	Archive webhook.Archiver
}

func (d Dependencies) counter() *counter.Counter {
	if d.Cache == nil {
		return nil
	}
	return counter.New(d.Cache)
}

func InstallRouter(app *fiber.App, deps Dependencies) {
	pipelines := NewPipelines(deps)
	setup(app,
		NewWebhookRouter(deps.Config, pipelines),
		NewAdminRouter(deps.Config, deps.counter(), providerNames(pipelines)...),
	)
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
