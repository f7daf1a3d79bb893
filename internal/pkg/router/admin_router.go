package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/monitor"

	"github.com/ManuelReschke/HookFox/app/controllers"
	"github.com/ManuelReschke/HookFox/internal/pkg/config"
	"github.com/ManuelReschke/HookFox/internal/pkg/metrics/counter"
	"github.com/ManuelReschke/HookFox/internal/pkg/middleware"
)

// AdminRouter exposes delivery counters and the fiber monitor behind basic auth.
type AdminRouter struct {
	cfg       *config.Config
	counter   *counter.Counter
	providers []string
}

func NewAdminRouter(cfg *config.Config, c *counter.Counter, providers ...string) *AdminRouter {
	return &AdminRouter{cfg: cfg, counter: c, providers: providers}
}

func (a AdminRouter) InstallRouter(app *fiber.App) {
	stats := controllers.NewStatsController(a.counter, a.providers...)

	admin := app.Group("/admin", middleware.RequireMetricsAuth(a.cfg.Metrics))
	admin.Get("/stats", stats.HandleStats)
	admin.Get("/metrics", monitor.New(monitor.Config{Title: "HookFox Metrics"}))
}
