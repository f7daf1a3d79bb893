package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/HookFox/internal/pkg/metrics/counter"
)

// StatsController reports delivery counters per provider.
type StatsController struct {
	counter   *counter.Counter
	providers []string
}

func NewStatsController(c *counter.Counter, providers ...string) *StatsController {
	return &StatsController{counter: c, providers: providers}
}

// HandleStats returns the counters; ?reset=true drains them.
func (s *StatsController) HandleStats(c *fiber.Ctx) error {
	if s.counter == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"message": "Counters need CACHE_ENABLED=true",
		})
	}

	reset := c.QueryBool("reset", false)
	stats := make(map[string][]counter.Entry, len(s.providers))
	for _, provider := range s.providers {
		var (
			entries []counter.Entry
			err     error
		)
		if reset {
			entries, err = s.counter.Drain(c.UserContext(), provider)
		} else {
			entries, err = s.counter.Snapshot(c.UserContext(), provider)
		}
		if err != nil {
			log.Errorf("[Stats] Failed to read counters for %s: %v", provider, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Failed to read counters",
			})
		}
		if entries == nil {
			entries = []counter.Entry{}
		}
		stats[provider] = entries
	}

	return c.JSON(fiber.Map{
		"success": true,
		"reset":   reset,
		"stats":   stats,
	})
}
