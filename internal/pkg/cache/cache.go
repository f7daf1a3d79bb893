package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	redisstorage "github.com/gofiber/storage/redis"
	"github.com/redis/go-redis/v9"

	"github.com/ManuelReschke/HookFox/internal/pkg/config"
)

// Redis databases per concern.
const (
	DatabaseCounters = 0
	DatabaseLimiter  = 1
)

// SetupCache connects to the Redis (or Dragonfly) server used for delivery
// counters. It returns nil when the cache is disabled.
func SetupCache(ctx context.Context, cfg config.CacheConfig) *redis.Client {
	if !cfg.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       DatabaseCounters,
	})

	// Test the connection
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	pong, err := client.Ping(pingCtx).Result()
	if err != nil {
		log.Warnf("[Cache] Could not connect to cache at %s: %v", cfg.Addr(), err)
	} else {
		log.Infof("[Cache] Connected to cache at %s: %s", cfg.Addr(), pong)
	}
	return client
}

// LimiterStorage returns the fiber storage backing the webhook rate limiter,
// or nil (in-memory limiter) when the cache is disabled.
func LimiterStorage(cfg config.CacheConfig) fiber.Storage {
	if !cfg.Enabled {
		return nil
	}
	port, err := strconv.Atoi(cfg.Port)
	if err != nil {
		log.Warnf("[Cache] Invalid cache port %q, using in-memory limiter", cfg.Port)
		return nil
	}
	return redisstorage.New(redisstorage.Config{
		Host:     cfg.Host,
		Port:     port,
		Password: cfg.Password,
		Database: DatabaseLimiter,
		Reset:    false,
	})
}
