package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/ManuelReschke/HookFox/app/repository"
	"github.com/ManuelReschke/HookFox/internal/pkg/archive"
	"github.com/ManuelReschke/HookFox/internal/pkg/cache"
	"github.com/ManuelReschke/HookFox/internal/pkg/config"
	"github.com/ManuelReschke/HookFox/internal/pkg/database"
	"github.com/ManuelReschke/HookFox/internal/pkg/env"
	"github.com/ManuelReschke/HookFox/internal/pkg/router"
)

func main() {
	app, cfg, err := NewApplication(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	err = app.Listen(fmt.Sprintf("%s:%s", cfg.App.Host, cfg.App.Port))
	log.Fatal(err)
}

func NewApplication(ctx context.Context) (*fiber.App, *config.Config, error) {
	env.SetupEnvFile()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	db, err := database.SetupDatabase(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("database: %w", err)
	}

	deps := router.Dependencies{
		Config: cfg,
		Repos:  repository.NewFactory(db).GetRepositories(),
		Cache:  cache.SetupCache(ctx, cfg.Cache),
	}
	if cfg.Archive.Enabled {
		client, err := archive.NewClient(ctx, cfg.Archive, cfg.App.Env)
		if err != nil {
			return nil, nil, fmt.Errorf("archive: %w", err)
		}
		deps.Archive = client
	}

	// init fiber app
	app := fiber.New(fiber.Config{
		AppName:      "HookFox",
		BodyLimit:    cfg.Webhook.BodyLimit,
		ReadTimeout:  cfg.Webhook.Timeout,
		WriteTimeout: cfg.Webhook.Timeout,
	})

	// recovery and logging
	app.Use(recover.New(), requestid.New(), logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	// SWAGGER / OPENAPI
	if docFile := findOpenAPIDoc(); docFile != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/docs/api/",
			FilePath: docFile,
			Path:     "v1",
		}))
	}

	// ROUTER
	router.InstallRouter(app, deps)

	return app, cfg, nil
}

func findOpenAPIDoc() string {
	// Define possible base paths
	basePaths := []string{
		"./",        // Current directory
		"../../",    // From cmd/hookfox to project root
		"../../../", // Fallback
	}
	for _, path := range basePaths {
		file := path + "public/docs/v1/openapi.yml"
		if _, err := os.Stat(file); err == nil {
			return file
		}
	}
	return ""
}
