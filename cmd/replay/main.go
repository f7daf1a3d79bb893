package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ManuelReschke/HookFox/app/repository"
	"github.com/ManuelReschke/HookFox/internal/pkg/config"
	"github.com/ManuelReschke/HookFox/internal/pkg/database"
	"github.com/ManuelReschke/HookFox/internal/pkg/env"
	"github.com/ManuelReschke/HookFox/internal/pkg/router"
)

func main() {
	provider := flag.String("provider", "", "only replay deliveries of this provider (polar, onesignal)")
	limit := flag.Int("limit", 100, "maximum number of deliveries to replay")
	dryRun := flag.Bool("dry-run", false, "list failed deliveries without dispatching them")
	flag.Usage = func() {
		fmt.Println("Usage: go run cmd/replay/main.go [-provider polar] [-limit 100] [-dry-run]")
		fmt.Println("Dispatches verified deliveries whose last attempt failed again.")
		flag.PrintDefaults()
	}
	flag.Parse()

	env.SetupEnvFile()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.SetupDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	repos := repository.NewFactory(db).GetRepositories()

	ctx := context.Background()
	events, err := repos.WebhookEvent.ListFailed(ctx, *provider, *limit)
	if err != nil {
		log.Fatalf("Failed to list failed deliveries: %v", err)
	}
	if len(events) == 0 {
		log.Println("No failed deliveries")
		return
	}

	pipelines := router.NewPipelines(router.Dependencies{Config: cfg, Repos: repos})

	failed := 0
	for _, event := range events {
		if *dryRun {
			log.Printf("#%d %s %s %s: %s", event.ID, event.Provider, event.DeliveryID, event.EventType, event.ProcessingError)
			continue
		}

		pipeline, ok := pipelines[event.Provider]
		if !ok {
			log.Printf("#%d: unknown provider %q, skipped", event.ID, event.Provider)
			failed++
			continue
		}

		resp := pipeline.Redeliver(ctx, event.ID, []byte(event.PayloadJSON))
		if !resp.Result.Success {
			failed++
		}
		log.Printf("#%d %s %s: %d %s", event.ID, event.Provider, event.EventType, resp.Status, resp.Result.Message)
	}

	if failed > 0 {
		log.Printf("%d of %d deliveries still failing", failed, len(events))
		os.Exit(1)
	}
}
