package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/joho/godotenv"

	"github.com/light-bringer/promo-engine/internal/app/promotion/queries/list_events"
	"github.com/light-bringer/promo-engine/internal/app/promotion/repo"
	"github.com/light-bringer/promo-engine/internal/pkg/config"
	"github.com/light-bringer/promo-engine/internal/pkg/logger"
)

func main() {
	limit := flag.Int("limit", 10, "Number of events to print")
	aggregateID := flag.String("promotion", "", "Only show events of this promotion")
	flag.Parse()

	log := logger.New(logger.Options{ServiceName: "check-events", Format: "console"})
	ctx := context.Background()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	client, err := spanner.NewClient(ctx, cfg.Spanner.Database())
	if err != nil {
		log.Error(ctx, "failed to create client", err)
		os.Exit(1)
	}
	defer client.Close()

	req := &list_events.Request{Limit: *limit}
	if *aggregateID != "" {
		req.AggregateID = aggregateID
	}

	events, total, err := list_events.NewQuery(repo.NewEventsReadModel(client)).Execute(ctx, req)
	if err != nil {
		log.Error(ctx, "failed to list events", err)
		os.Exit(1)
	}

	fmt.Printf("Found %d events (total: %d):\n\n", len(events), total)
	for i, event := range events {
		fmt.Printf("%d. %s\n", i+1, event.EventType)
		fmt.Printf("   Event ID: %s\n", event.EventID)
		fmt.Printf("   Promotion ID: %s\n", event.AggregateID)
		fmt.Printf("   Status: %s\n", event.Status)
		fmt.Printf("   Created: %s\n", event.CreatedAt.Format(time.DateTime))
		if event.Payload.Valid {
			fmt.Printf("   Payload: %s\n", event.Payload.String())
		}
		fmt.Println()
	}
}
