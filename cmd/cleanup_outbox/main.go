package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/joho/godotenv"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/promo-engine/internal/models/m_outbox"
	"github.com/light-bringer/promo-engine/internal/pkg/config"
	"github.com/light-bringer/promo-engine/internal/pkg/logger"
)

// cleanupConfig configures one outbox cleanup run.
type cleanupConfig struct {
	CompletedRetention time.Duration
	FailedRetention    time.Duration
	DryRun             bool
}

func main() {
	log := logger.New(logger.Options{ServiceName: "cleanup-outbox"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	// Flags override the configured retention
	run := cleanupConfig{}
	flag.DurationVar(&run.CompletedRetention, "completed-retention", cfg.Outbox.CompletedRetention, "Retention for completed events")
	flag.DurationVar(&run.FailedRetention, "failed-retention", cfg.Outbox.FailedRetention, "Retention for failed events")
	flag.BoolVar(&run.DryRun, "dry-run", false, "Show what would be deleted without actually deleting")
	flag.Parse()

	client, err := spanner.NewClient(ctx, cfg.Spanner.Database())
	if err != nil {
		log.Error(ctx, "failed to create Spanner client", err)
		os.Exit(1)
	}
	defer client.Close()

	if err := cleanupOutbox(ctx, client, log, run, time.Now().UTC()); err != nil {
		log.Error(ctx, "cleanup failed", err)
		os.Exit(1)
	}

	log.Info(ctx, "cleanup completed")
}

func cleanupOutbox(ctx context.Context, client *spanner.Client, log *logger.Logger, run cleanupConfig, now time.Time) error {
	completedCutoff, failedCutoff := cutoffs(run, now)

	ctx = log.WithFields(ctx, map[string]any{
		"completed_cutoff": completedCutoff.Format(time.RFC3339),
		"failed_cutoff":    failedCutoff.Format(time.RFC3339),
		"dry_run":          run.DryRun,
	})
	log.Info(ctx, "starting outbox cleanup")

	if run.DryRun {
		return dryRunCleanup(ctx, client, log, completedCutoff, failedCutoff)
	}

	return performCleanup(ctx, client, log, completedCutoff, failedCutoff)
}

func cutoffs(run cleanupConfig, now time.Time) (completed, failed time.Time) {
	return now.Add(-run.CompletedRetention), now.Add(-run.FailedRetention)
}

const expiredCondition = `(status = @completed AND processed_at < @completedCutoff)
		   OR (status = @failed AND processed_at < @failedCutoff)`

func expiredParams(completedCutoff, failedCutoff time.Time) map[string]interface{} {
	return map[string]interface{}{
		"completed":       m_outbox.StatusCompleted,
		"failed":          m_outbox.StatusFailed,
		"completedCutoff": completedCutoff,
		"failedCutoff":    failedCutoff,
	}
}

func dryRunCleanup(ctx context.Context, client *spanner.Client, log *logger.Logger, completedCutoff, failedCutoff time.Time) error {
	stmt := spanner.Statement{
		SQL: `SELECT status, COUNT(*) AS count
		FROM outbox_events
		WHERE ` + expiredCondition + `
		GROUP BY status`,
		Params: expiredParams(completedCutoff, failedCutoff),
	}

	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	counts := map[string]any{}
	var total int64
	for {
		row, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to query events: %w", err)
		}

		var status string
		var count int64
		if err := row.Columns(&status, &count); err != nil {
			return fmt.Errorf("failed to parse row: %w", err)
		}
		counts[status] = count
		total += count
	}

	counts["total"] = total
	log.InfoFields(ctx, "dry run: events that would be deleted", counts)
	return nil
}

func performCleanup(ctx context.Context, client *spanner.Client, log *logger.Logger, completedCutoff, failedCutoff time.Time) error {
	stmt := spanner.Statement{
		SQL:    `DELETE FROM outbox_events WHERE ` + expiredCondition,
		Params: expiredParams(completedCutoff, failedCutoff),
	}

	rowCount, err := client.PartitionedUpdate(ctx, stmt)
	if err != nil {
		return fmt.Errorf("failed to delete events: %w", err)
	}

	log.InfoFields(ctx, "deleted outbox events", map[string]any{"count": rowCount})
	return nil
}
