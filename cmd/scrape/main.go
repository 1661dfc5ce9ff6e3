// Command scrape runs a single poll-and-ingest pass over the configured
// submission sources. It is intended to be invoked by an external cron
// job; rerunning is safe because submissions are unique on submitted_at
// and shadow verification is idempotent.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/strideapp/stride-backend/internal/adapter/postgres"
	activityrepo "github.com/strideapp/stride-backend/internal/adapter/postgres/activity"
	goalrepo "github.com/strideapp/stride-backend/internal/adapter/postgres/goal"
	submissionrepo "github.com/strideapp/stride-backend/internal/adapter/postgres/submission"
	"github.com/strideapp/stride-backend/internal/app"
	"github.com/strideapp/stride-backend/internal/config"
	"github.com/strideapp/stride-backend/internal/service/scraper"
	shadowsvc "github.com/strideapp/stride-backend/internal/service/shadow"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	sources := app.BuildSources(cfg.Scrapers, logger)
	if len(sources) == 0 {
		logger.Error("no submission sources configured")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	shadow := shadowsvc.NewService(
		logger,
		activityrepo.New(pool),
		goalrepo.New(pool),
		postgres.NewTxManager(pool),
		cfg.Shadow.Window(),
	)
	poller := scraper.NewService(logger, sources, submissionrepo.New(pool), shadow, cfg.Scrapers.TZOffsetMinutes)

	stats := poller.PollOnce(ctx)

	logger.Info("scrape completed",
		slog.Int("fetched", stats.Fetched),
		slog.Int("new", stats.New),
		slog.Int("activities", stats.Activities),
	)
}
