// Command archive-debt archives every unresolved debt instance of one
// calendar month into debt records. It is intended to be invoked by an
// external cron job shortly after month rollover; rerunning archives
// nothing new once the month is clean.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/strideapp/stride-backend/internal/adapter/postgres"
	debtrepo "github.com/strideapp/stride-backend/internal/adapter/postgres/debt"
	goalrepo "github.com/strideapp/stride-backend/internal/adapter/postgres/goal"
	"github.com/strideapp/stride-backend/internal/app"
	"github.com/strideapp/stride-backend/internal/config"
	debtsvc "github.com/strideapp/stride-backend/internal/service/debt"
)

func main() {
	_ = godotenv.Load()

	monthFlag := flag.String("month", "", "month to archive as YYYY-MM (default: previous month)")
	reasonFlag := flag.String("reason", "", "optional note stored on every archived record")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	month := *monthFlag
	if month == "" {
		month = time.Now().UTC().AddDate(0, -1, 0).Format("2006-01")
	}

	var reason *string
	if *reasonFlag != "" {
		reason = reasonFlag
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := debtsvc.NewService(logger, goalrepo.New(pool), debtrepo.New(pool), postgres.NewTxManager(pool))

	archived, err := svc.TransitionMonth(ctx, month, reason)
	if err != nil {
		logger.Error("debt archival failed",
			slog.String("month", month),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	logger.Info("debt archival completed",
		slog.String("month", month),
		slog.Int("archived", archived),
	)
}
