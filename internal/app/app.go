package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/strideapp/stride-backend/internal/adapter/postgres"
	activityrepo "github.com/strideapp/stride-backend/internal/adapter/postgres/activity"
	debtrepo "github.com/strideapp/stride-backend/internal/adapter/postgres/debt"
	goalrepo "github.com/strideapp/stride-backend/internal/adapter/postgres/goal"
	milestonerepo "github.com/strideapp/stride-backend/internal/adapter/postgres/milestone"
	submissionrepo "github.com/strideapp/stride-backend/internal/adapter/postgres/submission"
	templaterepo "github.com/strideapp/stride-backend/internal/adapter/postgres/template"
	"github.com/strideapp/stride-backend/internal/adapter/provider/codeforces"
	"github.com/strideapp/stride-backend/internal/adapter/provider/leetcode"
	"github.com/strideapp/stride-backend/internal/auth"
	"github.com/strideapp/stride-backend/internal/config"
	debtsvc "github.com/strideapp/stride-backend/internal/service/debt"
	goalsvc "github.com/strideapp/stride-backend/internal/service/goal"
	milestonesvc "github.com/strideapp/stride-backend/internal/service/milestone"
	"github.com/strideapp/stride-backend/internal/service/scraper"
	shadowsvc "github.com/strideapp/stride-backend/internal/service/shadow"
	"github.com/strideapp/stride-backend/internal/transport/middleware"
	"github.com/strideapp/stride-backend/internal/transport/rest"
)

// requestsPerMinute caps requests per client IP across the whole surface.
const requestsPerMinute = 240

// Run wires the application together and serves HTTP until ctx is
// cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	templates := templaterepo.New(pool)
	goals := goalrepo.New(pool)
	milestones := milestonerepo.New(pool)
	activities := activityrepo.New(pool)
	debts := debtrepo.New(pool)
	submissions := submissionrepo.New(pool)
	tx := postgres.NewTxManager(pool)

	goalService := goalsvc.NewService(logger, templates, goals, activities, tx, cfg.Expander.MaxWindowDays)
	debtService := debtsvc.NewService(logger, goals, debts, tx)
	shadowService := shadowsvc.NewService(logger, activities, goals, tx, cfg.Shadow.Window())
	milestoneService := milestonesvc.NewService(logger, milestones, goals, tx)

	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	handlers := rest.Handlers{
		Health:     rest.NewHealthHandler(pool, BuildVersion()),
		Auth:       rest.NewAuthHandler(cfg.Auth, tokens, logger),
		Goals:      rest.NewGoalHandler(goalService, logger),
		Templates:  rest.NewTemplateHandler(goalService, logger),
		Debt:       rest.NewDebtHandler(debtService, logger),
		Shadow:     rest.NewShadowHandler(shadowService, logger),
		Milestones: rest.NewMilestoneHandler(milestoneService, logger),
	}
	router := rest.NewRouter(handlers, middleware.Auth(tokens))

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	chain := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit(requestsPerMinute),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      chain(router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if sources := BuildSources(cfg.Scrapers, logger); len(sources) > 0 {
		poller := scraper.NewService(logger, sources, submissions, shadowService, cfg.Scrapers.TZOffsetMinutes)
		go poller.Run(runCtx, cfg.Scrapers.PollInterval)
		logger.Info("submission pollers started",
			slog.Int("sources", len(sources)),
			slog.Duration("interval", cfg.Scrapers.PollInterval),
		)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// BuildSources assembles the enabled external submission pollers.
func BuildSources(cfg config.ScrapersConfig, logger *slog.Logger) []scraper.Source {
	var sources []scraper.Source
	if cfg.LeetCodeEnabled() {
		sources = append(sources, leetcode.NewProvider(cfg.LeetCodeUsername, cfg.SubmissionPageSize, cfg.RequestTimeout, logger))
	}
	if cfg.CodeforcesEnabled() {
		sources = append(sources, codeforces.NewProvider(cfg.CodeforcesHandle, cfg.SubmissionPageSize, cfg.RequestTimeout, logger))
	}
	return sources
}
