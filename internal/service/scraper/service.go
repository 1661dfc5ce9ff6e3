// Package scraper ingests submissions from external platform pollers,
// records them, and feeds new ones to the shadow verifier.
package scraper

import (
	"context"
	"log/slog"
	"time"

	"github.com/strideapp/stride-backend/internal/domain"
)

// Source is one external platform poller.
type Source interface {
	Name() string
	FetchRecent(ctx context.Context) ([]*domain.Submission, error)
}

type submissionRepo interface {
	InsertIfAbsent(ctx context.Context, sub *domain.Submission) (bool, error)
}

type shadowProcessor interface {
	ProcessBatch(ctx context.Context, inputs []domain.ShadowInput, offsetMinutes int) (int, error)
}

// Service polls every source and ingests what it finds. Reruns are safe:
// submissions are unique on submitted_at and the verifier is idempotent.
type Service struct {
	sources       []Source
	submissions   submissionRepo
	shadow        shadowProcessor
	offsetMinutes int
	log           *slog.Logger
}

// NewService creates a poller over the given sources. offsetMinutes is the
// owner's timezone offset east of UTC, used for local-day attribution.
func NewService(log *slog.Logger, sources []Source, submissions submissionRepo, shadow shadowProcessor, offsetMinutes int) *Service {
	return &Service{
		sources:       sources,
		submissions:   submissions,
		shadow:        shadow,
		offsetMinutes: offsetMinutes,
		log:           log,
	}
}

// Stats summarizes one poll pass.
type Stats struct {
	Fetched    int
	New        int
	Activities int
}

// PollOnce polls every source once. A failing source is logged and skipped;
// the pass continues with the remaining sources and reports what succeeded.
func (s *Service) PollOnce(ctx context.Context) Stats {
	var stats Stats
	for _, src := range s.sources {
		subs, err := src.FetchRecent(ctx)
		if err != nil {
			s.log.Error("source poll failed",
				slog.String("source", src.Name()),
				slog.String("error", err.Error()),
			)
			continue
		}
		stats.Fetched += len(subs)

		var fresh []domain.ShadowInput
		for _, sub := range subs {
			inserted, err := s.submissions.InsertIfAbsent(ctx, sub)
			if err != nil {
				s.log.Error("store submission failed",
					slog.String("source", src.Name()),
					slog.String("problem_id", sub.ProblemID),
					slog.String("error", err.Error()),
				)
				continue
			}
			if inserted {
				fresh = append(fresh, sub.ShadowInput())
			}
		}
		stats.New += len(fresh)

		if len(fresh) > 0 {
			created, err := s.shadow.ProcessBatch(ctx, fresh, s.offsetMinutes)
			if err != nil {
				s.log.Error("shadow batch failed",
					slog.String("source", src.Name()),
					slog.String("error", err.Error()),
				)
				continue
			}
			stats.Activities += created
		}
	}

	s.log.Info("poll pass complete",
		slog.Int("fetched", stats.Fetched),
		slog.Int("new", stats.New),
		slog.Int("activities", stats.Activities),
	)
	return stats
}

// Run polls immediately and then on every tick until the context ends.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	s.PollOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.PollOnce(ctx)
		}
	}
}
