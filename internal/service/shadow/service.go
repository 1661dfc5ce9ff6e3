// Package shadow turns external submission events into time-boxed shadow
// activities and verifies matching goals.
package shadow

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/strideapp/stride-backend/internal/domain"
)

type activityRepo interface {
	Create(ctx context.Context, act *domain.Activity) error
	ExistsShadowEndingAt(ctx context.Context, endedAt time.Time) (bool, error)
	ListByDay(ctx context.Context, localDate string) ([]*domain.Activity, error)
}

type goalRepo interface {
	FindOpenByProblem(ctx context.Context, dueLocal, problemID string) (*domain.GoalInstance, error)
	ListOpenOnDay(ctx context.Context, dueLocal string) ([]*domain.GoalInstance, error)
	UpdateFields(ctx context.Context, id uuid.UUID, params domain.GoalUpdate) (*domain.GoalInstance, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the shadow verification business logic.
type Service struct {
	activities activityRepo
	goals      goalRepo
	tx         txManager
	log        *slog.Logger
	window     time.Duration
}

// NewService creates a new shadow service. window is the assumed length of
// the activity that produced a submission.
func NewService(
	log *slog.Logger,
	activities activityRepo,
	goals goalRepo,
	tx txManager,
	window time.Duration,
) *Service {
	return &Service{
		activities: activities,
		goals:      goals,
		tx:         tx,
		log:        log,
		window:     window,
	}
}
