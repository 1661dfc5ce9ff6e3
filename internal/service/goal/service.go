// Package goal implements goal lifecycle business logic: materializing
// recurring templates into dated instances, sweeping overdue instances into
// debt, and plain goal/template CRUD.
package goal

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/strideapp/stride-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type templateRepo interface {
	Create(ctx context.Context, tmpl *domain.GoalTemplate) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.GoalTemplate, error)
	ListActive(ctx context.Context) ([]*domain.GoalTemplate, error)
	List(ctx context.Context) ([]*domain.GoalTemplate, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type goalRepo interface {
	Create(ctx context.Context, inst *domain.GoalInstance) error
	InsertIfAbsent(ctx context.Context, inst *domain.GoalInstance) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.GoalInstance, error)
	List(ctx context.Context, filter domain.GoalFilter) ([]*domain.GoalInstance, error)
	UpdateFields(ctx context.Context, id uuid.UUID, params domain.GoalUpdate) (*domain.GoalInstance, error)
	Delete(ctx context.Context, id uuid.UUID) error
	MarkOverdueDebt(ctx context.Context, cutoff time.Time) (int64, error)
}

type activityRepo interface {
	SetGoal(ctx context.Context, activityID, goalID uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error)
	ListByGoal(ctx context.Context, goalID uuid.UUID) ([]*domain.Activity, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the goal lifecycle business logic.
type Service struct {
	templates     templateRepo
	goals         goalRepo
	activities    activityRepo
	tx            txManager
	log           *slog.Logger
	maxWindowDays int
}

// NewService creates a new goal service. maxWindowDays clamps how wide a
// single expansion request may scan.
func NewService(
	log *slog.Logger,
	templates templateRepo,
	goals goalRepo,
	activities activityRepo,
	tx txManager,
	maxWindowDays int,
) *Service {
	return &Service{
		templates:     templates,
		goals:         goals,
		activities:    activities,
		tx:            tx,
		log:           log,
		maxWindowDays: maxWindowDays,
	}
}
