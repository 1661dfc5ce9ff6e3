// Package milestone manages period-scoped numeric targets and the balancer
// that redistributes their remaining work across linked goal instances.
package milestone

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/strideapp/stride-backend/internal/domain"
)

type milestoneRepo interface {
	Create(ctx context.Context, m *domain.Milestone) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Milestone, error)
	List(ctx context.Context, activeOnly bool, at time.Time) ([]*domain.Milestone, error)
	UpdateFields(ctx context.Context, id uuid.UUID, params domain.MilestoneUpdate) (*domain.Milestone, error)
	SetCurrentValue(ctx context.Context, id uuid.UUID, value int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type goalRepo interface {
	Create(ctx context.Context, inst *domain.GoalInstance) error
	SumMetricCurrents(ctx context.Context, milestoneID uuid.UUID) (float64, error)
	ListLinkedFromDay(ctx context.Context, milestoneID uuid.UUID, fromLocal string) ([]*domain.GoalInstance, error)
	SetFirstMetricTarget(ctx context.Context, id uuid.UUID, target float64) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the milestone business logic.
type Service struct {
	milestones milestoneRepo
	goals      goalRepo
	tx         txManager
	log        *slog.Logger
}

// NewService creates a new milestone service.
func NewService(log *slog.Logger, milestones milestoneRepo, goals goalRepo, tx txManager) *Service {
	return &Service{
		milestones: milestones,
		goals:      goals,
		tx:         tx,
		log:        log,
	}
}
