// Package debt implements monthly debt archival, accumulated-debt queries,
// and the explicit debt reset.
package debt

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/strideapp/stride-backend/internal/domain"
)

type goalRepo interface {
	ListUncompletedInMonth(ctx context.Context, month string) ([]*domain.GoalInstance, error)
	ListDebtBefore(ctx context.Context, date string) ([]*domain.GoalInstance, error)
	ListDebtInRange(ctx context.Context, from, to string) ([]*domain.GoalInstance, error)
	SetDebt(ctx context.Context, ids []uuid.UUID) (int64, error)
	ResetDebt(ctx context.Context, ids []uuid.UUID) (int64, error)
}

type debtRepo interface {
	Create(ctx context.Context, rec *domain.DebtRecord) error
	ListUnresolved(ctx context.Context) ([]*domain.DebtRecord, error)
	ResolveByGoals(ctx context.Context, goalIDs []uuid.UUID, at time.Time) (int64, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the debt archival business logic.
type Service struct {
	goals   goalRepo
	records debtRepo
	tx      txManager
	log     *slog.Logger
}

// NewService creates a new debt service.
func NewService(log *slog.Logger, goals goalRepo, records debtRepo, tx txManager) *Service {
	return &Service{
		goals:   goals,
		records: records,
		tx:      tx,
		log:     log,
	}
}
