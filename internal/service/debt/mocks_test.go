package debt

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/strideapp/stride-backend/internal/domain"
)

type goalRepoMock struct {
	ListUncompletedInMonthFunc func(ctx context.Context, month string) ([]*domain.GoalInstance, error)
	ListDebtBeforeFunc         func(ctx context.Context, date string) ([]*domain.GoalInstance, error)
	ListDebtInRangeFunc        func(ctx context.Context, from, to string) ([]*domain.GoalInstance, error)
	SetDebtFunc                func(ctx context.Context, ids []uuid.UUID) (int64, error)
	ResetDebtFunc              func(ctx context.Context, ids []uuid.UUID) (int64, error)
}

func (m *goalRepoMock) ListUncompletedInMonth(ctx context.Context, month string) ([]*domain.GoalInstance, error) {
	return m.ListUncompletedInMonthFunc(ctx, month)
}
func (m *goalRepoMock) ListDebtBefore(ctx context.Context, date string) ([]*domain.GoalInstance, error) {
	return m.ListDebtBeforeFunc(ctx, date)
}
func (m *goalRepoMock) ListDebtInRange(ctx context.Context, from, to string) ([]*domain.GoalInstance, error) {
	return m.ListDebtInRangeFunc(ctx, from, to)
}
func (m *goalRepoMock) SetDebt(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return m.SetDebtFunc(ctx, ids)
}
func (m *goalRepoMock) ResetDebt(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return m.ResetDebtFunc(ctx, ids)
}

type debtRepoMock struct {
	CreateFunc         func(ctx context.Context, rec *domain.DebtRecord) error
	ListUnresolvedFunc func(ctx context.Context) ([]*domain.DebtRecord, error)
	ResolveByGoalsFunc func(ctx context.Context, goalIDs []uuid.UUID, at time.Time) (int64, error)
}

func (m *debtRepoMock) Create(ctx context.Context, rec *domain.DebtRecord) error {
	return m.CreateFunc(ctx, rec)
}
func (m *debtRepoMock) ListUnresolved(ctx context.Context) ([]*domain.DebtRecord, error) {
	return m.ListUnresolvedFunc(ctx)
}
func (m *debtRepoMock) ResolveByGoals(ctx context.Context, goalIDs []uuid.UUID, at time.Time) (int64, error) {
	return m.ResolveByGoalsFunc(ctx, goalIDs, at)
}

// txManagerMock runs the callback directly; RolledBack reports whether the
// callback returned an error.
type txManagerMock struct {
	RolledBack bool
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		m.RolledBack = true
		return err
	}
	return nil
}
