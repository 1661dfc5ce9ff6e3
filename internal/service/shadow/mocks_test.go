package shadow

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/strideapp/stride-backend/internal/domain"
)

type activityRepoMock struct {
	CreateFunc               func(ctx context.Context, act *domain.Activity) error
	ExistsShadowEndingAtFunc func(ctx context.Context, endedAt time.Time) (bool, error)
	ListByDayFunc            func(ctx context.Context, localDate string) ([]*domain.Activity, error)
}

func (m *activityRepoMock) Create(ctx context.Context, act *domain.Activity) error {
	return m.CreateFunc(ctx, act)
}
func (m *activityRepoMock) ExistsShadowEndingAt(ctx context.Context, endedAt time.Time) (bool, error) {
	return m.ExistsShadowEndingAtFunc(ctx, endedAt)
}
func (m *activityRepoMock) ListByDay(ctx context.Context, localDate string) ([]*domain.Activity, error) {
	return m.ListByDayFunc(ctx, localDate)
}

type goalRepoMock struct {
	FindOpenByProblemFunc func(ctx context.Context, dueLocal, problemID string) (*domain.GoalInstance, error)
	ListOpenOnDayFunc     func(ctx context.Context, dueLocal string) ([]*domain.GoalInstance, error)
	UpdateFieldsFunc      func(ctx context.Context, id uuid.UUID, params domain.GoalUpdate) (*domain.GoalInstance, error)
}

func (m *goalRepoMock) FindOpenByProblem(ctx context.Context, dueLocal, problemID string) (*domain.GoalInstance, error) {
	return m.FindOpenByProblemFunc(ctx, dueLocal, problemID)
}
func (m *goalRepoMock) ListOpenOnDay(ctx context.Context, dueLocal string) ([]*domain.GoalInstance, error) {
	return m.ListOpenOnDayFunc(ctx, dueLocal)
}
func (m *goalRepoMock) UpdateFields(ctx context.Context, id uuid.UUID, params domain.GoalUpdate) (*domain.GoalInstance, error) {
	return m.UpdateFieldsFunc(ctx, id, params)
}

type txManagerMock struct{}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
