package milestone

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/strideapp/stride-backend/internal/domain"
)

type milestoneRepoMock struct {
	CreateFunc          func(ctx context.Context, m *domain.Milestone) error
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.Milestone, error)
	ListFunc            func(ctx context.Context, activeOnly bool, at time.Time) ([]*domain.Milestone, error)
	UpdateFieldsFunc    func(ctx context.Context, id uuid.UUID, params domain.MilestoneUpdate) (*domain.Milestone, error)
	SetCurrentValueFunc func(ctx context.Context, id uuid.UUID, value int) error
	DeleteFunc          func(ctx context.Context, id uuid.UUID) error
}

func (m *milestoneRepoMock) Create(ctx context.Context, ms *domain.Milestone) error {
	return m.CreateFunc(ctx, ms)
}
func (m *milestoneRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Milestone, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *milestoneRepoMock) List(ctx context.Context, activeOnly bool, at time.Time) ([]*domain.Milestone, error) {
	return m.ListFunc(ctx, activeOnly, at)
}
func (m *milestoneRepoMock) UpdateFields(ctx context.Context, id uuid.UUID, params domain.MilestoneUpdate) (*domain.Milestone, error) {
	return m.UpdateFieldsFunc(ctx, id, params)
}
func (m *milestoneRepoMock) SetCurrentValue(ctx context.Context, id uuid.UUID, value int) error {
	return m.SetCurrentValueFunc(ctx, id, value)
}
func (m *milestoneRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

type goalRepoMock struct {
	CreateFunc               func(ctx context.Context, inst *domain.GoalInstance) error
	SumMetricCurrentsFunc    func(ctx context.Context, milestoneID uuid.UUID) (float64, error)
	ListLinkedFromDayFunc    func(ctx context.Context, milestoneID uuid.UUID, fromLocal string) ([]*domain.GoalInstance, error)
	SetFirstMetricTargetFunc func(ctx context.Context, id uuid.UUID, target float64) error
}

func (m *goalRepoMock) Create(ctx context.Context, inst *domain.GoalInstance) error {
	return m.CreateFunc(ctx, inst)
}
func (m *goalRepoMock) SumMetricCurrents(ctx context.Context, milestoneID uuid.UUID) (float64, error) {
	return m.SumMetricCurrentsFunc(ctx, milestoneID)
}
func (m *goalRepoMock) ListLinkedFromDay(ctx context.Context, milestoneID uuid.UUID, fromLocal string) ([]*domain.GoalInstance, error) {
	return m.ListLinkedFromDayFunc(ctx, milestoneID, fromLocal)
}
func (m *goalRepoMock) SetFirstMetricTarget(ctx context.Context, id uuid.UUID, target float64) error {
	return m.SetFirstMetricTargetFunc(ctx, id, target)
}

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
