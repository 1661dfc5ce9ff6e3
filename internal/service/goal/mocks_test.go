package goal

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/strideapp/stride-backend/internal/domain"
)

type templateRepoMock struct {
	CreateFunc     func(ctx context.Context, tmpl *domain.GoalTemplate) error
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.GoalTemplate, error)
	ListActiveFunc func(ctx context.Context) ([]*domain.GoalTemplate, error)
	ListFunc       func(ctx context.Context) ([]*domain.GoalTemplate, error)
	SetActiveFunc  func(ctx context.Context, id uuid.UUID, active bool) error
	DeleteFunc     func(ctx context.Context, id uuid.UUID) error
}

func (m *templateRepoMock) Create(ctx context.Context, tmpl *domain.GoalTemplate) error {
	return m.CreateFunc(ctx, tmpl)
}
func (m *templateRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.GoalTemplate, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *templateRepoMock) ListActive(ctx context.Context) ([]*domain.GoalTemplate, error) {
	return m.ListActiveFunc(ctx)
}
func (m *templateRepoMock) List(ctx context.Context) ([]*domain.GoalTemplate, error) {
	return m.ListFunc(ctx)
}
func (m *templateRepoMock) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return m.SetActiveFunc(ctx, id, active)
}
func (m *templateRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

type goalRepoMock struct {
	CreateFunc          func(ctx context.Context, inst *domain.GoalInstance) error
	InsertIfAbsentFunc  func(ctx context.Context, inst *domain.GoalInstance) (bool, error)
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.GoalInstance, error)
	ListFunc            func(ctx context.Context, filter domain.GoalFilter) ([]*domain.GoalInstance, error)
	UpdateFieldsFunc    func(ctx context.Context, id uuid.UUID, params domain.GoalUpdate) (*domain.GoalInstance, error)
	DeleteFunc          func(ctx context.Context, id uuid.UUID) error
	MarkOverdueDebtFunc func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *goalRepoMock) Create(ctx context.Context, inst *domain.GoalInstance) error {
	return m.CreateFunc(ctx, inst)
}
func (m *goalRepoMock) InsertIfAbsent(ctx context.Context, inst *domain.GoalInstance) (bool, error) {
	return m.InsertIfAbsentFunc(ctx, inst)
}
func (m *goalRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.GoalInstance, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *goalRepoMock) List(ctx context.Context, filter domain.GoalFilter) ([]*domain.GoalInstance, error) {
	return m.ListFunc(ctx, filter)
}
func (m *goalRepoMock) UpdateFields(ctx context.Context, id uuid.UUID, params domain.GoalUpdate) (*domain.GoalInstance, error) {
	return m.UpdateFieldsFunc(ctx, id, params)
}
func (m *goalRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}
func (m *goalRepoMock) MarkOverdueDebt(ctx context.Context, cutoff time.Time) (int64, error) {
	return m.MarkOverdueDebtFunc(ctx, cutoff)
}

type activityRepoMock struct {
	SetGoalFunc    func(ctx context.Context, activityID, goalID uuid.UUID) error
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.Activity, error)
	ListByGoalFunc func(ctx context.Context, goalID uuid.UUID) ([]*domain.Activity, error)
}

func (m *activityRepoMock) SetGoal(ctx context.Context, activityID, goalID uuid.UUID) error {
	return m.SetGoalFunc(ctx, activityID, goalID)
}
func (m *activityRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *activityRepoMock) ListByGoal(ctx context.Context, goalID uuid.UUID) ([]*domain.Activity, error) {
	return m.ListByGoalFunc(ctx, goalID)
}

// txManagerMock runs the callback directly, no transaction.
type txManagerMock struct{}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
