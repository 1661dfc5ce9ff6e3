package rest

import (
	"context"

	"github.com/google/uuid"

	"github.com/strideapp/stride-backend/internal/domain"
	"github.com/strideapp/stride-backend/internal/service/goal"
	"github.com/strideapp/stride-backend/internal/service/milestone"
)

type goalServiceMock struct {
	GetGoalsForRangeFunc func(ctx context.Context, filter domain.GoalFilter) ([]*domain.GoalInstance, error)
	CreateGoalFunc       func(ctx context.Context, in goal.CreateGoalInput) (*domain.GoalInstance, error)
	GetGoalFunc          func(ctx context.Context, id uuid.UUID) (*domain.GoalInstance, error)
	UpdateGoalFunc       func(ctx context.Context, id uuid.UUID, update domain.GoalUpdate) (*domain.GoalInstance, error)
	ToggleCompletionFunc func(ctx context.Context, id uuid.UUID) (*domain.GoalInstance, error)
	LinkActivityFunc     func(ctx context.Context, activityID, goalID uuid.UUID) (*domain.GoalInstance, error)
	GoalActivitiesFunc   func(ctx context.Context, id uuid.UUID) ([]*domain.Activity, error)
	DeleteGoalFunc       func(ctx context.Context, id uuid.UUID) error
}

func (m *goalServiceMock) GetGoalsForRange(ctx context.Context, filter domain.GoalFilter) ([]*domain.GoalInstance, error) {
	return m.GetGoalsForRangeFunc(ctx, filter)
}
func (m *goalServiceMock) CreateGoal(ctx context.Context, in goal.CreateGoalInput) (*domain.GoalInstance, error) {
	return m.CreateGoalFunc(ctx, in)
}
func (m *goalServiceMock) GetGoal(ctx context.Context, id uuid.UUID) (*domain.GoalInstance, error) {
	return m.GetGoalFunc(ctx, id)
}
func (m *goalServiceMock) UpdateGoal(ctx context.Context, id uuid.UUID, update domain.GoalUpdate) (*domain.GoalInstance, error) {
	return m.UpdateGoalFunc(ctx, id, update)
}
func (m *goalServiceMock) ToggleCompletion(ctx context.Context, id uuid.UUID) (*domain.GoalInstance, error) {
	return m.ToggleCompletionFunc(ctx, id)
}
func (m *goalServiceMock) LinkActivity(ctx context.Context, activityID, goalID uuid.UUID) (*domain.GoalInstance, error) {
	return m.LinkActivityFunc(ctx, activityID, goalID)
}
func (m *goalServiceMock) GoalActivities(ctx context.Context, id uuid.UUID) ([]*domain.Activity, error) {
	return m.GoalActivitiesFunc(ctx, id)
}
func (m *goalServiceMock) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	return m.DeleteGoalFunc(ctx, id)
}

type templateServiceMock struct {
	CreateTemplateFunc    func(ctx context.Context, in goal.CreateTemplateInput) (*domain.GoalTemplate, error)
	ListTemplatesFunc     func(ctx context.Context) ([]*domain.GoalTemplate, error)
	SetTemplateActiveFunc func(ctx context.Context, id uuid.UUID, active bool) error
	DeleteTemplateFunc    func(ctx context.Context, id uuid.UUID) error
}

func (m *templateServiceMock) CreateTemplate(ctx context.Context, in goal.CreateTemplateInput) (*domain.GoalTemplate, error) {
	return m.CreateTemplateFunc(ctx, in)
}
func (m *templateServiceMock) ListTemplates(ctx context.Context) ([]*domain.GoalTemplate, error) {
	return m.ListTemplatesFunc(ctx)
}
func (m *templateServiceMock) SetTemplateActive(ctx context.Context, id uuid.UUID, active bool) error {
	return m.SetTemplateActiveFunc(ctx, id, active)
}
func (m *templateServiceMock) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	return m.DeleteTemplateFunc(ctx, id)
}

type debtServiceMock struct {
	RecordsFunc         func(ctx context.Context) ([]*domain.DebtRecord, error)
	AccumulatedFunc     func(ctx context.Context, date string) ([]*domain.GoalInstance, error)
	TrailFunc           func(ctx context.Context, endDate string, daysBack int) ([]domain.DebtTrailDay, error)
	TransitionMonthFunc func(ctx context.Context, month string, reason *string) (int, error)
	ResetFunc           func(ctx context.Context, ids []uuid.UUID) (int, error)
}

func (m *debtServiceMock) Records(ctx context.Context) ([]*domain.DebtRecord, error) {
	return m.RecordsFunc(ctx)
}
func (m *debtServiceMock) Accumulated(ctx context.Context, date string) ([]*domain.GoalInstance, error) {
	return m.AccumulatedFunc(ctx, date)
}
func (m *debtServiceMock) Trail(ctx context.Context, endDate string, daysBack int) ([]domain.DebtTrailDay, error) {
	return m.TrailFunc(ctx, endDate, daysBack)
}
func (m *debtServiceMock) TransitionMonth(ctx context.Context, month string, reason *string) (int, error) {
	return m.TransitionMonthFunc(ctx, month, reason)
}
func (m *debtServiceMock) Reset(ctx context.Context, ids []uuid.UUID) (int, error) {
	return m.ResetFunc(ctx, ids)
}

type shadowServiceMock struct {
	ProcessEventFunc    func(ctx context.Context, in domain.ShadowInput, offsetMinutes int) (bool, error)
	ProcessBatchFunc    func(ctx context.Context, inputs []domain.ShadowInput, offsetMinutes int) (int, error)
	ActivitiesOnDayFunc func(ctx context.Context, date string) ([]*domain.Activity, error)
}

func (m *shadowServiceMock) ProcessEvent(ctx context.Context, in domain.ShadowInput, offsetMinutes int) (bool, error) {
	return m.ProcessEventFunc(ctx, in, offsetMinutes)
}
func (m *shadowServiceMock) ProcessBatch(ctx context.Context, inputs []domain.ShadowInput, offsetMinutes int) (int, error) {
	return m.ProcessBatchFunc(ctx, inputs, offsetMinutes)
}
func (m *shadowServiceMock) ActivitiesOnDay(ctx context.Context, date string) ([]*domain.Activity, error) {
	return m.ActivitiesOnDayFunc(ctx, date)
}

type milestoneServiceMock struct {
	CreateFunc      func(ctx context.Context, in milestone.CreateMilestoneInput, offsetMinutes int) (*domain.Milestone, int, error)
	GetFunc         func(ctx context.Context, id uuid.UUID) (*domain.Milestone, error)
	ListFunc        func(ctx context.Context, activeOnly bool) ([]*domain.Milestone, error)
	UpdateFunc      func(ctx context.Context, id uuid.UUID, params domain.MilestoneUpdate) (*domain.Milestone, error)
	DeleteFunc      func(ctx context.Context, id uuid.UUID) error
	RunBalancerFunc func(ctx context.Context, id uuid.UUID, offsetMinutes int) (*domain.BalancerReport, error)
}

func (m *milestoneServiceMock) Create(ctx context.Context, in milestone.CreateMilestoneInput, offsetMinutes int) (*domain.Milestone, int, error) {
	return m.CreateFunc(ctx, in, offsetMinutes)
}
func (m *milestoneServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.Milestone, error) {
	return m.GetFunc(ctx, id)
}
func (m *milestoneServiceMock) List(ctx context.Context, activeOnly bool) ([]*domain.Milestone, error) {
	return m.ListFunc(ctx, activeOnly)
}
func (m *milestoneServiceMock) Update(ctx context.Context, id uuid.UUID, params domain.MilestoneUpdate) (*domain.Milestone, error) {
	return m.UpdateFunc(ctx, id, params)
}
func (m *milestoneServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}
func (m *milestoneServiceMock) RunBalancer(ctx context.Context, id uuid.UUID, offsetMinutes int) (*domain.BalancerReport, error) {
	return m.RunBalancerFunc(ctx, id, offsetMinutes)
}
