package milestone

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/strideapp/stride-backend/internal/domain"
)

// Create inserts a milestone with its target value derived from the daily
// amount and the period's day span. When the input carries a recurring
// pattern, matching days of the period are seeded with linked goal
// instances inside the same transaction, so a milestone never appears
// half-set-up. Returns the milestone and how many instances were seeded.
func (s *Service) Create(ctx context.Context, in CreateMilestoneInput, offsetMinutes int) (*domain.Milestone, int, error) {
	if err := in.Validate(); err != nil {
		return nil, 0, err
	}

	strategy := in.Strategy
	if strategy == "" {
		strategy = domain.StrategyEven
	}

	now := time.Now().UTC()
	m := &domain.Milestone{
		ID:               uuid.New(),
		TargetMetric:     in.TargetMetric,
		DailyAmount:      in.DailyAmount,
		TargetValue:      domain.DeriveTargetValue(in.DailyAmount, in.PeriodStart, in.PeriodEnd, offsetMinutes),
		PeriodType:       in.PeriodType,
		PeriodStart:      in.PeriodStart,
		PeriodEnd:        in.PeriodEnd,
		Strategy:         strategy,
		RecurringPattern: in.RecurringPattern,
		ProblemID:        in.ProblemID,
		Unit:             in.Unit,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	seeded := 0
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.milestones.Create(ctx, m); err != nil {
			return fmt.Errorf("create milestone: %w", err)
		}

		if m.RecurringPattern.IsZero() {
			return nil
		}

		n, err := s.seedInstances(ctx, m, offsetMinutes, now)
		if err != nil {
			return err
		}
		seeded = n
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	if seeded > 0 {
		s.log.Info("milestone seeded goal instances",
			"milestone_id", m.ID,
			"count", seeded)
	}
	return m, seeded, nil
}

// seedInstances walks the milestone period day by day and creates one
// linked instance for each day its pattern fires on.
func (s *Service) seedInstances(ctx context.Context, m *domain.Milestone, offsetMinutes int, now time.Time) (int, error) {
	days := domain.WholeDays(m.PeriodStart, m.PeriodEnd, offsetMinutes)

	created := 0
	day := m.PeriodStart
	for i := 0; i < days; i++ {
		if m.RecurringPattern.Matches(domain.LocalWeekday(day, offsetMinutes)) {
			inst := instanceForDay(m, day, offsetMinutes, now)
			if err := s.goals.Create(ctx, inst); err != nil {
				return 0, fmt.Errorf("seed instance for %s: %w", *inst.DueLocal, err)
			}
			created++
		}
		day = day.Add(24 * time.Hour)
	}
	return created, nil
}

func instanceForDay(m *domain.Milestone, day time.Time, offsetMinutes int, now time.Time) *domain.GoalInstance {
	milestoneID := m.ID
	dueAt := domain.DayStartUTC(day, offsetMinutes)
	dueLocal := domain.LocalDate(day, offsetMinutes)
	return &domain.GoalInstance{
		ID:          uuid.New(),
		MilestoneID: &milestoneID,
		Text:        m.TargetMetric,
		DueAt:       &dueAt,
		DueLocal:    &dueLocal,
		Priority:    domain.PriorityMedium,
		Metrics: []domain.Metric{{
			Label:  m.TargetMetric,
			Target: float64(m.DailyAmount),
			Unit:   m.Unit,
		}},
		ProblemID: m.ProblemID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Get returns one milestone.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Milestone, error) {
	return s.milestones.GetByID(ctx, id)
}

// List returns milestones, optionally only those whose period covers now.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]*domain.Milestone, error) {
	return s.milestones.List(ctx, activeOnly, time.Now().UTC())
}

// Update applies a partial update. The target value is intentionally not
// recomputed when the period bounds move.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params domain.MilestoneUpdate) (*domain.Milestone, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.milestones.UpdateFields(ctx, id, params)
}

// Delete removes a milestone. Linked instances survive with their link
// cleared by the store.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.milestones.Delete(ctx, id)
}
