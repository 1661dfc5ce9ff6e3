package milestone

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/strideapp/stride-backend/internal/domain"
)

// RunBalancer recomputes how much of the milestone is still outstanding and
// rewrites the daily target on every linked, uncompleted instance due today
// or later. Progress counts metric currents across all linked instances,
// completed or not, so over-delivery on one day shrinks every following
// day's share.
func (s *Service) RunBalancer(ctx context.Context, id uuid.UUID, offsetMinutes int) (*domain.BalancerReport, error) {
	m, err := s.milestones.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load milestone: %w", err)
	}
	if m.PeriodType != domain.PeriodMonthly {
		return nil, domain.NewValidationError("periodType", "balancer supports monthly milestones only")
	}

	completed, err := s.goals.SumMetricCurrents(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("sum linked progress: %w", err)
	}
	if err := s.milestones.SetCurrentValue(ctx, m.ID, int(completed)); err != nil {
		s.log.Warn("failed to record milestone progress",
			"milestone_id", m.ID,
			"error", err)
	}

	report := &domain.BalancerReport{MilestoneID: m.ID}

	remaining := float64(m.TargetValue) - completed
	if remaining <= 0 {
		report.Message = "already complete"
		return report, nil
	}

	now := time.Now().UTC()
	today := domain.LocalDate(now, offsetMinutes)
	if today > domain.LocalDate(m.PeriodEnd, offsetMinutes) {
		return nil, domain.NewValidationError("periodEnd", "period has ended")
	}

	remainingDays := domain.WholeDays(now, m.PeriodEnd, offsetMinutes)
	if remainingDays <= 0 {
		return nil, domain.NewValidationError("periodEnd", "no remaining days in period")
	}
	dailyRequired := int(math.Ceil(remaining / float64(remainingDays)))
	report.DailyRequired = dailyRequired

	if m.Strategy == domain.StrategyManual {
		report.Message = "manual strategy, targets left untouched"
		return report, nil
	}

	perDay := dailyRequired
	if m.Strategy == domain.StrategyFrontLoad {
		perDay *= 2
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		instances, err := s.goals.ListLinkedFromDay(ctx, m.ID, today)
		if err != nil {
			return fmt.Errorf("list linked instances: %w", err)
		}

		for _, inst := range instances {
			if !inst.HasMetrics() {
				continue
			}
			if err := s.goals.SetFirstMetricTarget(ctx, inst.ID, float64(perDay)); err != nil {
				s.log.Error("failed to rewrite instance target",
					"milestone_id", m.ID,
					"goal_id", inst.ID,
					"error", err)
				continue
			}
			report.UpdatedGoals++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	report.Message = fmt.Sprintf("rebalanced %d instances", report.UpdatedGoals)
	s.log.Info("balancer run finished",
		"milestone_id", m.ID,
		"updated", report.UpdatedGoals,
		"daily_required", dailyRequired)
	return report, nil
}
