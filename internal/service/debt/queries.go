package debt

import (
	"context"
	"fmt"
	"time"

	"github.com/strideapp/stride-backend/internal/domain"
)

// Records returns every unresolved archival record, oldest first.
func (s *Service) Records(ctx context.Context) ([]*domain.DebtRecord, error) {
	return s.records.ListUnresolved(ctx)
}

// Accumulated returns the uncompleted debt goals that were originally due
// strictly before the given local day.
func (s *Service) Accumulated(ctx context.Context, date string) ([]*domain.GoalInstance, error) {
	if _, err := time.Parse(domain.LocalDateLayout, date); err != nil {
		return nil, domain.NewValidationError("date", "must be YYYY-MM-DD")
	}

	goals, err := s.goals.ListDebtBefore(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("accumulated debt: %w", err)
	}

	return goals, nil
}

// Trail returns a per-day debt breakdown for the daysBack days ending at
// endDate, inclusive. Days without debt appear with a zero count so the
// caller can render an unbroken timeline.
func (s *Service) Trail(ctx context.Context, endDate string, daysBack int) ([]domain.DebtTrailDay, error) {
	end, err := time.Parse(domain.LocalDateLayout, endDate)
	if err != nil {
		return nil, domain.NewValidationError("endDate", "must be YYYY-MM-DD")
	}
	if daysBack < 1 {
		return nil, domain.NewValidationError("daysBack", "must be at least 1")
	}

	start := end.AddDate(0, 0, -(daysBack - 1))
	from := start.Format(domain.LocalDateLayout)

	goals, err := s.goals.ListDebtInRange(ctx, from, endDate)
	if err != nil {
		return nil, fmt.Errorf("debt trail: %w", err)
	}

	byDay := make(map[string][]*domain.GoalInstance, len(goals))
	for _, g := range goals {
		if g.OriginalDate == nil {
			continue
		}
		byDay[*g.OriginalDate] = append(byDay[*g.OriginalDate], g)
	}

	trail := make([]domain.DebtTrailDay, 0, daysBack)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(domain.LocalDateLayout)
		dayGoals := byDay[key]
		if dayGoals == nil {
			dayGoals = []*domain.GoalInstance{}
		}
		trail = append(trail, domain.DebtTrailDay{
			Date:  key,
			Count: len(dayGoals),
			Goals: dayGoals,
		})
	}

	return trail, nil
}
