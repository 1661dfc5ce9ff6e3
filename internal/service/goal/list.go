package goal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/strideapp/stride-backend/internal/domain"
)

// GetGoalsForRange reconciles and reads: the requested window is expanded
// (recurring templates materialized) and the debt sweep applied before the
// filtered list is returned, so a read is always self-consistent without a
// background scheduler.
//
// Reconciliation failures degrade the read instead of failing it: a list of
// slightly stale goals beats an error page.
func (s *Service) GetGoalsForRange(ctx context.Context, filter domain.GoalFilter) ([]*domain.GoalInstance, error) {
	now := time.Now().UTC()
	from, to := filter.Window(now)

	if _, err := s.EnsureWindow(ctx, from, to, filter.OffsetMinutes); err != nil {
		// A bad window is the caller's mistake; storage trouble only
		// degrades the read.
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		s.log.Warn("window expansion failed, serving stale goals", "error", err)
	}

	if _, err := s.SweepOverdue(ctx, now, filter.OffsetMinutes); err != nil {
		s.log.Warn("debt sweep failed, serving stale goals", "error", err)
	}

	goals, err := s.goals.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	return goals, nil
}
