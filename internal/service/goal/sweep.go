package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/strideapp/stride-backend/internal/domain"
)

// SweepOverdue flags every open instance due before the caller's local
// today as debt. The flag is monotonic: nothing but an explicit reset ever
// clears it. Returns how many instances were flagged.
func (s *Service) SweepOverdue(ctx context.Context, now time.Time, offsetMinutes int) (int64, error) {
	cutoff := domain.DayStartUTC(now, offsetMinutes)

	flagged, err := s.goals.MarkOverdueDebt(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("sweep overdue goals: %w", err)
	}

	if flagged > 0 {
		s.log.Info("swept overdue goals into debt", "count", flagged)
	}

	return flagged, nil
}
