package debt

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/strideapp/stride-backend/internal/domain"
)

// monthLayout is the wire format of archival months.
const monthLayout = "2006-01"

// TransitionMonth archives every uncompleted non-debt goal of the given
// YYYY-MM month: one snapshot record per goal, then the debt flag.
// The whole batch is one transaction; a failing snapshot rolls everything
// back, so a month is never half-archived. Returns how many goals were
// archived.
func (s *Service) TransitionMonth(ctx context.Context, month string, reason *string) (int, error) {
	if _, err := time.Parse(monthLayout, month); err != nil {
		return 0, domain.NewValidationError("month", "must be YYYY-MM")
	}

	archived := 0
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		goals, err := s.goals.ListUncompletedInMonth(ctx, month)
		if err != nil {
			return fmt.Errorf("list month goals: %w", err)
		}
		if len(goals) == 0 {
			return nil
		}

		now := time.Now().UTC()
		ids := make([]uuid.UUID, 0, len(goals))
		for _, g := range goals {
			data, err := domain.SnapshotGoal(g)
			if err != nil {
				return fmt.Errorf("snapshot goal %s: %w", g.ID, err)
			}

			rec := &domain.DebtRecord{
				ID:            uuid.New(),
				GoalID:        g.ID,
				OriginalMonth: month,
				OriginalDate:  g.DueLocal,
				Reason:        reason,
				GoalText:      g.Text,
				GoalData:      data,
				ArchivedAt:    now,
			}
			if err := s.records.Create(ctx, rec); err != nil {
				return fmt.Errorf("archive goal %s: %w", g.ID, err)
			}
			ids = append(ids, g.ID)
		}

		if _, err := s.goals.SetDebt(ctx, ids); err != nil {
			return fmt.Errorf("flag goals: %w", err)
		}

		archived = len(ids)
		return nil
	})
	if err != nil {
		return 0, err
	}

	if archived > 0 {
		s.log.Info("archived month into debt", "month", month, "count", archived)
	}

	return archived, nil
}
