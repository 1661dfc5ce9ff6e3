package debt

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/strideapp/stride-backend/internal/domain"
)

// Reset clears the debt flag on the given goals and resolves their archival
// records. This is the only debt-to-active edge in the system. Returns how
// many goals actually flipped.
func (s *Service) Reset(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, domain.NewValidationError("goalIds", "must not be empty")
	}

	var flipped int64
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		n, err := s.goals.ResetDebt(ctx, ids)
		if err != nil {
			return fmt.Errorf("reset goals: %w", err)
		}
		flipped = n

		if _, err := s.records.ResolveByGoals(ctx, ids, time.Now().UTC()); err != nil {
			return fmt.Errorf("resolve debt records: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if flipped > 0 {
		s.log.Info("reset debt goals", "count", flipped)
	}

	return int(flipped), nil
}
