package shadow

import (
	"context"
	"fmt"
	"time"

	"github.com/strideapp/stride-backend/internal/domain"
)

// ActivitiesOnDay returns every activity of one local day, shadow or not,
// earliest first.
func (s *Service) ActivitiesOnDay(ctx context.Context, date string) ([]*domain.Activity, error) {
	if _, err := time.Parse(domain.LocalDateLayout, date); err != nil {
		return nil, domain.NewValidationError("date", "must be YYYY-MM-DD")
	}

	activities, err := s.activities.ListByDay(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}
