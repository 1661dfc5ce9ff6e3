package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/strideapp/stride-backend/internal/domain"
)

// EnsureWindow materializes instances for every active recurring template
// across the [from, to] day span, as seen from the caller's timezone.
// The database's uniqueness guard makes this safe to call concurrently and
// repeatedly: a day that already has its instance is a no-op. Returns how
// many instances were newly created.
//
// A single failed insert does not abort the rest of the window; it is
// logged and skipped. A span wider than the configured maximum is clamped
// to its first maxWindowDays days so wide range reads keep serving.
func (s *Service) EnsureWindow(ctx context.Context, from, to time.Time, offsetMinutes int) (int, error) {
	if to.Before(from) {
		return 0, domain.NewValidationError("range", "end before start")
	}

	days := domain.WholeDays(from, to, offsetMinutes)
	if days > s.maxWindowDays {
		s.log.Warn("expansion window clamped",
			"requested_days", days,
			"max_days", s.maxWindowDays)
		days = s.maxWindowDays
	}

	templates, err := s.templates.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("list active templates: %w", err)
	}
	if len(templates) == 0 {
		return 0, nil
	}

	created := 0
	now := time.Now().UTC()
	day := from
	for i := 0; i < days; i++ {
		localDay := domain.LocalDate(day, offsetMinutes)
		weekday := domain.LocalWeekday(day, offsetMinutes)
		dueAt := domain.DayStartUTC(day, offsetMinutes)

		for _, tmpl := range templates {
			if !tmpl.Pattern.Matches(weekday) {
				continue
			}

			inst := domain.InstanceFromTemplate(tmpl, dueAt, localDay, now)
			inserted, err := s.goals.InsertIfAbsent(ctx, inst)
			if err != nil {
				s.log.Error("failed to materialize instance",
					"template_id", tmpl.ID,
					"day", localDay,
					"error", err)
				continue
			}
			if inserted {
				created++
			}
		}

		day = day.Add(24 * time.Hour)
	}

	return created, nil
}
