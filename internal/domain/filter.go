package domain

import "time"

// GoalFilter defines parameters for listing goal instances.
// Every field is optional; nil means "no constraint".
type GoalFilter struct {
	Completed    *bool
	Urgent       *bool
	IsDebt       *bool
	HasRecurring *bool

	// Search performs ILIKE '%...%' on text and description.
	Search *string

	// From/To bound due_at. Both must be set to apply.
	From *time.Time
	To   *time.Time

	// OffsetMinutes is the caller's timezone offset east of UTC. It is not
	// a row filter: the pre-read reconciliation (expansion + debt sweep)
	// uses it to compute local days.
	OffsetMinutes int
}

// Window returns the reconciliation window for the filter: the requested
// date range when present, otherwise the degenerate [now, now] window so a
// plain list still materializes today's recurring goals.
func (f GoalFilter) Window(now time.Time) (time.Time, time.Time) {
	if f.From != nil && f.To != nil {
		return *f.From, *f.To
	}
	return now, now
}
