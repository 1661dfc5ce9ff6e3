package domain

import (
	"time"

	"github.com/google/uuid"
)

// Milestone is a numeric target distributed across a date period.
// TargetValue is derived once at creation (DailyAmount × whole days in the
// period) and is not recomputed when the bounds change later.
type Milestone struct {
	ID               uuid.UUID
	TargetMetric     string
	DailyAmount      int
	TargetValue      int
	PeriodType       PeriodType
	PeriodStart      time.Time
	PeriodEnd        time.Time
	Strategy         Strategy
	CurrentValue     int
	RecurringPattern RecurrencePattern
	ProblemID        *string
	Unit             string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Active reports whether the period covers the given instant.
func (m *Milestone) Active(at time.Time) bool {
	return !at.Before(m.PeriodStart) && !at.After(m.PeriodEnd)
}

// DeriveTargetValue computes dailyAmount spread over the inclusive day span
// of the period as seen from the caller's timezone.
func DeriveTargetValue(dailyAmount int, periodStart, periodEnd time.Time, offsetMinutes int) int {
	return dailyAmount * WholeDays(periodStart, periodEnd, offsetMinutes)
}

// BalancerReport is the outcome of one balancer run.
type BalancerReport struct {
	MilestoneID   uuid.UUID `json:"milestoneId"`
	UpdatedGoals  int       `json:"updatedGoals"`
	DailyRequired int       `json:"dailyRequired"`
	Message       string    `json:"message"`
}
