package domain

import (
	"time"

	"github.com/google/uuid"
)

// GoalUpdate holds the optional fields of a goal update. A nil field is
// left untouched. Clearable nullable columns use the dedicated Clear flags
// instead of double pointers.
type GoalUpdate struct {
	Text        *string
	Description *string
	Completed   *bool
	CompletedAt *time.Time
	Verified    *bool
	DueAt       *time.Time
	DueLocal    *string
	Priority    *Priority
	Urgent      *bool
	Metrics     []Metric
	ProblemID   *string
	Labels      []string
	MilestoneID *uuid.UUID

	ClearDescription bool
	ClearDue         bool
	ClearCompletedAt bool
}

// Validate checks the set fields.
func (u GoalUpdate) Validate() error {
	var fields []FieldError
	if u.Text != nil && *u.Text == "" {
		fields = append(fields, FieldError{Field: "text", Message: "must not be empty"})
	}
	if u.Priority != nil && !u.Priority.IsValid() {
		fields = append(fields, FieldError{Field: "priority", Message: "unknown priority"})
	}
	if u.DueLocal != nil {
		if _, err := time.Parse(LocalDateLayout, *u.DueLocal); err != nil {
			fields = append(fields, FieldError{Field: "dueLocal", Message: "must be YYYY-MM-DD"})
		}
	}
	for _, m := range u.Metrics {
		if m.Label == "" {
			fields = append(fields, FieldError{Field: "metrics", Message: "metric label must not be empty"})
			break
		}
	}
	if len(fields) > 0 {
		return NewValidationErrors(fields)
	}
	return nil
}

// MilestoneUpdate holds the optional fields of a milestone update.
type MilestoneUpdate struct {
	TargetMetric     *string
	DailyAmount      *int
	TargetValue      *int
	PeriodStart      *time.Time
	PeriodEnd        *time.Time
	Strategy         *Strategy
	CurrentValue     *int
	RecurringPattern *RecurrencePattern
	Unit             *string
}

// Validate checks the set fields.
func (u MilestoneUpdate) Validate() error {
	var fields []FieldError
	if u.TargetMetric != nil && *u.TargetMetric == "" {
		fields = append(fields, FieldError{Field: "targetMetric", Message: "must not be empty"})
	}
	if u.DailyAmount != nil && *u.DailyAmount < 0 {
		fields = append(fields, FieldError{Field: "dailyAmount", Message: "must not be negative"})
	}
	if u.Strategy != nil && !u.Strategy.IsValid() {
		fields = append(fields, FieldError{Field: "strategy", Message: "unknown strategy"})
	}
	if u.RecurringPattern != nil {
		if err := u.RecurringPattern.Validate(); err != nil {
			fields = append(fields, FieldError{Field: "recurringPattern", Message: err.Error()})
		}
	}
	if len(fields) > 0 {
		return NewValidationErrors(fields)
	}
	return nil
}
