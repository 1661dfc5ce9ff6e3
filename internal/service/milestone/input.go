package milestone

import (
	"strings"

	"time"

	"github.com/strideapp/stride-backend/internal/domain"
)

// CreateMilestoneInput describes a new milestone. TargetValue is derived,
// never supplied.
type CreateMilestoneInput struct {
	TargetMetric     string
	DailyAmount      int
	PeriodType       domain.PeriodType
	PeriodStart      time.Time
	PeriodEnd        time.Time
	Strategy         domain.Strategy
	RecurringPattern domain.RecurrencePattern
	ProblemID        *string
	Unit             string
}

// Validate checks the input.
func (in CreateMilestoneInput) Validate() error {
	var fields []domain.FieldError
	if strings.TrimSpace(in.TargetMetric) == "" {
		fields = append(fields, domain.FieldError{Field: "targetMetric", Message: "must not be empty"})
	}
	if in.DailyAmount < 1 {
		fields = append(fields, domain.FieldError{Field: "dailyAmount", Message: "must be at least 1"})
	}
	if !in.PeriodType.IsValid() {
		fields = append(fields, domain.FieldError{Field: "periodType", Message: "unknown period type"})
	}
	if in.PeriodStart.IsZero() || in.PeriodEnd.IsZero() {
		fields = append(fields, domain.FieldError{Field: "period", Message: "start and end must be set"})
	} else if in.PeriodEnd.Before(in.PeriodStart) {
		fields = append(fields, domain.FieldError{Field: "period", Message: "end before start"})
	}
	if in.Strategy != "" && !in.Strategy.IsValid() {
		fields = append(fields, domain.FieldError{Field: "strategy", Message: "unknown strategy"})
	}
	if err := in.RecurringPattern.Validate(); err != nil {
		fields = append(fields, domain.FieldError{Field: "recurringPattern", Message: "unknown weekday token"})
	}
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}
