package goal

import (
	"strings"
	"time"

	"github.com/strideapp/stride-backend/internal/domain"
)

// CreateGoalInput describes a one-off goal.
type CreateGoalInput struct {
	Text        string
	Description *string
	DueLocal    *string
	Priority    domain.Priority
	Urgent      bool
	Metrics     []domain.Metric
	ProblemID   *string
	Labels      []string
}

// Validate checks the input.
func (in CreateGoalInput) Validate() error {
	var fields []domain.FieldError
	if strings.TrimSpace(in.Text) == "" {
		fields = append(fields, domain.FieldError{Field: "text", Message: "must not be empty"})
	}
	if in.Priority != "" && !in.Priority.IsValid() {
		fields = append(fields, domain.FieldError{Field: "priority", Message: "unknown priority"})
	}
	if in.DueLocal != nil {
		if _, err := time.Parse(domain.LocalDateLayout, *in.DueLocal); err != nil {
			fields = append(fields, domain.FieldError{Field: "dueLocal", Message: "must be YYYY-MM-DD"})
		}
	}
	for _, m := range in.Metrics {
		if m.Label == "" {
			fields = append(fields, domain.FieldError{Field: "metrics", Message: "metric label must not be empty"})
			break
		}
	}
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

// CreateTemplateInput describes a recurring template.
type CreateTemplateInput struct {
	Text        string
	Description *string
	Pattern     domain.RecurrencePattern
	Priority    domain.Priority
	Urgent      bool
	Metrics     []domain.Metric
	ProblemID   *string
	Labels      []string
}

// Validate checks the input.
func (in CreateTemplateInput) Validate() error {
	var fields []domain.FieldError
	if strings.TrimSpace(in.Text) == "" {
		fields = append(fields, domain.FieldError{Field: "text", Message: "must not be empty"})
	}
	if in.Pattern.IsZero() {
		fields = append(fields, domain.FieldError{Field: "pattern", Message: "must not be empty"})
	} else if err := in.Pattern.Validate(); err != nil {
		fields = append(fields, domain.FieldError{Field: "pattern", Message: err.Error()})
	}
	if in.Priority != "" && !in.Priority.IsValid() {
		fields = append(fields, domain.FieldError{Field: "priority", Message: "unknown priority"})
	}
	for _, m := range in.Metrics {
		if m.Label == "" {
			fields = append(fields, domain.FieldError{Field: "metrics", Message: "metric label must not be empty"})
			break
		}
	}
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}
