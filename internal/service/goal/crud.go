package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/strideapp/stride-backend/internal/domain"
)

// CreateGoal creates a standalone instance not tied to any template.
func (s *Service) CreateGoal(ctx context.Context, in CreateGoalInput) (*domain.GoalInstance, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	priority := in.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	metrics := in.Metrics
	if metrics == nil {
		metrics = []domain.Metric{}
	}
	labels := in.Labels
	if labels == nil {
		labels = []string{}
	}

	inst := &domain.GoalInstance{
		ID:          uuid.New(),
		Text:        in.Text,
		Description: in.Description,
		Priority:    priority,
		Urgent:      in.Urgent,
		Metrics:     metrics,
		ProblemID:   in.ProblemID,
		Labels:      labels,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.DueLocal != nil {
		dueAt, err := time.Parse(domain.LocalDateLayout, *in.DueLocal)
		if err != nil {
			return nil, domain.NewValidationError("dueLocal", "must be YYYY-MM-DD")
		}
		local := *in.DueLocal
		inst.DueAt = &dueAt
		inst.DueLocal = &local
	}

	if err := s.goals.Create(ctx, inst); err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}

	return inst, nil
}

// GetGoal returns one instance.
func (s *Service) GetGoal(ctx context.Context, id uuid.UUID) (*domain.GoalInstance, error) {
	return s.goals.GetByID(ctx, id)
}

// UpdateGoal applies a typed partial update.
func (s *Service) UpdateGoal(ctx context.Context, id uuid.UUID, update domain.GoalUpdate) (*domain.GoalInstance, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	if update.DueLocal != nil && update.DueAt == nil {
		dueAt, err := time.Parse(domain.LocalDateLayout, *update.DueLocal)
		if err != nil {
			return nil, domain.NewValidationError("dueLocal", "must be YYYY-MM-DD")
		}
		update.DueAt = &dueAt
	}

	inst, err := s.goals.UpdateFields(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}

	return inst, nil
}

// ToggleCompletion flips an instance's completed flag, stamping or clearing
// completed_at accordingly.
func (s *Service) ToggleCompletion(ctx context.Context, id uuid.UUID) (*domain.GoalInstance, error) {
	inst, err := s.goals.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}

	completed := !inst.Completed
	update := domain.GoalUpdate{Completed: &completed}
	if completed {
		now := time.Now().UTC()
		update.CompletedAt = &now
	} else {
		update.ClearCompletedAt = true
	}

	inst, err = s.goals.UpdateFields(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("toggle goal: %w", err)
	}

	return inst, nil
}

// LinkActivity attaches an existing activity to a goal and verifies the
// goal: metric-less goals complete outright, metric goals stay open until
// their numbers are in. One transaction, both rows or neither.
func (s *Service) LinkActivity(ctx context.Context, activityID, goalID uuid.UUID) (*domain.GoalInstance, error) {
	var linked *domain.GoalInstance

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		inst, err := s.goals.GetByID(ctx, goalID)
		if err != nil {
			return fmt.Errorf("get goal: %w", err)
		}

		if err := s.activities.SetGoal(ctx, activityID, goalID); err != nil {
			return fmt.Errorf("link activity: %w", err)
		}

		verified := true
		update := domain.GoalUpdate{Verified: &verified}
		if !inst.HasMetrics() {
			completed := true
			now := time.Now().UTC()
			update.Completed = &completed
			update.CompletedAt = &now
		}

		linked, err = s.goals.UpdateFields(ctx, goalID, update)
		if err != nil {
			return fmt.Errorf("verify goal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return linked, nil
}

// GoalActivities returns the activities linked to a goal, earliest first.
func (s *Service) GoalActivities(ctx context.Context, id uuid.UUID) ([]*domain.Activity, error) {
	if _, err := s.goals.GetByID(ctx, id); err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}

	activities, err := s.activities.ListByGoal(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list goal activities: %w", err)
	}
	return activities, nil
}

// DeleteGoal removes an instance.
func (s *Service) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	return s.goals.Delete(ctx, id)
}

// CreateTemplate creates a recurring template. Instances materialize lazily
// on the next read covering a matching day.
func (s *Service) CreateTemplate(ctx context.Context, in CreateTemplateInput) (*domain.GoalTemplate, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	priority := in.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	metrics := in.Metrics
	if metrics == nil {
		metrics = []domain.Metric{}
	}
	labels := in.Labels
	if labels == nil {
		labels = []string{}
	}

	tmpl := &domain.GoalTemplate{
		ID:          uuid.New(),
		Text:        in.Text,
		Description: in.Description,
		Pattern:     in.Pattern,
		Priority:    priority,
		Urgent:      in.Urgent,
		Metrics:     metrics,
		ProblemID:   in.ProblemID,
		Labels:      labels,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.templates.Create(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}

	return tmpl, nil
}

// ListTemplates returns every template.
func (s *Service) ListTemplates(ctx context.Context) ([]*domain.GoalTemplate, error) {
	return s.templates.List(ctx)
}

// SetTemplateActive pauses or resumes a template's expansion.
func (s *Service) SetTemplateActive(ctx context.Context, id uuid.UUID, active bool) error {
	return s.templates.SetActive(ctx, id, active)
}

// DeleteTemplate removes a template; its generated instances survive.
func (s *Service) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	return s.templates.Delete(ctx, id)
}
