package shadow

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/strideapp/stride-backend/internal/domain"
)

// ProcessEvent logs one external submission as a shadow activity and tries
// to verify a goal for it. Matching is two-tier: an exact problem-id match
// on the activity's local day wins; otherwise the platform keyword picks
// the open metric goal with the largest gap. An unmatched event still logs
// its activity.
//
// The event's timestamp doubles as the idempotency key: a redelivered event
// is recognized and reports created=false without touching anything.
func (s *Service) ProcessEvent(ctx context.Context, in domain.ShadowInput, offsetMinutes int) (bool, error) {
	if err := validateInput(in); err != nil {
		return false, err
	}

	endedAt := in.OccurredAt.UTC()
	startedAt := endedAt.Add(-s.window)
	localDate := domain.LocalDate(startedAt, offsetMinutes)

	exists, err := s.activities.ExistsShadowEndingAt(ctx, endedAt)
	if err != nil {
		return false, fmt.Errorf("check shadow activity: %w", err)
	}
	if exists {
		return false, nil
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		matched, err := s.matchGoal(ctx, in, localDate)
		if err != nil {
			return err
		}

		act := &domain.Activity{
			ID:         uuid.New(),
			LocalDate:  localDate,
			StartedAt:  startedAt,
			EndedAt:    endedAt,
			Category:   in.Platform.ActivityCategory(),
			Title:      "Solved: " + in.ProblemTitle,
			Productive: true,
			Shadow:     true,
			CreatedAt:  time.Now().UTC(),
		}
		if matched != nil {
			act.GoalID = &matched.ID
		}

		if err := s.activities.Create(ctx, act); err != nil {
			return fmt.Errorf("create shadow activity: %w", err)
		}
		return nil
	})
	if err != nil {
		// A concurrent delivery of the same event won the insert race.
		if errors.Is(err, domain.ErrAlreadyExists) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// matchGoal finds and verifies the goal this submission belongs to, or
// returns nil when nothing matches.
func (s *Service) matchGoal(ctx context.Context, in domain.ShadowInput, localDate string) (*domain.GoalInstance, error) {
	// Tier 1: exact problem match.
	exact, err := s.goals.FindOpenByProblem(ctx, localDate, in.ProblemID)
	switch {
	case err == nil:
		return s.verifyExact(ctx, exact)
	case errors.Is(err, domain.ErrNotFound):
		// fall through to the keyword tier
	default:
		return nil, fmt.Errorf("find goal by problem: %w", err)
	}

	// Tier 2: platform keyword + metric gap.
	candidates, err := s.goals.ListOpenOnDay(ctx, localDate)
	if err != nil {
		return nil, fmt.Errorf("list open goals: %w", err)
	}

	best := pickKeywordCandidate(candidates, string(in.Platform))
	if best == nil {
		return nil, nil
	}
	return s.verifyGeneric(ctx, best)
}

// verifyExact marks an exactly-matched goal verified; a goal without
// metrics has nothing left to measure and completes too.
func (s *Service) verifyExact(ctx context.Context, g *domain.GoalInstance) (*domain.GoalInstance, error) {
	verified := true
	update := domain.GoalUpdate{Verified: &verified}
	if !g.HasMetrics() {
		completed := true
		now := time.Now().UTC()
		update.Completed = &completed
		update.CompletedAt = &now
	}

	updated, err := s.goals.UpdateFields(ctx, g.ID, update)
	if err != nil {
		return nil, fmt.Errorf("verify goal: %w", err)
	}
	return updated, nil
}

// verifyGeneric credits one unit to the matched goal's first unsatisfied
// metric. The goal stays unverified and open until every metric reaches
// its target, so later submissions keep finding and crediting it.
func (s *Service) verifyGeneric(ctx context.Context, g *domain.GoalInstance) (*domain.GoalInstance, error) {
	metrics := make([]domain.Metric, len(g.Metrics))
	copy(metrics, g.Metrics)
	for i := range metrics {
		if !metrics[i].Satisfied() {
			metrics[i].Current++
			break
		}
	}

	update := domain.GoalUpdate{Metrics: metrics}

	allDone := true
	for _, m := range metrics {
		if !m.Satisfied() {
			allDone = false
			break
		}
	}
	if allDone {
		verified := true
		completed := true
		now := time.Now().UTC()
		update.Verified = &verified
		update.Completed = &completed
		update.CompletedAt = &now
	}

	updated, err := s.goals.UpdateFields(ctx, g.ID, update)
	if err != nil {
		return nil, fmt.Errorf("credit goal: %w", err)
	}
	return updated, nil
}

// pickKeywordCandidate selects the open goal mentioning the keyword with
// the largest metric gap. Ties break on creation time, then id, so the
// choice is stable.
func pickKeywordCandidate(goals []*domain.GoalInstance, keyword string) *domain.GoalInstance {
	keyword = strings.ToLower(keyword)

	eligible := make([]*domain.GoalInstance, 0, len(goals))
	for _, g := range goals {
		if !g.HasMetrics() || g.MetricsSatisfied() {
			continue
		}
		if mentionsKeyword(g, keyword) {
			eligible = append(eligible, g)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	sort.Slice(eligible, func(i, j int) bool {
		gi, gj := metricGap(eligible[i]), metricGap(eligible[j])
		if gi != gj {
			return gi > gj
		}
		if !eligible[i].CreatedAt.Equal(eligible[j].CreatedAt) {
			return eligible[i].CreatedAt.Before(eligible[j].CreatedAt)
		}
		return eligible[i].ID.String() < eligible[j].ID.String()
	})

	return eligible[0]
}

func mentionsKeyword(g *domain.GoalInstance, keyword string) bool {
	if strings.Contains(strings.ToLower(g.Text), keyword) {
		return true
	}
	if g.Description != nil && strings.Contains(strings.ToLower(*g.Description), keyword) {
		return true
	}
	for _, label := range g.Labels {
		if strings.Contains(strings.ToLower(label), keyword) {
			return true
		}
	}
	return false
}

// metricGap is the goal's total outstanding work across its metrics.
func metricGap(g *domain.GoalInstance) float64 {
	var gap float64
	for _, m := range g.Metrics {
		gap += m.Remaining()
	}
	return gap
}

func validateInput(in domain.ShadowInput) error {
	var fields []domain.FieldError
	if in.OccurredAt.IsZero() {
		fields = append(fields, domain.FieldError{Field: "occurredAt", Message: "must be set"})
	}
	if strings.TrimSpace(in.ProblemID) == "" {
		fields = append(fields, domain.FieldError{Field: "problemId", Message: "must not be empty"})
	}
	if strings.TrimSpace(in.ProblemTitle) == "" {
		fields = append(fields, domain.FieldError{Field: "problemTitle", Message: "must not be empty"})
	}
	if in.Platform == "" {
		fields = append(fields, domain.FieldError{Field: "platform", Message: "must not be empty"})
	}
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}
