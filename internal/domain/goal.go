package domain

import (
	"time"

	"github.com/google/uuid"
)

// Metric is a (label, target, current, unit) tuple embedded in a goal.
// It has no identity of its own: metrics live inside their parent's jsonb
// column and are copied by value from template to instance at generation time.
type Metric struct {
	Label   string  `json:"label"`
	Target  float64 `json:"target"`
	Current float64 `json:"current"`
	Unit    string  `json:"unit"`
}

// Satisfied reports whether the metric reached its target.
func (m Metric) Satisfied() bool { return m.Current >= m.Target }

// Remaining returns how far the metric is from its target (never negative).
func (m Metric) Remaining() float64 {
	if r := m.Target - m.Current; r > 0 {
		return r
	}
	return 0
}

// GoalTemplate is a recurring intention. It generates dated GoalInstances
// and never carries a due date itself.
type GoalTemplate struct {
	ID          uuid.UUID
	Text        string
	Description *string
	Pattern     RecurrencePattern
	Priority    Priority
	Urgent      bool
	Metrics     []Metric
	ProblemID   *string
	Labels      []string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GoalInstance is one concrete, dated obligation, either generated from a
// template or created standalone. Once is_debt is set it stays set until an
// explicit reset.
type GoalInstance struct {
	ID          uuid.UUID
	TemplateID  *uuid.UUID
	MilestoneID *uuid.UUID
	Text        string
	Description *string
	Completed   bool
	CompletedAt *time.Time
	Verified    bool
	DueAt       *time.Time
	// DueLocal is the calendar day of DueAt in the owner's timezone, stored
	// as plain text so uniqueness and equality checks are timezone-safe.
	DueLocal     *string
	Priority     Priority
	Urgent       bool
	Metrics      []Metric
	ProblemID    *string
	Labels       []string
	OriginalDate *string
	IsDebt       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasMetrics reports whether the goal tracks numeric progress.
func (g *GoalInstance) HasMetrics() bool { return len(g.Metrics) > 0 }

// MetricsSatisfied reports whether every metric reached its target.
// A goal without metrics has nothing to satisfy and returns true.
func (g *GoalInstance) MetricsSatisfied() bool {
	for _, m := range g.Metrics {
		if !m.Satisfied() {
			return false
		}
	}
	return true
}

// Open reports whether the goal can still absorb a verification.
func (g *GoalInstance) Open() bool { return !g.Completed && !g.Verified }

// InstanceFromTemplate materializes a dated instance for the given local
// day. Metrics are deep-copied: later template edits must not retroactively
// change already-generated instances.
func InstanceFromTemplate(tmpl *GoalTemplate, dueAt time.Time, dueLocal string, now time.Time) *GoalInstance {
	metrics := make([]Metric, len(tmpl.Metrics))
	copy(metrics, tmpl.Metrics)
	labels := make([]string, len(tmpl.Labels))
	copy(labels, tmpl.Labels)

	templateID := tmpl.ID
	local := dueLocal
	return &GoalInstance{
		ID:         uuid.New(),
		TemplateID: &templateID,
		Text:       tmpl.Text,
		Description: func() *string {
			if tmpl.Description == nil {
				return nil
			}
			d := *tmpl.Description
			return &d
		}(),
		DueAt:     &dueAt,
		DueLocal:  &local,
		Priority:  tmpl.Priority,
		Urgent:    tmpl.Urgent,
		Metrics:   metrics,
		ProblemID: tmpl.ProblemID,
		Labels:    labels,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
