package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DebtRecord is an audit-only archival row written when a goal is swept
// into debt at a month boundary. It snapshots the goal's text and metrics
// as of that moment and never mutates afterwards.
type DebtRecord struct {
	ID            uuid.UUID
	GoalID        uuid.UUID
	OriginalMonth string // YYYY-MM
	OriginalDate  *string
	Reason        *string
	GoalText      string
	GoalData      json.RawMessage
	ArchivedAt    time.Time
	ResolvedAt    *time.Time
}

// DebtSnapshot is the archived shape of a goal inside GoalData.
type DebtSnapshot struct {
	Description *string  `json:"description"`
	Priority    Priority `json:"priority"`
	Metrics     []Metric `json:"metrics"`
	Labels      []string `json:"labels"`
}

// SnapshotGoal serializes the debt-relevant fields of an instance.
func SnapshotGoal(g *GoalInstance) (json.RawMessage, error) {
	return json.Marshal(DebtSnapshot{
		Description: g.Description,
		Priority:    g.Priority,
		Metrics:     g.Metrics,
		Labels:      g.Labels,
	})
}

// DebtTrailDay groups unresolved debt goals by the local day they were due.
type DebtTrailDay struct {
	Date  string          `json:"date"`
	Count int             `json:"debtCount"`
	Goals []*GoalInstance `json:"goals"`
}
