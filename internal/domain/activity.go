package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is a time-boxed log entry. Shadow activities are system-generated
// from external submissions; a shadow activity is uniquely identified by its
// end timestamp, which stands in for an external idempotency key.
type Activity struct {
	ID         uuid.UUID
	LocalDate  string
	StartedAt  time.Time
	EndedAt    time.Time
	Category   string
	Title      string
	Productive bool
	Shadow     bool
	GoalID     *uuid.UUID
	CreatedAt  time.Time
}

// ShadowInput is one external submission event as delivered by a scraper
// collaborator. Redelivery of the same event must be tolerated.
type ShadowInput struct {
	OccurredAt   time.Time `json:"occurredAt"`
	ProblemID    string    `json:"problemId"`
	ProblemTitle string    `json:"problemTitle"`
	Platform     Platform  `json:"platform"`
}
