package domain

import (
	"time"

	"github.com/google/uuid"
)

// Submission is the raw record of one accepted external submission, kept
// for the problem catalog and analytics. submitted_at is unique: scrapers
// may redeliver the same submission on every poll.
type Submission struct {
	ID           uuid.UUID
	Platform     Platform
	ProblemID    string
	ProblemTitle string
	SubmittedAt  time.Time
	Verdict      string
	Language     string
	Rating       *int
	Tags         []string
	CreatedAt    time.Time
}

// ShadowInput converts the submission into the verifier's input shape.
func (s *Submission) ShadowInput() ShadowInput {
	return ShadowInput{
		OccurredAt:   s.SubmittedAt,
		ProblemID:    s.ProblemID,
		ProblemTitle: s.ProblemTitle,
		Platform:     s.Platform,
	}
}
