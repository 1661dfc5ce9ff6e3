// Package submission implements the Submission repository using PostgreSQL.
package submission

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/strideapp/stride-backend/internal/adapter/postgres"
	"github.com/strideapp/stride-backend/internal/domain"
)

// Repo provides submission persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new submission repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const submissionColumns = `id, platform, problem_id, problem_title, submitted_at, verdict, language, rating, tags, created_at`

// Scrapers redeliver the same submissions on every poll; submitted_at is
// unique, so the insert is a no-op the second time.
const insertSubmissionSQL = `
INSERT INTO submissions (` + submissionColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (submitted_at) DO NOTHING`

const listRecentSQL = `
SELECT ` + submissionColumns + `
FROM submissions
WHERE platform = $1
ORDER BY submitted_at DESC
LIMIT $2`

// InsertIfAbsent stores a scraped submission, reporting whether it was new.
func (r *Repo) InsertIfAbsent(ctx context.Context, sub *domain.Submission) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tags := sub.Tags
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return false, fmt.Errorf("marshal tags: %w", err)
	}

	tag, err := querier.Exec(ctx, insertSubmissionSQL,
		sub.ID, string(sub.Platform), sub.ProblemID, sub.ProblemTitle, sub.SubmittedAt,
		sub.Verdict, sub.Language, sub.Rating, b, sub.CreatedAt,
	)
	if err != nil {
		return false, postgres.MapError(err, "submission", sub.ID)
	}

	return tag.RowsAffected() > 0, nil
}

// ListRecent returns a platform's latest submissions, newest first.
func (r *Repo) ListRecent(ctx context.Context, platform domain.Platform, limit int) ([]*domain.Submission, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listRecentSQL, string(platform), limit)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	subs := []*domain.Submission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}

	return subs, nil
}

func scanSubmission(row pgx.Row) (*domain.Submission, error) {
	var (
		sub      domain.Submission
		platform string
		tags     []byte
	)

	err := row.Scan(
		&sub.ID, &platform, &sub.ProblemID, &sub.ProblemTitle, &sub.SubmittedAt,
		&sub.Verdict, &sub.Language, &sub.Rating, &tags, &sub.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	sub.Platform = domain.Platform(platform)
	if err := json.Unmarshal(tags, &sub.Tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}

	return &sub, nil
}
