// Package activity implements the Activity repository using PostgreSQL.
package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/strideapp/stride-backend/internal/adapter/postgres"
	"github.com/strideapp/stride-backend/internal/domain"
)

// Repo provides activity persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new activity repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const activityColumns = `id, local_date, started_at, ended_at, category, title, productive, shadow, goal_id, created_at`

const insertActivitySQL = `
INSERT INTO activities (` + activityColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

const existsShadowSQL = `
SELECT EXISTS (SELECT 1 FROM activities WHERE shadow AND ended_at = $1)`

const listByDaySQL = `
SELECT ` + activityColumns + `
FROM activities
WHERE local_date = $1
ORDER BY started_at ASC`

const listByGoalSQL = `
SELECT ` + activityColumns + `
FROM activities
WHERE goal_id = $1
ORDER BY started_at ASC`

// Create inserts an activity. A duplicate shadow end timestamp surfaces as
// domain.ErrAlreadyExists via the partial unique index.
func (r *Repo) Create(ctx context.Context, act *domain.Activity) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, insertActivitySQL,
		act.ID, act.LocalDate, act.StartedAt, act.EndedAt, act.Category, act.Title,
		act.Productive, act.Shadow, act.GoalID, act.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "activity", act.ID)
	}

	return nil
}

// ExistsShadowEndingAt reports whether a shadow activity already ends at the
// given instant. The verifier checks this before opening its transaction so
// redelivered events short-circuit without touching any goal.
func (r *Repo) ExistsShadowEndingAt(ctx context.Context, endedAt time.Time) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := querier.QueryRow(ctx, existsShadowSQL, endedAt).Scan(&exists); err != nil {
		return false, fmt.Errorf("check shadow activity: %w", err)
	}

	return exists, nil
}

// GetByID returns an activity by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	act, err := scanActivity(querier.QueryRow(ctx, `SELECT `+activityColumns+` FROM activities WHERE id = $1`, id))
	if err != nil {
		return nil, postgres.MapError(err, "activity", id)
	}

	return act, nil
}

// SetGoal links an existing activity to a goal.
func (r *Repo) SetGoal(ctx context.Context, activityID, goalID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx,
		`UPDATE activities SET goal_id = $2 WHERE id = $1`,
		activityID, goalID,
	)
	if err != nil {
		return postgres.MapError(err, "activity", activityID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("activity %s: %w", activityID, domain.ErrNotFound)
	}

	return nil
}

// ListByDay returns the activities of one local day, earliest first.
func (r *Repo) ListByDay(ctx context.Context, localDate string) ([]*domain.Activity, error) {
	return r.listBy(ctx, listByDaySQL, localDate)
}

// ListByGoal returns the activities linked to a goal.
func (r *Repo) ListByGoal(ctx context.Context, goalID uuid.UUID) ([]*domain.Activity, error) {
	return r.listBy(ctx, listByGoalSQL, goalID)
}

func (r *Repo) listBy(ctx context.Context, sql string, args ...any) ([]*domain.Activity, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	activities := []*domain.Activity{}
	for rows.Next() {
		act, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		activities = append(activities, act)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activities: %w", err)
	}

	return activities, nil
}

func scanActivity(row pgx.Row) (*domain.Activity, error) {
	var act domain.Activity
	err := row.Scan(
		&act.ID, &act.LocalDate, &act.StartedAt, &act.EndedAt, &act.Category, &act.Title,
		&act.Productive, &act.Shadow, &act.GoalID, &act.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &act, nil
}
