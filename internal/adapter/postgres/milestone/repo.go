// Package milestone implements the Milestone repository using PostgreSQL.
package milestone

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/strideapp/stride-backend/internal/adapter/postgres"
	"github.com/strideapp/stride-backend/internal/domain"
)

// Repo provides milestone persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new milestone repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const milestoneColumns = `id, target_metric, daily_amount, target_value, period_type, period_start,
       period_end, strategy, current_value, recurring_pattern, problem_id, unit, created_at, updated_at`

const getMilestoneSQL = `
SELECT ` + milestoneColumns + `
FROM milestones
WHERE id = $1`

const insertMilestoneSQL = `
INSERT INTO milestones (` + milestoneColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

const listMilestonesSQL = `
SELECT ` + milestoneColumns + `
FROM milestones
ORDER BY period_start ASC, created_at ASC`

const listActiveMilestonesSQL = `
SELECT ` + milestoneColumns + `
FROM milestones
WHERE period_start <= $1 AND period_end >= $1
ORDER BY period_start ASC, created_at ASC`

const deleteMilestoneSQL = `DELETE FROM milestones WHERE id = $1`

// Create inserts a new milestone.
func (r *Repo) Create(ctx context.Context, m *domain.Milestone) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, insertMilestoneSQL,
		m.ID, m.TargetMetric, m.DailyAmount, m.TargetValue, string(m.PeriodType), m.PeriodStart,
		m.PeriodEnd, string(m.Strategy), m.CurrentValue, string(m.RecurringPattern), m.ProblemID,
		m.Unit, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "milestone", m.ID)
	}

	return nil
}

// GetByID returns a milestone by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Milestone, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	m, err := scanMilestone(querier.QueryRow(ctx, getMilestoneSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "milestone", id)
	}

	return m, nil
}

// List returns milestones, restricted to the ones whose period covers `at`
// when activeOnly is set.
func (r *Repo) List(ctx context.Context, activeOnly bool, at time.Time) ([]*domain.Milestone, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		rows pgx.Rows
		err  error
	)
	if activeOnly {
		rows, err = querier.Query(ctx, listActiveMilestonesSQL, at)
	} else {
		rows, err = querier.Query(ctx, listMilestonesSQL)
	}
	if err != nil {
		return nil, fmt.Errorf("list milestones: %w", err)
	}
	defer rows.Close()

	milestones := []*domain.Milestone{}
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, fmt.Errorf("scan milestone: %w", err)
		}
		milestones = append(milestones, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate milestones: %w", err)
	}

	return milestones, nil
}

// UpdateFields applies the set fields of params and returns the updated
// milestone.
func (r *Repo) UpdateFields(ctx context.Context, id uuid.UUID, params domain.MilestoneUpdate) (*domain.Milestone, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	q := postgres.Builder().
		Update("milestones").
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + milestoneColumns)

	if params.TargetMetric != nil {
		q = q.Set("target_metric", *params.TargetMetric)
	}
	if params.DailyAmount != nil {
		q = q.Set("daily_amount", *params.DailyAmount)
	}
	if params.TargetValue != nil {
		q = q.Set("target_value", *params.TargetValue)
	}
	if params.PeriodStart != nil {
		q = q.Set("period_start", *params.PeriodStart)
	}
	if params.PeriodEnd != nil {
		q = q.Set("period_end", *params.PeriodEnd)
	}
	if params.Strategy != nil {
		q = q.Set("strategy", string(*params.Strategy))
	}
	if params.CurrentValue != nil {
		q = q.Set("current_value", *params.CurrentValue)
	}
	if params.RecurringPattern != nil {
		q = q.Set("recurring_pattern", string(*params.RecurringPattern))
	}
	if params.Unit != nil {
		q = q.Set("unit", *params.Unit)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build milestone update query: %w", err)
	}

	m, err := scanMilestone(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "milestone", id)
	}

	return m, nil
}

// SetCurrentValue persists the recomputed progress after a balancer run.
func (r *Repo) SetCurrentValue(ctx context.Context, id uuid.UUID, value int) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx,
		`UPDATE milestones SET current_value = $2, updated_at = $3 WHERE id = $1`,
		id, value, time.Now().UTC(),
	)
	if err != nil {
		return postgres.MapError(err, "milestone", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("milestone %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a milestone. Linked instances survive with a nulled link.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteMilestoneSQL, id)
	if err != nil {
		return postgres.MapError(err, "milestone", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("milestone %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanMilestone(row pgx.Row) (*domain.Milestone, error) {
	var (
		m          domain.Milestone
		periodType string
		strategy   string
		pattern    string
	)

	err := row.Scan(
		&m.ID, &m.TargetMetric, &m.DailyAmount, &m.TargetValue, &periodType, &m.PeriodStart,
		&m.PeriodEnd, &strategy, &m.CurrentValue, &pattern, &m.ProblemID, &m.Unit,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.PeriodType = domain.PeriodType(periodType)
	m.Strategy = domain.Strategy(strategy)
	m.RecurringPattern = domain.RecurrencePattern(pattern)

	return &m, nil
}
