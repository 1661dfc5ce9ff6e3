// Package goal implements the GoalInstance repository using PostgreSQL.
// Static queries are raw SQL; the list filter and the optional-field update
// are built with squirrel over a fixed set of typed fields.
package goal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/strideapp/stride-backend/internal/adapter/postgres"
	"github.com/strideapp/stride-backend/internal/domain"
)

// Repo provides goal instance persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new goal repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const goalColumns = `id, template_id, milestone_id, text, description, completed, completed_at, verified,
       due_at, due_local, priority, urgent, metrics, problem_id, labels, original_date, is_debt,
       created_at, updated_at`

const getGoalSQL = `
SELECT ` + goalColumns + `
FROM goal_instances
WHERE id = $1`

const insertGoalSQL = `
INSERT INTO goal_instances (` + goalColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

// The partial unique index on (template_id, due_local) makes concurrent
// expansions race-safe: exactly one insert wins, the rest are no-ops.
const insertGoalIfAbsentSQL = insertGoalSQL + `
ON CONFLICT (template_id, due_local) WHERE template_id IS NOT NULL AND due_local IS NOT NULL DO NOTHING`

const deleteGoalSQL = `DELETE FROM goal_instances WHERE id = $1`

// markOverdueDebtSQL is the lazy debt sweep: anything strictly before the
// caller's local today that is still open becomes debt, remembering the day
// it was originally due. Already-flagged rows are skipped so original_date
// is written exactly once.
const markOverdueDebtSQL = `
UPDATE goal_instances
SET is_debt = TRUE,
    original_date = COALESCE(original_date, due_local),
    updated_at = $2
WHERE due_at < $1
  AND NOT completed
  AND NOT is_debt`

const setDebtSQL = `
UPDATE goal_instances
SET is_debt = TRUE,
    original_date = COALESCE(original_date, due_local),
    updated_at = $2
WHERE id = ANY($1::uuid[])
  AND NOT is_debt`

const resetDebtSQL = `
UPDATE goal_instances
SET is_debt = FALSE,
    updated_at = $2
WHERE id = ANY($1::uuid[])
  AND is_debt`

const listUncompletedInMonthSQL = `
SELECT ` + goalColumns + `
FROM goal_instances
WHERE due_local LIKE $1
  AND NOT completed
  AND NOT is_debt
ORDER BY due_local ASC, created_at ASC`

const listDebtBeforeSQL = `
SELECT ` + goalColumns + `
FROM goal_instances
WHERE is_debt
  AND NOT completed
  AND original_date < $1
ORDER BY original_date ASC, created_at ASC`

const listDebtInRangeSQL = `
SELECT ` + goalColumns + `
FROM goal_instances
WHERE is_debt
  AND NOT completed
  AND original_date >= $1
  AND original_date <= $2
ORDER BY original_date ASC, created_at ASC`

const findOpenByProblemSQL = `
SELECT ` + goalColumns + `
FROM goal_instances
WHERE due_local = $1
  AND problem_id = $2
  AND NOT completed
  AND NOT verified
ORDER BY created_at ASC, id ASC
LIMIT 1`

const listOpenOnDaySQL = `
SELECT ` + goalColumns + `
FROM goal_instances
WHERE due_local = $1
  AND NOT completed
  AND NOT verified
ORDER BY created_at ASC, id ASC`

// sumMetricCurrentsSQL aggregates every metric's current over every
// instance linked to the milestone, whatever its completed flag says.
const sumMetricCurrentsSQL = `
SELECT COALESCE(SUM((m ->> 'current')::float), 0)
FROM goal_instances,
     jsonb_array_elements(metrics) AS m
WHERE milestone_id = $1
  AND jsonb_array_length(metrics) > 0`

const listLinkedFromDaySQL = `
SELECT ` + goalColumns + `
FROM goal_instances
WHERE milestone_id = $1
  AND NOT completed
  AND due_local >= $2
ORDER BY due_local ASC, created_at ASC`

const setFirstMetricTargetSQL = `
UPDATE goal_instances
SET metrics = jsonb_set(metrics, '{0,target}', to_jsonb($2::float)),
    updated_at = $3
WHERE id = $1
  AND jsonb_array_length(metrics) > 0`

// Create inserts a new goal instance.
func (r *Repo) Create(ctx context.Context, inst *domain.GoalInstance) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	args, err := insertArgs(inst)
	if err != nil {
		return fmt.Errorf("create goal: %w", err)
	}

	if _, err := querier.Exec(ctx, insertGoalSQL, args...); err != nil {
		return postgres.MapError(err, "goal", inst.ID)
	}

	return nil
}

// InsertIfAbsent inserts a generated instance unless one already exists for
// the same (template, local day). Reports whether a row was written.
func (r *Repo) InsertIfAbsent(ctx context.Context, inst *domain.GoalInstance) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	args, err := insertArgs(inst)
	if err != nil {
		return false, fmt.Errorf("insert goal if absent: %w", err)
	}

	tag, err := querier.Exec(ctx, insertGoalIfAbsentSQL, args...)
	if err != nil {
		return false, postgres.MapError(err, "goal", inst.ID)
	}

	return tag.RowsAffected() > 0, nil
}

// GetByID returns an instance by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.GoalInstance, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	inst, err := scanGoal(querier.QueryRow(ctx, getGoalSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "goal", id)
	}

	return inst, nil
}

// List returns instances matching the filter, ordered by due date then
// creation time. Every filter field is optional.
func (r *Repo) List(ctx context.Context, filter domain.GoalFilter) ([]*domain.GoalInstance, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	q := postgres.Builder().
		Select("id", "template_id", "milestone_id", "text", "description", "completed", "completed_at",
			"verified", "due_at", "due_local", "priority", "urgent", "metrics", "problem_id", "labels",
			"original_date", "is_debt", "created_at", "updated_at").
		From("goal_instances").
		OrderBy("due_at ASC NULLS LAST", "created_at ASC")

	if filter.Completed != nil {
		q = q.Where(squirrel.Eq{"completed": *filter.Completed})
	}
	if filter.Urgent != nil {
		q = q.Where(squirrel.Eq{"urgent": *filter.Urgent})
	}
	if filter.IsDebt != nil {
		q = q.Where(squirrel.Eq{"is_debt": *filter.IsDebt})
	}
	if filter.HasRecurring != nil {
		if *filter.HasRecurring {
			q = q.Where("template_id IS NOT NULL")
		} else {
			q = q.Where("template_id IS NULL")
		}
	}
	if filter.Search != nil && *filter.Search != "" {
		pat := "%" + *filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"text": pat},
			squirrel.ILike{"description": pat},
		})
	}
	if filter.From != nil && filter.To != nil {
		q = q.Where(squirrel.GtOrEq{"due_at": *filter.From})
		q = q.Where(squirrel.LtOrEq{"due_at": *filter.To})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build goal list query: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	return scanGoals(rows)
}

// UpdateFields applies the set fields of params and returns the updated
// instance. Returns domain.ErrNotFound when nothing matches.
func (r *Repo) UpdateFields(ctx context.Context, id uuid.UUID, params domain.GoalUpdate) (*domain.GoalInstance, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	q := postgres.Builder().
		Update("goal_instances").
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + goalColumns)

	if params.Text != nil {
		q = q.Set("text", *params.Text)
	}
	if params.Description != nil {
		q = q.Set("description", *params.Description)
	} else if params.ClearDescription {
		q = q.Set("description", nil)
	}
	if params.Completed != nil {
		q = q.Set("completed", *params.Completed)
	}
	if params.CompletedAt != nil {
		q = q.Set("completed_at", *params.CompletedAt)
	} else if params.ClearCompletedAt {
		q = q.Set("completed_at", nil)
	}
	if params.Verified != nil {
		q = q.Set("verified", *params.Verified)
	}
	if params.DueAt != nil {
		q = q.Set("due_at", *params.DueAt)
	}
	if params.DueLocal != nil {
		q = q.Set("due_local", *params.DueLocal)
	}
	if params.ClearDue {
		q = q.Set("due_at", nil).Set("due_local", nil)
	}
	if params.Priority != nil {
		q = q.Set("priority", string(*params.Priority))
	}
	if params.Urgent != nil {
		q = q.Set("urgent", *params.Urgent)
	}
	if params.Metrics != nil {
		b, err := json.Marshal(params.Metrics)
		if err != nil {
			return nil, fmt.Errorf("marshal metrics: %w", err)
		}
		q = q.Set("metrics", b)
	}
	if params.ProblemID != nil {
		q = q.Set("problem_id", *params.ProblemID)
	}
	if params.Labels != nil {
		b, err := json.Marshal(params.Labels)
		if err != nil {
			return nil, fmt.Errorf("marshal labels: %w", err)
		}
		q = q.Set("labels", b)
	}
	if params.MilestoneID != nil {
		q = q.Set("milestone_id", *params.MilestoneID)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build goal update query: %w", err)
	}

	inst, err := scanGoal(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "goal", id)
	}

	return inst, nil
}

// Delete removes an instance.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteGoalSQL, id)
	if err != nil {
		return postgres.MapError(err, "goal", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("goal %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// MarkOverdueDebt flags every open instance due strictly before cutoff as
// debt, stamping original_date from due_local on first flagging. Returns
// the number of rows flagged.
func (r *Repo) MarkOverdueDebt(ctx context.Context, cutoff time.Time) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, markOverdueDebtSQL, cutoff, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("mark overdue debt: %w", err)
	}

	return tag.RowsAffected(), nil
}

// SetDebt flags the given instances as debt. Already-debt rows are untouched.
func (r *Repo) SetDebt(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, setDebtSQL, ids, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("set debt: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ResetDebt clears the debt flag on the given instances. This is the only
// way back: nothing else ever un-flags a debt goal.
func (r *Repo) ResetDebt(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, resetDebtSQL, ids, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("reset debt: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ListUncompletedInMonth returns open non-debt instances whose local due day
// falls inside the YYYY-MM month.
func (r *Repo) ListUncompletedInMonth(ctx context.Context, month string) ([]*domain.GoalInstance, error) {
	return r.listBy(ctx, listUncompletedInMonthSQL, month+"-%")
}

// ListDebtBefore returns uncompleted debt instances originally due strictly
// before the given local day.
func (r *Repo) ListDebtBefore(ctx context.Context, date string) ([]*domain.GoalInstance, error) {
	return r.listBy(ctx, listDebtBeforeSQL, date)
}

// ListDebtInRange returns uncompleted debt instances whose original due day
// falls in [from, to], oldest first.
func (r *Repo) ListDebtInRange(ctx context.Context, from, to string) ([]*domain.GoalInstance, error) {
	return r.listBy(ctx, listDebtInRangeSQL, from, to)
}

// FindOpenByProblem returns the oldest open instance on the given local day
// carrying exactly this problem id, or domain.ErrNotFound.
func (r *Repo) FindOpenByProblem(ctx context.Context, dueLocal, problemID string) (*domain.GoalInstance, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	inst, err := scanGoal(querier.QueryRow(ctx, findOpenByProblemSQL, dueLocal, problemID))
	if err != nil {
		return nil, postgres.MapError(err, "goal", uuid.Nil)
	}

	return inst, nil
}

// ListOpenOnDay returns every open instance due on the given local day.
// The verifier's keyword fallback ranks these in memory.
func (r *Repo) ListOpenOnDay(ctx context.Context, dueLocal string) ([]*domain.GoalInstance, error) {
	return r.listBy(ctx, listOpenOnDaySQL, dueLocal)
}

// SumMetricCurrents returns the milestone's accumulated progress: the sum of
// every metric's current across every linked instance.
func (r *Repo) SumMetricCurrents(ctx context.Context, milestoneID uuid.UUID) (float64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var sum float64
	if err := querier.QueryRow(ctx, sumMetricCurrentsSQL, milestoneID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum metric currents: %w", err)
	}

	return sum, nil
}

// ListLinkedFromDay returns uncompleted instances linked to the milestone
// due on fromLocal or later.
func (r *Repo) ListLinkedFromDay(ctx context.Context, milestoneID uuid.UUID, fromLocal string) ([]*domain.GoalInstance, error) {
	return r.listBy(ctx, listLinkedFromDaySQL, milestoneID, fromLocal)
}

// SetFirstMetricTarget rewrites metrics[0].target in place. Instances
// without metrics are left alone.
func (r *Repo) SetFirstMetricTarget(ctx context.Context, id uuid.UUID, target float64) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, setFirstMetricTargetSQL, id, target, time.Now().UTC())
	if err != nil {
		return postgres.MapError(err, "goal", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("goal %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *Repo) listBy(ctx context.Context, sql string, args ...any) ([]*domain.GoalInstance, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	return scanGoals(rows)
}

// ---------------------------------------------------------------------------
// Row helpers
// ---------------------------------------------------------------------------

func insertArgs(inst *domain.GoalInstance) ([]any, error) {
	metrics := inst.Metrics
	if metrics == nil {
		metrics = []domain.Metric{}
	}
	labels := inst.Labels
	if labels == nil {
		labels = []string{}
	}
	m, err := json.Marshal(metrics)
	if err != nil {
		return nil, fmt.Errorf("marshal metrics: %w", err)
	}
	l, err := json.Marshal(labels)
	if err != nil {
		return nil, fmt.Errorf("marshal labels: %w", err)
	}

	return []any{
		inst.ID, inst.TemplateID, inst.MilestoneID, inst.Text, inst.Description,
		inst.Completed, inst.CompletedAt, inst.Verified, inst.DueAt, inst.DueLocal,
		string(inst.Priority), inst.Urgent, m, inst.ProblemID, l,
		inst.OriginalDate, inst.IsDebt, inst.CreatedAt, inst.UpdatedAt,
	}, nil
}

func scanGoal(row pgx.Row) (*domain.GoalInstance, error) {
	var (
		inst            domain.GoalInstance
		priority        string
		metrics, labels []byte
	)

	err := row.Scan(
		&inst.ID, &inst.TemplateID, &inst.MilestoneID, &inst.Text, &inst.Description,
		&inst.Completed, &inst.CompletedAt, &inst.Verified, &inst.DueAt, &inst.DueLocal,
		&priority, &inst.Urgent, &metrics, &inst.ProblemID, &labels,
		&inst.OriginalDate, &inst.IsDebt, &inst.CreatedAt, &inst.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	inst.Priority = domain.Priority(priority)
	if err := json.Unmarshal(metrics, &inst.Metrics); err != nil {
		return nil, fmt.Errorf("unmarshal metrics: %w", err)
	}
	if err := json.Unmarshal(labels, &inst.Labels); err != nil {
		return nil, fmt.Errorf("unmarshal labels: %w", err)
	}

	return &inst, nil
}

func scanGoals(rows pgx.Rows) ([]*domain.GoalInstance, error) {
	goals := []*domain.GoalInstance{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}

	return goals, nil
}
