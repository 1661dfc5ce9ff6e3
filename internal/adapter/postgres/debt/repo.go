// Package debt implements the DebtRecord repository using PostgreSQL.
package debt

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

// Repo provides debt record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new debt repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const debtColumns = `id, goal_id, original_month, original_date, reason, goal_text, goal_data, archived_at, resolved_at`

const insertDebtSQL = `
INSERT INTO debt_records (` + debtColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

const listUnresolvedSQL = `
SELECT ` + debtColumns + `
FROM debt_records
WHERE resolved_at IS NULL
ORDER BY archived_at ASC, id ASC`

const listByMonthSQL = `
SELECT ` + debtColumns + `
FROM debt_records
WHERE original_month = $1
ORDER BY archived_at ASC, id ASC`

const resolveByGoalsSQL = `
UPDATE debt_records
SET resolved_at = $2
WHERE goal_id = ANY($1::uuid[])
  AND resolved_at IS NULL`

// Create writes an archival snapshot.
func (r *Repo) Create(ctx context.Context, rec *domain.DebtRecord) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, insertDebtSQL,
		rec.ID, rec.GoalID, rec.OriginalMonth, rec.OriginalDate, rec.Reason,
		rec.GoalText, rec.GoalData, rec.ArchivedAt, rec.ResolvedAt,
	)
	if err != nil {
		return postgres.MapError(err, "debt record", rec.ID)
	}

	return nil
}

// ListUnresolved returns every unresolved record, oldest archival first.
func (r *Repo) ListUnresolved(ctx context.Context) ([]*domain.DebtRecord, error) {
	return r.listBy(ctx, listUnresolvedSQL)
}

// ListByMonth returns the records archived for one YYYY-MM month.
func (r *Repo) ListByMonth(ctx context.Context, month string) ([]*domain.DebtRecord, error) {
	return r.listBy(ctx, listByMonthSQL, month)
}

// ResolveByGoals stamps resolved_at on the unresolved records of the given
// goals. Called when debt goals are reset back to active.
func (r *Repo) ResolveByGoals(ctx context.Context, goalIDs []uuid.UUID, at time.Time) (int64, error) {
	if len(goalIDs) == 0 {
		return 0, nil
	}
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, resolveByGoalsSQL, goalIDs, at)
	if err != nil {
		return 0, fmt.Errorf("resolve debt records: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *Repo) listBy(ctx context.Context, sql string, args ...any) ([]*domain.DebtRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list debt records: %w", err)
	}
	defer rows.Close()

	records := []*domain.DebtRecord{}
	for rows.Next() {
		rec, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan debt record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate debt records: %w", err)
	}

	return records, nil
}

func scanDebt(row pgx.Row) (*domain.DebtRecord, error) {
	var rec domain.DebtRecord
	err := row.Scan(
		&rec.ID, &rec.GoalID, &rec.OriginalMonth, &rec.OriginalDate, &rec.Reason,
		&rec.GoalText, &rec.GoalData, &rec.ArchivedAt, &rec.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
