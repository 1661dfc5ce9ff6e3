// Package template implements the GoalTemplate repository using PostgreSQL.
package template

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/strideapp/stride-backend/internal/adapter/postgres"
	"github.com/strideapp/stride-backend/internal/domain"
)

// Repo provides goal template persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new template repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const templateColumns = `id, text, description, pattern, priority, urgent, metrics, problem_id, labels, active, created_at, updated_at`

const getTemplateSQL = `
SELECT ` + templateColumns + `
FROM goal_templates
WHERE id = $1`

const listActiveTemplatesSQL = `
SELECT ` + templateColumns + `
FROM goal_templates
WHERE active
ORDER BY created_at ASC`

const listTemplatesSQL = `
SELECT ` + templateColumns + `
FROM goal_templates
ORDER BY created_at ASC`

const insertTemplateSQL = `
INSERT INTO goal_templates (id, text, description, pattern, priority, urgent, metrics, problem_id, labels, active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

const deleteTemplateSQL = `DELETE FROM goal_templates WHERE id = $1`

const setTemplateActiveSQL = `
UPDATE goal_templates SET active = $2, updated_at = $3 WHERE id = $1`

// Create inserts a new template.
func (r *Repo) Create(ctx context.Context, tmpl *domain.GoalTemplate) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	metrics, labels, err := marshalJSONFields(tmpl.Metrics, tmpl.Labels)
	if err != nil {
		return fmt.Errorf("create template: %w", err)
	}

	_, err = querier.Exec(ctx, insertTemplateSQL,
		tmpl.ID, tmpl.Text, tmpl.Description, string(tmpl.Pattern), string(tmpl.Priority),
		tmpl.Urgent, metrics, tmpl.ProblemID, labels, tmpl.Active, tmpl.CreatedAt, tmpl.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "template", tmpl.ID)
	}

	return nil
}

// GetByID returns a template by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.GoalTemplate, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getTemplateSQL, id)
	tmpl, err := scanTemplate(row)
	if err != nil {
		return nil, postgres.MapError(err, "template", id)
	}

	return tmpl, nil
}

// ListActive returns every active template, oldest first. The expander
// matches each template's pattern against the days of its window.
func (r *Repo) ListActive(ctx context.Context) ([]*domain.GoalTemplate, error) {
	return r.list(ctx, listActiveTemplatesSQL)
}

// List returns every template regardless of active flag.
func (r *Repo) List(ctx context.Context) ([]*domain.GoalTemplate, error) {
	return r.list(ctx, listTemplatesSQL)
}

func (r *Repo) list(ctx context.Context, sql string) ([]*domain.GoalTemplate, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	templates := []*domain.GoalTemplate{}
	for rows.Next() {
		tmpl, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, tmpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate templates: %w", err)
	}

	return templates, nil
}

// SetActive toggles a template's active flag. Returns domain.ErrNotFound
// if the template does not exist.
func (r *Repo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, setTemplateActiveSQL, id, active, time.Now().UTC())
	if err != nil {
		return postgres.MapError(err, "template", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("template %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a template. Already-generated instances keep living:
// the FK nulls their template_id.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteTemplateSQL, id)
	if err != nil {
		return postgres.MapError(err, "template", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("template %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func marshalJSONFields(metrics []domain.Metric, labels []string) ([]byte, []byte, error) {
	if metrics == nil {
		metrics = []domain.Metric{}
	}
	if labels == nil {
		labels = []string{}
	}
	m, err := json.Marshal(metrics)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal metrics: %w", err)
	}
	l, err := json.Marshal(labels)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal labels: %w", err)
	}
	return m, l, nil
}

func scanTemplate(row pgx.Row) (*domain.GoalTemplate, error) {
	var (
		tmpl            domain.GoalTemplate
		pattern         string
		priority        string
		metrics, labels []byte
	)

	err := row.Scan(
		&tmpl.ID, &tmpl.Text, &tmpl.Description, &pattern, &priority, &tmpl.Urgent,
		&metrics, &tmpl.ProblemID, &labels, &tmpl.Active, &tmpl.CreatedAt, &tmpl.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	tmpl.Pattern = domain.RecurrencePattern(pattern)
	tmpl.Priority = domain.Priority(priority)
	if err := json.Unmarshal(metrics, &tmpl.Metrics); err != nil {
		return nil, fmt.Errorf("unmarshal metrics: %w", err)
	}
	if err := json.Unmarshal(labels, &tmpl.Labels); err != nil {
		return nil, fmt.Errorf("unmarshal labels: %w", err)
	}

	return &tmpl, nil
}
