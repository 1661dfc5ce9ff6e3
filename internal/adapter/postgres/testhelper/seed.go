package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/strideapp/stride-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

func marshalMetrics(t *testing.T, metrics []domain.Metric) []byte {
	t.Helper()
	if metrics == nil {
		metrics = []domain.Metric{}
	}
	b, err := json.Marshal(metrics)
	if err != nil {
		t.Fatalf("testhelper: marshal metrics: %v", err)
	}
	return b
}

func marshalLabels(t *testing.T, labels []string) []byte {
	t.Helper()
	if labels == nil {
		labels = []string{}
	}
	b, err := json.Marshal(labels)
	if err != nil {
		t.Fatalf("testhelper: marshal labels: %v", err)
	}
	return b
}

// SeedTemplate creates an active recurring template with the given pattern
// and one metric. Returns the filled domain.GoalTemplate.
func SeedTemplate(t *testing.T, pool *pgxpool.Pool, pattern domain.RecurrencePattern) domain.GoalTemplate {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	tmpl := domain.GoalTemplate{
		ID:       uuid.New(),
		Text:     "template-" + suffix,
		Pattern:  pattern,
		Priority: domain.PriorityMedium,
		Metrics: []domain.Metric{
			{Label: "problems", Target: 3, Current: 0, Unit: "count"},
		},
		Labels:    []string{"leetcode"},
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO goal_templates (id, text, pattern, priority, urgent, metrics, labels, active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		tmpl.ID, tmpl.Text, string(tmpl.Pattern), string(tmpl.Priority), tmpl.Urgent,
		marshalMetrics(t, tmpl.Metrics), marshalLabels(t, tmpl.Labels), tmpl.Active, tmpl.CreatedAt, tmpl.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTemplate insert: %v", err)
	}

	return tmpl
}

// SeedInstance creates a standalone goal instance due on the given local day.
// dueAt is derived as UTC midnight of dueLocal. Returns the filled instance.
func SeedInstance(t *testing.T, pool *pgxpool.Pool, dueLocal string) domain.GoalInstance {
	t.Helper()

	dueAt, err := time.Parse(domain.LocalDateLayout, dueLocal)
	if err != nil {
		t.Fatalf("testhelper: SeedInstance parse dueLocal %q: %v", dueLocal, err)
	}

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	local := dueLocal
	inst := domain.GoalInstance{
		ID:        uuid.New(),
		Text:      "goal-" + suffix,
		DueAt:     &dueAt,
		DueLocal:  &local,
		Priority:  domain.PriorityMedium,
		Metrics:   []domain.Metric{},
		Labels:    []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	insertInstance(t, pool, &inst)
	return inst
}

// SeedInstanceFor creates a goal instance materialized from a template on the
// given local day, the same way the expander would.
func SeedInstanceFor(t *testing.T, pool *pgxpool.Pool, tmpl domain.GoalTemplate, dueLocal string) domain.GoalInstance {
	t.Helper()

	dueAt, err := time.Parse(domain.LocalDateLayout, dueLocal)
	if err != nil {
		t.Fatalf("testhelper: SeedInstanceFor parse dueLocal %q: %v", dueLocal, err)
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	inst := domain.InstanceFromTemplate(&tmpl, dueAt, dueLocal, now)
	insertInstance(t, pool, inst)
	return *inst
}

func insertInstance(t *testing.T, pool *pgxpool.Pool, inst *domain.GoalInstance) {
	t.Helper()
	ctx := context.Background()

	_, err := pool.Exec(ctx,
		`INSERT INTO goal_instances (id, template_id, milestone_id, text, description, completed, completed_at,
		     verified, due_at, due_local, priority, urgent, metrics, problem_id, labels, original_date, is_debt,
		     created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		inst.ID, inst.TemplateID, inst.MilestoneID, inst.Text, inst.Description, inst.Completed, inst.CompletedAt,
		inst.Verified, inst.DueAt, inst.DueLocal, string(inst.Priority), inst.Urgent,
		marshalMetrics(t, inst.Metrics), inst.ProblemID, marshalLabels(t, inst.Labels),
		inst.OriginalDate, inst.IsDebt, inst.CreatedAt, inst.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: insert goal_instance: %v", err)
	}
}

// SeedMilestone creates a monthly milestone spanning the given period with
// an even strategy. TargetValue is derived from dailyAmount over the span.
func SeedMilestone(t *testing.T, pool *pgxpool.Pool, dailyAmount int, start, end time.Time) domain.Milestone {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	m := domain.Milestone{
		ID:           uuid.New(),
		TargetMetric: "problems-" + suffix,
		DailyAmount:  dailyAmount,
		TargetValue:  domain.DeriveTargetValue(dailyAmount, start, end, 0),
		PeriodType:   domain.PeriodMonthly,
		PeriodStart:  start,
		PeriodEnd:    end,
		Strategy:     domain.StrategyEven,
		Unit:         "count",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO milestones (id, target_metric, daily_amount, target_value, period_type, period_start,
		     period_end, strategy, current_value, recurring_pattern, problem_id, unit, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		m.ID, m.TargetMetric, m.DailyAmount, m.TargetValue, string(m.PeriodType), m.PeriodStart,
		m.PeriodEnd, string(m.Strategy), m.CurrentValue, string(m.RecurringPattern), m.ProblemID, m.Unit,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedMilestone insert: %v", err)
	}

	return m
}

// SeedShadowActivity creates a shadow activity ending at the given instant.
func SeedShadowActivity(t *testing.T, pool *pgxpool.Pool, endedAt time.Time) domain.Activity {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	endedAt = endedAt.UTC().Truncate(time.Microsecond)
	act := domain.Activity{
		ID:         uuid.New(),
		LocalDate:  domain.LocalDate(endedAt, 0),
		StartedAt:  endedAt.Add(-30 * time.Minute),
		EndedAt:    endedAt,
		Category:   "coding_leetcode",
		Title:      "Solved: two-sum",
		Productive: true,
		Shadow:     true,
		CreatedAt:  now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO activities (id, local_date, started_at, ended_at, category, title, productive, shadow, goal_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		act.ID, act.LocalDate, act.StartedAt, act.EndedAt, act.Category, act.Title,
		act.Productive, act.Shadow, act.GoalID, act.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedShadowActivity insert: %v", err)
	}

	return act
}

// SeedDebtRecord archives the given instance into debt_records for the month.
func SeedDebtRecord(t *testing.T, pool *pgxpool.Pool, inst domain.GoalInstance, month string) domain.DebtRecord {
	t.Helper()
	ctx := context.Background()

	data, err := domain.SnapshotGoal(&inst)
	if err != nil {
		t.Fatalf("testhelper: SeedDebtRecord snapshot: %v", err)
	}

	rec := domain.DebtRecord{
		ID:            uuid.New(),
		GoalID:        inst.ID,
		OriginalMonth: month,
		OriginalDate:  inst.DueLocal,
		GoalText:      inst.Text,
		GoalData:      data,
		ArchivedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO debt_records (id, goal_id, original_month, original_date, reason, goal_text, goal_data, archived_at, resolved_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, rec.GoalID, rec.OriginalMonth, rec.OriginalDate, rec.Reason, rec.GoalText,
		rec.GoalData, rec.ArchivedAt, rec.ResolvedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDebtRecord insert: %v", err)
	}

	return rec
}

// SeedSubmission creates a raw scraper submission row.
func SeedSubmission(t *testing.T, pool *pgxpool.Pool, platform domain.Platform, submittedAt time.Time) domain.Submission {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	sub := domain.Submission{
		ID:           uuid.New(),
		Platform:     platform,
		ProblemID:    "prob-" + suffix,
		ProblemTitle: "Problem " + suffix,
		SubmittedAt:  submittedAt.UTC().Truncate(time.Microsecond),
		Verdict:      "OK",
		Language:     "Go",
		Tags:         []string{"greedy"},
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	tags, err := json.Marshal(sub.Tags)
	if err != nil {
		t.Fatalf("testhelper: SeedSubmission marshal tags: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO submissions (id, platform, problem_id, problem_title, submitted_at, verdict, language, rating, tags, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		sub.ID, string(sub.Platform), sub.ProblemID, sub.ProblemTitle, sub.SubmittedAt,
		sub.Verdict, sub.Language, sub.Rating, tags, sub.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSubmission insert: %v", err)
	}

	return sub
}
