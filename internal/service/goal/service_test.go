package goal

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strideapp/stride-backend/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func mustDay(t *testing.T, day string) time.Time {
	t.Helper()
	parsed, err := time.Parse(domain.LocalDateLayout, day)
	require.NoError(t, err)
	return parsed
}

func newTemplate(pattern domain.RecurrencePattern) *domain.GoalTemplate {
	return &domain.GoalTemplate{
		ID:       uuid.New(),
		Text:     "solve problems",
		Pattern:  pattern,
		Priority: domain.PriorityMedium,
		Metrics:  []domain.Metric{{Label: "problems", Target: 3, Unit: "count"}},
		Active:   true,
	}
}

// ---------------------------------------------------------------------------
// EnsureWindow
// ---------------------------------------------------------------------------

func TestService_EnsureWindow_MonWedFriAcrossWeek(t *testing.T) {
	t.Parallel()

	tmpl := newTemplate("Mon,Wed,Fri")

	var seenDays []string
	goals := &goalRepoMock{
		InsertIfAbsentFunc: func(ctx context.Context, inst *domain.GoalInstance) (bool, error) {
			require.NotNil(t, inst.DueLocal)
			seenDays = append(seenDays, *inst.DueLocal)
			return true, nil
		},
	}
	templates := &templateRepoMock{
		ListActiveFunc: func(ctx context.Context) ([]*domain.GoalTemplate, error) {
			return []*domain.GoalTemplate{tmpl}, nil
		},
	}

	svc := NewService(testLogger(), templates, goals, nil, nil, 366)

	// 2026-03-02 is a Monday.
	from := mustDay(t, "2026-03-02")
	to := mustDay(t, "2026-03-08")

	created, err := svc.EnsureWindow(context.Background(), from, to, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, created)
	assert.Equal(t, []string{"2026-03-02", "2026-03-04", "2026-03-06"}, seenDays)
}

func TestService_EnsureWindow_DailyEveryDay(t *testing.T) {
	t.Parallel()

	tmpl := newTemplate(domain.PatternDaily)

	inserts := 0
	goals := &goalRepoMock{
		InsertIfAbsentFunc: func(ctx context.Context, inst *domain.GoalInstance) (bool, error) {
			inserts++
			return true, nil
		},
	}
	templates := &templateRepoMock{
		ListActiveFunc: func(ctx context.Context) ([]*domain.GoalTemplate, error) {
			return []*domain.GoalTemplate{tmpl}, nil
		},
	}

	svc := NewService(testLogger(), templates, goals, nil, nil, 366)

	created, err := svc.EnsureWindow(context.Background(),
		mustDay(t, "2026-03-02"), mustDay(t, "2026-03-08"), 0)
	require.NoError(t, err)
	assert.Equal(t, 7, created)
	assert.Equal(t, 7, inserts)
}

func TestService_EnsureWindow_ExistingInstancesNotCounted(t *testing.T) {
	t.Parallel()

	tmpl := newTemplate(domain.PatternDaily)

	goals := &goalRepoMock{
		InsertIfAbsentFunc: func(ctx context.Context, inst *domain.GoalInstance) (bool, error) {
			return false, nil // everything already materialized
		},
	}
	templates := &templateRepoMock{
		ListActiveFunc: func(ctx context.Context) ([]*domain.GoalTemplate, error) {
			return []*domain.GoalTemplate{tmpl}, nil
		},
	}

	svc := NewService(testLogger(), templates, goals, nil, nil, 366)

	created, err := svc.EnsureWindow(context.Background(),
		mustDay(t, "2026-03-02"), mustDay(t, "2026-03-04"), 0)
	require.NoError(t, err)
	assert.Zero(t, created)
}

func TestService_EnsureWindow_InsertFailureSkipsDay(t *testing.T) {
	t.Parallel()

	tmpl := newTemplate(domain.PatternDaily)

	call := 0
	goals := &goalRepoMock{
		InsertIfAbsentFunc: func(ctx context.Context, inst *domain.GoalInstance) (bool, error) {
			call++
			if call == 2 {
				return false, errors.New("connection reset")
			}
			return true, nil
		},
	}
	templates := &templateRepoMock{
		ListActiveFunc: func(ctx context.Context) ([]*domain.GoalTemplate, error) {
			return []*domain.GoalTemplate{tmpl}, nil
		},
	}

	svc := NewService(testLogger(), templates, goals, nil, nil, 366)

	created, err := svc.EnsureWindow(context.Background(),
		mustDay(t, "2026-03-02"), mustDay(t, "2026-03-04"), 0)
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Equal(t, 3, call)
}

func TestService_EnsureWindow_ClampsTooWideWindow(t *testing.T) {
	t.Parallel()

	tmpl := newTemplate(domain.PatternDaily)

	created := 0
	goals := &goalRepoMock{
		InsertIfAbsentFunc: func(ctx context.Context, inst *domain.GoalInstance) (bool, error) {
			created++
			return true, nil
		},
	}
	templates := &templateRepoMock{
		ListActiveFunc: func(ctx context.Context) ([]*domain.GoalTemplate, error) {
			return []*domain.GoalTemplate{tmpl}, nil
		},
	}

	svc := NewService(testLogger(), templates, goals, nil, nil, 30)

	// 60 requested days: the scan serves the first 30 instead of failing.
	got, err := svc.EnsureWindow(context.Background(),
		mustDay(t, "2026-01-01"), mustDay(t, "2026-03-01"), 0)
	require.NoError(t, err)
	assert.Equal(t, 30, got)
	assert.Equal(t, 30, created)
}

func TestService_EnsureWindow_RejectsInvertedRange(t *testing.T) {
	t.Parallel()

	svc := NewService(testLogger(), &templateRepoMock{}, &goalRepoMock{}, nil, nil, 366)

	_, err := svc.EnsureWindow(context.Background(),
		mustDay(t, "2026-03-08"), mustDay(t, "2026-03-02"), 0)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_EnsureWindow_MetricsDeepCopied(t *testing.T) {
	t.Parallel()

	tmpl := newTemplate(domain.PatternDaily)

	var captured []*domain.GoalInstance
	goals := &goalRepoMock{
		InsertIfAbsentFunc: func(ctx context.Context, inst *domain.GoalInstance) (bool, error) {
			captured = append(captured, inst)
			return true, nil
		},
	}
	templates := &templateRepoMock{
		ListActiveFunc: func(ctx context.Context) ([]*domain.GoalTemplate, error) {
			return []*domain.GoalTemplate{tmpl}, nil
		},
	}

	svc := NewService(testLogger(), templates, goals, nil, nil, 366)

	_, err := svc.EnsureWindow(context.Background(),
		mustDay(t, "2026-03-02"), mustDay(t, "2026-03-03"), 0)
	require.NoError(t, err)
	require.Len(t, captured, 2)

	captured[0].Metrics[0].Current = 99
	assert.Zero(t, captured[1].Metrics[0].Current)
	assert.Zero(t, tmpl.Metrics[0].Current)
}

func TestService_EnsureWindow_TimezoneShiftsWeekday(t *testing.T) {
	t.Parallel()

	// Template fires on Saturdays only.
	tmpl := newTemplate("Sat")

	var seenDays []string
	goals := &goalRepoMock{
		InsertIfAbsentFunc: func(ctx context.Context, inst *domain.GoalInstance) (bool, error) {
			seenDays = append(seenDays, *inst.DueLocal)
			return true, nil
		},
	}
	templates := &templateRepoMock{
		ListActiveFunc: func(ctx context.Context) ([]*domain.GoalTemplate, error) {
			return []*domain.GoalTemplate{tmpl}, nil
		},
	}

	svc := NewService(testLogger(), templates, goals, nil, nil, 366)

	// 2026-03-06 23:30 UTC is Friday in UTC but already Saturday 2026-03-07
	// at +330 minutes (IST).
	at := time.Date(2026, 3, 6, 23, 30, 0, 0, time.UTC)

	created, err := svc.EnsureWindow(context.Background(), at, at, 330)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	require.Len(t, seenDays, 1)
	assert.Equal(t, "2026-03-07", seenDays[0])
}

// ---------------------------------------------------------------------------
// SweepOverdue
// ---------------------------------------------------------------------------

func TestService_SweepOverdue_UsesLocalDayStart(t *testing.T) {
	t.Parallel()

	var gotCutoff time.Time
	goals := &goalRepoMock{
		MarkOverdueDebtFunc: func(ctx context.Context, cutoff time.Time) (int64, error) {
			gotCutoff = cutoff
			return 2, nil
		},
	}

	svc := NewService(testLogger(), &templateRepoMock{}, goals, nil, nil, 366)

	// 01:00 UTC on March 5th is still March 4th at -120 minutes.
	now := time.Date(2026, 3, 5, 1, 0, 0, 0, time.UTC)
	flagged, err := svc.SweepOverdue(context.Background(), now, -120)
	require.NoError(t, err)
	assert.EqualValues(t, 2, flagged)

	want := time.Date(2026, 3, 4, 2, 0, 0, 0, time.UTC) // local midnight of Mar 4 at -120
	assert.True(t, gotCutoff.Equal(want), "cutoff %v, want %v", gotCutoff, want)
}

// ---------------------------------------------------------------------------
// GetGoalsForRange
// ---------------------------------------------------------------------------

func TestService_GetGoalsForRange_ReconcilesBeforeRead(t *testing.T) {
	t.Parallel()

	var order []string
	templates := &templateRepoMock{
		ListActiveFunc: func(ctx context.Context) ([]*domain.GoalTemplate, error) {
			order = append(order, "expand")
			return nil, nil
		},
	}
	goals := &goalRepoMock{
		MarkOverdueDebtFunc: func(ctx context.Context, cutoff time.Time) (int64, error) {
			order = append(order, "sweep")
			return 0, nil
		},
		ListFunc: func(ctx context.Context, filter domain.GoalFilter) ([]*domain.GoalInstance, error) {
			order = append(order, "list")
			return []*domain.GoalInstance{}, nil
		},
	}

	svc := NewService(testLogger(), templates, goals, nil, nil, 366)

	from := mustDay(t, "2026-03-02")
	to := mustDay(t, "2026-03-08")
	_, err := svc.GetGoalsForRange(context.Background(), domain.GoalFilter{From: &from, To: &to})
	require.NoError(t, err)
	assert.Equal(t, []string{"expand", "sweep", "list"}, order)
}

func TestService_GetGoalsForRange_SweepFailureDegrades(t *testing.T) {
	t.Parallel()

	templates := &templateRepoMock{
		ListActiveFunc: func(ctx context.Context) ([]*domain.GoalTemplate, error) {
			return nil, nil
		},
	}
	want := []*domain.GoalInstance{{ID: uuid.New()}}
	goals := &goalRepoMock{
		MarkOverdueDebtFunc: func(ctx context.Context, cutoff time.Time) (int64, error) {
			return 0, errors.New("deadlock detected")
		},
		ListFunc: func(ctx context.Context, filter domain.GoalFilter) ([]*domain.GoalInstance, error) {
			return want, nil
		},
	}

	svc := NewService(testLogger(), templates, goals, nil, nil, 366)

	got, err := svc.GetGoalsForRange(context.Background(), domain.GoalFilter{})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

// ---------------------------------------------------------------------------
// ToggleCompletion
// ---------------------------------------------------------------------------

func TestService_ToggleCompletion_SetsCompletedAt(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	goals := &goalRepoMock{
		GetByIDFunc: func(ctx context.Context, gid uuid.UUID) (*domain.GoalInstance, error) {
			return &domain.GoalInstance{ID: gid, Completed: false}, nil
		},
		UpdateFieldsFunc: func(ctx context.Context, gid uuid.UUID, params domain.GoalUpdate) (*domain.GoalInstance, error) {
			require.NotNil(t, params.Completed)
			assert.True(t, *params.Completed)
			require.NotNil(t, params.CompletedAt)
			return &domain.GoalInstance{ID: gid, Completed: true, CompletedAt: params.CompletedAt}, nil
		},
	}

	svc := NewService(testLogger(), &templateRepoMock{}, goals, nil, nil, 366)

	inst, err := svc.ToggleCompletion(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, inst.Completed)
}

func TestService_ToggleCompletion_ClearsCompletedAt(t *testing.T) {
	t.Parallel()

	doneAt := time.Now().UTC()
	goals := &goalRepoMock{
		GetByIDFunc: func(ctx context.Context, gid uuid.UUID) (*domain.GoalInstance, error) {
			return &domain.GoalInstance{ID: gid, Completed: true, CompletedAt: &doneAt}, nil
		},
		UpdateFieldsFunc: func(ctx context.Context, gid uuid.UUID, params domain.GoalUpdate) (*domain.GoalInstance, error) {
			require.NotNil(t, params.Completed)
			assert.False(t, *params.Completed)
			assert.Nil(t, params.CompletedAt)
			assert.True(t, params.ClearCompletedAt)
			return &domain.GoalInstance{ID: gid}, nil
		},
	}

	svc := NewService(testLogger(), &templateRepoMock{}, goals, nil, nil, 366)

	inst, err := svc.ToggleCompletion(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, inst.Completed)
}

// ---------------------------------------------------------------------------
// LinkActivity
// ---------------------------------------------------------------------------

func TestService_LinkActivity_MetriclessGoalCompletes(t *testing.T) {
	t.Parallel()

	goalID := uuid.New()
	activityID := uuid.New()

	linkedActivity := false
	activities := &activityRepoMock{
		SetGoalFunc: func(ctx context.Context, aid, gid uuid.UUID) error {
			assert.Equal(t, activityID, aid)
			assert.Equal(t, goalID, gid)
			linkedActivity = true
			return nil
		},
	}
	goals := &goalRepoMock{
		GetByIDFunc: func(ctx context.Context, gid uuid.UUID) (*domain.GoalInstance, error) {
			return &domain.GoalInstance{ID: gid}, nil // no metrics
		},
		UpdateFieldsFunc: func(ctx context.Context, gid uuid.UUID, params domain.GoalUpdate) (*domain.GoalInstance, error) {
			require.NotNil(t, params.Verified)
			require.NotNil(t, params.Completed)
			assert.True(t, *params.Verified)
			assert.True(t, *params.Completed)
			return &domain.GoalInstance{ID: gid, Verified: true, Completed: true}, nil
		},
	}

	svc := NewService(testLogger(), &templateRepoMock{}, goals, activities, &txManagerMock{}, 366)

	inst, err := svc.LinkActivity(context.Background(), activityID, goalID)
	require.NoError(t, err)
	assert.True(t, linkedActivity)
	assert.True(t, inst.Completed)
}

func TestService_LinkActivity_MetricGoalStaysOpen(t *testing.T) {
	t.Parallel()

	goals := &goalRepoMock{
		GetByIDFunc: func(ctx context.Context, gid uuid.UUID) (*domain.GoalInstance, error) {
			return &domain.GoalInstance{
				ID:      gid,
				Metrics: []domain.Metric{{Label: "problems", Target: 3}},
			}, nil
		},
		UpdateFieldsFunc: func(ctx context.Context, gid uuid.UUID, params domain.GoalUpdate) (*domain.GoalInstance, error) {
			require.NotNil(t, params.Verified)
			assert.True(t, *params.Verified)
			assert.Nil(t, params.Completed)
			return &domain.GoalInstance{ID: gid, Verified: true}, nil
		},
	}
	activities := &activityRepoMock{
		SetGoalFunc: func(ctx context.Context, aid, gid uuid.UUID) error { return nil },
	}

	svc := NewService(testLogger(), &templateRepoMock{}, goals, activities, &txManagerMock{}, 366)

	inst, err := svc.LinkActivity(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.True(t, inst.Verified)
	assert.False(t, inst.Completed)
}

func TestService_GoalActivities_ReturnsLinkedActivities(t *testing.T) {
	t.Parallel()

	goalID := uuid.New()
	want := []*domain.Activity{
		{Title: "Two Sum", Shadow: true, GoalID: &goalID},
		{Title: "review session", GoalID: &goalID},
	}
	goals := &goalRepoMock{
		GetByIDFunc: func(ctx context.Context, gid uuid.UUID) (*domain.GoalInstance, error) {
			return &domain.GoalInstance{ID: gid}, nil
		},
	}
	activities := &activityRepoMock{
		ListByGoalFunc: func(ctx context.Context, gid uuid.UUID) ([]*domain.Activity, error) {
			assert.Equal(t, goalID, gid)
			return want, nil
		},
	}

	svc := NewService(testLogger(), &templateRepoMock{}, goals, activities, &txManagerMock{}, 366)

	got, err := svc.GoalActivities(context.Background(), goalID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestService_GoalActivities_UnknownGoal(t *testing.T) {
	t.Parallel()

	goals := &goalRepoMock{
		GetByIDFunc: func(ctx context.Context, gid uuid.UUID) (*domain.GoalInstance, error) {
			return nil, domain.ErrNotFound
		},
	}

	svc := NewService(testLogger(), &templateRepoMock{}, goals, &activityRepoMock{}, &txManagerMock{}, 366)

	_, err := svc.GoalActivities(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)
}
