package rest

import (
	"time"

	"github.com/strideapp/stride-backend/internal/domain"
)

type metricDTO struct {
	Label   string  `json:"label"`
	Target  float64 `json:"target"`
	Current float64 `json:"current"`
	Unit    string  `json:"unit,omitempty"`
}

func toMetricDTOs(metrics []domain.Metric) []metricDTO {
	out := make([]metricDTO, 0, len(metrics))
	for _, m := range metrics {
		out = append(out, metricDTO{Label: m.Label, Target: m.Target, Current: m.Current, Unit: m.Unit})
	}
	return out
}

func fromMetricDTOs(metrics []metricDTO) []domain.Metric {
	out := make([]domain.Metric, 0, len(metrics))
	for _, m := range metrics {
		out = append(out, domain.Metric{Label: m.Label, Target: m.Target, Current: m.Current, Unit: m.Unit})
	}
	return out
}

type goalResponse struct {
	ID           string      `json:"id"`
	TemplateID   *string     `json:"templateId,omitempty"`
	MilestoneID  *string     `json:"milestoneId,omitempty"`
	Text         string      `json:"text"`
	Description  *string     `json:"description,omitempty"`
	Completed    bool        `json:"completed"`
	CompletedAt  *time.Time  `json:"completedAt,omitempty"`
	Verified     bool        `json:"verified"`
	DueAt        *time.Time  `json:"dueAt,omitempty"`
	DueLocal     *string     `json:"dueLocal,omitempty"`
	Priority     string      `json:"priority"`
	Urgent       bool        `json:"urgent"`
	Metrics      []metricDTO `json:"metrics"`
	ProblemID    *string     `json:"problemId,omitempty"`
	Labels       []string    `json:"labels"`
	OriginalDate *string     `json:"originalDate,omitempty"`
	IsDebt       bool        `json:"isDebt"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func toGoalResponse(g *domain.GoalInstance) goalResponse {
	resp := goalResponse{
		ID:           g.ID.String(),
		Text:         g.Text,
		Description:  g.Description,
		Completed:    g.Completed,
		CompletedAt:  g.CompletedAt,
		Verified:     g.Verified,
		DueAt:        g.DueAt,
		DueLocal:     g.DueLocal,
		Priority:     g.Priority.String(),
		Urgent:       g.Urgent,
		Metrics:      toMetricDTOs(g.Metrics),
		ProblemID:    g.ProblemID,
		Labels:       g.Labels,
		OriginalDate: g.OriginalDate,
		IsDebt:       g.IsDebt,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
	if g.TemplateID != nil {
		id := g.TemplateID.String()
		resp.TemplateID = &id
	}
	if g.MilestoneID != nil {
		id := g.MilestoneID.String()
		resp.MilestoneID = &id
	}
	if resp.Labels == nil {
		resp.Labels = []string{}
	}
	return resp
}

func toGoalResponses(goals []*domain.GoalInstance) []goalResponse {
	out := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, toGoalResponse(g))
	}
	return out
}

type templateResponse struct {
	ID          string      `json:"id"`
	Text        string      `json:"text"`
	Description *string     `json:"description,omitempty"`
	Pattern     string      `json:"pattern"`
	Priority    string      `json:"priority"`
	Urgent      bool        `json:"urgent"`
	Metrics     []metricDTO `json:"metrics"`
	ProblemID   *string     `json:"problemId,omitempty"`
	Labels      []string    `json:"labels"`
	Active      bool        `json:"active"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func toTemplateResponse(t *domain.GoalTemplate) templateResponse {
	resp := templateResponse{
		ID:          t.ID.String(),
		Text:        t.Text,
		Description: t.Description,
		Pattern:     string(t.Pattern),
		Priority:    t.Priority.String(),
		Urgent:      t.Urgent,
		Metrics:     toMetricDTOs(t.Metrics),
		ProblemID:   t.ProblemID,
		Labels:      t.Labels,
		Active:      t.Active,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if resp.Labels == nil {
		resp.Labels = []string{}
	}
	return resp
}

type milestoneResponse struct {
	ID               string    `json:"id"`
	TargetMetric     string    `json:"targetMetric"`
	DailyAmount      int       `json:"dailyAmount"`
	TargetValue      int       `json:"targetValue"`
	PeriodType       string    `json:"periodType"`
	PeriodStart      time.Time `json:"periodStart"`
	PeriodEnd        time.Time `json:"periodEnd"`
	Strategy         string    `json:"strategy"`
	CurrentValue     int       `json:"currentValue"`
	RecurringPattern string    `json:"recurringPattern,omitempty"`
	ProblemID        *string   `json:"problemId,omitempty"`
	Unit             string    `json:"unit,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func toMilestoneResponse(m *domain.Milestone) milestoneResponse {
	return milestoneResponse{
		ID:               m.ID.String(),
		TargetMetric:     m.TargetMetric,
		DailyAmount:      m.DailyAmount,
		TargetValue:      m.TargetValue,
		PeriodType:       m.PeriodType.String(),
		PeriodStart:      m.PeriodStart,
		PeriodEnd:        m.PeriodEnd,
		Strategy:         m.Strategy.String(),
		CurrentValue:     m.CurrentValue,
		RecurringPattern: string(m.RecurringPattern),
		ProblemID:        m.ProblemID,
		Unit:             m.Unit,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

type debtRecordResponse struct {
	ID            string     `json:"id"`
	GoalID        string     `json:"goalId"`
	OriginalMonth string     `json:"originalMonth"`
	OriginalDate  *string    `json:"originalDate,omitempty"`
	Reason        *string    `json:"reason,omitempty"`
	GoalText      string     `json:"goalText"`
	GoalData      any        `json:"goalData,omitempty"`
	ArchivedAt    time.Time  `json:"archivedAt"`
	ResolvedAt    *time.Time `json:"resolvedAt,omitempty"`
}

func toDebtRecordResponse(rec *domain.DebtRecord) debtRecordResponse {
	resp := debtRecordResponse{
		ID:            rec.ID.String(),
		GoalID:        rec.GoalID.String(),
		OriginalMonth: rec.OriginalMonth,
		OriginalDate:  rec.OriginalDate,
		Reason:        rec.Reason,
		GoalText:      rec.GoalText,
		ArchivedAt:    rec.ArchivedAt,
		ResolvedAt:    rec.ResolvedAt,
	}
	if len(rec.GoalData) > 0 {
		resp.GoalData = rec.GoalData
	}
	return resp
}

type activityResponse struct {
	ID         string    `json:"id"`
	LocalDate  string    `json:"localDate"`
	StartedAt  time.Time `json:"startedAt"`
	EndedAt    time.Time `json:"endedAt"`
	Category   string    `json:"category"`
	Title      string    `json:"title"`
	Productive bool      `json:"productive"`
	Shadow     bool      `json:"shadow"`
	GoalID     *string   `json:"goalId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toActivityResponse(act *domain.Activity) activityResponse {
	resp := activityResponse{
		ID:         act.ID.String(),
		LocalDate:  act.LocalDate,
		StartedAt:  act.StartedAt,
		EndedAt:    act.EndedAt,
		Category:   act.Category,
		Title:      act.Title,
		Productive: act.Productive,
		Shadow:     act.Shadow,
		CreatedAt:  act.CreatedAt,
	}
	if act.GoalID != nil {
		id := act.GoalID.String()
		resp.GoalID = &id
	}
	return resp
}

func toActivityResponses(activities []*domain.Activity) []activityResponse {
	out := make([]activityResponse, 0, len(activities))
	for _, act := range activities {
		out = append(out, toActivityResponse(act))
	}
	return out
}
