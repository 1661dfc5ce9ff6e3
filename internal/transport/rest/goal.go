package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/strideapp/stride-backend/internal/domain"
	"github.com/strideapp/stride-backend/internal/service/goal"
)

// goalService defines the minimal interface needed by GoalHandler.
type goalService interface {
	GetGoalsForRange(ctx context.Context, filter domain.GoalFilter) ([]*domain.GoalInstance, error)
	CreateGoal(ctx context.Context, in goal.CreateGoalInput) (*domain.GoalInstance, error)
	GetGoal(ctx context.Context, id uuid.UUID) (*domain.GoalInstance, error)
	UpdateGoal(ctx context.Context, id uuid.UUID, update domain.GoalUpdate) (*domain.GoalInstance, error)
	ToggleCompletion(ctx context.Context, id uuid.UUID) (*domain.GoalInstance, error)
	LinkActivity(ctx context.Context, activityID, goalID uuid.UUID) (*domain.GoalInstance, error)
	GoalActivities(ctx context.Context, id uuid.UUID) ([]*domain.Activity, error)
	DeleteGoal(ctx context.Context, id uuid.UUID) error
}

// GoalHandler serves goal instance endpoints.
type GoalHandler struct {
	svc goalService
	log *slog.Logger
}

// NewGoalHandler creates a GoalHandler.
func NewGoalHandler(svc goalService, logger *slog.Logger) *GoalHandler {
	return &GoalHandler{svc: svc, log: logger.With("handler", "goal")}
}

// List handles GET /api/goals. Reading is reconciling: recurring templates
// are expanded and the overdue sweep runs before the filtered list is
// served.
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseGoalFilter(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	goals, err := h.svc.GetGoalsForRange(r.Context(), filter)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"goals": toGoalResponses(goals)})
}

func parseGoalFilter(r *http.Request) (domain.GoalFilter, error) {
	var filter domain.GoalFilter

	offset, err := tzOffset(r)
	if err != nil {
		return filter, err
	}
	filter.OffsetMinutes = offset

	for name, dst := range map[string]**bool{
		"completed":     &filter.Completed,
		"urgent":        &filter.Urgent,
		"is_debt":       &filter.IsDebt,
		"has_recurring": &filter.HasRecurring,
	} {
		v, err := queryBool(r, name)
		if err != nil {
			return filter, err
		}
		*dst = v
	}

	if search := r.URL.Query().Get("search"); search != "" {
		filter.Search = &search
	}

	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if (start == "") != (end == "") {
		return filter, domain.NewValidationError("range", "start and end must be given together")
	}
	if start != "" {
		from, err := time.Parse(domain.LocalDateLayout, start)
		if err != nil {
			return filter, domain.NewValidationError("start", "must be YYYY-MM-DD")
		}
		to, err := time.Parse(domain.LocalDateLayout, end)
		if err != nil {
			return filter, domain.NewValidationError("end", "must be YYYY-MM-DD")
		}
		// The range bounds whole local days: push both to the UTC instant
		// the local day starts, and the end past its last second.
		fromUTC := from.Add(-time.Duration(offset) * time.Minute)
		toUTC := to.Add(24*time.Hour - time.Second).Add(-time.Duration(offset) * time.Minute)
		filter.From = &fromUTC
		filter.To = &toUTC
	}

	return filter, nil
}

type createGoalRequest struct {
	Text        string      `json:"text"`
	Description *string     `json:"description"`
	DueLocal    *string     `json:"dueLocal"`
	Priority    string      `json:"priority"`
	Urgent      bool        `json:"urgent"`
	Metrics     []metricDTO `json:"metrics"`
	ProblemID   *string     `json:"problemId"`
	Labels      []string    `json:"labels"`
}

// Create handles POST /api/goals.
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.CreateGoal(r.Context(), goal.CreateGoalInput{
		Text:        req.Text,
		Description: req.Description,
		DueLocal:    req.DueLocal,
		Priority:    domain.Priority(req.Priority),
		Urgent:      req.Urgent,
		Metrics:     fromMetricDTOs(req.Metrics),
		ProblemID:   req.ProblemID,
		Labels:      req.Labels,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toGoalResponse(created))
}

// Get handles GET /api/goals/{id}.
func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	g, err := h.svc.GetGoal(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toGoalResponse(g))
}

type updateGoalRequest struct {
	Text             *string     `json:"text"`
	Description      *string     `json:"description"`
	ClearDescription bool        `json:"clearDescription"`
	DueLocal         *string     `json:"dueLocal"`
	ClearDue         bool        `json:"clearDue"`
	Priority         *string     `json:"priority"`
	Urgent           *bool       `json:"urgent"`
	Metrics          []metricDTO `json:"metrics"`
	ProblemID        *string     `json:"problemId"`
	Labels           []string    `json:"labels"`
	MilestoneID      *string     `json:"milestoneId"`
}

// Update handles PATCH /api/goals/{id}. Absent fields stay untouched.
func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	var req updateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update := domain.GoalUpdate{
		Text:             req.Text,
		Description:      req.Description,
		DueLocal:         req.DueLocal,
		Urgent:           req.Urgent,
		ProblemID:        req.ProblemID,
		Labels:           req.Labels,
		ClearDescription: req.ClearDescription,
		ClearDue:         req.ClearDue,
	}
	if req.Priority != nil {
		p := domain.Priority(*req.Priority)
		update.Priority = &p
	}
	if req.Metrics != nil {
		update.Metrics = fromMetricDTOs(req.Metrics)
	}
	if req.MilestoneID != nil {
		mid, err := uuid.Parse(*req.MilestoneID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid milestone id")
			return
		}
		update.MilestoneID = &mid
	}

	updated, err := h.svc.UpdateGoal(r.Context(), id, update)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toGoalResponse(updated))
}

// Toggle handles POST /api/goals/{id}/toggle.
func (h *GoalHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	updated, err := h.svc.ToggleCompletion(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toGoalResponse(updated))
}

type linkActivityRequest struct {
	ActivityID string `json:"activityId"`
}

// LinkActivity handles POST /api/goals/{id}/link-activity.
func (h *GoalHandler) LinkActivity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	var req linkActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	activityID, err := uuid.Parse(req.ActivityID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid activity id")
		return
	}

	updated, err := h.svc.LinkActivity(r.Context(), activityID, id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toGoalResponse(updated))
}

// Delete handles DELETE /api/goals/{id}.
// Activities handles GET /api/goals/{id}/activities.
func (h *GoalHandler) Activities(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	activities, err := h.svc.GoalActivities(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"activities": toActivityResponses(activities)})
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	if err := h.svc.DeleteGoal(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
