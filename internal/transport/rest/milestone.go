package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/strideapp/stride-backend/internal/domain"
	"github.com/strideapp/stride-backend/internal/service/milestone"
)

// milestoneService defines the minimal interface needed by MilestoneHandler.
type milestoneService interface {
	Create(ctx context.Context, in milestone.CreateMilestoneInput, offsetMinutes int) (*domain.Milestone, int, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Milestone, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Milestone, error)
	Update(ctx context.Context, id uuid.UUID, params domain.MilestoneUpdate) (*domain.Milestone, error)
	Delete(ctx context.Context, id uuid.UUID) error
	RunBalancer(ctx context.Context, id uuid.UUID, offsetMinutes int) (*domain.BalancerReport, error)
}

// MilestoneHandler serves milestone endpoints.
type MilestoneHandler struct {
	svc milestoneService
	log *slog.Logger
}

// NewMilestoneHandler creates a MilestoneHandler.
func NewMilestoneHandler(svc milestoneService, logger *slog.Logger) *MilestoneHandler {
	return &MilestoneHandler{svc: svc, log: logger.With("handler", "milestone")}
}

type createMilestoneRequest struct {
	TargetMetric     string    `json:"targetMetric"`
	DailyAmount      int       `json:"dailyAmount"`
	PeriodType       string    `json:"periodType"`
	PeriodStart      time.Time `json:"periodStart"`
	PeriodEnd        time.Time `json:"periodEnd"`
	Strategy         string    `json:"strategy"`
	RecurringPattern string    `json:"recurringPattern"`
	ProblemID        *string   `json:"problemId"`
	Unit             string    `json:"unit"`
}

// Create handles POST /api/milestones.
func (h *MilestoneHandler) Create(w http.ResponseWriter, r *http.Request) {
	offset, err := tzOffset(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req createMilestoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, seeded, err := h.svc.Create(r.Context(), milestone.CreateMilestoneInput{
		TargetMetric:     req.TargetMetric,
		DailyAmount:      req.DailyAmount,
		PeriodType:       domain.PeriodType(req.PeriodType),
		PeriodStart:      req.PeriodStart,
		PeriodEnd:        req.PeriodEnd,
		Strategy:         domain.Strategy(req.Strategy),
		RecurringPattern: domain.RecurrencePattern(req.RecurringPattern),
		ProblemID:        req.ProblemID,
		Unit:             req.Unit,
	}, offset)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"milestone":   toMilestoneResponse(created),
		"seededGoals": seeded,
	})
}

// Get handles GET /api/milestones/{id}.
func (h *MilestoneHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid milestone id")
		return
	}

	m, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toMilestoneResponse(m))
}

// List handles GET /api/milestones?active_only=true.
func (h *MilestoneHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly, err := queryBool(r, "active_only")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	milestones, err := h.svc.List(r.Context(), activeOnly != nil && *activeOnly)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]milestoneResponse, 0, len(milestones))
	for _, m := range milestones {
		out = append(out, toMilestoneResponse(m))
	}
	writeJSON(w, http.StatusOK, map[string]any{"milestones": out})
}

type updateMilestoneRequest struct {
	TargetMetric     *string    `json:"targetMetric"`
	DailyAmount      *int       `json:"dailyAmount"`
	TargetValue      *int       `json:"targetValue"`
	PeriodStart      *time.Time `json:"periodStart"`
	PeriodEnd        *time.Time `json:"periodEnd"`
	Strategy         *string    `json:"strategy"`
	CurrentValue     *int       `json:"currentValue"`
	RecurringPattern *string    `json:"recurringPattern"`
	Unit             *string    `json:"unit"`
}

// Update handles PATCH /api/milestones/{id}.
func (h *MilestoneHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid milestone id")
		return
	}

	var req updateMilestoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update := domain.MilestoneUpdate{
		TargetMetric: req.TargetMetric,
		DailyAmount:  req.DailyAmount,
		TargetValue:  req.TargetValue,
		PeriodStart:  req.PeriodStart,
		PeriodEnd:    req.PeriodEnd,
		CurrentValue: req.CurrentValue,
		Unit:         req.Unit,
	}
	if req.Strategy != nil {
		s := domain.Strategy(*req.Strategy)
		update.Strategy = &s
	}
	if req.RecurringPattern != nil {
		p := domain.RecurrencePattern(*req.RecurringPattern)
		update.RecurringPattern = &p
	}

	updated, err := h.svc.Update(r.Context(), id, update)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toMilestoneResponse(updated))
}

// Delete handles DELETE /api/milestones/{id}.
func (h *MilestoneHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid milestone id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Balance handles POST /api/milestones/{id}/balance?tz_offset.
func (h *MilestoneHandler) Balance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid milestone id")
		return
	}

	offset, err := tzOffset(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	report, err := h.svc.RunBalancer(r.Context(), id, offset)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"updatedCount":  report.UpdatedGoals,
		"dailyRequired": report.DailyRequired,
		"message":       report.Message,
	})
}
