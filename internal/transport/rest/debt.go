package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/strideapp/stride-backend/internal/domain"
)

// debtService defines the minimal interface needed by DebtHandler.
type debtService interface {
	Records(ctx context.Context) ([]*domain.DebtRecord, error)
	Accumulated(ctx context.Context, date string) ([]*domain.GoalInstance, error)
	Trail(ctx context.Context, endDate string, daysBack int) ([]domain.DebtTrailDay, error)
	TransitionMonth(ctx context.Context, month string, reason *string) (int, error)
	Reset(ctx context.Context, ids []uuid.UUID) (int, error)
}

// DebtHandler serves debt archival and query endpoints.
type DebtHandler struct {
	svc debtService
	log *slog.Logger
}

// NewDebtHandler creates a DebtHandler.
func NewDebtHandler(svc debtService, logger *slog.Logger) *DebtHandler {
	return &DebtHandler{svc: svc, log: logger.With("handler", "debt")}
}

// Records handles GET /api/debt/goals: unresolved archival records, oldest
// first.
func (h *DebtHandler) Records(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.Records(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]debtRecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toDebtRecordResponse(rec))
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": out})
}

// Accumulated handles GET /api/debt/accumulated?date=YYYY-MM-DD.
func (h *DebtHandler) Accumulated(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	goals, err := h.svc.Accumulated(r.Context(), date)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"goals": toGoalResponses(goals)})
}

// Trail handles GET /api/debt/trail?end_date=YYYY-MM-DD&days_back=N.
func (h *DebtHandler) Trail(w http.ResponseWriter, r *http.Request) {
	endDate := r.URL.Query().Get("end_date")

	daysBack := 7
	if raw := r.URL.Query().Get("days_back"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "days_back must be an integer")
			return
		}
		daysBack = n
	}

	days, err := h.svc.Trail(r.Context(), endDate, daysBack)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	type trailDayResponse struct {
		Date  string         `json:"date"`
		Count int            `json:"debtCount"`
		Goals []goalResponse `json:"goals"`
	}
	out := make([]trailDayResponse, 0, len(days))
	for _, d := range days {
		out = append(out, trailDayResponse{
			Date:  d.Date,
			Count: d.Count,
			Goals: toGoalResponses(d.Goals),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"trail": out})
}

type transitionRequest struct {
	Month  string  `json:"month"`
	Reason *string `json:"reason"`
}

// Transition handles POST /api/debt/transition: archives one calendar
// month's uncompleted goals into debt.
func (h *DebtHandler) Transition(w http.ResponseWriter, r *http.Request) {
	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	count, err := h.svc.TransitionMonth(r.Context(), req.Month, req.Reason)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"archivedCount": count})
}

type resetRequest struct {
	GoalIDs []string `json:"goalIds"`
}

// Reset handles POST /api/debt/reset: the only way back from debt.
func (h *DebtHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ids := make([]uuid.UUID, 0, len(req.GoalIDs))
	for _, raw := range req.GoalIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid goal id: "+raw)
			return
		}
		ids = append(ids, id)
	}

	count, err := h.svc.Reset(r.Context(), ids)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"resetCount": count})
}
