package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/strideapp/stride-backend/internal/domain"
)

// shadowService defines the minimal interface needed by ShadowHandler.
type shadowService interface {
	ProcessEvent(ctx context.Context, in domain.ShadowInput, offsetMinutes int) (bool, error)
	ProcessBatch(ctx context.Context, inputs []domain.ShadowInput, offsetMinutes int) (int, error)
	ActivitiesOnDay(ctx context.Context, date string) ([]*domain.Activity, error)
}

// ShadowHandler accepts external submission events for shadow verification.
type ShadowHandler struct {
	svc shadowService
	log *slog.Logger
}

// NewShadowHandler creates a ShadowHandler.
func NewShadowHandler(svc shadowService, logger *slog.Logger) *ShadowHandler {
	return &ShadowHandler{svc: svc, log: logger.With("handler", "shadow")}
}

type shadowEventRequest struct {
	OccurredAt   time.Time `json:"occurredAt"`
	ProblemID    string    `json:"problemId"`
	ProblemTitle string    `json:"problemTitle"`
	Platform     string    `json:"platform"`
}

func (req shadowEventRequest) toInput() domain.ShadowInput {
	return domain.ShadowInput{
		OccurredAt:   req.OccurredAt,
		ProblemID:    req.ProblemID,
		ProblemTitle: req.ProblemTitle,
		Platform:     domain.Platform(req.Platform),
	}
}

// Event handles POST /api/shadow/events. Redelivery of an already-seen
// event is not an error; the response says whether anything was created.
func (h *ShadowHandler) Event(w http.ResponseWriter, r *http.Request) {
	offset, err := tzOffset(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req shadowEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.ProcessEvent(r.Context(), req.toInput(), offset)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"created": created})
}

type shadowBatchRequest struct {
	Events []shadowEventRequest `json:"events"`
}

// Batch handles POST /api/shadow/batch.
func (h *ShadowHandler) Batch(w http.ResponseWriter, r *http.Request) {
	offset, err := tzOffset(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req shadowBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inputs := make([]domain.ShadowInput, 0, len(req.Events))
	for _, ev := range req.Events {
		inputs = append(inputs, ev.toInput())
	}

	created, err := h.svc.ProcessBatch(r.Context(), inputs, offset)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"createdCount": created})
}

// Activities handles GET /api/activities?date=YYYY-MM-DD.
func (h *ShadowHandler) Activities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.svc.ActivitiesOnDay(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"activities": toActivityResponses(activities)})
}
