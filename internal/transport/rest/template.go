package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/strideapp/stride-backend/internal/domain"
	"github.com/strideapp/stride-backend/internal/service/goal"
)

// templateService defines the minimal interface needed by TemplateHandler.
type templateService interface {
	CreateTemplate(ctx context.Context, in goal.CreateTemplateInput) (*domain.GoalTemplate, error)
	ListTemplates(ctx context.Context) ([]*domain.GoalTemplate, error)
	SetTemplateActive(ctx context.Context, id uuid.UUID, active bool) error
	DeleteTemplate(ctx context.Context, id uuid.UUID) error
}

// TemplateHandler serves recurring template endpoints.
type TemplateHandler struct {
	svc templateService
	log *slog.Logger
}

// NewTemplateHandler creates a TemplateHandler.
func NewTemplateHandler(svc templateService, logger *slog.Logger) *TemplateHandler {
	return &TemplateHandler{svc: svc, log: logger.With("handler", "template")}
}

type createTemplateRequest struct {
	Text        string      `json:"text"`
	Description *string     `json:"description"`
	Pattern     string      `json:"pattern"`
	Priority    string      `json:"priority"`
	Urgent      bool        `json:"urgent"`
	Metrics     []metricDTO `json:"metrics"`
	ProblemID   *string     `json:"problemId"`
	Labels      []string    `json:"labels"`
}

// Create handles POST /api/templates.
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.CreateTemplate(r.Context(), goal.CreateTemplateInput{
		Text:        req.Text,
		Description: req.Description,
		Pattern:     domain.RecurrencePattern(req.Pattern),
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

	writeJSON(w, http.StatusCreated, toTemplateResponse(created))
}

// List handles GET /api/templates.
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.svc.ListTemplates(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]templateResponse, 0, len(templates))
	for _, t := range templates {
		out = append(out, toTemplateResponse(t))
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": out})
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

// SetActive handles PATCH /api/templates/{id}/active. Deactivating stops
// future expansion; already-materialized instances stay.
func (h *TemplateHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid template id")
		return
	}

	var req setActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.SetTemplateActive(r.Context(), id, req.Active); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"active": req.Active})
}

// Delete handles DELETE /api/templates/{id}.
func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid template id")
		return
	}

	if err := h.svc.DeleteTemplate(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
