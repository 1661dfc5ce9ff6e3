package rest

import (
	"net/http"

	"github.com/strideapp/stride-backend/internal/transport/middleware"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Health     *HealthHandler
	Auth       *AuthHandler
	Goals      *GoalHandler
	Templates  *TemplateHandler
	Debt       *DebtHandler
	Shadow     *ShadowHandler
	Milestones *MilestoneHandler
}

// NewRouter mounts all routes. Everything under /api requires a valid
// bearer token; health probes and the token endpoint stay open.
func NewRouter(h Handlers, authn middleware.Middleware) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("POST /auth/token", h.Auth.Token)

	api := http.NewServeMux()
	api.HandleFunc("GET /api/goals", h.Goals.List)
	api.HandleFunc("POST /api/goals", h.Goals.Create)
	api.HandleFunc("GET /api/goals/{id}", h.Goals.Get)
	api.HandleFunc("PATCH /api/goals/{id}", h.Goals.Update)
	api.HandleFunc("DELETE /api/goals/{id}", h.Goals.Delete)
	api.HandleFunc("POST /api/goals/{id}/toggle", h.Goals.Toggle)
	api.HandleFunc("POST /api/goals/{id}/link-activity", h.Goals.LinkActivity)
	api.HandleFunc("GET /api/goals/{id}/activities", h.Goals.Activities)

	api.HandleFunc("POST /api/templates", h.Templates.Create)
	api.HandleFunc("GET /api/templates", h.Templates.List)
	api.HandleFunc("PATCH /api/templates/{id}/active", h.Templates.SetActive)
	api.HandleFunc("DELETE /api/templates/{id}", h.Templates.Delete)

	api.HandleFunc("GET /api/debt/goals", h.Debt.Records)
	api.HandleFunc("GET /api/debt/accumulated", h.Debt.Accumulated)
	api.HandleFunc("GET /api/debt/trail", h.Debt.Trail)
	api.HandleFunc("POST /api/debt/transition", h.Debt.Transition)
	api.HandleFunc("POST /api/debt/reset", h.Debt.Reset)

	api.HandleFunc("POST /api/shadow/events", h.Shadow.Event)
	api.HandleFunc("POST /api/shadow/batch", h.Shadow.Batch)
	api.HandleFunc("GET /api/activities", h.Shadow.Activities)

	api.HandleFunc("POST /api/milestones", h.Milestones.Create)
	api.HandleFunc("GET /api/milestones", h.Milestones.List)
	api.HandleFunc("GET /api/milestones/{id}", h.Milestones.Get)
	api.HandleFunc("PATCH /api/milestones/{id}", h.Milestones.Update)
	api.HandleFunc("DELETE /api/milestones/{id}", h.Milestones.Delete)
	api.HandleFunc("POST /api/milestones/{id}/balance", h.Milestones.Balance)

	mux.Handle("/api/", authn(api))

	return mux
}
