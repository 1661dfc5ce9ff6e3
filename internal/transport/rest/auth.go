package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/strideapp/stride-backend/internal/auth"
	"github.com/strideapp/stride-backend/internal/config"
)

// AuthHandler exchanges the owner's credentials for a bearer token.
// The engine is single-user: there is exactly one username and one
// bcrypt password hash, both from configuration.
type AuthHandler struct {
	cfg    config.AuthConfig
	tokens *auth.JWTManager
	log    *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(cfg config.AuthConfig, tokens *auth.JWTManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		cfg:    cfg,
		tokens: tokens,
		log:    logger.With("handler", "auth"),
	}
}

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// Token handles POST /auth/token.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username != h.cfg.Username || !auth.VerifyPassword(h.cfg.PasswordHash, req.Password) {
		h.log.WarnContext(r.Context(), "failed login attempt", slog.String("username", req.Username))
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.tokens.GenerateAccessToken(req.Username)
	if err != nil {
		h.log.ErrorContext(r.Context(), "token generation failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.cfg.AccessTokenTTL / time.Second),
	})
}
