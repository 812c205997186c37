package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/localite/user-service/internal/domain"
	"github.com/localite/user-service/internal/observability/metrics"
	"github.com/localite/user-service/internal/security/middleware"
	"github.com/localite/user-service/internal/service"
)

// AuthHandler serves login, logout and auth status.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates and returns the token next to the envelope
// fields, not nested under data.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, h.logger, domain.Validation("Invalid request payload."))
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		WriteError(w, h.logger, domain.Validation("Username and password are required."))
		return
	}

	result, err := h.auth.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		metrics.ObserveLogin("failure")
		WriteError(w, h.logger, err)
		return
	}

	metrics.ObserveLogin("success")
	WriteEnvelope(w, http.StatusOK, Envelope{
		Status:  "success",
		Message: "Successfully logged in.",
		Extra: map[string]any{
			"auth_token": result.AuthToken,
			"user_id":    result.UserID,
		},
	})
}

// Logout revokes the presented token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.Token(r.Context())
	if !ok {
		WriteError(w, h.logger, domain.Forbidden("Provide a valid auth token."))
		return
	}

	if err := h.auth.Logout(r.Context(), token); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	metrics.ObserveTokenRevocation()
	WriteSuccess(w, http.StatusOK, "Successfully logged out.", nil)
}

// Status returns the authenticated user's record under data with no
// message field.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		WriteError(w, h.logger, domain.Forbidden("Provide a valid auth token."))
		return
	}

	data, err := h.auth.GetStatus(r.Context(), userID)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteEnvelope(w, http.StatusOK, Envelope{Status: "success", Data: data})
}
