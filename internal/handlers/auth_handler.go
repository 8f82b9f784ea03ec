package handlers

import (
	"log/slog"
	"net/http"

	"governance-dashboard/internal/services"
	"governance-dashboard/internal/status"
	"governance-dashboard/models"
	"governance-dashboard/monitoring"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type AuthHandler struct {
	access   *services.AccessControl
	sessions Sessions
	monitor  *monitoring.Monitor
}

func NewAuthHandler(access *services.AccessControl, sessions Sessions, monitor *monitoring.Monitor) *AuthHandler {
	return &AuthHandler{
		access:   access,
		sessions: sessions,
		monitor:  monitor,
	}
}

// Roles - List the roles a user can log in as
func (h *AuthHandler) Roles(e *core.RequestEvent) error {
	return e.JSON(http.StatusOK, map[string]any{"roles": models.Roles()})
}

// Login - Validate username, password and asserted role
func (h *AuthHandler) Login(e *core.RequestEvent) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	session, err := h.authenticate(req.Username, req.Password, req.Role)
	h.monitor.TrackLogin(req.Role, err)
	if err != nil {
		slog.Info("Login rejected", "username", req.Username)
		return toAPIError(err)
	}

	token, err := h.sessions.Create(e.Request.Context(), session)
	if err != nil {
		return toAPIError(err)
	}

	slog.Info("Login successful", "username", session.Username, "role", session.Role)
	return e.JSON(http.StatusOK, map[string]any{
		"token":   token,
		"session": session,
	})
}

func (h *AuthHandler) authenticate(username, password, roleLabel string) (*models.Session, error) {
	role, ok := models.ParseRole(roleLabel)
	if !ok {
		return nil, status.ErrInvalidCredentials
	}
	return h.access.Authenticate(username, password, role)
}

// Logout - Always succeeds, whether or not the token is known
func (h *AuthHandler) Logout(e *core.RequestEvent) error {
	ctx := e.Request.Context()
	token := bearerToken(e)

	if session, err := h.sessions.Get(ctx, token); err == nil {
		h.access.Logout(session)
	}
	if err := h.sessions.Delete(ctx, token); err != nil {
		slog.Warn("Failed to delete session", "error", err)
	}

	return e.JSON(http.StatusOK, map[string]any{"message": "Logged out"})
}

// Session - Echo the caller's session
func (h *AuthHandler) Session(e *core.RequestEvent) error {
	session, err := currentSession(e, h.sessions)
	if err != nil {
		return toAPIError(err)
	}
	return e.JSON(http.StatusOK, session)
}
