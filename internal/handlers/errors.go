package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"governance-dashboard/internal/status"
	"governance-dashboard/models"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

// Sessions is the token store the handlers resolve callers against.
type Sessions interface {
	Create(ctx context.Context, session *models.Session) (string, error)
	Get(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
}

func bearerToken(e *core.RequestEvent) string {
	h := strings.TrimSpace(e.Request.Header.Get("Authorization"))
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return h
}

func currentSession(e *core.RequestEvent, sessions Sessions) (*models.Session, error) {
	return sessions.Get(e.Request.Context(), bearerToken(e))
}

// toAPIError translates core errors into HTTP responses.
func toAPIError(err error) error {
	switch {
	case errors.Is(err, status.ErrInvalidCredentials):
		return apis.NewUnauthorizedError("Invalid Credentials or Role Mismatch", nil)
	case errors.Is(err, status.ErrUnauthenticated):
		return apis.NewUnauthorizedError("Login required", nil)
	case errors.Is(err, status.ErrUnauthorized):
		return apis.NewForbiddenError("Admin access required", nil)
	case errors.Is(err, status.ErrOutOfRange):
		return apis.NewBadRequestError(err.Error(), nil)
	case errors.Is(err, status.ErrVenueNotFound):
		return apis.NewNotFoundError(err.Error(), nil)
	default:
		slog.Error("Request failed", "error", err)
		return apis.NewApiError(http.StatusInternalServerError, "Something went wrong while processing your request.", nil)
	}
}
