package handlers

import (
	"net/http"

	"governance-dashboard/internal/services"

	"github.com/pocketbase/pocketbase/core"
)

type DashboardHandler struct {
	dashboard *services.DashboardService
	sessions  Sessions
}

func NewDashboardHandler(dashboard *services.DashboardService, sessions Sessions) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		sessions:  sessions,
	}
}

// GetDashboard - Role-specific view plus the summary line
func (h *DashboardHandler) GetDashboard(e *core.RequestEvent) error {
	session, err := currentSession(e, h.sessions)
	if err != nil {
		return toAPIError(err)
	}

	view, err := h.dashboard.ViewFor(session, e.Request.URL.Query().Get("venue"))
	if err != nil {
		return toAPIError(err)
	}
	summary, err := h.dashboard.SummaryFor(session)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"role":    view.ViewRole(),
		"view":    view,
		"summary": summary,
	})
}

// GetSummary - Summary line only
func (h *DashboardHandler) GetSummary(e *core.RequestEvent) error {
	session, err := currentSession(e, h.sessions)
	if err != nil {
		return toAPIError(err)
	}

	summary, err := h.dashboard.SummaryFor(session)
	if err != nil {
		return toAPIError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"summary": summary})
}
