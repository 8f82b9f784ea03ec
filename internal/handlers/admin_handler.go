package handlers

import (
	"net/http"

	"governance-dashboard/internal/services"
	"governance-dashboard/models"
	"governance-dashboard/monitoring"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type AdminHandler struct {
	dashboard *services.DashboardService
	sessions  Sessions
	monitor   *monitoring.Monitor
}

func NewAdminHandler(dashboard *services.DashboardService, sessions Sessions, monitor *monitoring.Monitor) *AdminHandler {
	return &AdminHandler{
		dashboard: dashboard,
		sessions:  sessions,
		monitor:   monitor,
	}
}

// SetOccupancy - Adjust a venue's occupied count (Admin only)
func (h *AdminHandler) SetOccupancy(e *core.RequestEvent) error {
	session, err := currentSession(e, h.sessions)
	if err != nil {
		return toAPIError(err)
	}

	venueName := e.Request.PathValue("name")
	if venueName == "" {
		return apis.NewBadRequestError("Venue name required", nil)
	}

	var req struct {
		Occupied *int `json:"occupied"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if req.Occupied == nil {
		return apis.NewBadRequestError("occupied is required", nil)
	}

	updated, err := h.dashboard.SetOccupied(e.Request.Context(), session, venueName, *req.Occupied)
	if err != nil {
		h.monitor.TrackOccupancyUpdate(models.Venue{Name: venueName}, err)
		return toAPIError(err)
	}
	h.monitor.TrackOccupancyUpdate(updated.Venue, nil)

	return e.JSON(http.StatusOK, updated)
}
