package services

import (
	"context"
	"fmt"
	"log/slog"

	"governance-dashboard/internal/occupancy"
	"governance-dashboard/internal/status"
	"governance-dashboard/models"
)

const restrictedNotice = "Global occupancy data restricted."

type DashboardService struct {
	access   *AccessControl
	store    *RecordStore
	notifier Notifier
}

// NewDashboardService wires the dashboard. notifier may be nil.
func NewDashboardService(access *AccessControl, store *RecordStore, notifier Notifier) *DashboardService {
	return &DashboardService{
		access:   access,
		store:    store,
		notifier: notifier,
	}
}

// ViewFor builds the payload for the session's role. selectedVenue only
// matters to Admin; empty means the first venue.
func (s *DashboardService) ViewFor(session *models.Session, selectedVenue string) (models.RoleView, error) {
	scope, err := s.access.ScopeFor(session)
	if err != nil {
		return nil, err
	}

	switch scope.Role {
	case models.RoleEventCoordinator:
		events := []models.Event{}
		for _, e := range s.store.Events() {
			if scope.CanViewEvent(e) {
				events = append(events, e)
			}
		}
		return models.CoordinatorView{Events: events, Notice: restrictedNotice}, nil

	case models.RoleHOD:
		return models.HODView{
			Department: scope.Department,
			Venues:     s.visibleVenues(scope),
		}, nil

	case models.RoleDean:
		return models.DeanView{Venues: s.visibleVenues(scope)}, nil

	case models.RoleInstitutionalHead:
		venues := s.store.Venues()
		view := models.InstitutionView{Venues: make([]models.VenueStatus, 0, len(venues))}
		for _, v := range venues {
			view.TotalCapacity += v.Capacity
			view.TotalOccupied += v.Occupied
			view.Venues = append(view.Venues, occupancy.Enrich(v))
		}
		view.OverallPercent = occupancy.Percentage(view.TotalCapacity, view.TotalOccupied)
		return view, nil

	case models.RoleAdmin:
		return s.adminView(selectedVenue)

	default:
		return nil, fmt.Errorf("dashboard: no view for role %q", scope.Role)
	}
}

func (s *DashboardService) visibleVenues(scope Scope) []models.VenueStatus {
	out := []models.VenueStatus{}
	for _, v := range s.store.Venues() {
		if scope.CanViewVenue(v) {
			out = append(out, occupancy.Enrich(v))
		}
	}
	return out
}

func (s *DashboardService) adminView(selected string) (models.RoleView, error) {
	venues := s.store.Venues()
	view := models.AdminView{Venues: make([]string, 0, len(venues))}
	for _, v := range venues {
		view.Venues = append(view.Venues, v.Name)
	}
	if len(venues) == 0 {
		return view, nil
	}

	if selected == "" {
		view.Selected = occupancy.Enrich(venues[0])
		return view, nil
	}
	v, ok := s.store.Venue(selected)
	if !ok {
		return nil, fmt.Errorf("%w: %q", status.ErrVenueNotFound, selected)
	}
	view.Selected = occupancy.Enrich(v)
	return view, nil
}

// SummaryFor returns the one-line insight for the session's role. The
// high-occupancy counts span every venue, whatever the role's view scope.
func (s *DashboardService) SummaryFor(session *models.Session) (string, error) {
	scope, err := s.access.ScopeFor(session)
	if err != nil {
		return "", err
	}

	var full, high int
	for _, v := range s.store.Venues() {
		if occupancy.IsFull(v.Capacity, v.Occupied) {
			full++
		}
		if occupancy.IsHigh(v.Capacity, v.Occupied) {
			high++
		}
	}

	switch scope.Role {
	case models.RoleEventCoordinator:
		return "Access restricted to your submitted events.", nil
	case models.RoleHOD:
		return fmt.Sprintf("%d venue(s) nearing capacity in your department.", high), nil
	case models.RoleDean:
		return fmt.Sprintf("%d fully occupied venue(s) across departments.", full), nil
	case models.RoleInstitutionalHead:
		return fmt.Sprintf("Institution-wide monitoring active. %d venue(s) at high occupancy.", high), nil
	case models.RoleAdmin:
		return "Administrative control active. You can modify occupancy states.", nil
	default:
		return "", fmt.Errorf("dashboard: no summary for role %q", scope.Role)
	}
}

// SetOccupied is Admin-only. The venue is left untouched on any error.
func (s *DashboardService) SetOccupied(ctx context.Context, session *models.Session, venueName string, occupied int) (models.VenueStatus, error) {
	if err := s.access.AuthorizeOccupancyChange(session); err != nil {
		slog.Warn("Rejected occupancy change", "venue", venueName, "error", err)
		return models.VenueStatus{}, err
	}

	v, err := s.store.SetOccupied(venueName, occupied)
	if err != nil {
		return models.VenueStatus{}, err
	}

	result := occupancy.Enrich(v)
	slog.Info("Venue occupancy updated",
		"venue", result.Name,
		"occupied", result.Occupied,
		"percentage", result.Percentage,
		"status", result.Status,
		"user", session.Username,
	)

	if s.notifier != nil {
		// Delivery is best effort and the notifier logs its own failures.
		s.notifier.OccupancyChanged(ctx, result)
	}

	return result, nil
}
