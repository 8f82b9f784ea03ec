package monitoring

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"governance-dashboard/internal/occupancy"
	"governance-dashboard/internal/status"
	"governance-dashboard/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	loginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_login_attempts_total",
			Help: "Login attempts by asserted role and outcome",
		},
		[]string{"role", "outcome"},
	)

	occupancyUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_occupancy_updates_total",
			Help: "Occupancy change requests by venue and outcome",
		},
		[]string{"venue", "outcome"},
	)

	venueOccupancy = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dashboard_venue_occupancy_percent",
			Help: "Current occupancy percentage per venue",
		},
		[]string{"venue", "department"},
	)

	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dashboard_active_sessions",
			Help: "Sessions currently stored in Redis",
		},
	)
)

type VenueSource interface {
	Venues() []models.Venue
}

type SessionCounter interface {
	Count(ctx context.Context) (int, error)
}

type Monitor struct {
	venues   VenueSource
	sessions SessionCounter
	interval time.Duration
}

func NewMonitor(venues VenueSource, sessions SessionCounter, interval time.Duration) *Monitor {
	return &Monitor{
		venues:   venues,
		sessions: sessions,
		interval: interval,
	}
}

// Run refreshes the gauges every interval until ctx is done.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.collect(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.collect(ctx)
		}
	}
}

func (m *Monitor) collect(ctx context.Context) {
	if m.venues != nil {
		for _, v := range m.venues.Venues() {
			venueOccupancy.WithLabelValues(v.Name, v.Department).Set(occupancy.Percentage(v.Capacity, v.Occupied))
		}
	}

	if m.sessions != nil {
		n, err := m.sessions.Count(ctx)
		if err != nil {
			slog.Warn("Failed to count sessions", "error", err)
			return
		}
		activeSessions.Set(float64(n))
	}
}

// TrackLogin records a login attempt. Labels outside the role set are
// folded into "unknown" to keep cardinality bounded.
func (m *Monitor) TrackLogin(role string, err error) {
	if _, ok := models.ParseRole(role); !ok {
		role = "unknown"
	}
	loginAttempts.WithLabelValues(role, Outcome(err)).Inc()
}

func (m *Monitor) TrackOccupancyUpdate(v models.Venue, err error) {
	name := v.Name
	if errors.Is(err, status.ErrVenueNotFound) {
		name = "unknown"
	}
	occupancyUpdates.WithLabelValues(name, Outcome(err)).Inc()
	if err == nil {
		venueOccupancy.WithLabelValues(v.Name, v.Department).Set(occupancy.Percentage(v.Capacity, v.Occupied))
	}
}

// Outcome maps an operation error to a metric label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, status.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, status.ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, status.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, status.ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, status.ErrVenueNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
