package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"governance-dashboard/internal/seed"
	"governance-dashboard/internal/services"
	"governance-dashboard/internal/status"
	"governance-dashboard/models"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	next     int
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: map[string]models.Session{}}
}

func (m *memorySessions) Create(_ context.Context, s *models.Session) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	token := fmt.Sprintf("token-%d", m.next)
	m.sessions[token] = *s
	return token, nil
}

func (m *memorySessions) Get(_ context.Context, token string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		return nil, status.ErrUnauthenticated
	}
	return &s, nil
}

func (m *memorySessions) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

type testServer struct {
	sessions  *memorySessions
	auth      *AuthHandler
	dashboard *DashboardHandler
	admin     *AdminHandler
	store     *services.RecordStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	data, err := seed.Load("")
	require.NoError(t, err)
	directory, store, err := data.Build()
	require.NoError(t, err)

	access := services.NewAccessControl(directory)
	dashboard := services.NewDashboardService(access, store, nil)
	sessions := newMemorySessions()

	return &testServer{
		sessions:  sessions,
		auth:      NewAuthHandler(access, sessions, nil),
		dashboard: NewDashboardHandler(dashboard, sessions),
		admin:     NewAdminHandler(dashboard, sessions, nil),
		store:     store,
	}
}

func newRequestEvent(method, target, body, token string) (*core.RequestEvent, *httptest.ResponseRecorder) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()

	e := &core.RequestEvent{}
	e.Request = req
	e.Response = rec
	return e, rec
}

func assertAPIStatus(t *testing.T, err error, expected int) {
	t.Helper()
	var apiErr *router.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, expected, apiErr.Status)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (s *testServer) login(t *testing.T, username, password, role string) string {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q,"role":%q}`, username, password, role)
	e, rec := newRequestEvent(http.MethodPost, "/api/v1/auth/login", body, "")

	require.NoError(t, s.auth.Login(e))
	require.Equal(t, http.StatusOK, rec.Code)
	return decode(t, rec)["token"].(string)
}

func TestAuthHandler_Roles(t *testing.T) {
	s := newTestServer(t)
	e, rec := newRequestEvent(http.MethodGet, "/api/v1/roles", "", "")

	require.NoError(t, s.auth.Roles(e))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		[]any{"Event Coordinator", "HOD", "Dean", "Institutional Head", "Admin"},
		decode(t, rec)["roles"])
}

func TestAuthHandler_Login_Success(t *testing.T) {
	s := newTestServer(t)
	e, rec := newRequestEvent(http.MethodPost, "/api/v1/auth/login",
		`{"username":"Trinadh","password":"Trinadh","role":"HOD"}`, "")

	require.NoError(t, s.auth.Login(e))

	out := decode(t, rec)
	assert.NotEmpty(t, out["token"])
	session := out["session"].(map[string]any)
	assert.Equal(t, true, session["authenticated"])
	assert.Equal(t, "Trinadh", session["username"])
	assert.Equal(t, "HOD", session["role"])
	assert.Equal(t, "CSE", session["department"])
}

func TestAuthHandler_Login_Failures(t *testing.T) {
	s := newTestServer(t)

	bodies := []string{
		`{"username":"Trinadh","password":"Trinadh","role":"Dean"}`,
		`{"username":"Trinadh","password":"wrong","role":"HOD"}`,
		`{"username":"Ghost","password":"Ghost","role":"HOD"}`,
		`{"username":"Trinadh","password":"Trinadh","role":"Janitor"}`,
	}

	for _, body := range bodies {
		e, _ := newRequestEvent(http.MethodPost, "/api/v1/auth/login", body, "")

		err := s.auth.Login(e)

		assertAPIStatus(t, err, http.StatusUnauthorized)
		assert.Contains(t, err.Error(), "Invalid Credentials or Role Mismatch")
	}
	assert.Empty(t, s.sessions.sessions)
}

func TestAuthHandler_Login_NoAttemptLimit(t *testing.T) {
	s := newTestServer(t)

	for i := 0; i < 25; i++ {
		e, _ := newRequestEvent(http.MethodPost, "/api/v1/auth/login",
			`{"username":"Naidu","password":"wrong","role":"Admin"}`, "")
		assertAPIStatus(t, s.auth.Login(e), http.StatusUnauthorized)
	}
	for i := 0; i < 25; i++ {
		s.login(t, "Naidu", "Naidu", "Admin")
	}

	assert.Len(t, s.sessions.sessions, 25)
}

func TestAuthHandler_Login_InvalidJSON(t *testing.T) {
	s := newTestServer(t)
	e, _ := newRequestEvent(http.MethodPost, "/api/v1/auth/login", "invalid json", "")

	assertAPIStatus(t, s.auth.Login(e), http.StatusBadRequest)
}

func TestAuthHandler_SessionAndLogout(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "Naidu", "Naidu", "Admin")

	e, rec := newRequestEvent(http.MethodGet, "/api/v1/auth/session", "", token)
	require.NoError(t, s.auth.Session(e))
	assert.Equal(t, "Naidu", decode(t, rec)["username"])

	for i := 0; i < 2; i++ {
		e, rec = newRequestEvent(http.MethodPost, "/api/v1/auth/logout", "", token)
		require.NoError(t, s.auth.Logout(e))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	e, _ = newRequestEvent(http.MethodGet, "/api/v1/auth/session", "", token)
	assertAPIStatus(t, s.auth.Session(e), http.StatusUnauthorized)
}

func TestAuthHandler_LogoutWithoutToken(t *testing.T) {
	s := newTestServer(t)
	e, rec := newRequestEvent(http.MethodPost, "/api/v1/auth/logout", "", "")

	require.NoError(t, s.auth.Logout(e))
	assert.Equal(t, "Logged out", decode(t, rec)["message"])
}

func TestSessionsAreIsolated(t *testing.T) {
	s := newTestServer(t)
	coordinator := s.login(t, "Rohan", "Rohan", "Event Coordinator")
	dean := s.login(t, "Dhadi", "dhadi", "Dean")
	require.NotEqual(t, coordinator, dean)

	e, rec := newRequestEvent(http.MethodGet, "/api/v1/dashboard", "", coordinator)
	require.NoError(t, s.dashboard.GetDashboard(e))
	assert.Equal(t, "Event Coordinator", decode(t, rec)["role"])

	e, rec = newRequestEvent(http.MethodGet, "/api/v1/dashboard", "", dean)
	require.NoError(t, s.dashboard.GetDashboard(e))
	assert.Equal(t, "Dean", decode(t, rec)["role"])
}

func TestDashboardHandler_RequiresSession(t *testing.T) {
	s := newTestServer(t)

	e, _ := newRequestEvent(http.MethodGet, "/api/v1/dashboard", "", "")
	assertAPIStatus(t, s.dashboard.GetDashboard(e), http.StatusUnauthorized)

	e, _ = newRequestEvent(http.MethodGet, "/api/v1/dashboard/summary", "", "bogus")
	assertAPIStatus(t, s.dashboard.GetSummary(e), http.StatusUnauthorized)
}

func TestDashboardHandler_Coordinator(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "Rohan", "Rohan", "Event Coordinator")
	e, rec := newRequestEvent(http.MethodGet, "/api/v1/dashboard", "", token)

	require.NoError(t, s.dashboard.GetDashboard(e))

	out := decode(t, rec)
	assert.Equal(t, "Access restricted to your submitted events.", out["summary"])
	view := out["view"].(map[string]any)
	events := view["events"].([]any)
	require.Len(t, events, 1)
	assert.Equal(t, "AIWorkshop", events[0].(map[string]any)["name"])
	assert.Equal(t, "Global occupancy data restricted.", view["notice"])
}

func TestDashboardHandler_InstitutionalHead(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "Reddy", "Reddy", "Institutional Head")
	e, rec := newRequestEvent(http.MethodGet, "/api/v1/dashboard", "", token)

	require.NoError(t, s.dashboard.GetDashboard(e))

	view := decode(t, rec)["view"].(map[string]any)
	assert.Equal(t, 380.0, view["total_capacity"])
	assert.Equal(t, 305.0, view["total_occupied"])
	assert.Equal(t, 80.26, view["overall_percent"])
}

func TestDashboardHandler_AdminSelection(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "Naidu", "Naidu", "Admin")

	e, rec := newRequestEvent(http.MethodGet, "/api/v1/dashboard?venue=LabHall", "", token)
	require.NoError(t, s.dashboard.GetDashboard(e))
	selected := decode(t, rec)["view"].(map[string]any)["selected"].(map[string]any)
	assert.Equal(t, "LabHall", selected["name"])
	assert.Equal(t, "fully_occupied", selected["status"])

	e, _ = newRequestEvent(http.MethodGet, "/api/v1/dashboard?venue=Stadium", "", token)
	assertAPIStatus(t, s.dashboard.GetDashboard(e), http.StatusNotFound)
}

func TestDashboardHandler_Summary(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "Dhadi", "dhadi", "Dean")
	e, rec := newRequestEvent(http.MethodGet, "/api/v1/dashboard/summary", "", token)

	require.NoError(t, s.dashboard.GetSummary(e))

	assert.Equal(t, "1 fully occupied venue(s) across departments.", decode(t, rec)["summary"])
}

func occupancyRequest(venue, body, token string) (*core.RequestEvent, *httptest.ResponseRecorder) {
	e, rec := newRequestEvent(http.MethodPut, "/api/v1/admin/venues/"+venue+"/occupancy", body, token)
	e.Request.SetPathValue("name", venue)
	return e, rec
}

func TestAdminHandler_SetOccupancy(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "Naidu", "Naidu", "Admin")
	e, rec := occupancyRequest("ConferenceRoom", `{"occupied":30}`, token)

	require.NoError(t, s.admin.SetOccupancy(e))

	out := decode(t, rec)
	assert.Equal(t, "ConferenceRoom", out["name"])
	assert.Equal(t, 30.0, out["occupied"])
	assert.Equal(t, 75.0, out["percentage"])
	assert.Equal(t, "available", out["status"])

	v, _ := s.store.Venue("ConferenceRoom")
	assert.Equal(t, 30, v.Occupied)
}

func TestAdminHandler_SetOccupancy_Errors(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "Naidu", "Naidu", "Admin")
	hod := s.login(t, "Trinadh", "Trinadh", "HOD")

	tests := []struct {
		name     string
		venue    string
		body     string
		token    string
		expected int
	}{
		{"Not logged in", "LabHall", `{"occupied":10}`, "", http.StatusUnauthorized},
		{"Not admin", "LabHall", `{"occupied":10}`, hod, http.StatusForbidden},
		{"Above capacity", "LabHall", `{"occupied":70}`, admin, http.StatusBadRequest},
		{"Negative", "LabHall", `{"occupied":-1}`, admin, http.StatusBadRequest},
		{"Unknown venue", "Stadium", `{"occupied":1}`, admin, http.StatusNotFound},
		{"Missing value", "LabHall", `{}`, admin, http.StatusBadRequest},
		{"Invalid JSON", "LabHall", `nope`, admin, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := occupancyRequest(tt.venue, tt.body, tt.token)

			assertAPIStatus(t, s.admin.SetOccupancy(e), tt.expected)

			v, _ := s.store.Venue("LabHall")
			assert.Equal(t, 60, v.Occupied)
		})
	}
}
