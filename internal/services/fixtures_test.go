package services

import (
	"testing"

	"governance-dashboard/models"

	"github.com/stretchr/testify/require"
)

func testUsers() []models.User {
	return []models.User{
		{Username: "Rohan", Password: "Rohan", Role: models.RoleEventCoordinator, Department: "CSE"},
		{Username: "Trinadh", Password: "Trinadh", Role: models.RoleHOD, Department: "CSE"},
		{Username: "Dhadi", Password: "dhadi", Role: models.RoleDean, Department: "General"},
		{Username: "Reddy", Password: "Reddy", Role: models.RoleInstitutionalHead, Department: "General"},
		{Username: "Naidu", Password: "Naidu", Role: models.RoleAdmin, Department: "General"},
	}
}

func testVenues() []models.Venue {
	return []models.Venue{
		{Name: "Auditorium", Capacity: 200, Occupied: 150, Department: "General"},
		{Name: "SeminarHall", Capacity: 80, Occupied: 75, Department: "CSE"},
		{Name: "ConferenceRoom", Capacity: 40, Occupied: 20, Department: "ECE"},
		{Name: "LabHall", Capacity: 60, Occupied: 60, Department: "CSE"},
	}
}

func testEvents() []models.Event {
	return []models.Event{
		{Name: "AIWorkshop", Department: "CSE", Venue: "SeminarHall", Participants: 75},
		{Name: "RoboticsMeetup", Department: "ECE", Venue: "ConferenceRoom", Participants: 20},
		{Name: "CulturalFest", Department: "General", Venue: "Auditorium", Participants: 150},
	}
}

type fixture struct {
	access    *AccessControl
	store     *RecordStore
	dashboard *DashboardService
}

func newFixture(t *testing.T, notifier Notifier) *fixture {
	t.Helper()

	directory, err := NewDirectory(testUsers())
	require.NoError(t, err)
	store, err := NewRecordStore(testVenues(), testEvents())
	require.NoError(t, err)

	access := NewAccessControl(directory)
	return &fixture{
		access:    access,
		store:     store,
		dashboard: NewDashboardService(access, store, notifier),
	}
}

func (f *fixture) login(t *testing.T, username string) *models.Session {
	t.Helper()

	for _, u := range testUsers() {
		if u.Username == username {
			session, err := f.access.Authenticate(u.Username, u.Password, u.Role)
			require.NoError(t, err)
			return session
		}
	}
	t.Fatalf("no test user %q", username)
	return nil
}
