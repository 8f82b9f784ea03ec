package services

import (
	"fmt"

	"governance-dashboard/internal/status"
	"governance-dashboard/models"
)

type AccessControl struct {
	directory *Directory
}

func NewAccessControl(directory *Directory) *AccessControl {
	return &AccessControl{directory: directory}
}

// Authenticate succeeds only when username, password and asserted role all
// match the same directory record. Every failure is ErrInvalidCredentials.
func (a *AccessControl) Authenticate(username, password string, role models.Role) (*models.Session, error) {
	u, ok := a.directory.Lookup(username)
	if !ok || u.Password != password || u.Role != role {
		return nil, status.ErrInvalidCredentials
	}

	return &models.Session{
		Authenticated: true,
		Username:      u.Username,
		Role:          u.Role,
		Department:    u.Department,
	}, nil
}

func (a *AccessControl) Logout(session *models.Session) {
	session.Clear()
}

// Scope is what a session may see and change.
type Scope struct {
	Role       models.Role
	Department string
}

func (a *AccessControl) ScopeFor(session *models.Session) (Scope, error) {
	if !session.IsAuthenticated() {
		return Scope{}, status.ErrUnauthenticated
	}
	if !session.Role.Valid() {
		return Scope{}, fmt.Errorf("%w: unknown role %q", status.ErrUnauthenticated, session.Role)
	}
	return Scope{Role: session.Role, Department: session.Department}, nil
}

// AuthorizeOccupancyChange gates the only mutating operation.
func (a *AccessControl) AuthorizeOccupancyChange(session *models.Session) error {
	scope, err := a.ScopeFor(session)
	if err != nil {
		return status.ErrUnauthorized
	}
	if !scope.CanSetOccupancy() {
		return status.ErrUnauthorized
	}
	return nil
}

func (s Scope) CanViewEvent(e models.Event) bool {
	switch s.Role {
	case models.RoleEventCoordinator:
		return e.Department == s.Department
	case models.RoleHOD, models.RoleDean, models.RoleInstitutionalHead, models.RoleAdmin:
		return false
	default:
		return false
	}
}

func (s Scope) CanViewVenue(v models.Venue) bool {
	switch s.Role {
	case models.RoleHOD:
		return v.Department == s.Department
	case models.RoleDean, models.RoleInstitutionalHead, models.RoleAdmin:
		return true
	case models.RoleEventCoordinator:
		return false
	default:
		return false
	}
}

func (s Scope) CanSetOccupancy() bool {
	return s.Role == models.RoleAdmin
}
