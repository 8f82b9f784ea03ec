package models

// RoleView is the role-shaped dashboard payload. Exactly one of the
// concrete view types below is produced per request.
type RoleView interface {
	ViewRole() Role
}

type CoordinatorView struct {
	Events []Event `json:"events"`
	Notice string  `json:"notice"`
}

type HODView struct {
	Department string        `json:"department"`
	Venues     []VenueStatus `json:"venues"`
}

type DeanView struct {
	Venues []VenueStatus `json:"venues"`
}

type InstitutionView struct {
	TotalCapacity  int           `json:"total_capacity"`
	TotalOccupied  int           `json:"total_occupied"`
	OverallPercent float64       `json:"overall_percent"`
	Venues         []VenueStatus `json:"venues"`
}

type AdminView struct {
	Venues   []string    `json:"venues"`
	Selected VenueStatus `json:"selected"`
}

func (CoordinatorView) ViewRole() Role { return RoleEventCoordinator }
func (HODView) ViewRole() Role         { return RoleHOD }
func (DeanView) ViewRole() Role        { return RoleDean }
func (InstitutionView) ViewRole() Role { return RoleInstitutionalHead }
func (AdminView) ViewRole() Role       { return RoleAdmin }
