package models

type Role string

const (
	RoleEventCoordinator  Role = "Event Coordinator"
	RoleHOD               Role = "HOD"
	RoleDean              Role = "Dean"
	RoleInstitutionalHead Role = "Institutional Head"
	RoleAdmin             Role = "Admin"
)

// Roles lists every role in the order the login form offers them.
func Roles() []Role {
	return []Role{
		RoleEventCoordinator,
		RoleHOD,
		RoleDean,
		RoleInstitutionalHead,
		RoleAdmin,
	}
}

// ParseRole maps a wire label to a Role. The second result is false for
// labels outside the closed set.
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles() {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

type User struct {
	Username   string `json:"username" yaml:"username"`
	Password   string `json:"-" yaml:"password"`
	Role       Role   `json:"role" yaml:"role"`
	Department string `json:"department" yaml:"department"`
}
