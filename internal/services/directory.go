package services

import (
	"fmt"

	"governance-dashboard/internal/status"
	"governance-dashboard/models"
)

// Directory is the read-only user table consulted at login.
type Directory struct {
	users map[string]models.User
}

func NewDirectory(users []models.User) (*Directory, error) {
	d := &Directory{users: make(map[string]models.User, len(users))}
	for _, u := range users {
		if u.Username == "" {
			return nil, fmt.Errorf("%w: user with empty username", status.ErrConfiguration)
		}
		if !u.Role.Valid() {
			return nil, fmt.Errorf("%w: user %q has unknown role %q", status.ErrConfiguration, u.Username, u.Role)
		}
		if _, dup := d.users[u.Username]; dup {
			return nil, fmt.Errorf("%w: duplicate user %q", status.ErrConfiguration, u.Username)
		}
		d.users[u.Username] = u
	}
	return d, nil
}

func (d *Directory) Lookup(username string) (models.User, bool) {
	u, ok := d.users[username]
	return u, ok
}

func (d *Directory) Len() int {
	return len(d.users)
}
