package status

import "errors"

var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials or role mismatch")
	ErrUnauthenticated    = errors.New("auth: not logged in")
	ErrUnauthorized       = errors.New("auth: role not permitted to modify occupancy")
	ErrOutOfRange         = errors.New("occupancy: value outside venue capacity")
	ErrVenueNotFound      = errors.New("venue: venue not found")
	ErrConfiguration      = errors.New("seed: invalid configuration")
)
