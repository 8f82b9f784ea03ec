package models

type Session struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username"`
	Role          Role   `json:"role"`
	Department    string `json:"department"`
}

// Clear resets the session to the unauthenticated default. Safe to call
// any number of times.
func (s *Session) Clear() {
	if s == nil {
		return
	}
	*s = Session{}
}

func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Authenticated
}
