package models

// Event is read-only at runtime. Venue names a Venue by convention only.
type Event struct {
	Name         string `json:"name" yaml:"name"`
	Department   string `json:"department" yaml:"department"`
	Venue        string `json:"venue" yaml:"venue"`
	Participants int    `json:"participants" yaml:"participants"`
}
