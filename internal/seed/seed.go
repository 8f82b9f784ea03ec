// Package seed loads the static users, venues and events the dashboard
// starts with.
package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"governance-dashboard/internal/services"
	"governance-dashboard/internal/status"
	"governance-dashboard/models"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultSeed []byte

type Data struct {
	Users  []models.User  `yaml:"users"`
	Venues []models.Venue `yaml:"venues"`
	Events []models.Event `yaml:"events"`
}

// Parse decodes a seed document. Unknown fields are rejected so typos in a
// hand-edited file fail loudly.
func Parse(raw []byte) (*Data, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var d Data
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("%w: %v", status.ErrConfiguration, err)
	}
	return &d, nil
}

// Load reads path, or the built-in seed when path is empty.
func Load(path string) (*Data, error) {
	if path == "" {
		return Parse(defaultSeed)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(raw)
}

// Build validates the data and constructs the directory and record store.
func (d *Data) Build() (*services.Directory, *services.RecordStore, error) {
	directory, err := services.NewDirectory(d.Users)
	if err != nil {
		return nil, nil, err
	}
	store, err := services.NewRecordStore(d.Venues, d.Events)
	if err != nil {
		return nil, nil, err
	}
	return directory, store, nil
}
