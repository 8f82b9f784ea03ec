package services

import (
	"fmt"
	"sync"

	"governance-dashboard/internal/status"
	"governance-dashboard/models"
)

// RecordStore holds venues and events in load order. Venue occupancy is the
// only state that changes after construction.
type RecordStore struct {
	mu     sync.RWMutex
	venues []models.Venue
	index  map[string]int
	events []models.Event
}

func NewRecordStore(venues []models.Venue, events []models.Event) (*RecordStore, error) {
	s := &RecordStore{
		venues: make([]models.Venue, 0, len(venues)),
		index:  make(map[string]int, len(venues)),
		events: make([]models.Event, 0, len(events)),
	}

	for _, v := range venues {
		if v.Name == "" {
			return nil, fmt.Errorf("%w: venue with empty name", status.ErrConfiguration)
		}
		if v.Capacity <= 0 {
			return nil, fmt.Errorf("%w: venue %q has non-positive capacity %d", status.ErrConfiguration, v.Name, v.Capacity)
		}
		if v.Occupied < 0 {
			return nil, fmt.Errorf("%w: venue %q has negative occupancy %d", status.ErrConfiguration, v.Name, v.Occupied)
		}
		if _, dup := s.index[v.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate venue %q", status.ErrConfiguration, v.Name)
		}
		s.index[v.Name] = len(s.venues)
		s.venues = append(s.venues, v)
	}

	for _, e := range events {
		if e.Participants < 0 {
			return nil, fmt.Errorf("%w: event %q has negative participants %d", status.ErrConfiguration, e.Name, e.Participants)
		}
		s.events = append(s.events, e)
	}

	return s, nil
}

// Venues returns a copy of all venues in load order.
func (s *RecordStore) Venues() []models.Venue {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Venue, len(s.venues))
	copy(out, s.venues)
	return out
}

func (s *RecordStore) Venue(name string) (models.Venue, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[name]
	if !ok {
		return models.Venue{}, false
	}
	return s.venues[i], true
}

func (s *RecordStore) VenueNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.venues))
	for i, v := range s.venues {
		names[i] = v.Name
	}
	return names
}

// Events is immutable after construction, so no lock is taken.
func (s *RecordStore) Events() []models.Event {
	out := make([]models.Event, len(s.events))
	copy(out, s.events)
	return out
}

// SetOccupied validates and applies a new occupied count under the write
// lock and returns the venue as it stands after the change.
func (s *RecordStore) SetOccupied(name string, occupied int) (models.Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[name]
	if !ok {
		return models.Venue{}, fmt.Errorf("%w: %q", status.ErrVenueNotFound, name)
	}

	v := &s.venues[i]
	if occupied < 0 || occupied > v.Capacity {
		return models.Venue{}, fmt.Errorf("%w: %d not in [0, %d] for %q", status.ErrOutOfRange, occupied, v.Capacity, name)
	}

	v.Occupied = occupied
	return *v, nil
}
