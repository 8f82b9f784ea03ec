package models

type OccupancyStatus string

const (
	StatusFullyOccupied OccupancyStatus = "fully_occupied"
	StatusNearlyFull    OccupancyStatus = "nearly_full"
	StatusAvailable     OccupancyStatus = "available"
)

type Venue struct {
	Name       string `json:"name" yaml:"name"`
	Capacity   int    `json:"capacity" yaml:"capacity"`
	Occupied   int    `json:"occupied" yaml:"occupied"`
	Department string `json:"department" yaml:"department"`
}

// VenueStatus is a venue enriched with its computed occupancy.
type VenueStatus struct {
	Venue
	Percentage float64         `json:"percentage"`
	Status     OccupancyStatus `json:"status"`
}
