// Package occupancy computes venue occupancy percentages and status tiers.
package occupancy

import (
	"governance-dashboard/models"

	"github.com/shopspring/decimal"
)

// exactDigits is fine enough that a float64 lands on a two-decimal tie only
// when it is exactly that tie. Shortest-repr conversion would turn
// 14.374999999999998 into a tie.
const exactDigits = -30

// Percentage returns occupied/capacity*100 computed in float64 and rounded
// half-to-even to two decimals on that float's exact value, so 23/160 gives
// 14.37 (the float is 14.3749999...). A non-positive capacity yields 0.
func Percentage(capacity, occupied int) float64 {
	if capacity <= 0 {
		return 0
	}
	f := float64(occupied) / float64(capacity) * 100
	return decimal.NewFromFloatWithExponent(f, exactDigits).RoundBank(2).InexactFloat64()
}

// Classify evaluates the tiers in priority order. The nearly-full threshold
// is 85% inclusive and compared on the exact ratio, never on the rounded
// percentage.
func Classify(capacity, occupied int) models.OccupancyStatus {
	switch {
	case IsFull(capacity, occupied):
		return models.StatusFullyOccupied
	case IsHigh(capacity, occupied):
		return models.StatusNearlyFull
	default:
		return models.StatusAvailable
	}
}

func IsFull(capacity, occupied int) bool {
	return occupied >= capacity
}

// IsHigh reports occupied >= 0.85*capacity, computed in integers.
func IsHigh(capacity, occupied int) bool {
	return int64(occupied)*100 >= int64(capacity)*85
}

// Enrich attaches percentage and status to a venue.
func Enrich(v models.Venue) models.VenueStatus {
	return models.VenueStatus{
		Venue:      v,
		Percentage: Percentage(v.Capacity, v.Occupied),
		Status:     Classify(v.Capacity, v.Occupied),
	}
}
