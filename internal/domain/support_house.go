package domain

import "github.com/google/uuid"

// SupportHouse is a lodging where patients stay near the treatment city.
// Trips reference support houses as waypoints; occupancy is maintained by the
// support house's own lifecycle and is not checked when adding a waypoint.
type SupportHouse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Address          string    `json:"address"`
	MaxOccupancy     int       `json:"max_occupancy"`
	CurrentOccupancy int       `json:"current_occupancy"`
}
