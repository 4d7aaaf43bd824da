package domain

import (
	"time"

	"github.com/google/uuid"
)

// ManifestRow is one line of a trip's passenger manifest: a flat,
// denormalized view with the trip header repeated for every passenger.
// Trips with no passengers yield no rows.
type ManifestRow struct {
	// Trip fields, repeated for every passenger.
	TripID       uuid.UUID
	TripType     TripType
	Destination  string
	ScheduledAt  time.Time
	VehiclePlate string
	DriverName   string

	// Passenger fields.
	Position      int // 1-based boarding order
	PatientName   string
	PatientCPF    string
	CompanionName string // empty when travelling alone
	Seats         int
}
