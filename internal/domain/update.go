package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripUpdate lists the trip fields an edit may change. Nil fields are left
// alone.
type TripUpdate struct {
	Type              *TripType
	Destination       *string
	DepartureLocation *string
	ScheduledAt       *time.Time
	VehicleID         *uuid.UUID
	DriverID          *uuid.UUID
	Notes             *string
	Status            *TripStatus
}

// Apply copies every set field onto t. It does not validate; Status in
// particular is written as is and must be checked against the lifecycle.
func (u TripUpdate) Apply(t *Trip) {
	if u.Type != nil {
		t.Type = *u.Type
	}
	if u.Destination != nil {
		t.Destination = *u.Destination
	}
	if u.DepartureLocation != nil {
		t.DepartureLocation = *u.DepartureLocation
	}
	if u.ScheduledAt != nil {
		t.ScheduledAt = *u.ScheduledAt
	}
	if u.VehicleID != nil {
		t.VehicleID = *u.VehicleID
	}
	if u.DriverID != nil {
		t.DriverID = *u.DriverID
	}
	if u.Notes != nil {
		t.Notes = *u.Notes
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
}
