// Package domain contains the core data types and invariants of the patient
// transport service. It depends only on small utility libraries and is
// imported by every other internal package (repo, service, handler).
package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TripType distinguishes trips leaving the home city from trips bringing
// patients back.
type TripType string

const (
	TripTypeOutbound TripType = "outbound"
	TripTypeReturn   TripType = "return"
)

// Valid reports whether t is a known trip type.
func (t TripType) Valid() bool {
	return t == TripTypeOutbound || t == TripTypeReturn
}

// Trip is the aggregate root: one vehicle, one driver, an ordered list of
// passengers and an ordered set of support-house waypoints.
//
// Passengers and Waypoints are owned by the trip. Use Clone before handing a
// trip across a storage boundary so the two copies never share backing arrays.
type Trip struct {
	ID                uuid.UUID   `json:"id"`
	Type              TripType    `json:"type"`
	Destination       string      `json:"destination"`
	DepartureLocation string      `json:"departure_location"`
	ScheduledAt       time.Time   `json:"scheduled_at"`
	Status            TripStatus  `json:"status"`
	VehicleID         uuid.UUID   `json:"vehicle_id"`
	DriverID          uuid.UUID   `json:"driver_id"`
	Passengers        []Passenger `json:"passengers"`
	Waypoints         []uuid.UUID `json:"waypoints"`
	Notes             string      `json:"notes,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// Passenger pairs a patient with an optional companion travelling alongside.
type Passenger struct {
	PatientID   uuid.UUID  `json:"patient_id"`
	CompanionID *uuid.UUID `json:"companion_id,omitempty"`
}

// HasCompanion reports whether the passenger travels with a companion.
func (p Passenger) HasCompanion() bool {
	return p.CompanionID != nil
}

// Seats returns the number of vehicle seats this passenger entry occupies.
func (p Passenger) Seats() int {
	return SeatsFor(p.HasCompanion())
}

func (p Passenger) clone() Passenger {
	if p.CompanionID != nil {
		c := *p.CompanionID
		p.CompanionID = &c
	}
	return p
}

// Clone returns a deep copy of the trip.
func (t Trip) Clone() Trip {
	out := t
	if t.Passengers != nil {
		out.Passengers = make([]Passenger, len(t.Passengers))
		for i, p := range t.Passengers {
			out.Passengers[i] = p.clone()
		}
	}
	out.Waypoints = slices.Clone(t.Waypoints)
	return out
}

// Locked reports whether the trip has reached a terminal status and therefore
// rejects every further mutation.
func (t Trip) Locked() bool {
	return t.Status.Terminal()
}

// EnsureMutable returns ErrTripLocked when the trip is terminal.
func (t Trip) EnsureMutable() error {
	if t.Locked() {
		return fmt.Errorf("%w (status %s)", ErrTripLocked, t.Status)
	}
	return nil
}

// OccupiedSeats returns the seats currently taken on the trip's vehicle.
func (t Trip) OccupiedSeats() int {
	return OccupiedSeats(t.Passengers)
}

// PassengerIndex returns the position of patientID in the passenger list, or -1.
func (t Trip) PassengerIndex(patientID uuid.UUID) int {
	return slices.IndexFunc(t.Passengers, func(p Passenger) bool {
		return p.PatientID == patientID
	})
}

// HasPassenger reports whether patientID is on the passenger list.
func (t Trip) HasPassenger(patientID uuid.UUID) bool {
	return t.PassengerIndex(patientID) >= 0
}

// HasWaypoint reports whether houseID is already a stop on this trip.
func (t Trip) HasWaypoint(houseID uuid.UUID) bool {
	return slices.Contains(t.Waypoints, houseID)
}

// PatientIDs returns the patient of every passenger entry, in list order.
func (t Trip) PatientIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(t.Passengers))
	for i, p := range t.Passengers {
		ids[i] = p.PatientID
	}
	return ids
}

// AddPassenger appends p after checking mutability, duplicate membership and
// seat availability against vehicleCapacity.
func (t *Trip) AddPassenger(p Passenger, vehicleCapacity int) error {
	if err := t.EnsureMutable(); err != nil {
		return err
	}
	if t.HasPassenger(p.PatientID) {
		return ErrDuplicatePassenger
	}
	if err := CheckSeats(vehicleCapacity, t.Passengers, p.Seats()); err != nil {
		return err
	}
	t.Passengers = append(slices.Clone(t.Passengers), p.clone())
	return nil
}

// RemovePassenger drops the entry for patientID and returns it.
func (t *Trip) RemovePassenger(patientID uuid.UUID) (Passenger, error) {
	if err := t.EnsureMutable(); err != nil {
		return Passenger{}, err
	}
	i := t.PassengerIndex(patientID)
	if i < 0 {
		return Passenger{}, ErrPassengerNotFound
	}
	removed := t.Passengers[i]
	t.Passengers = slices.Delete(slices.Clone(t.Passengers), i, i+1)
	return removed, nil
}

// SetCompanion replaces or clears the companion of an existing passenger.
// Adding a companion where none existed requires one free seat; swapping or
// clearing never fails on capacity.
func (t *Trip) SetCompanion(patientID uuid.UUID, companionID *uuid.UUID, vehicleCapacity int) error {
	if err := t.EnsureMutable(); err != nil {
		return err
	}
	i := t.PassengerIndex(patientID)
	if i < 0 {
		return ErrPassengerNotFound
	}
	current := t.Passengers[i]
	if companionID != nil && !current.HasCompanion() {
		if err := CheckSeats(vehicleCapacity, t.Passengers, 1); err != nil {
			return err
		}
	}
	t.Passengers = slices.Clone(t.Passengers)
	t.Passengers[i] = Passenger{PatientID: patientID, CompanionID: companionID}.clone()
	return nil
}

// AddWaypoint appends houseID to the stop list.
func (t *Trip) AddWaypoint(houseID uuid.UUID) error {
	if err := t.EnsureMutable(); err != nil {
		return err
	}
	if t.HasWaypoint(houseID) {
		return ErrDuplicateWaypoint
	}
	t.Waypoints = append(slices.Clone(t.Waypoints), houseID)
	return nil
}

// RemoveWaypoint drops houseID from the stop list.
func (t *Trip) RemoveWaypoint(houseID uuid.UUID) error {
	if err := t.EnsureMutable(); err != nil {
		return err
	}
	i := slices.Index(t.Waypoints, houseID)
	if i < 0 {
		return ErrWaypointNotFound
	}
	t.Waypoints = slices.Delete(slices.Clone(t.Waypoints), i, i+1)
	return nil
}

// TransitionTo moves the trip to next if the state diagram allows it.
func (t *Trip) TransitionTo(next TripStatus) error {
	if !CanTransition(t.Status, next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, t.Status, next)
	}
	t.Status = next
	return nil
}

// Validate enforces the field rules shared by create and edit.
func (t Trip) Validate() error {
	if !t.Type.Valid() {
		return fmt.Errorf("%w: type must be %q or %q", ErrValidation, TripTypeOutbound, TripTypeReturn)
	}
	if strings.TrimSpace(t.Destination) == "" {
		return fmt.Errorf("%w: destination is required", ErrValidation)
	}
	if strings.TrimSpace(t.DepartureLocation) == "" {
		return fmt.Errorf("%w: departure_location is required", ErrValidation)
	}
	if t.ScheduledAt.IsZero() {
		return fmt.Errorf("%w: scheduled_at is required", ErrValidation)
	}
	if t.VehicleID == uuid.Nil {
		return fmt.Errorf("%w: vehicle_id is required", ErrValidation)
	}
	if t.DriverID == uuid.Nil {
		return fmt.Errorf("%w: driver_id is required", ErrValidation)
	}
	return nil
}
