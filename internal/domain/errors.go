package domain

import (
	"errors"
	"fmt"
)

// Error families. Every specific error below wraps exactly one of these, so
// callers can match either the precise kind or the family with errors.Is.
// Handlers map families to HTTP status codes.
var (
	// ErrNotFound is returned when the requested resource does not exist.
	// Handlers should map this to HTTP 404.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned when input fails business rule validation
	// (e.g. missing destination). Handlers should map this to HTTP 422.
	ErrValidation = errors.New("validation error")

	// ErrStateConflict is returned when an operation is not allowed in the
	// trip's current lifecycle state. Handlers should map this to HTTP 409.
	ErrStateConflict = errors.New("state conflict")

	// ErrCapacityConflict is returned when a change would overfill a vehicle.
	ErrCapacityConflict = errors.New("capacity conflict")

	// ErrDuplicateEntry is returned when an entity is already a member of the
	// collection it is being added to.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrCollaboratorUnavailable wraps failures of the backing store (network,
	// driver or transaction errors). The operation is aborted without changes.
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
)

// NotFound kinds.
var (
	ErrTripNotFound         = fmt.Errorf("trip %w", ErrNotFound)
	ErrPatientNotFound      = fmt.Errorf("patient %w", ErrNotFound)
	ErrVehicleNotFound      = fmt.Errorf("vehicle %w", ErrNotFound)
	ErrDriverNotFound       = fmt.Errorf("driver %w", ErrNotFound)
	ErrCompanionNotFound    = fmt.Errorf("companion %w", ErrNotFound)
	ErrSupportHouseNotFound = fmt.Errorf("support house %w", ErrNotFound)
	ErrPassengerNotFound    = fmt.Errorf("passenger %w", ErrNotFound)
	ErrWaypointNotFound     = fmt.Errorf("waypoint %w", ErrNotFound)
)

// StateConflict kinds.
var (
	ErrTripLocked                = fmt.Errorf("%w: trip is closed for changes", ErrStateConflict)
	ErrInvalidStateTransition    = fmt.Errorf("%w: invalid state transition", ErrStateConflict)
	ErrCannotDeleteCompletedTrip = fmt.Errorf("%w: completed trips cannot be deleted", ErrStateConflict)
	ErrVehicleUnavailable        = fmt.Errorf("%w: vehicle is already assigned to a trip", ErrStateConflict)
)

// DuplicateEntry kinds.
var (
	ErrDuplicatePassenger      = fmt.Errorf("%w: patient is already a passenger on this trip", ErrDuplicateEntry)
	ErrDuplicateWaypoint       = fmt.Errorf("%w: support house is already a waypoint on this trip", ErrDuplicateEntry)
	ErrPatientAlreadyTraveling = fmt.Errorf("%w: patient is already traveling on another trip", ErrDuplicateEntry)
)

// ErrInsufficientCapacity is the kind matched by every CapacityError.
var ErrInsufficientCapacity = fmt.Errorf("%w: insufficient capacity", ErrCapacityConflict)

// CapacityError reports a rejected seat reservation together with the number
// of seats still free, so callers can render a precise message.
type CapacityError struct {
	Required  int
	Remaining int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("insufficient capacity: %d seat(s) required, %d remaining", e.Required, e.Remaining)
}

// Unwrap lets errors.Is match ErrInsufficientCapacity and ErrCapacityConflict.
func (e *CapacityError) Unwrap() error {
	return ErrInsufficientCapacity
}

// RemainingSeatsFrom extracts the remaining seat count from a capacity error
// anywhere in err's chain. ok is false when err carries no CapacityError.
func RemainingSeatsFrom(err error) (remaining int, ok bool) {
	var ce *CapacityError
	if errors.As(err, &ce) {
		return ce.Remaining, true
	}
	return 0, false
}
