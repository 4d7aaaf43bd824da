package domain

import "fmt"

// TripStatus is the lifecycle state of a trip. The set is closed: the zero
// value is not a valid status and ParseTripStatus rejects anything else.
type TripStatus uint8

const (
	TripStatusPlanned TripStatus = iota + 1
	TripStatusInProgress
	TripStatusCompleted
	TripStatusCancelled
)

// AllTripStatuses lists every valid status in lifecycle order.
var AllTripStatuses = []TripStatus{
	TripStatusPlanned,
	TripStatusInProgress,
	TripStatusCompleted,
	TripStatusCancelled,
}

func (s TripStatus) String() string {
	switch s {
	case TripStatusPlanned:
		return "planned"
	case TripStatusInProgress:
		return "in_progress"
	case TripStatusCompleted:
		return "completed"
	case TripStatusCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("TripStatus(%d)", uint8(s))
	}
}

// Valid reports whether s is one of the declared statuses.
func (s TripStatus) Valid() bool {
	return s >= TripStatusPlanned && s <= TripStatusCancelled
}

// Terminal reports whether no further lifecycle transition can leave s.
// Terminal trips are also closed for edits and membership changes.
func (s TripStatus) Terminal() bool {
	switch s {
	case TripStatusCompleted, TripStatusCancelled:
		return true
	case TripStatusPlanned, TripStatusInProgress:
		return false
	default:
		return false
	}
}

// ReleasesResources reports whether entering s frees the trip's vehicle and
// passengers for other trips.
func (s TripStatus) ReleasesResources() bool {
	return s.Terminal()
}

// MarshalText encodes the status as its lowercase name, used by JSON and pgx.
func (s TripStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: unknown trip status %d", ErrValidation, uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a lowercase status name.
func (s *TripStatus) UnmarshalText(b []byte) error {
	parsed, err := ParseTripStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseTripStatus converts a status name into a TripStatus.
func ParseTripStatus(name string) (TripStatus, error) {
	for _, s := range AllTripStatuses {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown trip status %q", ErrValidation, name)
}

// allowedTransitions is the trip state diagram as code.
var allowedTransitions = map[TripStatus][]TripStatus{
	TripStatusPlanned:    {TripStatusInProgress, TripStatusCancelled},
	TripStatusInProgress: {TripStatusCompleted, TripStatusCancelled},
}

// CanTransition reports whether a trip may move from one status to another.
func CanTransition(from, to TripStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// VehicleStatus tracks whether a vehicle is reserved by an active trip.
type VehicleStatus string

const (
	VehicleStatusInactive VehicleStatus = "inactive"
	VehicleStatusInTrip   VehicleStatus = "in_trip"
)

// PatientStatus tracks whether a patient is a passenger on an active trip.
type PatientStatus string

const (
	PatientStatusInactive PatientStatus = "inactive"
	PatientStatusInTrip   PatientStatus = "in_trip"
)
