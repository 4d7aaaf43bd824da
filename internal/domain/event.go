package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripEventKind names the change a TripEvent reports.
type TripEventKind string

const (
	TripEventCreated          TripEventKind = "created"
	TripEventEdited           TripEventKind = "edited"
	TripEventStarted          TripEventKind = "started"
	TripEventCompleted        TripEventKind = "completed"
	TripEventCancelled        TripEventKind = "cancelled"
	TripEventDeleted          TripEventKind = "deleted"
	TripEventPassengerAdded   TripEventKind = "passenger_added"
	TripEventPassengerRemoved TripEventKind = "passenger_removed"
	TripEventCompanionUpdated TripEventKind = "companion_updated"
	TripEventWaypointAdded    TripEventKind = "waypoint_added"
	TripEventWaypointRemoved  TripEventKind = "waypoint_removed"
)

// TripEvent is emitted after a trip change has been committed.
// SubjectID carries the patient or support house involved, when there is one.
type TripEvent struct {
	TripID     uuid.UUID     `json:"trip_id"`
	Kind       TripEventKind `json:"kind"`
	Status     TripStatus    `json:"status"`
	SubjectID  *uuid.UUID    `json:"subject_id,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// EventForStatus returns the lifecycle event kind that entering s produces.
func EventForStatus(s TripStatus) TripEventKind {
	switch s {
	case TripStatusInProgress:
		return TripEventStarted
	case TripStatusCompleted:
		return TripEventCompleted
	case TripStatusCancelled:
		return TripEventCancelled
	case TripStatusPlanned:
		return TripEventCreated
	default:
		return TripEventEdited
	}
}
