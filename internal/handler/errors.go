package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkordes/patient-transport/internal/domain"
)

// errorKind maps a domain error to its HTTP status and machine-readable code.
type errorKind struct {
	err    error
	status int
	code   string
}

// errorKinds is matched top to bottom, so specific kinds precede their family.
var errorKinds = []errorKind{
	{domain.ErrTripNotFound, http.StatusNotFound, "trip_not_found"},
	{domain.ErrPatientNotFound, http.StatusNotFound, "patient_not_found"},
	{domain.ErrVehicleNotFound, http.StatusNotFound, "vehicle_not_found"},
	{domain.ErrDriverNotFound, http.StatusNotFound, "driver_not_found"},
	{domain.ErrCompanionNotFound, http.StatusNotFound, "companion_not_found"},
	{domain.ErrSupportHouseNotFound, http.StatusNotFound, "support_house_not_found"},
	{domain.ErrPassengerNotFound, http.StatusNotFound, "passenger_not_found"},
	{domain.ErrWaypointNotFound, http.StatusNotFound, "waypoint_not_found"},
	{domain.ErrNotFound, http.StatusNotFound, "not_found"},

	{domain.ErrTripLocked, http.StatusConflict, "trip_locked"},
	{domain.ErrInvalidStateTransition, http.StatusConflict, "invalid_state_transition"},
	{domain.ErrCannotDeleteCompletedTrip, http.StatusConflict, "cannot_delete_completed_trip"},
	{domain.ErrVehicleUnavailable, http.StatusConflict, "vehicle_unavailable"},
	{domain.ErrStateConflict, http.StatusConflict, "state_conflict"},

	{domain.ErrDuplicatePassenger, http.StatusConflict, "duplicate_passenger"},
	{domain.ErrDuplicateWaypoint, http.StatusConflict, "duplicate_waypoint"},
	{domain.ErrPatientAlreadyTraveling, http.StatusConflict, "patient_already_traveling"},
	{domain.ErrDuplicateEntry, http.StatusConflict, "duplicate_entry"},

	{domain.ErrCapacityConflict, http.StatusConflict, "insufficient_capacity"},

	{domain.ErrValidation, http.StatusUnprocessableEntity, "validation_error"},
}

// writeError renders err as an ErrorResponse. Errors outside the domain
// taxonomy are logged and reported as 500 without leaking details.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	for _, k := range errorKinds {
		if !errors.Is(err, k.err) {
			continue
		}
		detail := ErrorDetail{Code: k.code, Message: publicMessage(err, k.err)}
		if remaining, ok := domain.RemainingSeatsFrom(err); ok {
			detail.RemainingSeats = &remaining
		}
		writeJSON(w, k.status, ErrorResponse{Error: detail})
		return
	}

	slog.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: ErrorDetail{
		Code:    "internal_error",
		Message: "internal server error",
	}})
}

// publicMessage returns the human-readable part of err without the
// operation prefixes added while it travelled up the stack.
func publicMessage(err, kind error) string {
	var ce *domain.CapacityError
	if errors.As(err, &ce) {
		return ce.Error()
	}
	if kind == domain.ErrValidation {
		return unwrapMessage(err)
	}
	return kind.Error()
}

// unwrapMessage extracts the human-readable part from a wrapped validation error.
// e.g. "service.TripService.Edit: validation error: destination is required" → "destination is required"
func unwrapMessage(err error) string {
	msg := err.Error()
	const marker = "validation error: "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}

// requestError writes a 4xx for a request rejected before reaching the
// service layer (malformed body, bad parameter).
func requestError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}
