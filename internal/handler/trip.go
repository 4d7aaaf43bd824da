package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/patient-transport/internal/domain"
)

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body CreateTripRequest
	if !decodeBody(w, r, &body) {
		return
	}
	trip, err := requestToTrip(body)
	if err != nil {
		requestError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return
	}

	created, err := s.trips.Create(r.Context(), trip)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20,
// max=100) and an optional ?status= filter.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	var params ListTripsParams
	if !queryParam(w, r, "page", &params.Page) ||
		!queryParam(w, r, "limit", &params.Limit) ||
		!queryParam(w, r, "status", &params.Status) {
		return
	}
	var status *domain.TripStatus
	if params.Status != nil {
		parsed, err := domain.ParseTripStatus(*params.Status)
		if err != nil {
			writeError(w, r, err)
			return
		}
		status = &parsed
	}

	page := domain.NewPaginationParams(params.Page, params.Limit)
	trips, total, err := s.trips.List(r.Context(), status, page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]Trip, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, TripList{
		Data: data,
		Pagination: Pagination{
			Page:  page.Page,
			Limit: page.Limit,
			Total: int(total),
		},
	})
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// EditTrip handles PATCH /trips/{id}.
func (s *Server) EditTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var body UpdateTripRequest
	if !decodeBody(w, r, &body) {
		return
	}
	upd, err := requestToTripUpdate(body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := s.trips.Edit(r.Context(), id, upd)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := s.trips.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StartTrip handles POST /trips/{id}/start.
func (s *Server) StartTrip(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.trips.Start)
}

// CompleteTrip handles POST /trips/{id}/complete.
func (s *Server) CompleteTrip(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.trips.Complete)
}

// CancelTrip handles POST /trips/{id}/cancel.
func (s *Server) CancelTrip(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.trips.Cancel)
}

// transition runs one lifecycle transition on the trip named in the path.
func (s *Server) transition(w http.ResponseWriter, r *http.Request, fn func(context.Context, uuid.UUID) (domain.Trip, error)) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	trip, err := fn(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// --- mapping helpers --------------------------------------------------------

// requestToTrip converts a CreateTripRequest body into a domain.Trip.
// Returns an error if required references are missing; field rules are
// left to the service.
func requestToTrip(body CreateTripRequest) (domain.Trip, error) {
	if body.VehicleID == nil {
		return domain.Trip{}, errors.New("vehicle_id is required")
	}
	if body.DriverID == nil {
		return domain.Trip{}, errors.New("driver_id is required")
	}
	t := domain.Trip{
		Type:              domain.TripType(body.Type),
		Destination:       body.Destination,
		DepartureLocation: body.DepartureLocation,
		VehicleID:         *body.VehicleID,
		DriverID:          *body.DriverID,
	}
	if body.ScheduledAt != nil {
		t.ScheduledAt = body.ScheduledAt.UTC()
	}
	if body.Notes != nil {
		t.Notes = *body.Notes
	}
	return t, nil
}

// requestToTripUpdate converts an UpdateTripRequest body into a
// domain.TripUpdate. An unknown status name is a validation error.
func requestToTripUpdate(body UpdateTripRequest) (domain.TripUpdate, error) {
	upd := domain.TripUpdate{
		Destination:       body.Destination,
		DepartureLocation: body.DepartureLocation,
		VehicleID:         body.VehicleID,
		DriverID:          body.DriverID,
		Notes:             body.Notes,
	}
	if body.Type != nil {
		tt := domain.TripType(*body.Type)
		upd.Type = &tt
	}
	if body.ScheduledAt != nil {
		at := body.ScheduledAt.UTC()
		upd.ScheduledAt = &at
	}
	if body.Status != nil {
		status, err := domain.ParseTripStatus(*body.Status)
		if err != nil {
			return domain.TripUpdate{}, err
		}
		upd.Status = &status
	}
	return upd, nil
}
