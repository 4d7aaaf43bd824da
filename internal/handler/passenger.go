package handler

import (
	"net/http"
)

// AddPassenger handles POST /trips/{id}/passengers.
func (s *Server) AddPassenger(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var body AddPassengerRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if body.PatientID == nil {
		requestError(w, http.StatusUnprocessableEntity, "validation_error", "patient_id is required")
		return
	}

	trip, err := s.trips.AddPassenger(r.Context(), tripID, *body.PatientID, body.CompanionID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(trip))
}

// RemovePassenger handles DELETE /trips/{id}/passengers/{patientId}.
func (s *Server) RemovePassenger(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	patientID, ok := pathUUID(w, r, "patientId")
	if !ok {
		return
	}

	trip, err := s.trips.RemovePassenger(r.Context(), tripID, patientID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdatePassengerCompanion handles PUT /trips/{id}/passengers/{patientId}/companion.
func (s *Server) UpdatePassengerCompanion(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	patientID, ok := pathUUID(w, r, "patientId")
	if !ok {
		return
	}
	var body UpdateCompanionRequest
	if !decodeBody(w, r, &body) {
		return
	}

	trip, err := s.trips.UpdatePassengerCompanion(r.Context(), tripID, patientID, body.CompanionID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}
