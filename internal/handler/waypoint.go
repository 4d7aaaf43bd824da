package handler

import "net/http"

// AddWaypoint handles POST /trips/{id}/waypoints.
func (s *Server) AddWaypoint(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var body AddWaypointRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if body.SupportHouseID == nil {
		requestError(w, http.StatusUnprocessableEntity, "validation_error", "support_house_id is required")
		return
	}

	trip, err := s.trips.AddWaypoint(r.Context(), tripID, *body.SupportHouseID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(trip))
}

// RemoveWaypoint handles DELETE /trips/{id}/waypoints/{houseId}.
func (s *Server) RemoveWaypoint(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	houseID, ok := pathUUID(w, r, "houseId")
	if !ok {
		return
	}

	trip, err := s.trips.RemoveWaypoint(r.Context(), tripID, houseID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}
