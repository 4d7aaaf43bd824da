package handler

import "net/http"

// ListAvailablePatients handles GET /trips/{id}/available-patients?q=.
// It lists the patients that can still be added to the trip.
func (s *Server) ListAvailablePatients(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var q *string
	if !queryParam(w, r, "q", &q) {
		return
	}
	search := ""
	if q != nil {
		search = *q
	}

	patients, err := s.trips.AvailablePatients(r.Context(), tripID, search)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, patients)
}

// GetCapacity handles GET /trips/{id}/capacity.
func (s *Server) GetCapacity(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	usage, err := s.trips.Capacity(r.Context(), tripID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, CapacityResponse{
		Capacity:  usage.Capacity,
		Occupied:  usage.Occupied,
		Remaining: usage.Remaining,
	})
}
