package handler

import "net/http"

// ListPatients handles GET /patients.
func (s *Server) ListPatients(w http.ResponseWriter, r *http.Request) {
	out, err := s.roster.ListPatients(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ListCompanions handles GET /patients/{id}/companions.
func (s *Server) ListCompanions(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	out, err := s.roster.ListCompanions(r.Context(), patientID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ListVehicles handles GET /vehicles.
func (s *Server) ListVehicles(w http.ResponseWriter, r *http.Request) {
	out, err := s.roster.ListVehicles(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ListDrivers handles GET /drivers.
func (s *Server) ListDrivers(w http.ResponseWriter, r *http.Request) {
	out, err := s.roster.ListDrivers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ListSupportHouses handles GET /support-houses.
func (s *Server) ListSupportHouses(w http.ResponseWriter, r *http.Request) {
	out, err := s.roster.ListSupportHouses(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
