// manifest.go implements GET /trips/{id}/manifest.
// Returns the trip's passenger list as a flat table.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).

package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/pkordes/patient-transport/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV manifest.
var csvHeaders = []string{
	"trip_id", "trip_type", "destination", "scheduled_at",
	"vehicle_plate", "driver_name", "position",
	"patient_name", "patient_cpf", "companion_name", "seats",
}

// GetManifest implements GET /trips/{id}/manifest.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetManifest(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var format *ManifestFormat
	if !queryParam(w, r, "format", &format) {
		return
	}
	if format != nil && *format != Csv && *format != Json {
		requestError(w, http.StatusBadRequest, "invalid_parameter", "format must be csv or json")
		return
	}

	rows, err := s.manifest.Manifest(r.Context(), tripID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if format != nil && *format == Csv {
		writeCSV(w, rows)
		return
	}
	writeJSON(w, http.StatusOK, buildJSONManifest(rows))
}

// buildJSONManifest converts domain rows to their wire representation.
func buildJSONManifest(rows []domain.ManifestRow) []ManifestRow {
	out := make([]ManifestRow, 0, len(rows))
	for _, r := range rows {
		row := ManifestRow{
			TripID:       r.TripID,
			TripType:     string(r.TripType),
			Destination:  r.Destination,
			ScheduledAt:  r.ScheduledAt,
			VehiclePlate: r.VehiclePlate,
			DriverName:   r.DriverName,
			Position:     r.Position,
			PatientName:  r.PatientName,
			PatientCPF:   r.PatientCPF,
			Seats:        r.Seats,
		}
		if r.CompanionName != "" {
			row.CompanionName = &r.CompanionName
		}
		out = append(out, row)
	}
	return out
}

// writeCSV encodes domain rows as CSV with a header line.
func writeCSV(w http.ResponseWriter, rows []domain.ManifestRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(manifestRowToCSVRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// manifestRowToCSVRecord encodes a domain.ManifestRow as a flat string slice.
func manifestRowToCSVRecord(r domain.ManifestRow) []string {
	return []string{
		r.TripID.String(),
		string(r.TripType),
		r.Destination,
		r.ScheduledAt.UTC().Format(time.RFC3339),
		r.VehiclePlate,
		r.DriverName,
		strconv.Itoa(r.Position),
		r.PatientName,
		r.PatientCPF,
		r.CompanionName,
		strconv.Itoa(r.Seats),
	}
}
