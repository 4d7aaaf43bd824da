package handler

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/patient-transport/internal/domain"
)

// Wire types. Field names and JSON tags follow spec/openapi.yaml.

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorDetail describes a failed request. RemainingSeats is set only for
// insufficient_capacity errors.
type ErrorDetail struct {
	Code           string `json:"code"`
	Message        string `json:"message"`
	RemainingSeats *int   `json:"remaining_seats,omitempty"`
}

// ErrorResponse wraps every non-2xx JSON body.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// Passenger is a trip passenger entry.
type Passenger struct {
	PatientID   openapi_types.UUID  `json:"patient_id"`
	CompanionID *openapi_types.UUID `json:"companion_id,omitempty"`
	Seats       int                 `json:"seats"`
}

// Trip is the trip representation returned by every trip endpoint.
type Trip struct {
	ID                openapi_types.UUID   `json:"id"`
	Type              string               `json:"type"`
	Destination       string               `json:"destination"`
	DepartureLocation string               `json:"departure_location"`
	ScheduledAt       time.Time            `json:"scheduled_at"`
	Status            string               `json:"status"`
	VehicleID         openapi_types.UUID   `json:"vehicle_id"`
	DriverID          openapi_types.UUID   `json:"driver_id"`
	Passengers        []Passenger          `json:"passengers"`
	Waypoints         []openapi_types.UUID `json:"waypoints"`
	OccupiedSeats     int                  `json:"occupied_seats"`
	Notes             *string              `json:"notes,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

// TripList is the body of GET /trips.
type TripList struct {
	Data       []Trip     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// CreateTripRequest is the body of POST /trips.
type CreateTripRequest struct {
	Type              string              `json:"type"`
	Destination       string              `json:"destination"`
	DepartureLocation string              `json:"departure_location"`
	ScheduledAt       *time.Time          `json:"scheduled_at"`
	VehicleID         *openapi_types.UUID `json:"vehicle_id"`
	DriverID          *openapi_types.UUID `json:"driver_id"`
	Notes             *string             `json:"notes,omitempty"`
}

// UpdateTripRequest is the body of PATCH /trips/{id}. Absent fields are kept.
type UpdateTripRequest struct {
	Type              *string             `json:"type,omitempty"`
	Destination       *string             `json:"destination,omitempty"`
	DepartureLocation *string             `json:"departure_location,omitempty"`
	ScheduledAt       *time.Time          `json:"scheduled_at,omitempty"`
	VehicleID         *openapi_types.UUID `json:"vehicle_id,omitempty"`
	DriverID          *openapi_types.UUID `json:"driver_id,omitempty"`
	Notes             *string             `json:"notes,omitempty"`
	Status            *string             `json:"status,omitempty"`
}

// AddPassengerRequest is the body of POST /trips/{id}/passengers.
type AddPassengerRequest struct {
	PatientID   *openapi_types.UUID `json:"patient_id"`
	CompanionID *openapi_types.UUID `json:"companion_id,omitempty"`
}

// UpdateCompanionRequest is the body of PUT .../passengers/{patientId}/companion.
// A null or absent companion_id removes the companion.
type UpdateCompanionRequest struct {
	CompanionID *openapi_types.UUID `json:"companion_id"`
}

// AddWaypointRequest is the body of POST /trips/{id}/waypoints.
type AddWaypointRequest struct {
	SupportHouseID *openapi_types.UUID `json:"support_house_id"`
}

// CapacityResponse is the body of GET /trips/{id}/capacity.
type CapacityResponse struct {
	Capacity  int `json:"capacity"`
	Occupied  int `json:"occupied"`
	Remaining int `json:"remaining"`
}

// ManifestRow is one line of GET /trips/{id}/manifest.
type ManifestRow struct {
	TripID        openapi_types.UUID `json:"trip_id"`
	TripType      string             `json:"trip_type"`
	Destination   string             `json:"destination"`
	ScheduledAt   time.Time          `json:"scheduled_at"`
	VehiclePlate  string             `json:"vehicle_plate"`
	DriverName    string             `json:"driver_name"`
	Position      int                `json:"position"`
	PatientName   string             `json:"patient_name"`
	PatientCPF    string             `json:"patient_cpf"`
	CompanionName *string            `json:"companion_name,omitempty"`
	Seats         int                `json:"seats"`
}

// ManifestFormat selects the manifest encoding.
type ManifestFormat string

const (
	Csv  ManifestFormat = "csv"
	Json ManifestFormat = "json"
)

// ListTripsParams are the query parameters of GET /trips.
type ListTripsParams struct {
	Page   *int    `form:"page,omitempty" json:"page,omitempty"`
	Limit  *int    `form:"limit,omitempty" json:"limit,omitempty"`
	Status *string `form:"status,omitempty" json:"status,omitempty"`
}

// tripToResponse converts a domain.Trip into its wire representation.
func tripToResponse(t domain.Trip) Trip {
	resp := Trip{
		ID:                t.ID,
		Type:              string(t.Type),
		Destination:       t.Destination,
		DepartureLocation: t.DepartureLocation,
		ScheduledAt:       t.ScheduledAt,
		Status:            t.Status.String(),
		VehicleID:         t.VehicleID,
		DriverID:          t.DriverID,
		Passengers:        make([]Passenger, len(t.Passengers)),
		Waypoints:         make([]openapi_types.UUID, len(t.Waypoints)),
		OccupiedSeats:     t.OccupiedSeats(),
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
	for i, p := range t.Passengers {
		resp.Passengers[i] = Passenger{PatientID: p.PatientID, CompanionID: p.CompanionID, Seats: p.Seats()}
	}
	copy(resp.Waypoints, t.Waypoints)
	if t.Notes != "" {
		resp.Notes = &t.Notes
	}
	return resp
}
