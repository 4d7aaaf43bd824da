package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vehicle carries passengers. Capacity counts every seat available to
// patients and companions; the driver's seat is not included.
type Vehicle struct {
	ID        uuid.UUID     `json:"id"`
	Plate     string        `json:"plate"`
	Model     string        `json:"model,omitempty"`
	Capacity  int           `json:"capacity"`
	Status    VehicleStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Available reports whether the vehicle can be assigned to a new trip.
func (v Vehicle) Available() bool {
	return v.Status != VehicleStatusInTrip
}

// Driver is assigned to drive a trip's vehicle.
type Driver struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CNH       string    `json:"cnh"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
