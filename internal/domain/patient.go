package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Patient is a person transported for treatment. The trip engine only reads
// patients and flips their Status between inactive and in_trip.
type Patient struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	CPF       string        `json:"cpf"`
	Phone     string        `json:"phone,omitempty"`
	Status    PatientStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Traveling reports whether the patient is a passenger on an active trip.
func (p Patient) Traveling() bool {
	return p.Status == PatientStatusInTrip
}

// Companion accompanies a patient. Companions belong to exactly one patient.
type Companion struct {
	ID        uuid.UUID `json:"id"`
	PatientID uuid.UUID `json:"patient_id"`
	Name      string    `json:"name"`
	CPF       string    `json:"cpf,omitempty"`
	Kinship   string    `json:"kinship,omitempty"`
}

// ContainsCompanion reports whether id is among companions.
func ContainsCompanion(companions []Companion, id uuid.UUID) bool {
	return slices.ContainsFunc(companions, func(c Companion) bool { return c.ID == id })
}
