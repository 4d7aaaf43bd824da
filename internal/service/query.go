package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/patient-transport/internal/domain"
)

// AvailablePatients returns the patients that could be added to the trip and
// match search by name or CPF. It reads only.
func (s *TripService) AvailablePatients(ctx context.Context, tripID uuid.UUID, search string) ([]domain.Patient, error) {
	r := s.store.Repos()
	trip, err := r.Trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.AvailablePatients: %w", err)
	}
	roster, err := r.Patients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.AvailablePatients: %w", err)
	}
	return domain.AvailablePatients(roster, trip.Passengers, search), nil
}

// RemainingCapacity returns the seats still free on the trip's vehicle.
func (s *TripService) RemainingCapacity(ctx context.Context, tripID uuid.UUID) (int, error) {
	c, err := s.Capacity(ctx, tripID)
	if err != nil {
		return 0, err
	}
	return c.Remaining, nil
}

// Capacity returns capacity, occupied and remaining seats for the trip.
func (s *TripService) Capacity(ctx context.Context, tripID uuid.UUID) (domain.SeatUsage, error) {
	r := s.store.Repos()
	trip, err := r.Trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.SeatUsage{}, fmt.Errorf("service.TripService.Capacity: %w", err)
	}
	vehicle, err := r.Vehicles.GetByID(ctx, trip.VehicleID)
	if err != nil {
		return domain.SeatUsage{}, fmt.Errorf("service.TripService.Capacity: %w", err)
	}
	return domain.NewSeatUsage(vehicle.Capacity, trip.Passengers), nil
}
