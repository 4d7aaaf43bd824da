package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/patient-transport/internal/domain"
	"github.com/pkordes/patient-transport/internal/repo"
)

// AddPassenger boards a patient, optionally with a companion, and marks the
// patient in_trip. Checks run in this order and the first failure wins:
//
//  1. the trip exists (domain.ErrTripNotFound)
//  2. the trip is not terminal (domain.ErrTripLocked)
//  3. the patient exists (domain.ErrPatientNotFound)
//  4. the patient is not already on this trip (domain.ErrDuplicatePassenger)
//  5. the patient is not traveling elsewhere (domain.ErrPatientAlreadyTraveling)
//  6. the vehicle has the seats (*domain.CapacityError)
//  7. the companion belongs to the patient (domain.ErrCompanionNotFound)
func (s *TripService) AddPassenger(ctx context.Context, tripID, patientID uuid.UUID, companionID *uuid.UUID) (domain.Trip, error) {
	passenger := domain.Passenger{PatientID: patientID, CompanionID: companionID}
	trip, err := s.mutate(ctx, tripID, func(ctx context.Context, r repo.Repos, trip *domain.Trip) error {
		if err := trip.EnsureMutable(); err != nil {
			return err
		}
		patient, err := r.Patients.GetByID(ctx, patientID)
		if err != nil {
			return err
		}
		if trip.HasPassenger(patientID) {
			return domain.ErrDuplicatePassenger
		}
		if patient.Traveling() {
			return domain.ErrPatientAlreadyTraveling
		}
		vehicle, err := r.Vehicles.GetByID(ctx, trip.VehicleID)
		if err != nil {
			return err
		}
		if err := domain.CheckSeats(vehicle.Capacity, trip.Passengers, passenger.Seats()); err != nil {
			return err
		}
		if companionID != nil {
			if err := checkCompanion(ctx, r, patientID, *companionID); err != nil {
				return err
			}
		}
		if err := trip.AddPassenger(passenger, vehicle.Capacity); err != nil {
			return err
		}
		return newEffects(r).boardPatient(ctx, patientID)
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.AddPassenger: %w", err)
	}
	s.publish(ctx, trip, domain.TripEventPassengerAdded, &patientID)
	return trip, nil
}

// RemovePassenger takes a patient off the trip and marks the patient inactive.
// Returns domain.ErrTripNotFound, domain.ErrTripLocked or
// domain.ErrPassengerNotFound when the respective precondition fails.
func (s *TripService) RemovePassenger(ctx context.Context, tripID, patientID uuid.UUID) (domain.Trip, error) {
	trip, err := s.mutate(ctx, tripID, func(ctx context.Context, r repo.Repos, trip *domain.Trip) error {
		if _, err := trip.RemovePassenger(patientID); err != nil {
			return err
		}
		return newEffects(r).releasePatient(ctx, patientID)
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.RemovePassenger: %w", err)
	}
	s.publish(ctx, trip, domain.TripEventPassengerRemoved, &patientID)
	return trip, nil
}

// UpdatePassengerCompanion sets, swaps or clears (nil companionID) the
// companion of a passenger. Adding a companion to a passenger traveling alone
// needs one free seat; swapping and clearing never fail on capacity. A given
// companion must belong to the patient (domain.ErrCompanionNotFound).
func (s *TripService) UpdatePassengerCompanion(ctx context.Context, tripID, patientID uuid.UUID, companionID *uuid.UUID) (domain.Trip, error) {
	trip, err := s.mutate(ctx, tripID, func(ctx context.Context, r repo.Repos, trip *domain.Trip) error {
		if err := trip.EnsureMutable(); err != nil {
			return err
		}
		if !trip.HasPassenger(patientID) {
			return domain.ErrPassengerNotFound
		}
		vehicle, err := r.Vehicles.GetByID(ctx, trip.VehicleID)
		if err != nil {
			return err
		}
		if err := trip.SetCompanion(patientID, companionID, vehicle.Capacity); err != nil {
			return err
		}
		if companionID != nil {
			return checkCompanion(ctx, r, patientID, *companionID)
		}
		return nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.UpdatePassengerCompanion: %w", err)
	}
	s.publish(ctx, trip, domain.TripEventCompanionUpdated, &patientID)
	return trip, nil
}

func checkCompanion(ctx context.Context, r repo.Repos, patientID, companionID uuid.UUID) error {
	companions, err := r.Patients.ListCompanions(ctx, patientID)
	if err != nil {
		return err
	}
	if !domain.ContainsCompanion(companions, companionID) {
		return domain.ErrCompanionNotFound
	}
	return nil
}
