package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/patient-transport/internal/domain"
	"github.com/pkordes/patient-transport/internal/repo"
)

// AddWaypoint appends a support house to the trip's route. Returns
// domain.ErrTripNotFound, domain.ErrTripLocked, domain.ErrDuplicateWaypoint or
// domain.ErrSupportHouseNotFound, checked in that order. The support house's
// occupancy is not consulted.
func (s *TripService) AddWaypoint(ctx context.Context, tripID, houseID uuid.UUID) (domain.Trip, error) {
	trip, err := s.mutate(ctx, tripID, func(ctx context.Context, r repo.Repos, trip *domain.Trip) error {
		if err := trip.EnsureMutable(); err != nil {
			return err
		}
		if trip.HasWaypoint(houseID) {
			return domain.ErrDuplicateWaypoint
		}
		if _, err := r.SupportHouses.GetByID(ctx, houseID); err != nil {
			return err
		}
		return trip.AddWaypoint(houseID)
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.AddWaypoint: %w", err)
	}
	s.publish(ctx, trip, domain.TripEventWaypointAdded, &houseID)
	return trip, nil
}

// RemoveWaypoint drops a support house from the trip's route. Returns
// domain.ErrTripNotFound, domain.ErrTripLocked or domain.ErrWaypointNotFound.
func (s *TripService) RemoveWaypoint(ctx context.Context, tripID, houseID uuid.UUID) (domain.Trip, error) {
	trip, err := s.mutate(ctx, tripID, func(_ context.Context, _ repo.Repos, trip *domain.Trip) error {
		return trip.RemoveWaypoint(houseID)
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.RemoveWaypoint: %w", err)
	}
	s.publish(ctx, trip, domain.TripEventWaypointRemoved, &houseID)
	return trip, nil
}
