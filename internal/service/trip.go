// Package service contains the business logic for the patient transport API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/patient-transport/internal/domain"
	"github.com/pkordes/patient-transport/internal/events"
	"github.com/pkordes/patient-transport/internal/repo"
)

// TripService is the trip lifecycle controller. Every mutating method runs as
// one unit of work: the trip row is loaded and locked, all preconditions are
// checked, and the trip together with any vehicle or patient status change is
// written atomically. Nothing is written when a precondition fails.
type TripService struct {
	store  repo.Store
	events events.Publisher
	now    func() time.Time
}

// NewTripService constructs a TripService. A nil publisher disables events.
func NewTripService(store repo.Store, pub events.Publisher) *TripService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &TripService{store: store, events: pub, now: time.Now}
}

// Create validates and persists a new planned trip and reserves its vehicle.
// Returns domain.ErrValidation for invalid fields, domain.ErrVehicleNotFound or
// domain.ErrDriverNotFound for unknown references, and
// domain.ErrVehicleUnavailable when the vehicle already serves another trip.
// Passengers and waypoints are added through their own operations.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip.Status = domain.TripStatusPlanned
	trip.Passengers = []domain.Passenger{}
	trip.Waypoints = []uuid.UUID{}
	if err := trip.Validate(); err != nil {
		return domain.Trip{}, err
	}

	var created domain.Trip
	err := s.store.WithinTx(ctx, func(ctx context.Context, r repo.Repos) error {
		if err := checkVehicleFree(ctx, r, trip.VehicleID, 0); err != nil {
			return err
		}
		if _, err := r.Drivers.GetByID(ctx, trip.DriverID); err != nil {
			return err
		}
		var err error
		if created, err = r.Trips.Create(ctx, trip); err != nil {
			return err
		}
		return newEffects(r).reserveVehicle(ctx, created.VehicleID)
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	s.publish(ctx, created, domain.TripEventCreated, nil)
	return created, nil
}

// GetByID returns a single trip by ID.
// Returns domain.ErrTripNotFound if no trip with that ID exists.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.store.Repos().Trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// List returns one page of trips and the total count, optionally filtered by
// status. Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, status *domain.TripStatus, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.store.Repos().Trips.ListPaged(ctx, status, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Edit changes trip fields. Terminal trips return domain.ErrTripLocked.
//
// A new vehicle must exist, be free and seat everyone already on board; the
// old vehicle is released and the new one reserved. A status change must
// follow the lifecycle diagram, and entering completed or cancelled releases
// the vehicle and every passenger exactly as Complete and Cancel do.
func (s *TripService) Edit(ctx context.Context, id uuid.UUID, upd domain.TripUpdate) (domain.Trip, error) {
	var kind domain.TripEventKind
	trip, err := s.mutate(ctx, id, func(ctx context.Context, r repo.Repos, trip *domain.Trip) error {
		if err := trip.EnsureMutable(); err != nil {
			return err
		}
		before := trip.Clone()
		upd.Apply(trip)
		if err := trip.Validate(); err != nil {
			return err
		}
		if trip.DriverID != before.DriverID {
			if _, err := r.Drivers.GetByID(ctx, trip.DriverID); err != nil {
				return err
			}
		}

		kind = domain.TripEventEdited
		if trip.Status != before.Status {
			next := trip.Status
			trip.Status = before.Status
			if err := trip.TransitionTo(next); err != nil {
				return err
			}
			kind = domain.EventForStatus(next)
		}

		fx := newEffects(r)
		vehicleChanged := trip.VehicleID != before.VehicleID
		if vehicleChanged {
			if err := checkVehicleFree(ctx, r, trip.VehicleID, trip.OccupiedSeats()); err != nil {
				return err
			}
			if err := fx.releaseVehicle(ctx, before.VehicleID); err != nil {
				return err
			}
			if !trip.Status.ReleasesResources() {
				if err := fx.reserveVehicle(ctx, trip.VehicleID); err != nil {
					return err
				}
			}
		}
		if trip.Status != before.Status && trip.Status.ReleasesResources() {
			// A replaced vehicle was released above and the new one never reserved.
			if !vehicleChanged {
				if err := fx.releaseVehicle(ctx, trip.VehicleID); err != nil {
					return err
				}
			}
			return fx.releasePassengers(ctx, trip.Passengers)
		}
		return nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Edit: %w", err)
	}
	s.publish(ctx, trip, kind, nil)
	return trip, nil
}

// Delete removes a trip. Completed trips return
// domain.ErrCannotDeleteCompletedTrip. Deleting a planned or in-progress trip
// first releases its vehicle and passengers; a cancelled trip released them
// when it was cancelled.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	var deleted domain.Trip
	err := s.store.WithinTx(ctx, func(ctx context.Context, r repo.Repos) error {
		trip, err := r.Trips.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if trip.Status == domain.TripStatusCompleted {
			return domain.ErrCannotDeleteCompletedTrip
		}
		if !trip.Status.ReleasesResources() {
			if err := newEffects(r).releaseTrip(ctx, trip); err != nil {
				return err
			}
		}
		deleted = trip
		return r.Trips.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	s.publish(ctx, deleted, domain.TripEventDeleted, nil)
	return nil
}

// Start moves a planned trip to in_progress. Any other current status returns
// domain.ErrInvalidStateTransition. The vehicle was reserved at creation, so
// starting has no side effects on vehicles or patients.
func (s *TripService) Start(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.transition(ctx, id, domain.TripStatusInProgress)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Start: %w", err)
	}
	return trip, nil
}

// Complete moves an in-progress trip to completed and releases its vehicle
// and every passenger. Any other current status, including completed, returns
// domain.ErrInvalidStateTransition without releasing anything.
func (s *TripService) Complete(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.transition(ctx, id, domain.TripStatusCompleted)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Complete: %w", err)
	}
	return trip, nil
}

// Cancel moves a planned or in-progress trip to cancelled and releases its
// vehicle and every passenger.
func (s *TripService) Cancel(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.transition(ctx, id, domain.TripStatusCancelled)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Cancel: %w", err)
	}
	return trip, nil
}

func (s *TripService) transition(ctx context.Context, id uuid.UUID, next domain.TripStatus) (domain.Trip, error) {
	trip, err := s.mutate(ctx, id, func(ctx context.Context, r repo.Repos, trip *domain.Trip) error {
		if err := trip.TransitionTo(next); err != nil {
			return err
		}
		if next.ReleasesResources() {
			return newEffects(r).releaseTrip(ctx, *trip)
		}
		return nil
	})
	if err != nil {
		return domain.Trip{}, err
	}
	s.publish(ctx, trip, domain.EventForStatus(next), nil)
	return trip, nil
}

// mutate loads and locks the trip, lets fn change it and its collaborators,
// then persists the trip. fn returning an error discards the whole unit.
func (s *TripService) mutate(ctx context.Context, id uuid.UUID, fn func(ctx context.Context, r repo.Repos, trip *domain.Trip) error) (domain.Trip, error) {
	var updated domain.Trip
	err := s.store.WithinTx(ctx, func(ctx context.Context, r repo.Repos) error {
		trip, err := r.Trips.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(ctx, r, &trip); err != nil {
			return err
		}
		updated, err = r.Trips.Update(ctx, trip)
		return err
	})
	return updated, err
}

// publish reports a committed change. Delivery problems are the publisher's
// to log; they never fail the operation.
func (s *TripService) publish(ctx context.Context, trip domain.Trip, kind domain.TripEventKind, subject *uuid.UUID) {
	_ = s.events.Publish(ctx, domain.TripEvent{
		TripID:     trip.ID,
		Kind:       kind,
		Status:     trip.Status,
		SubjectID:  subject,
		OccurredAt: s.now().UTC(),
	})
}
