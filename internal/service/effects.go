package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/patient-transport/internal/domain"
	"github.com/pkordes/patient-transport/internal/repo"
)

// effects is the only place where a trip mutation changes the status of a
// vehicle or a patient. It always operates on the repos of the enclosing unit
// of work.
type effects struct {
	r repo.Repos
}

func newEffects(r repo.Repos) effects {
	return effects{r: r}
}

func (e effects) reserveVehicle(ctx context.Context, id uuid.UUID) error {
	return e.r.Vehicles.SetStatus(ctx, id, domain.VehicleStatusInTrip)
}

func (e effects) releaseVehicle(ctx context.Context, id uuid.UUID) error {
	return e.r.Vehicles.SetStatus(ctx, id, domain.VehicleStatusInactive)
}

func (e effects) boardPatient(ctx context.Context, id uuid.UUID) error {
	return e.r.Patients.SetStatus(ctx, id, domain.PatientStatusInTrip)
}

func (e effects) releasePatient(ctx context.Context, id uuid.UUID) error {
	return e.r.Patients.SetStatus(ctx, id, domain.PatientStatusInactive)
}

func (e effects) releasePassengers(ctx context.Context, passengers []domain.Passenger) error {
	for _, p := range passengers {
		if err := e.releasePatient(ctx, p.PatientID); err != nil {
			return err
		}
	}
	return nil
}

// releaseTrip frees the trip's vehicle and all of its passengers.
func (e effects) releaseTrip(ctx context.Context, trip domain.Trip) error {
	if err := e.releaseVehicle(ctx, trip.VehicleID); err != nil {
		return err
	}
	return e.releasePassengers(ctx, trip.Passengers)
}

// checkVehicleFree verifies that vehicle id exists, is not reserved by another
// trip and can seat the given number of passengers' seats.
func checkVehicleFree(ctx context.Context, r repo.Repos, id uuid.UUID, seats int) error {
	v, err := r.Vehicles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !v.Available() {
		return fmt.Errorf("%w (vehicle %s)", domain.ErrVehicleUnavailable, v.Plate)
	}
	if seats > v.Capacity {
		return &domain.CapacityError{Required: seats, Remaining: v.Capacity}
	}
	return nil
}
