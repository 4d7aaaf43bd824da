package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/patient-transport/internal/domain"
	"github.com/pkordes/patient-transport/internal/repo/memstore"
	"github.com/pkordes/patient-transport/internal/service"
)

// ---- Create ----------------------------------------------------------------

func TestTripService_Create_ReservesVehicle(t *testing.T) {
	f := newFixture(t, 7)

	trip := f.newTrip(t)

	assert.NotEqual(t, uuid.Nil, trip.ID)
	assert.Equal(t, domain.TripStatusPlanned, trip.Status)
	assert.Empty(t, trip.Passengers)
	assert.Empty(t, trip.Waypoints)
	assert.Equal(t, domain.VehicleStatusInTrip, f.vehicleStatus(t, f.vehicle.ID))
	assert.Equal(t, []domain.TripEventKind{domain.TripEventCreated}, f.pub.kinds())
}

func TestTripService_Create_IgnoresInputStatusAndMembers(t *testing.T) {
	f := newFixture(t, 7)
	in := tripInput(f.vehicle.ID, f.driver.ID)
	in.Status = domain.TripStatusCompleted
	in.Passengers = []domain.Passenger{{PatientID: uuid.New()}}

	trip, err := f.svc.Create(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, domain.TripStatusPlanned, trip.Status)
	assert.Empty(t, trip.Passengers)
}

func TestTripService_Create_Validation(t *testing.T) {
	f := newFixture(t, 7)
	in := tripInput(f.vehicle.ID, f.driver.ID)
	in.Destination = "   "

	_, err := f.svc.Create(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, domain.VehicleStatusInactive, f.vehicleStatus(t, f.vehicle.ID))
}

func TestTripService_Create_VehicleNotFound(t *testing.T) {
	f := newFixture(t, 7)

	_, err := f.svc.Create(context.Background(), tripInput(uuid.New(), f.driver.ID))

	assert.ErrorIs(t, err, domain.ErrVehicleNotFound)
}

func TestTripService_Create_DriverNotFound_LeavesVehicleFree(t *testing.T) {
	f := newFixture(t, 7)

	_, err := f.svc.Create(context.Background(), tripInput(f.vehicle.ID, uuid.New()))

	assert.ErrorIs(t, err, domain.ErrDriverNotFound)
	assert.Equal(t, domain.VehicleStatusInactive, f.vehicleStatus(t, f.vehicle.ID))
}

func TestTripService_Create_VehicleAlreadyReserved(t *testing.T) {
	f := newFixture(t, 7)
	f.newTrip(t)

	_, err := f.svc.Create(context.Background(), tripInput(f.vehicle.ID, f.driver.ID))

	assert.ErrorIs(t, err, domain.ErrVehicleUnavailable)
	assert.ErrorIs(t, err, domain.ErrStateConflict)
}

// ---- Get / List ------------------------------------------------------------

func TestTripService_GetByID_NotFound(t *testing.T) {
	f := newFixture(t, 7)

	_, err := f.svc.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrTripNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_List_FiltersByStatus(t *testing.T) {
	f := newFixture(t, 7)
	planned := f.newTrip(t)
	other := f.newVehicle(t, 4)
	started, err := f.svc.Create(context.Background(), tripInput(other.ID, f.driver.ID))
	require.NoError(t, err)
	_, err = f.svc.Start(context.Background(), started.ID)
	require.NoError(t, err)

	status := domain.TripStatusPlanned
	trips, total, err := f.svc.List(context.Background(), &status, domain.NewPaginationParams(nil, nil))

	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, trips, 1)
	assert.Equal(t, planned.ID, trips[0].ID)

	all, total, err := f.svc.List(context.Background(), nil, domain.NewPaginationParams(nil, nil))
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, all, 2)
}

func TestTripService_List_Empty(t *testing.T) {
	f := newFixture(t, 7)

	trips, total, err := f.svc.List(context.Background(), nil, domain.NewPaginationParams(nil, nil))

	require.NoError(t, err)
	assert.NotNil(t, trips)
	assert.Zero(t, total)
}

// ---- Start / Complete / Cancel -----------------------------------------------

func TestTripService_Start_Twice(t *testing.T) {
	f := newFixture(t, 7)
	trip := f.newTrip(t)

	got, err := f.svc.Start(context.Background(), trip.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TripStatusInProgress, got.Status)
	assert.Equal(t, domain.VehicleStatusInTrip, f.vehicleStatus(t, f.vehicle.ID))

	_, err = f.svc.Start(context.Background(), trip.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	assert.Equal(t, domain.TripStatusInProgress, f.trip(t, trip.ID).Status)
}

func TestTripService_Start_NotFound(t *testing.T) {
	f := newFixture(t, 7)

	_, err := f.svc.Start(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrTripNotFound)
}

func TestTripService_Complete_ReleasesEverything(t *testing.T) {
	f := newFixture(t, 7)
	trip := f.newTrip(t)
	passengers := f.board(t, trip.ID, 2, false)
	_, err := f.svc.Start(context.Background(), trip.ID)
	require.NoError(t, err)

	got, err := f.svc.Complete(context.Background(), trip.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.TripStatusCompleted, got.Status)
	assert.Equal(t, domain.VehicleStatusInactive, f.vehicleStatus(t, f.vehicle.ID))
	for _, p := range passengers {
		assert.Equal(t, domain.PatientStatusInactive, f.patientStatus(t, p.ID))
	}
	// Released patients stay on the manifest of the completed trip.
	assert.Len(t, got.Passengers, 2)

	late := f.newPatient(t, "Late Comer")
	_, err = f.svc.AddPassenger(context.Background(), trip.ID, late.ID, nil)
	assert.ErrorIs(t, err, domain.ErrTripLocked)
}

func TestTripService_Complete_FromPlanned(t *testing.T) {
	f := newFixture(t, 7)
	trip := f.newTrip(t)

	_, err := f.svc.Complete(context.Background(), trip.ID)

	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	assert.Equal(t, domain.VehicleStatusInTrip, f.vehicleStatus(t, f.vehicle.ID))
}

func TestTripService_Complete_TwiceDoesNotReleaseAgain(t *testing.T) {
	f := newFixture(t, 7)
	trip := f.newTrip(t)
	p := f.board(t, trip.ID, 1, false)[0]
	_, err := f.svc.Start(context.Background(), trip.ID)
	require.NoError(t, err)
	_, err = f.svc.Complete(context.Background(), trip.ID)
	require.NoError(t, err)

	// Vehicle and patient are picked up by a new trip in the meantime.
	next := f.newTrip(t)
	_, err = f.svc.AddPassenger(context.Background(), next.ID, p.ID, nil)
	require.NoError(t, err)

	_, err = f.svc.Complete(context.Background(), trip.ID)

	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	assert.Equal(t, domain.VehicleStatusInTrip, f.vehicleStatus(t, f.vehicle.ID))
	assert.Equal(t, domain.PatientStatusInTrip, f.patientStatus(t, p.ID))
}

func TestTripService_Cancel_ReleasesEverything(t *testing.T) {
	for _, started := range []bool{false, true} {
		f := newFixture(t, 7)
		trip := f.newTrip(t)
		p := f.board(t, trip.ID, 1, false)[0]
		if started {
			_, err := f.svc.Start(context.Background(), trip.ID)
			require.NoError(t, err)
		}

		got, err := f.svc.Cancel(context.Background(), trip.ID)

		require.NoError(t, err)
		assert.Equal(t, domain.TripStatusCancelled, got.Status)
		assert.Equal(t, domain.VehicleStatusInactive, f.vehicleStatus(t, f.vehicle.ID))
		assert.Equal(t, domain.PatientStatusInactive, f.patientStatus(t, p.ID))
	}
}

func TestTripService_Cancel_Terminal(t *testing.T) {
	f := newFixture(t, 7)
	trip := f.newTrip(t)
	_, err := f.svc.Cancel(context.Background(), trip.ID)
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), trip.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	_, err = f.svc.Start(context.Background(), trip.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

func TestTripService_Complete_StoreFailureRollsBack(t *testing.T) {
	f := newFixture(t, 7)
	trip := f.newTrip(t)
	p := f.board(t, trip.ID, 1, false)[0]
	_, err := f.svc.Start(context.Background(), trip.ID)
	require.NoError(t, err)
	f.store.SetFailures(failOn("Patients.SetStatus"))

	_, err = f.svc.Complete(context.Background(), trip.ID)

	assert.ErrorIs(t, err, domain.ErrCollaboratorUnavailable)
	f.store.SetFailures(nil)
	assert.Equal(t, domain.TripStatusInProgress, f.trip(t, trip.ID).Status)
	// The vehicle was released before the failure; the rollback restores it.
	assert.Equal(t, domain.VehicleStatusInTrip, f.vehicleStatus(t, f.vehicle.ID))
	assert.Equal(t, domain.PatientStatusInTrip, f.patientStatus(t, p.ID))
}

// ---- Edit ------------------------------------------------------------------

func TestTripService_Edit_Fields(t *testing.T) {
	f := newFixture(t, 7)
	trip := f.newTrip(t)

	got, err := f.svc.Edit(context.Background(), trip.ID, domain.TripUpdate{
		Destination: ptr("Hospital São Lucas"),
		Type:        ptr(domain.TripTypeReturn),
		Notes:       ptr("wheelchair on board"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Hospital São Lucas", got.Destination)
	assert.Equal(t, domain.TripTypeReturn, got.Type)
	assert.Equal(t, "wheelchair on board", got.Notes)
	assert.Equal(t, trip.DepartureLocation, got.DepartureLocation)
	assert.Equal(t, domain.TripEventEdited, f.pub.events[len(f.pub.events)-1].Kind)
}

func TestTripService_Edit_Validation(t *testing.T) {
	f := newFixture(t, 7)
	trip := f.newTrip(t)

	_, err := f.svc.Edit(context.Background(), trip.ID, domain.TripUpdate{DepartureLocation: ptr("")})

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, trip.DepartureLocation, f.trip(t, trip.ID).DepartureLocation)
}

func TestTripService_Edit_TerminalTripIsLocked(t *testing.T) {
	for _, terminal := range []domain.TripStatus{domain.TripStatusCompleted, domain.TripStatusCancelled} {
		t.Run(terminal.String(), func(t *testing.T) {
			f := newFixture(t, 7)
			trip := f.newTrip(t)
			_, err := f.svc.Start(context.Background(), trip.ID)
			require.NoError(t, err)
			_, err = f.svc.Edit(context.Background(), trip.ID, domain.TripUpdate{Status: ptr(terminal)})
			require.NoError(t, err)
			before := f.trip(t, trip.ID)

			_, err = f.svc.Edit(context.Background(), trip.ID, domain.TripUpdate{Destination: ptr("Elsewhere")})

			assert.ErrorIs(t, err, domain.ErrTripLocked)
			assert.Equal(t, before, f.trip(t, trip.ID))
		})
	}
}

func TestTripService_Edit_ChangeVehicle(t *testing.T) {
	f := newFixture(t, 7)
	trip := f.newTrip(t)
	f.board(t, trip.ID, 2, true)
	bigger := f.newVehicle(t, 10)

	got, err := f.svc.Edit(context.Background(), trip.ID, domain.TripUpdate{VehicleID: &bigger.ID})

	require.NoError(t, err)
	assert.Equal(t, bigger.ID, got.VehicleID)
	assert.Equal(t, domain.VehicleStatusInactive, f.vehicleStatus(t, f.vehicle.ID))
	assert.Equal(t, domain.VehicleStatusInTrip, f.vehicleStatus(t, bigger.ID))
}

func TestTripService_Edit_ChangeVehicleTooSmall(t *testing.T) {
	f := newFixture(t, 7)
	trip := f.newTrip(t)
	f.board(t, trip.ID, 2, true)
	small := f.newVehicle(t, 3)

	_, err := f.svc.Edit(context.Background(), trip.ID, domain.TripUpdate{VehicleID: &small.ID})

	assert.ErrorIs(t, err, domain.ErrInsufficientCapacity)
	remaining, ok := domain.RemainingSeatsFrom(err)
	require.True(t, ok)
	assert.Equal(t, 3, remaining)
	assert.Equal(t, f.vehicle.ID, f.trip(t, trip.ID).VehicleID)
	assert.Equal(t, domain.VehicleStatusInTrip, f.vehicleStatus(t, f.vehicle.ID))
	assert.Equal(t, domain.VehicleStatusInactive, f.vehicleStatus(t, small.ID))
}

func TestTripService_Edit_ChangeVehicleBusy(t *testing.T) {
	f := newFixture(t, 7)
	trip := f.newTrip(t)
	busy := f.newVehicle(t, 7)
	_, err := f.svc.Create(context.Background(), tripInput(busy.ID, f.driver.ID))
	require.NoError(t, err)

	_, err = f.svc.Edit(context.Background(), trip.ID, domain.TripUpdate{VehicleID: &busy.ID})

	assert.ErrorIs(t, err, domain.ErrVehicleUnavailable)
}

func TestTripService_Edit_UnknownDriver(t *testing.T) {
	f := newFixture(t, 7)
	trip := f.newTrip(t)

	_, err := f.svc.Edit(context.Background(), trip.ID, domain.TripUpdate{DriverID: ptr(uuid.New())})

	assert.ErrorIs(t, err, domain.ErrDriverNotFound)
}

func TestTripService_Edit_CompleteReleases(t *testing.T) {
	f := newFixture(t, 7)
	trip := f.newTrip(t)
	p := f.board(t, trip.ID, 1, false)[0]
	_, err := f.svc.Start(context.Background(), trip.ID)
	require.NoError(t, err)

	got, err := f.svc.Edit(context.Background(), trip.ID, domain.TripUpdate{Status: ptr(domain.TripStatusCompleted)})

	require.NoError(t, err)
	assert.Equal(t, domain.TripStatusCompleted, got.Status)
	assert.Equal(t, domain.VehicleStatusInactive, f.vehicleStatus(t, f.vehicle.ID))
	assert.Equal(t, domain.PatientStatusInactive, f.patientStatus(t, p.ID))
	assert.Equal(t, domain.TripEventCompleted, f.pub.events[len(f.pub.events)-1].Kind)
}

func TestTripService_Edit_CompleteWithNewVehicle(t *testing.T) {
	f := newFixture(t, 7)
	trip := f.newTrip(t)
	_, err := f.svc.Start(context.Background(), trip.ID)
	require.NoError(t, err)
	other := f.newVehicle(t, 7)

	_, err = f.svc.Edit(context.Background(), trip.ID, domain.TripUpdate{
		VehicleID: &other.ID,
		Status:    ptr(domain.TripStatusCompleted),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.VehicleStatusInactive, f.vehicleStatus(t, f.vehicle.ID))
	assert.Equal(t, domain.VehicleStatusInactive, f.vehicleStatus(t, other.ID))
}

func TestTripService_Edit_InvalidTransition(t *testing.T) {
	f := newFixture(t, 7)
	trip := f.newTrip(t)

	_, err := f.svc.Edit(context.Background(), trip.ID, domain.TripUpdate{Status: ptr(domain.TripStatusCompleted)})

	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	assert.Equal(t, domain.TripStatusPlanned, f.trip(t, trip.ID).Status)
}

// ---- Delete ----------------------------------------------------------------

func TestTripService_Delete_ReleasesResources(t *testing.T) {
	f := newFixture(t, 7)
	trip := f.newTrip(t)
	p := f.board(t, trip.ID, 1, true)[0]

	err := f.svc.Delete(context.Background(), trip.ID)

	require.NoError(t, err)
	_, err = f.svc.GetByID(context.Background(), trip.ID)
	assert.ErrorIs(t, err, domain.ErrTripNotFound)
	assert.Equal(t, domain.VehicleStatusInactive, f.vehicleStatus(t, f.vehicle.ID))
	assert.Equal(t, domain.PatientStatusInactive, f.patientStatus(t, p.ID))
}

func TestTripService_Delete_Completed(t *testing.T) {
	f := newFixture(t, 7)
	trip := f.newTrip(t)
	_, err := f.svc.Start(context.Background(), trip.ID)
	require.NoError(t, err)
	_, err = f.svc.Complete(context.Background(), trip.ID)
	require.NoError(t, err)

	err = f.svc.Delete(context.Background(), trip.ID)

	assert.ErrorIs(t, err, domain.ErrCannotDeleteCompletedTrip)
	assert.Equal(t, domain.TripStatusCompleted, f.trip(t, trip.ID).Status)
}

func TestTripService_Delete_CancelledDoesNotTouchReusedVehicle(t *testing.T) {
	f := newFixture(t, 7)
	trip := f.newTrip(t)
	_, err := f.svc.Cancel(context.Background(), trip.ID)
	require.NoError(t, err)
	f.newTrip(t) // the freed vehicle is reserved again

	err = f.svc.Delete(context.Background(), trip.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.VehicleStatusInTrip, f.vehicleStatus(t, f.vehicle.ID))
}

func TestTripService_Delete_NotFound(t *testing.T) {
	f := newFixture(t, 7)

	err := f.svc.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrTripNotFound)
}

// ---- Events ----------------------------------------------------------------

func TestTripService_PublishFailureDoesNotFailOperation(t *testing.T) {
	store := memstore.New()
	pub := &recordingPublisher{err: errors.New("bus down")}
	svc := service.NewTripService(store, pub)
	v, err := store.Repos().Vehicles.Create(context.Background(), domain.Vehicle{Plate: "XYZ-9876", Capacity: 4})
	require.NoError(t, err)
	d, err := store.Repos().Drivers.Create(context.Background(), domain.Driver{Name: "Ana"})
	require.NoError(t, err)

	trip, err := svc.Create(context.Background(), tripInput(v.ID, d.ID))

	require.NoError(t, err)
	assert.Len(t, pub.events, 1)
	assert.Equal(t, trip.ID, pub.events[0].TripID)
}

func TestTripService_NoEventOnFailure(t *testing.T) {
	f := newFixture(t, 7)
	trip := f.newTrip(t)
	published := len(f.pub.events)

	_, err := f.svc.Complete(context.Background(), trip.ID)

	require.Error(t, err)
	assert.Len(t, f.pub.events, published)
}

func TestTripService_NilPublisher(t *testing.T) {
	store := memstore.New()
	svc := service.NewTripService(store, nil)

	_, err := svc.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrTripNotFound)
}
