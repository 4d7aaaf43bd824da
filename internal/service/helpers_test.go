package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/patient-transport/internal/domain"
	"github.com/pkordes/patient-transport/internal/repo/memstore"
	"github.com/pkordes/patient-transport/internal/service"
)

// recordingPublisher keeps every published event for later assertions.
type recordingPublisher struct {
	events []domain.TripEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev domain.TripEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) kinds() []domain.TripEventKind {
	out := make([]domain.TripEventKind, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Kind
	}
	return out
}

// fixture is a TripService over an in-memory store seeded with one vehicle
// and one driver.
type fixture struct {
	store   *memstore.Store
	svc     *service.TripService
	pub     *recordingPublisher
	vehicle domain.Vehicle
	driver  domain.Driver
}

func newFixture(t *testing.T, capacity int) *fixture {
	t.Helper()
	f := &fixture{store: memstore.New(), pub: &recordingPublisher{}}
	f.svc = service.NewTripService(f.store, f.pub)
	f.vehicle = f.newVehicle(t, capacity)
	var err error
	f.driver, err = f.store.Repos().Drivers.Create(context.Background(), domain.Driver{Name: "Carlos Souza", CNH: "01234567890"})
	require.NoError(t, err)
	return f
}

func (f *fixture) newVehicle(t *testing.T, capacity int) domain.Vehicle {
	t.Helper()
	v, err := f.store.Repos().Vehicles.Create(context.Background(), domain.Vehicle{
		Plate:    "ABC-" + uuid.NewString()[:4],
		Model:    "Sprinter",
		Capacity: capacity,
	})
	require.NoError(t, err)
	return v
}

func (f *fixture) newPatient(t *testing.T, name string) domain.Patient {
	t.Helper()
	p, err := f.store.Repos().Patients.Create(context.Background(), domain.Patient{Name: name, CPF: "123.456.789-00"})
	require.NoError(t, err)
	return p
}

func (f *fixture) newCompanion(t *testing.T, patientID uuid.UUID) domain.Companion {
	t.Helper()
	c, err := f.store.Repos().Patients.AddCompanion(context.Background(), domain.Companion{
		PatientID: patientID,
		Name:      "Maria Lima",
		Kinship:   "mother",
	})
	require.NoError(t, err)
	return c
}

func (f *fixture) newHouse(t *testing.T) domain.SupportHouse {
	t.Helper()
	h, err := f.store.Repos().SupportHouses.Create(context.Background(), domain.SupportHouse{
		Name:         "Casa de Apoio Esperança",
		Address:      "Rua das Flores, 10",
		MaxOccupancy: 20,
	})
	require.NoError(t, err)
	return h
}

func tripInput(vehicleID, driverID uuid.UUID) domain.Trip {
	return domain.Trip{
		Type:              domain.TripTypeOutbound,
		Destination:       "Hospital de Clínicas, Porto Alegre",
		DepartureLocation: "Secretaria de Saúde",
		ScheduledAt:       time.Date(2025, 6, 2, 5, 30, 0, 0, time.UTC),
		VehicleID:         vehicleID,
		DriverID:          driverID,
	}
}

func (f *fixture) newTrip(t *testing.T) domain.Trip {
	t.Helper()
	trip, err := f.svc.Create(context.Background(), tripInput(f.vehicle.ID, f.driver.ID))
	require.NoError(t, err)
	return trip
}

// board adds n fresh patients to the trip, each with a companion when
// withCompanion is set.
func (f *fixture) board(t *testing.T, tripID uuid.UUID, n int, withCompanion bool) []domain.Patient {
	t.Helper()
	out := make([]domain.Patient, 0, n)
	for range n {
		p := f.newPatient(t, "Passenger "+uuid.NewString()[:6])
		var cid *uuid.UUID
		if withCompanion {
			c := f.newCompanion(t, p.ID)
			cid = &c.ID
		}
		_, err := f.svc.AddPassenger(context.Background(), tripID, p.ID, cid)
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

func (f *fixture) trip(t *testing.T, id uuid.UUID) domain.Trip {
	t.Helper()
	trip, err := f.store.Repos().Trips.GetByID(context.Background(), id)
	require.NoError(t, err)
	return trip
}

func (f *fixture) patientStatus(t *testing.T, id uuid.UUID) domain.PatientStatus {
	t.Helper()
	p, err := f.store.Repos().Patients.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.Status
}

func (f *fixture) vehicleStatus(t *testing.T, id uuid.UUID) domain.VehicleStatus {
	t.Helper()
	v, err := f.store.Repos().Vehicles.GetByID(context.Background(), id)
	require.NoError(t, err)
	return v.Status
}

func failOn(op string) memstore.FailFunc {
	return func(got string) error {
		if got == op {
			return errors.New("connection reset by peer")
		}
		return nil
	}
}

func ptr[T any](v T) *T { return &v }
