package handler_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/patient-transport/internal/domain"
	"github.com/pkordes/patient-transport/internal/handler"
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	create            func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID           func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list              func(ctx context.Context, status *domain.TripStatus, p domain.PaginationParams) ([]domain.Trip, int64, error)
	edit              func(ctx context.Context, id uuid.UUID, upd domain.TripUpdate) (domain.Trip, error)
	delete            func(ctx context.Context, id uuid.UUID) error
	start             func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	complete          func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	cancel            func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	addPassenger      func(ctx context.Context, tripID, patientID uuid.UUID, companionID *uuid.UUID) (domain.Trip, error)
	removePassenger   func(ctx context.Context, tripID, patientID uuid.UUID) (domain.Trip, error)
	updateCompanion   func(ctx context.Context, tripID, patientID uuid.UUID, companionID *uuid.UUID) (domain.Trip, error)
	addWaypoint       func(ctx context.Context, tripID, houseID uuid.UUID) (domain.Trip, error)
	removeWaypoint    func(ctx context.Context, tripID, houseID uuid.UUID) (domain.Trip, error)
	availablePatients func(ctx context.Context, tripID uuid.UUID, search string) ([]domain.Patient, error)
	capacity          func(ctx context.Context, tripID uuid.UUID) (domain.SeatUsage, error)
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) List(ctx context.Context, status *domain.TripStatus, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.list(ctx, status, p)
}
func (m *mockTripServicer) Edit(ctx context.Context, id uuid.UUID, upd domain.TripUpdate) (domain.Trip, error) {
	return m.edit(ctx, id, upd)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockTripServicer) Start(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.start(ctx, id)
}
func (m *mockTripServicer) Complete(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.complete(ctx, id)
}
func (m *mockTripServicer) Cancel(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.cancel(ctx, id)
}
func (m *mockTripServicer) AddPassenger(ctx context.Context, tripID, patientID uuid.UUID, companionID *uuid.UUID) (domain.Trip, error) {
	return m.addPassenger(ctx, tripID, patientID, companionID)
}
func (m *mockTripServicer) RemovePassenger(ctx context.Context, tripID, patientID uuid.UUID) (domain.Trip, error) {
	return m.removePassenger(ctx, tripID, patientID)
}
func (m *mockTripServicer) UpdatePassengerCompanion(ctx context.Context, tripID, patientID uuid.UUID, companionID *uuid.UUID) (domain.Trip, error) {
	return m.updateCompanion(ctx, tripID, patientID, companionID)
}
func (m *mockTripServicer) AddWaypoint(ctx context.Context, tripID, houseID uuid.UUID) (domain.Trip, error) {
	return m.addWaypoint(ctx, tripID, houseID)
}
func (m *mockTripServicer) RemoveWaypoint(ctx context.Context, tripID, houseID uuid.UUID) (domain.Trip, error) {
	return m.removeWaypoint(ctx, tripID, houseID)
}
func (m *mockTripServicer) AvailablePatients(ctx context.Context, tripID uuid.UUID, search string) ([]domain.Patient, error) {
	return m.availablePatients(ctx, tripID, search)
}
func (m *mockTripServicer) Capacity(ctx context.Context, tripID uuid.UUID) (domain.SeatUsage, error) {
	return m.capacity(ctx, tripID)
}

type mockManifestServicer struct {
	manifest func(ctx context.Context, tripID uuid.UUID) ([]domain.ManifestRow, error)
}

func (m *mockManifestServicer) Manifest(ctx context.Context, tripID uuid.UUID) ([]domain.ManifestRow, error) {
	return m.manifest(ctx, tripID)
}

type mockRosterServicer struct {
	listPatients      func(ctx context.Context) ([]domain.Patient, error)
	listCompanions    func(ctx context.Context, patientID uuid.UUID) ([]domain.Companion, error)
	listVehicles      func(ctx context.Context) ([]domain.Vehicle, error)
	listDrivers       func(ctx context.Context) ([]domain.Driver, error)
	listSupportHouses func(ctx context.Context) ([]domain.SupportHouse, error)
}

func (m *mockRosterServicer) ListPatients(ctx context.Context) ([]domain.Patient, error) {
	return m.listPatients(ctx)
}
func (m *mockRosterServicer) ListCompanions(ctx context.Context, patientID uuid.UUID) ([]domain.Companion, error) {
	return m.listCompanions(ctx, patientID)
}
func (m *mockRosterServicer) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return m.listVehicles(ctx)
}
func (m *mockRosterServicer) ListDrivers(ctx context.Context) ([]domain.Driver, error) {
	return m.listDrivers(ctx)
}
func (m *mockRosterServicer) ListSupportHouses(ctx context.Context) ([]domain.SupportHouse, error) {
	return m.listSupportHouses(ctx)
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.TripServicer     = (*mockTripServicer)(nil)
	_ handler.ManifestServicer = (*mockManifestServicer)(nil)
	_ handler.RosterServicer   = (*mockRosterServicer)(nil)
)
