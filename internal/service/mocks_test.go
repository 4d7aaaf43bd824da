package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/patient-transport/internal/domain"
	"github.com/pkordes/patient-transport/internal/repo"
)

// Hand-written test doubles for the repo interfaces. Each method is a
// function field; set only the ones your test needs.

type mockTripRepo struct {
	create       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	getForUpdate func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listPaged    func(ctx context.Context, status *domain.TripStatus, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getForUpdate(ctx, id)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, status *domain.TripStatus, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, status, p)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockPatientRepo struct {
	create         func(ctx context.Context, p domain.Patient) (domain.Patient, error)
	getByID        func(ctx context.Context, id uuid.UUID) (domain.Patient, error)
	list           func(ctx context.Context) ([]domain.Patient, error)
	setStatus      func(ctx context.Context, id uuid.UUID, status domain.PatientStatus) error
	addCompanion   func(ctx context.Context, c domain.Companion) (domain.Companion, error)
	listCompanions func(ctx context.Context, patientID uuid.UUID) ([]domain.Companion, error)
}

func (m *mockPatientRepo) Create(ctx context.Context, p domain.Patient) (domain.Patient, error) {
	return m.create(ctx, p)
}
func (m *mockPatientRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Patient, error) {
	return m.getByID(ctx, id)
}
func (m *mockPatientRepo) List(ctx context.Context) ([]domain.Patient, error) {
	return m.list(ctx)
}
func (m *mockPatientRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.PatientStatus) error {
	return m.setStatus(ctx, id, status)
}
func (m *mockPatientRepo) AddCompanion(ctx context.Context, c domain.Companion) (domain.Companion, error) {
	return m.addCompanion(ctx, c)
}
func (m *mockPatientRepo) ListCompanions(ctx context.Context, patientID uuid.UUID) ([]domain.Companion, error) {
	return m.listCompanions(ctx, patientID)
}

type mockVehicleRepo struct {
	create    func(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Vehicle, error)
	list      func(ctx context.Context) ([]domain.Vehicle, error)
	setStatus func(ctx context.Context, id uuid.UUID, status domain.VehicleStatus) error
}

func (m *mockVehicleRepo) Create(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	return m.create(ctx, v)
}
func (m *mockVehicleRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Vehicle, error) {
	return m.getByID(ctx, id)
}
func (m *mockVehicleRepo) List(ctx context.Context) ([]domain.Vehicle, error) {
	return m.list(ctx)
}
func (m *mockVehicleRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.VehicleStatus) error {
	return m.setStatus(ctx, id, status)
}

type mockDriverRepo struct {
	create  func(ctx context.Context, d domain.Driver) (domain.Driver, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Driver, error)
	list    func(ctx context.Context) ([]domain.Driver, error)
}

func (m *mockDriverRepo) Create(ctx context.Context, d domain.Driver) (domain.Driver, error) {
	return m.create(ctx, d)
}
func (m *mockDriverRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error) {
	return m.getByID(ctx, id)
}
func (m *mockDriverRepo) List(ctx context.Context) ([]domain.Driver, error) {
	return m.list(ctx)
}

type mockSupportHouseRepo struct {
	create  func(ctx context.Context, h domain.SupportHouse) (domain.SupportHouse, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.SupportHouse, error)
	list    func(ctx context.Context) ([]domain.SupportHouse, error)
}

func (m *mockSupportHouseRepo) Create(ctx context.Context, h domain.SupportHouse) (domain.SupportHouse, error) {
	return m.create(ctx, h)
}
func (m *mockSupportHouseRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.SupportHouse, error) {
	return m.getByID(ctx, id)
}
func (m *mockSupportHouseRepo) List(ctx context.Context) ([]domain.SupportHouse, error) {
	return m.list(ctx)
}

// compile-time checks: the mocks must satisfy the repo interfaces.
var (
	_ repo.TripRepo         = (*mockTripRepo)(nil)
	_ repo.PatientRepo      = (*mockPatientRepo)(nil)
	_ repo.VehicleRepo      = (*mockVehicleRepo)(nil)
	_ repo.DriverRepo       = (*mockDriverRepo)(nil)
	_ repo.SupportHouseRepo = (*mockSupportHouseRepo)(nil)
)
