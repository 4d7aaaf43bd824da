package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/patient-transport/internal/domain"
	"github.com/pkordes/patient-transport/internal/repo"
)

// RosterService exposes the entity store read-only: the records trips are
// assembled from. Creating and editing these records is owned elsewhere.
type RosterService struct {
	repos repo.Repos
}

// NewRosterService constructs a RosterService reading through repos.
func NewRosterService(repos repo.Repos) *RosterService {
	return &RosterService{repos: repos}
}

// ListPatients returns every patient ordered by name.
func (s *RosterService) ListPatients(ctx context.Context) ([]domain.Patient, error) {
	out, err := s.repos.Patients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.RosterService.ListPatients: %w", err)
	}
	return nonNil(out), nil
}

// ListCompanions returns the companions registered for a patient.
// Returns domain.ErrPatientNotFound if the patient does not exist.
func (s *RosterService) ListCompanions(ctx context.Context, patientID uuid.UUID) ([]domain.Companion, error) {
	if _, err := s.repos.Patients.GetByID(ctx, patientID); err != nil {
		return nil, fmt.Errorf("service.RosterService.ListCompanions: %w", err)
	}
	out, err := s.repos.Patients.ListCompanions(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("service.RosterService.ListCompanions: %w", err)
	}
	return nonNil(out), nil
}

// ListVehicles returns every vehicle ordered by plate.
func (s *RosterService) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	out, err := s.repos.Vehicles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.RosterService.ListVehicles: %w", err)
	}
	return nonNil(out), nil
}

// ListDrivers returns every driver ordered by name.
func (s *RosterService) ListDrivers(ctx context.Context) ([]domain.Driver, error) {
	out, err := s.repos.Drivers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.RosterService.ListDrivers: %w", err)
	}
	return nonNil(out), nil
}

// ListSupportHouses returns every support house ordered by name.
func (s *RosterService) ListSupportHouses(ctx context.Context) ([]domain.SupportHouse, error) {
	out, err := s.repos.SupportHouses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.RosterService.ListSupportHouses: %w", err)
	}
	return nonNil(out), nil
}

// nonNil returns an empty slice in place of nil so JSON renders [] not null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
