package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/patient-transport/internal/domain"
	"github.com/pkordes/patient-transport/internal/repo"
)

// ManifestService assembles the passenger manifest of a trip: one flat row
// per passenger with the trip header repeated, ready for JSON or CSV export.
type ManifestService struct {
	repos repo.Repos
}

// NewManifestService constructs a ManifestService reading through repos.
func NewManifestService(repos repo.Repos) *ManifestService {
	return &ManifestService{repos: repos}
}

// Manifest returns one ManifestRow per passenger in boarding order.
// Trips with no passengers return an empty, non-nil slice.
func (s *ManifestService) Manifest(ctx context.Context, tripID uuid.UUID) ([]domain.ManifestRow, error) {
	trip, err := s.repos.Trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ManifestService.Manifest: %w", err)
	}
	vehicle, err := s.repos.Vehicles.GetByID(ctx, trip.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("service.ManifestService.Manifest: %w", err)
	}
	driver, err := s.repos.Drivers.GetByID(ctx, trip.DriverID)
	if err != nil {
		return nil, fmt.Errorf("service.ManifestService.Manifest: %w", err)
	}

	rows := make([]domain.ManifestRow, 0, len(trip.Passengers))
	for i, p := range trip.Passengers {
		patient, err := s.repos.Patients.GetByID(ctx, p.PatientID)
		if err != nil {
			return nil, fmt.Errorf("service.ManifestService.Manifest: %w", err)
		}
		companion, err := s.companionName(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("service.ManifestService.Manifest: %w", err)
		}
		rows = append(rows, domain.ManifestRow{
			TripID:        trip.ID,
			TripType:      trip.Type,
			Destination:   trip.Destination,
			ScheduledAt:   trip.ScheduledAt,
			VehiclePlate:  vehicle.Plate,
			DriverName:    driver.Name,
			Position:      i + 1,
			PatientName:   patient.Name,
			PatientCPF:    patient.CPF,
			CompanionName: companion,
			Seats:         p.Seats(),
		})
	}
	return rows, nil
}

func (s *ManifestService) companionName(ctx context.Context, p domain.Passenger) (string, error) {
	if !p.HasCompanion() {
		return "", nil
	}
	companions, err := s.repos.Patients.ListCompanions(ctx, p.PatientID)
	if err != nil {
		return "", err
	}
	for _, c := range companions {
		if c.ID == *p.CompanionID {
			return c.Name, nil
		}
	}
	return "", domain.ErrCompanionNotFound
}
