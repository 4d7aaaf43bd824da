// Package handler implements the HTTP handlers for the patient transport API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, passenger.go, etc.) but all share the same Server
// struct so they can access its dependencies. The request and response shapes
// are described by spec/openapi.yaml.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/patient-transport/internal/domain"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, status *domain.TripStatus, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Edit(ctx context.Context, id uuid.UUID, upd domain.TripUpdate) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Start(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	Complete(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	Cancel(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	AddPassenger(ctx context.Context, tripID, patientID uuid.UUID, companionID *uuid.UUID) (domain.Trip, error)
	RemovePassenger(ctx context.Context, tripID, patientID uuid.UUID) (domain.Trip, error)
	UpdatePassengerCompanion(ctx context.Context, tripID, patientID uuid.UUID, companionID *uuid.UUID) (domain.Trip, error)

	AddWaypoint(ctx context.Context, tripID, houseID uuid.UUID) (domain.Trip, error)
	RemoveWaypoint(ctx context.Context, tripID, houseID uuid.UUID) (domain.Trip, error)

	AvailablePatients(ctx context.Context, tripID uuid.UUID, search string) ([]domain.Patient, error)
	Capacity(ctx context.Context, tripID uuid.UUID) (domain.SeatUsage, error)
}

// ManifestServicer defines the operation the manifest handler depends on.
type ManifestServicer interface {
	Manifest(ctx context.Context, tripID uuid.UUID) ([]domain.ManifestRow, error)
}

// RosterServicer defines the read-only entity listings.
type RosterServicer interface {
	ListPatients(ctx context.Context) ([]domain.Patient, error)
	ListCompanions(ctx context.Context, patientID uuid.UUID) ([]domain.Companion, error)
	ListVehicles(ctx context.Context) ([]domain.Vehicle, error)
	ListDrivers(ctx context.Context) ([]domain.Driver, error)
	ListSupportHouses(ctx context.Context) ([]domain.SupportHouse, error)
}

// Server holds the dependencies of every endpoint.
// Wire it in main.go via server.Routes().
type Server struct {
	trips    TripServicer
	manifest ManifestServicer
	roster   RosterServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, manifest ManifestServicer, roster RosterServicer) *Server {
	return &Server{trips: trips, manifest: manifest, roster: roster}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil)
}

// Routes returns a chi router with every endpoint registered.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Patch("/", s.EditTrip)
			r.Delete("/", s.DeleteTrip)

			r.Post("/start", s.StartTrip)
			r.Post("/complete", s.CompleteTrip)
			r.Post("/cancel", s.CancelTrip)

			r.Post("/passengers", s.AddPassenger)
			r.Delete("/passengers/{patientId}", s.RemovePassenger)
			r.Put("/passengers/{patientId}/companion", s.UpdatePassengerCompanion)

			r.Post("/waypoints", s.AddWaypoint)
			r.Delete("/waypoints/{houseId}", s.RemoveWaypoint)

			r.Get("/available-patients", s.ListAvailablePatients)
			r.Get("/capacity", s.GetCapacity)
			r.Get("/manifest", s.GetManifest)
		})
	})

	r.Get("/patients", s.ListPatients)
	r.Get("/patients/{id}/companions", s.ListCompanions)
	r.Get("/vehicles", s.ListVehicles)
	r.Get("/drivers", s.ListDrivers)
	r.Get("/support-houses", s.ListSupportHouses)

	return r
}
