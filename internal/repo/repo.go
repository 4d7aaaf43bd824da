// Package repo contains all database access logic for the patient transport API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/patient-transport/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// txBeginner is a db that can open a transaction. *pgxpool.Pool opens a real
// transaction; pgx.Tx opens a savepoint.
type txBeginner interface {
	db
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repos groups the repositories a unit of work operates on. All members share
// the same connection or transaction.
type Repos struct {
	Trips         TripRepo
	Patients      PatientRepo
	Vehicles      VehicleRepo
	Drivers       DriverRepo
	SupportHouses SupportHouseRepo
}

// Store hands out repositories and runs units of work atomically.
// The service layer depends on this interface; Postgres and in-memory
// implementations exist.
type Store interface {
	// Repos returns repositories for reads outside a unit of work.
	Repos() Repos

	// WithinTx runs fn with repositories bound to one transaction. If fn
	// returns an error nothing fn wrote is kept and the error is returned
	// unchanged.
	WithinTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}

// NewRepos builds every Postgres repository on top of the same db.
func NewRepos(db db) Repos {
	return Repos{
		Trips:         NewTripRepo(db),
		Patients:      NewPatientRepo(db),
		Vehicles:      NewVehicleRepo(db),
		Drivers:       NewDriverRepo(db),
		SupportHouses: NewSupportHouseRepo(db),
	}
}

// PgStore is the Postgres implementation of Store.
type PgStore struct {
	conn txBeginner
}

// NewStore constructs a Store backed by conn.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewStore(conn txBeginner) *PgStore {
	return &PgStore{conn: conn}
}

// Repos returns repositories bound to the underlying connection.
func (s *PgStore) Repos() Repos {
	return NewRepos(s.conn)
}

// WithinTx runs fn inside a transaction that is committed only when fn succeeds.
func (s *PgStore) WithinTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.PgStore.WithinTx: begin: %w: %w", domain.ErrCollaboratorUnavailable, err)
	}
	// Rollback after a successful Commit is a no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ctx, NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.PgStore.WithinTx: commit: %w: %w", domain.ErrCollaboratorUnavailable, err)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scan helpers to
// be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// wrapErr prefixes err with op. Not-found errors pass through as they are;
// anything else is a store failure and is marked ErrCollaboratorUnavailable.
func wrapErr(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrCollaboratorUnavailable, err)
}

// noRows translates pgx.ErrNoRows into the resource-specific not-found error.
func noRows(err, notFound error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}
	return err
}

func toPgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func toPgUUIDPtr(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return toPgUUID(*id)
}

func fromPgUUIDPtr(id pgtype.UUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}
	u := uuid.UUID(id.Bytes)
	return &u
}
