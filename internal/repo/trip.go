package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/patient-transport/internal/domain"
)

// TripRepo defines the persistence operations for Trips, including their
// passenger and waypoint lists.
// The service layer depends on this interface, not the concrete Postgres implementation,
// which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip with its passengers and waypoints and returns
	// the persisted record (with DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrTripNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// GetForUpdate is GetByID that also locks the trip row until the
	// surrounding transaction ends. Outside a transaction it behaves like GetByID.
	GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// ListPaged returns one page of trips ordered by scheduled_at descending
	// and the total number of matching trips. A nil status matches every trip.
	ListPaged(ctx context.Context, status *domain.TripStatus, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// Update overwrites the mutable fields of an existing trip, replaces its
	// passenger and waypoint lists, and returns the updated record.
	// Returns domain.ErrTripNotFound if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip by ID. Returns domain.ErrTripNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// tripColumns selects a trip row plus its ordered passenger and waypoint
// lists aggregated into arrays, so one row maps to one complete aggregate.
const tripColumns = `
		t.id, t.trip_type, t.destination, t.departure_location, t.scheduled_at,
		t.status, t.vehicle_id, t.driver_id, t.notes, t.created_at, t.updated_at,
		COALESCE((SELECT array_agg(p.patient_id ORDER BY p.position)
		          FROM trip_passengers p WHERE p.trip_id = t.id), '{}') AS patient_ids,
		COALESCE((SELECT array_agg(p.companion_id ORDER BY p.position)
		          FROM trip_passengers p WHERE p.trip_id = t.id), '{}') AS companion_ids,
		COALESCE((SELECT array_agg(w.support_house_id ORDER BY w.position)
		          FROM trip_waypoints w WHERE w.trip_id = t.id), '{}') AS waypoint_ids`

// Create inserts a new trip row and its children and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (trip_type, destination, departure_location, scheduled_at,
		                   status, vehicle_id, driver_id, notes)
		VALUES (@trip_type, @destination, @departure_location, @scheduled_at,
		        @status, @vehicle_id, @driver_id, @notes)
		RETURNING id`

	var id pgtype.UUID
	err := r.db.QueryRow(ctx, q, tripArgs(trip)).Scan(&id)
	if err != nil {
		return domain.Trip{}, wrapErr("repo.TripRepo.Create", err)
	}

	trip.ID = uuid.UUID(id.Bytes)
	if err := r.replaceChildren(ctx, trip); err != nil {
		return domain.Trip{}, wrapErr("repo.TripRepo.Create", err)
	}
	return r.get(ctx, "repo.TripRepo.Create", trip.ID, false)
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return r.get(ctx, "repo.TripRepo.GetByID", id, false)
}

// GetForUpdate retrieves a trip and takes a row lock on it.
func (r *pgTripRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return r.get(ctx, "repo.TripRepo.GetForUpdate", id, true)
}

func (r *pgTripRepo) get(ctx context.Context, op string, id uuid.UUID, lock bool) (domain.Trip, error) {
	q := `SELECT ` + tripColumns + `
		FROM trips t
		WHERE t.id = @id`
	if lock {
		q += ` FOR UPDATE OF t`
	}

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, wrapErr(op, err)
	}
	return result, nil
}

// ListPaged returns one page of trips, most recently scheduled first.
func (r *pgTripRepo) ListPaged(ctx context.Context, status *domain.TripStatus, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	const countQ = `
		SELECT count(*)
		FROM trips
		WHERE (@status::text IS NULL OR status = @status::text)`

	const q = `SELECT ` + tripColumns + `
		FROM trips t
		WHERE (@status::text IS NULL OR t.status = @status::text)
		ORDER BY t.scheduled_at DESC, t.id
		LIMIT @limit OFFSET @offset`

	var statusArg *string
	if status != nil {
		s := status.String()
		statusArg = &s
	}

	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"status": statusArg}).Scan(&total); err != nil {
		return nil, 0, wrapErr("repo.TripRepo.ListPaged: count", err)
	}

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"status": statusArg,
		"limit":  p.Limit,
		"offset": p.Offset(),
	})
	if err != nil {
		return nil, 0, wrapErr("repo.TripRepo.ListPaged", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, wrapErr("repo.TripRepo.ListPaged: scan", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrapErr("repo.TripRepo.ListPaged: rows", err)
	}
	return trips, total, nil
}

// Update overwrites the mutable fields of a trip and its child lists.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET trip_type          = @trip_type,
		    destination        = @destination,
		    departure_location = @departure_location,
		    scheduled_at       = @scheduled_at,
		    status             = @status,
		    vehicle_id         = @vehicle_id,
		    driver_id          = @driver_id,
		    notes              = @notes,
		    updated_at         = now()
		WHERE id = @id`

	args := tripArgs(trip)
	args["id"] = trip.ID

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return domain.Trip{}, wrapErr("repo.TripRepo.Update", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Trip{}, wrapErr("repo.TripRepo.Update", domain.ErrTripNotFound)
	}
	if err := r.replaceChildren(ctx, trip); err != nil {
		return domain.Trip{}, wrapErr("repo.TripRepo.Update", err)
	}
	return r.get(ctx, "repo.TripRepo.Update", trip.ID, false)
}

// Delete removes a trip by primary key. Child rows go with it (ON DELETE CASCADE).
func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return wrapErr("repo.TripRepo.Delete", err)
	}
	if tag.RowsAffected() == 0 {
		return wrapErr("repo.TripRepo.Delete", domain.ErrTripNotFound)
	}
	return nil
}

// replaceChildren rewrites the passenger and waypoint rows of trip so their
// positions match the slice order.
func (r *pgTripRepo) replaceChildren(ctx context.Context, trip domain.Trip) error {
	const (
		clearPassengers = `DELETE FROM trip_passengers WHERE trip_id = @trip_id`
		clearWaypoints  = `DELETE FROM trip_waypoints WHERE trip_id = @trip_id`

		insertPassengers = `
			INSERT INTO trip_passengers (trip_id, position, patient_id, companion_id)
			SELECT @trip_id, x.ord::int, x.patient_id, x.companion_id
			FROM unnest(@patient_ids::uuid[], @companion_ids::uuid[])
			     WITH ORDINALITY AS x(patient_id, companion_id, ord)`

		insertWaypoints = `
			INSERT INTO trip_waypoints (trip_id, position, support_house_id)
			SELECT @trip_id, x.ord::int, x.support_house_id
			FROM unnest(@waypoint_ids::uuid[]) WITH ORDINALITY AS x(support_house_id, ord)`
	)

	patientIDs := make([]pgtype.UUID, len(trip.Passengers))
	companionIDs := make([]pgtype.UUID, len(trip.Passengers))
	for i, p := range trip.Passengers {
		patientIDs[i] = toPgUUID(p.PatientID)
		companionIDs[i] = toPgUUIDPtr(p.CompanionID)
	}
	waypointIDs := make([]pgtype.UUID, len(trip.Waypoints))
	for i, w := range trip.Waypoints {
		waypointIDs[i] = toPgUUID(w)
	}

	tripID := pgx.NamedArgs{"trip_id": trip.ID}
	if _, err := r.db.Exec(ctx, clearPassengers, tripID); err != nil {
		return fmt.Errorf("clear passengers: %w", err)
	}
	if _, err := r.db.Exec(ctx, clearWaypoints, tripID); err != nil {
		return fmt.Errorf("clear waypoints: %w", err)
	}
	if len(patientIDs) > 0 {
		_, err := r.db.Exec(ctx, insertPassengers, pgx.NamedArgs{
			"trip_id":       trip.ID,
			"patient_ids":   patientIDs,
			"companion_ids": companionIDs,
		})
		if err != nil {
			return fmt.Errorf("insert passengers: %w", err)
		}
	}
	if len(waypointIDs) > 0 {
		_, err := r.db.Exec(ctx, insertWaypoints, pgx.NamedArgs{
			"trip_id":      trip.ID,
			"waypoint_ids": waypointIDs,
		})
		if err != nil {
			return fmt.Errorf("insert waypoints: %w", err)
		}
	}
	return nil
}

func tripArgs(trip domain.Trip) pgx.NamedArgs {
	return pgx.NamedArgs{
		"trip_type":          string(trip.Type),
		"destination":        trip.Destination,
		"departure_location": trip.DepartureLocation,
		"scheduled_at":       trip.ScheduledAt,
		"status":             trip.Status.String(),
		"vehicle_id":         trip.VehicleID,
		"driver_id":          trip.DriverID,
		"notes":              trip.Notes,
	}
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the UUID, status and array conversions.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t            domain.Trip
		id           pgtype.UUID
		vehicleID    pgtype.UUID
		driverID     pgtype.UUID
		tripType     string
		status       string
		patientIDs   []pgtype.UUID
		companionIDs []pgtype.UUID
		waypointIDs  []pgtype.UUID
	)

	err := s.Scan(
		&id, &tripType, &t.Destination, &t.DepartureLocation, &t.ScheduledAt,
		&status, &vehicleID, &driverID, &t.Notes, &t.CreatedAt, &t.UpdatedAt,
		&patientIDs, &companionIDs, &waypointIDs,
	)
	if err != nil {
		return domain.Trip{}, noRows(err, domain.ErrTripNotFound)
	}

	t.Status, err = domain.ParseTripStatus(status)
	if err != nil {
		return domain.Trip{}, err
	}
	t.ID = uuid.UUID(id.Bytes)
	t.Type = domain.TripType(tripType)
	t.VehicleID = uuid.UUID(vehicleID.Bytes)
	t.DriverID = uuid.UUID(driverID.Bytes)

	t.Passengers = make([]domain.Passenger, len(patientIDs))
	for i, pid := range patientIDs {
		t.Passengers[i] = domain.Passenger{PatientID: uuid.UUID(pid.Bytes)}
		if i < len(companionIDs) {
			t.Passengers[i].CompanionID = fromPgUUIDPtr(companionIDs[i])
		}
	}
	t.Waypoints = make([]uuid.UUID, len(waypointIDs))
	for i, w := range waypointIDs {
		t.Waypoints[i] = uuid.UUID(w.Bytes)
	}
	return t, nil
}
