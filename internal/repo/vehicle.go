package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/patient-transport/internal/domain"
)

// VehicleRepo defines the persistence operations for Vehicles.
type VehicleRepo interface {
	Create(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)

	// GetByID returns domain.ErrVehicleNotFound if no vehicle with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Vehicle, error)

	// List returns every vehicle ordered by plate.
	List(ctx context.Context) ([]domain.Vehicle, error)

	// SetStatus marks a vehicle reserved or free.
	// Returns domain.ErrVehicleNotFound if no vehicle with that ID exists.
	SetStatus(ctx context.Context, id uuid.UUID, status domain.VehicleStatus) error
}

// pgVehicleRepo is the Postgres implementation of VehicleRepo.
type pgVehicleRepo struct {
	db db
}

// NewVehicleRepo constructs a VehicleRepo backed by the provided db connection.
func NewVehicleRepo(db db) VehicleRepo {
	return &pgVehicleRepo{db: db}
}

func (r *pgVehicleRepo) Create(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	const q = `
		INSERT INTO vehicles (plate, model, capacity, status)
		VALUES (@plate, @model, @capacity, @status)
		RETURNING id, plate, model, capacity, status, created_at, updated_at`

	if v.Status == "" {
		v.Status = domain.VehicleStatusInactive
	}
	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"plate":    v.Plate,
		"model":    v.Model,
		"capacity": v.Capacity,
		"status":   string(v.Status),
	})
	result, err := scanVehicle(row)
	if err != nil {
		return domain.Vehicle{}, wrapErr("repo.VehicleRepo.Create", err)
	}
	return result, nil
}

func (r *pgVehicleRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Vehicle, error) {
	const q = `
		SELECT id, plate, model, capacity, status, created_at, updated_at
		FROM vehicles
		WHERE id = @id`

	result, err := scanVehicle(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Vehicle{}, wrapErr("repo.VehicleRepo.GetByID", err)
	}
	return result, nil
}

func (r *pgVehicleRepo) List(ctx context.Context) ([]domain.Vehicle, error) {
	const q = `
		SELECT id, plate, model, capacity, status, created_at, updated_at
		FROM vehicles
		ORDER BY plate`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, wrapErr("repo.VehicleRepo.List", err)
	}
	defer rows.Close()

	vehicles := []domain.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, wrapErr("repo.VehicleRepo.List: scan", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("repo.VehicleRepo.List: rows", err)
	}
	return vehicles, nil
}

func (r *pgVehicleRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.VehicleStatus) error {
	const q = `UPDATE vehicles SET status = @status, updated_at = now() WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "status": string(status)})
	if err != nil {
		return wrapErr("repo.VehicleRepo.SetStatus", err)
	}
	if tag.RowsAffected() == 0 {
		return wrapErr("repo.VehicleRepo.SetStatus", domain.ErrVehicleNotFound)
	}
	return nil
}

func scanVehicle(s scanner) (domain.Vehicle, error) {
	var (
		v      domain.Vehicle
		id     pgtype.UUID
		status string
	)
	err := s.Scan(&id, &v.Plate, &v.Model, &v.Capacity, &status, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return domain.Vehicle{}, noRows(err, domain.ErrVehicleNotFound)
	}
	v.ID = uuid.UUID(id.Bytes)
	v.Status = domain.VehicleStatus(status)
	return v, nil
}
