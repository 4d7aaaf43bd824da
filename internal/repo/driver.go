package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/patient-transport/internal/domain"
)

// DriverRepo defines the read and insert operations for Drivers.
type DriverRepo interface {
	Create(ctx context.Context, d domain.Driver) (domain.Driver, error)

	// GetByID returns domain.ErrDriverNotFound if no driver with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error)

	// List returns every driver ordered by name.
	List(ctx context.Context) ([]domain.Driver, error)
}

// pgDriverRepo is the Postgres implementation of DriverRepo.
type pgDriverRepo struct {
	db db
}

// NewDriverRepo constructs a DriverRepo backed by the provided db connection.
func NewDriverRepo(db db) DriverRepo {
	return &pgDriverRepo{db: db}
}

func (r *pgDriverRepo) Create(ctx context.Context, d domain.Driver) (domain.Driver, error) {
	const q = `
		INSERT INTO drivers (name, cnh, phone)
		VALUES (@name, @cnh, @phone)
		RETURNING id, name, cnh, phone, created_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": d.Name, "cnh": d.CNH, "phone": d.Phone})
	result, err := scanDriver(row)
	if err != nil {
		return domain.Driver{}, wrapErr("repo.DriverRepo.Create", err)
	}
	return result, nil
}

func (r *pgDriverRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error) {
	const q = `SELECT id, name, cnh, phone, created_at FROM drivers WHERE id = @id`

	result, err := scanDriver(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Driver{}, wrapErr("repo.DriverRepo.GetByID", err)
	}
	return result, nil
}

func (r *pgDriverRepo) List(ctx context.Context) ([]domain.Driver, error) {
	const q = `SELECT id, name, cnh, phone, created_at FROM drivers ORDER BY name, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, wrapErr("repo.DriverRepo.List", err)
	}
	defer rows.Close()

	drivers := []domain.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, wrapErr("repo.DriverRepo.List: scan", err)
		}
		drivers = append(drivers, d)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("repo.DriverRepo.List: rows", err)
	}
	return drivers, nil
}

func scanDriver(s scanner) (domain.Driver, error) {
	var (
		d  domain.Driver
		id pgtype.UUID
	)
	if err := s.Scan(&id, &d.Name, &d.CNH, &d.Phone, &d.CreatedAt); err != nil {
		return domain.Driver{}, noRows(err, domain.ErrDriverNotFound)
	}
	d.ID = uuid.UUID(id.Bytes)
	return d, nil
}
