package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/patient-transport/internal/domain"
)

// SupportHouseRepo defines the read and insert operations for SupportHouses.
type SupportHouseRepo interface {
	Create(ctx context.Context, h domain.SupportHouse) (domain.SupportHouse, error)

	// GetByID returns domain.ErrSupportHouseNotFound if no house with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.SupportHouse, error)

	// List returns every support house ordered by name.
	List(ctx context.Context) ([]domain.SupportHouse, error)
}

// pgSupportHouseRepo is the Postgres implementation of SupportHouseRepo.
type pgSupportHouseRepo struct {
	db db
}

// NewSupportHouseRepo constructs a SupportHouseRepo backed by the provided db connection.
func NewSupportHouseRepo(db db) SupportHouseRepo {
	return &pgSupportHouseRepo{db: db}
}

func (r *pgSupportHouseRepo) Create(ctx context.Context, h domain.SupportHouse) (domain.SupportHouse, error) {
	const q = `
		INSERT INTO support_houses (name, address, max_occupancy, current_occupancy)
		VALUES (@name, @address, @max_occupancy, @current_occupancy)
		RETURNING id, name, address, max_occupancy, current_occupancy`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"name":              h.Name,
		"address":           h.Address,
		"max_occupancy":     h.MaxOccupancy,
		"current_occupancy": h.CurrentOccupancy,
	})
	result, err := scanSupportHouse(row)
	if err != nil {
		return domain.SupportHouse{}, wrapErr("repo.SupportHouseRepo.Create", err)
	}
	return result, nil
}

func (r *pgSupportHouseRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.SupportHouse, error) {
	const q = `
		SELECT id, name, address, max_occupancy, current_occupancy
		FROM support_houses
		WHERE id = @id`

	result, err := scanSupportHouse(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.SupportHouse{}, wrapErr("repo.SupportHouseRepo.GetByID", err)
	}
	return result, nil
}

func (r *pgSupportHouseRepo) List(ctx context.Context) ([]domain.SupportHouse, error) {
	const q = `
		SELECT id, name, address, max_occupancy, current_occupancy
		FROM support_houses
		ORDER BY name, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, wrapErr("repo.SupportHouseRepo.List", err)
	}
	defer rows.Close()

	houses := []domain.SupportHouse{}
	for rows.Next() {
		h, err := scanSupportHouse(rows)
		if err != nil {
			return nil, wrapErr("repo.SupportHouseRepo.List: scan", err)
		}
		houses = append(houses, h)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("repo.SupportHouseRepo.List: rows", err)
	}
	return houses, nil
}

func scanSupportHouse(s scanner) (domain.SupportHouse, error) {
	var (
		h  domain.SupportHouse
		id pgtype.UUID
	)
	err := s.Scan(&id, &h.Name, &h.Address, &h.MaxOccupancy, &h.CurrentOccupancy)
	if err != nil {
		return domain.SupportHouse{}, noRows(err, domain.ErrSupportHouseNotFound)
	}
	h.ID = uuid.UUID(id.Bytes)
	return h, nil
}
