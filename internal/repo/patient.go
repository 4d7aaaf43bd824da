package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/patient-transport/internal/domain"
)

// PatientRepo defines the persistence operations the trip engine needs for
// Patients and their Companions.
type PatientRepo interface {
	// Create inserts a patient and returns the persisted record.
	Create(ctx context.Context, p domain.Patient) (domain.Patient, error)

	// GetByID returns domain.ErrPatientNotFound if no patient with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Patient, error)

	// List returns every patient ordered by name.
	List(ctx context.Context) ([]domain.Patient, error)

	// SetStatus changes a patient's travel status.
	// Returns domain.ErrPatientNotFound if no patient with that ID exists.
	SetStatus(ctx context.Context, id uuid.UUID, status domain.PatientStatus) error

	// AddCompanion registers a companion for the patient named in c.PatientID.
	AddCompanion(ctx context.Context, c domain.Companion) (domain.Companion, error)

	// ListCompanions returns the companions registered for a patient, ordered by name.
	ListCompanions(ctx context.Context, patientID uuid.UUID) ([]domain.Companion, error)
}

// pgPatientRepo is the Postgres implementation of PatientRepo.
type pgPatientRepo struct {
	db db
}

// NewPatientRepo constructs a PatientRepo backed by the provided db connection.
func NewPatientRepo(db db) PatientRepo {
	return &pgPatientRepo{db: db}
}

func (r *pgPatientRepo) Create(ctx context.Context, p domain.Patient) (domain.Patient, error) {
	const q = `
		INSERT INTO patients (name, cpf, phone, status)
		VALUES (@name, @cpf, @phone, @status)
		RETURNING id, name, cpf, phone, status, created_at, updated_at`

	if p.Status == "" {
		p.Status = domain.PatientStatusInactive
	}
	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"name":   p.Name,
		"cpf":    p.CPF,
		"phone":  p.Phone,
		"status": string(p.Status),
	})
	result, err := scanPatient(row)
	if err != nil {
		return domain.Patient{}, wrapErr("repo.PatientRepo.Create", err)
	}
	return result, nil
}

func (r *pgPatientRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Patient, error) {
	const q = `
		SELECT id, name, cpf, phone, status, created_at, updated_at
		FROM patients
		WHERE id = @id`

	result, err := scanPatient(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Patient{}, wrapErr("repo.PatientRepo.GetByID", err)
	}
	return result, nil
}

func (r *pgPatientRepo) List(ctx context.Context) ([]domain.Patient, error) {
	const q = `
		SELECT id, name, cpf, phone, status, created_at, updated_at
		FROM patients
		ORDER BY name, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, wrapErr("repo.PatientRepo.List", err)
	}
	defer rows.Close()

	patients := []domain.Patient{}
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, wrapErr("repo.PatientRepo.List: scan", err)
		}
		patients = append(patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("repo.PatientRepo.List: rows", err)
	}
	return patients, nil
}

func (r *pgPatientRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.PatientStatus) error {
	const q = `UPDATE patients SET status = @status, updated_at = now() WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "status": string(status)})
	if err != nil {
		return wrapErr("repo.PatientRepo.SetStatus", err)
	}
	if tag.RowsAffected() == 0 {
		return wrapErr("repo.PatientRepo.SetStatus", domain.ErrPatientNotFound)
	}
	return nil
}

func (r *pgPatientRepo) AddCompanion(ctx context.Context, c domain.Companion) (domain.Companion, error) {
	const q = `
		INSERT INTO companions (patient_id, name, cpf, kinship)
		VALUES (@patient_id, @name, @cpf, @kinship)
		RETURNING id, patient_id, name, cpf, kinship`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"patient_id": c.PatientID,
		"name":       c.Name,
		"cpf":        c.CPF,
		"kinship":    c.Kinship,
	})
	result, err := scanCompanion(row)
	if err != nil {
		return domain.Companion{}, wrapErr("repo.PatientRepo.AddCompanion", err)
	}
	return result, nil
}

func (r *pgPatientRepo) ListCompanions(ctx context.Context, patientID uuid.UUID) ([]domain.Companion, error) {
	const q = `
		SELECT id, patient_id, name, cpf, kinship
		FROM companions
		WHERE patient_id = @patient_id
		ORDER BY name, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"patient_id": patientID})
	if err != nil {
		return nil, wrapErr("repo.PatientRepo.ListCompanions", err)
	}
	defer rows.Close()

	companions := []domain.Companion{}
	for rows.Next() {
		c, err := scanCompanion(rows)
		if err != nil {
			return nil, wrapErr("repo.PatientRepo.ListCompanions: scan", err)
		}
		companions = append(companions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("repo.PatientRepo.ListCompanions: rows", err)
	}
	return companions, nil
}

func scanPatient(s scanner) (domain.Patient, error) {
	var (
		p      domain.Patient
		id     pgtype.UUID
		status string
	)
	err := s.Scan(&id, &p.Name, &p.CPF, &p.Phone, &status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Patient{}, noRows(err, domain.ErrPatientNotFound)
	}
	p.ID = uuid.UUID(id.Bytes)
	p.Status = domain.PatientStatus(status)
	return p, nil
}

func scanCompanion(s scanner) (domain.Companion, error) {
	var (
		c         domain.Companion
		id        pgtype.UUID
		patientID pgtype.UUID
	)
	err := s.Scan(&id, &patientID, &c.Name, &c.CPF, &c.Kinship)
	if err != nil {
		return domain.Companion{}, noRows(err, domain.ErrCompanionNotFound)
	}
	c.ID = uuid.UUID(id.Bytes)
	c.PatientID = uuid.UUID(patientID.Bytes)
	return c, nil
}
