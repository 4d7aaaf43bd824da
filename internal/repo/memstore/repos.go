package memstore

import (
	"cmp"
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/patient-transport/internal/domain"
)

type tripRepo struct{ v view }

func (r *tripRepo) Create(_ context.Context, trip domain.Trip) (domain.Trip, error) {
	var out domain.Trip
	err := r.v.do("Trips.Create", func(st *state, now time.Time) error {
		trip = trip.Clone()
		trip.ID = newID(trip.ID)
		trip.CreatedAt, trip.UpdatedAt = now, now
		if trip.Passengers == nil {
			trip.Passengers = []domain.Passenger{}
		}
		if trip.Waypoints == nil {
			trip.Waypoints = []uuid.UUID{}
		}
		st.trips[trip.ID] = trip
		out = trip.Clone()
		return nil
	})
	return out, err
}

func (r *tripRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Trip, error) {
	var out domain.Trip
	err := r.v.do("Trips.GetByID", func(st *state, _ time.Time) error {
		t, ok := st.trips[id]
		if !ok {
			return domain.ErrTripNotFound
		}
		out = t.Clone()
		return nil
	})
	return out, err
}

// GetForUpdate needs no extra locking: units of work are already serialized.
func (r *tripRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return r.GetByID(ctx, id)
}

func (r *tripRepo) ListPaged(_ context.Context, status *domain.TripStatus, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	var (
		out   []domain.Trip
		total int64
	)
	err := r.v.do("Trips.ListPaged", func(st *state, _ time.Time) error {
		all := sortedValues(st.trips, func(a, b domain.Trip) int {
			return cmp.Or(b.ScheduledAt.Compare(a.ScheduledAt), cmp.Compare(a.ID.String(), b.ID.String()))
		})
		matching := make([]domain.Trip, 0, len(all))
		for _, t := range all {
			if status == nil || t.Status == *status {
				matching = append(matching, t)
			}
		}
		total = int64(len(matching))
		out = []domain.Trip{}
		for i := max(p.Offset(), 0); i < len(matching) && len(out) < p.Limit; i++ {
			out = append(out, matching[i].Clone())
		}
		return nil
	})
	return out, total, err
}

func (r *tripRepo) Update(_ context.Context, trip domain.Trip) (domain.Trip, error) {
	var out domain.Trip
	err := r.v.do("Trips.Update", func(st *state, now time.Time) error {
		existing, ok := st.trips[trip.ID]
		if !ok {
			return domain.ErrTripNotFound
		}
		trip = trip.Clone()
		trip.CreatedAt = existing.CreatedAt
		trip.UpdatedAt = now
		st.trips[trip.ID] = trip
		out = trip.Clone()
		return nil
	})
	return out, err
}

func (r *tripRepo) Delete(_ context.Context, id uuid.UUID) error {
	return r.v.do("Trips.Delete", func(st *state, _ time.Time) error {
		if _, ok := st.trips[id]; !ok {
			return domain.ErrTripNotFound
		}
		delete(st.trips, id)
		return nil
	})
}

type patientRepo struct{ v view }

func (r *patientRepo) Create(_ context.Context, p domain.Patient) (domain.Patient, error) {
	err := r.v.do("Patients.Create", func(st *state, now time.Time) error {
		p.ID = newID(p.ID)
		if p.Status == "" {
			p.Status = domain.PatientStatusInactive
		}
		p.CreatedAt, p.UpdatedAt = now, now
		st.patients[p.ID] = p
		return nil
	})
	return p, err
}

func (r *patientRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Patient, error) {
	var out domain.Patient
	err := r.v.do("Patients.GetByID", func(st *state, _ time.Time) error {
		p, ok := st.patients[id]
		if !ok {
			return domain.ErrPatientNotFound
		}
		out = p
		return nil
	})
	return out, err
}

func (r *patientRepo) List(_ context.Context) ([]domain.Patient, error) {
	var out []domain.Patient
	err := r.v.do("Patients.List", func(st *state, _ time.Time) error {
		out = sortedValues(st.patients, func(a, b domain.Patient) int {
			return byName(a.Name, b.Name, a.ID, b.ID)
		})
		return nil
	})
	return out, err
}

func (r *patientRepo) SetStatus(_ context.Context, id uuid.UUID, status domain.PatientStatus) error {
	return r.v.do("Patients.SetStatus", func(st *state, now time.Time) error {
		p, ok := st.patients[id]
		if !ok {
			return domain.ErrPatientNotFound
		}
		p.Status = status
		p.UpdatedAt = now
		st.patients[id] = p
		return nil
	})
}

func (r *patientRepo) AddCompanion(_ context.Context, c domain.Companion) (domain.Companion, error) {
	err := r.v.do("Patients.AddCompanion", func(st *state, _ time.Time) error {
		if _, ok := st.patients[c.PatientID]; !ok {
			return domain.ErrPatientNotFound
		}
		c.ID = newID(c.ID)
		st.companions[c.ID] = c
		return nil
	})
	return c, err
}

func (r *patientRepo) ListCompanions(_ context.Context, patientID uuid.UUID) ([]domain.Companion, error) {
	var out []domain.Companion
	err := r.v.do("Patients.ListCompanions", func(st *state, _ time.Time) error {
		out = []domain.Companion{}
		for _, c := range sortedValues(st.companions, func(a, b domain.Companion) int {
			return byName(a.Name, b.Name, a.ID, b.ID)
		}) {
			if c.PatientID == patientID {
				out = append(out, c)
			}
		}
		return nil
	})
	return out, err
}

type vehicleRepo struct{ v view }

func (r *vehicleRepo) Create(_ context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	err := r.v.do("Vehicles.Create", func(st *state, now time.Time) error {
		v.ID = newID(v.ID)
		if v.Status == "" {
			v.Status = domain.VehicleStatusInactive
		}
		v.CreatedAt, v.UpdatedAt = now, now
		st.vehicles[v.ID] = v
		return nil
	})
	return v, err
}

func (r *vehicleRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Vehicle, error) {
	var out domain.Vehicle
	err := r.v.do("Vehicles.GetByID", func(st *state, _ time.Time) error {
		v, ok := st.vehicles[id]
		if !ok {
			return domain.ErrVehicleNotFound
		}
		out = v
		return nil
	})
	return out, err
}

func (r *vehicleRepo) List(_ context.Context) ([]domain.Vehicle, error) {
	var out []domain.Vehicle
	err := r.v.do("Vehicles.List", func(st *state, _ time.Time) error {
		out = sortedValues(st.vehicles, func(a, b domain.Vehicle) int {
			return byName(a.Plate, b.Plate, a.ID, b.ID)
		})
		return nil
	})
	return out, err
}

func (r *vehicleRepo) SetStatus(_ context.Context, id uuid.UUID, status domain.VehicleStatus) error {
	return r.v.do("Vehicles.SetStatus", func(st *state, now time.Time) error {
		v, ok := st.vehicles[id]
		if !ok {
			return domain.ErrVehicleNotFound
		}
		v.Status = status
		v.UpdatedAt = now
		st.vehicles[id] = v
		return nil
	})
}

type driverRepo struct{ v view }

func (r *driverRepo) Create(_ context.Context, d domain.Driver) (domain.Driver, error) {
	err := r.v.do("Drivers.Create", func(st *state, now time.Time) error {
		d.ID = newID(d.ID)
		d.CreatedAt = now
		st.drivers[d.ID] = d
		return nil
	})
	return d, err
}

func (r *driverRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Driver, error) {
	var out domain.Driver
	err := r.v.do("Drivers.GetByID", func(st *state, _ time.Time) error {
		d, ok := st.drivers[id]
		if !ok {
			return domain.ErrDriverNotFound
		}
		out = d
		return nil
	})
	return out, err
}

func (r *driverRepo) List(_ context.Context) ([]domain.Driver, error) {
	var out []domain.Driver
	err := r.v.do("Drivers.List", func(st *state, _ time.Time) error {
		out = sortedValues(st.drivers, func(a, b domain.Driver) int {
			return byName(a.Name, b.Name, a.ID, b.ID)
		})
		return nil
	})
	return out, err
}

type supportHouseRepo struct{ v view }

func (r *supportHouseRepo) Create(_ context.Context, h domain.SupportHouse) (domain.SupportHouse, error) {
	err := r.v.do("SupportHouses.Create", func(st *state, _ time.Time) error {
		h.ID = newID(h.ID)
		st.houses[h.ID] = h
		return nil
	})
	return h, err
}

func (r *supportHouseRepo) GetByID(_ context.Context, id uuid.UUID) (domain.SupportHouse, error) {
	var out domain.SupportHouse
	err := r.v.do("SupportHouses.GetByID", func(st *state, _ time.Time) error {
		h, ok := st.houses[id]
		if !ok {
			return domain.ErrSupportHouseNotFound
		}
		out = h
		return nil
	})
	return out, err
}

func (r *supportHouseRepo) List(_ context.Context) ([]domain.SupportHouse, error) {
	var out []domain.SupportHouse
	err := r.v.do("SupportHouses.List", func(st *state, _ time.Time) error {
		out = sortedValues(st.houses, func(a, b domain.SupportHouse) int {
			return byName(a.Name, b.Name, a.ID, b.ID)
		})
		return nil
	})
	return out, err
}
