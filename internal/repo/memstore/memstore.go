// Package memstore is an in-memory implementation of repo.Store.
//
// Units of work run against a private copy of the whole state which replaces
// the live state only when the work succeeds, so a failed operation leaves no
// trace. Every value crossing the store boundary is copied; callers never
// alias stored data. Intended for tests and local demos.
package memstore

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/patient-transport/internal/domain"
	"github.com/pkordes/patient-transport/internal/repo"
)

// FailFunc is consulted before every repository call with the call's name
// (e.g. "Patients.SetStatus"). A non-nil result is returned from that call
// instead of touching the state. Used by tests to simulate store outages.
type FailFunc func(op string) error

// Store is a mutex-guarded in-memory repo.Store.
type Store struct {
	mu    sync.Mutex
	state *state
	now   func() time.Time
	fail  FailFunc
}

var _ repo.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithFailures installs a failure hook.
func WithFailures(f FailFunc) Option {
	return func(s *Store) { s.fail = f }
}

// New returns an empty Store.
func New(opts ...Option) *Store {
	s := &Store{state: newState(), now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// SetFailures replaces the failure hook. Pass nil to stop failing.
func (s *Store) SetFailures(f FailFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = f
}

// Repos returns repositories that read and write the live state, one locked
// call at a time.
func (s *Store) Repos() repo.Repos {
	return s.bind(&lockedView{store: s})
}

// WithinTx runs fn against a copy of the state and publishes the copy only if
// fn succeeds. Units of work are serialized.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, r repo.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	draft := s.state.clone()
	if err := fn(ctx, s.bind(&txView{store: s, state: draft})); err != nil {
		return err
	}
	s.state = draft
	return nil
}

func (s *Store) bind(v view) repo.Repos {
	return repo.Repos{
		Trips:         &tripRepo{v: v},
		Patients:      &patientRepo{v: v},
		Vehicles:      &vehicleRepo{v: v},
		Drivers:       &driverRepo{v: v},
		SupportHouses: &supportHouseRepo{v: v},
	}
}

// view gives a repository access to some state for the duration of do.
type view interface {
	do(op string, fn func(st *state, now time.Time) error) error
}

// lockedView operates on the live state, taking the store lock per call.
type lockedView struct {
	store *Store
}

func (v *lockedView) do(op string, fn func(*state, time.Time) error) error {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return v.store.run(op, v.store.state, fn)
}

// txView operates on a draft copy; the store lock is already held.
type txView struct {
	store *Store
	state *state
}

func (v *txView) do(op string, fn func(*state, time.Time) error) error {
	return v.store.run(op, v.state, fn)
}

func (s *Store) run(op string, st *state, fn func(*state, time.Time) error) error {
	if s.fail != nil {
		if err := s.fail(op); err != nil {
			return fmt.Errorf("memstore.%s: %w: %w", op, domain.ErrCollaboratorUnavailable, err)
		}
	}
	if err := fn(st, s.now().UTC()); err != nil {
		return fmt.Errorf("memstore.%s: %w", op, err)
	}
	return nil
}

type state struct {
	trips      map[uuid.UUID]domain.Trip
	patients   map[uuid.UUID]domain.Patient
	companions map[uuid.UUID]domain.Companion
	vehicles   map[uuid.UUID]domain.Vehicle
	drivers    map[uuid.UUID]domain.Driver
	houses     map[uuid.UUID]domain.SupportHouse
}

func newState() *state {
	return &state{
		trips:      map[uuid.UUID]domain.Trip{},
		patients:   map[uuid.UUID]domain.Patient{},
		companions: map[uuid.UUID]domain.Companion{},
		vehicles:   map[uuid.UUID]domain.Vehicle{},
		drivers:    map[uuid.UUID]domain.Driver{},
		houses:     map[uuid.UUID]domain.SupportHouse{},
	}
}

// clone copies the state. Only trips hold reference types that need a deep copy.
func (st *state) clone() *state {
	out := &state{
		trips:      make(map[uuid.UUID]domain.Trip, len(st.trips)),
		patients:   maps.Clone(st.patients),
		companions: maps.Clone(st.companions),
		vehicles:   maps.Clone(st.vehicles),
		drivers:    maps.Clone(st.drivers),
		houses:     maps.Clone(st.houses),
	}
	for id, t := range st.trips {
		out.trips[id] = t.Clone()
	}
	return out
}

func newID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}

// sortedValues returns the map values ordered by cmpFn.
func sortedValues[T any](m map[uuid.UUID]T, cmpFn func(a, b T) int) []T {
	out := slices.Collect(maps.Values(m))
	slices.SortFunc(out, cmpFn)
	return out
}

func byName(a, b string, ida, idb uuid.UUID) int {
	return cmp.Or(strings.Compare(a, b), strings.Compare(ida.String(), idb.String()))
}
