// Package memory is an in-process Entity Store used by tests and by the
// API when database.driver is "memory".
package memory

import (
	"context"
	"sync"

	"github.com/globaltrotters/backend/internal/core/domain"
)

// Store keeps every entity kind in its own table keyed by id, plus a
// parent -> children index. Ids are assigned from per-kind sequences
// starting at 1, so listing children in index order is listing by id.
type Store struct {
	mu sync.RWMutex

	tripSeq, citySeq, daySeq, activitySeq int64

	trips      map[int64]domain.Trip
	cities     map[int64]domain.City
	days       map[int64]domain.Day
	activities map[int64]domain.Activity

	citiesByTrip    map[int64][]int64
	daysByCity      map[int64][]int64
	activitiesByDay map[int64][]int64
}

func NewStore() *Store {
	return &Store{
		trips:           make(map[int64]domain.Trip),
		cities:          make(map[int64]domain.City),
		days:            make(map[int64]domain.Day),
		activities:      make(map[int64]domain.Activity),
		citiesByTrip:    make(map[int64][]int64),
		daysByCity:      make(map[int64][]int64),
		activitiesByDay: make(map[int64][]int64),
	}
}

func (s *Store) Trips() *TripRepo { return &TripRepo{s} }
func (s *Store) Cities() *CityRepo { return &CityRepo{s} }
func (s *Store) Days() *DayRepo { return &DayRepo{s} }
func (s *Store) Activities() *ActivityRepo { return &ActivityRepo{s} }

// Ping reports whether the store can serve requests. It always can.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// TripRepo implements ports.TripRepository.
type TripRepo struct{ s *Store }

func (r *TripRepo) Insert(ctx context.Context, trip *domain.Trip) error {
	if err := ctx.Err(); err != nil {
		return &domain.StoreError{Op: "insert trip", Err: err}
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.tripSeq++
	trip.ID = r.s.tripSeq
	r.s.trips[trip.ID] = *trip
	return nil
}

func (r *TripRepo) GetByID(ctx context.Context, id int64) (*domain.Trip, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.StoreError{Op: "get trip", Err: err}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.trips[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

// CityRepo implements ports.CityRepository.
type CityRepo struct{ s *Store }

// Insert stores city. The parent trip is not checked; referential
// integrity is the medium's concern only where the medium enforces it.
func (r *CityRepo) Insert(ctx context.Context, city *domain.City) error {
	if err := ctx.Err(); err != nil {
		return &domain.StoreError{Op: "insert city", Err: err}
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.citySeq++
	city.ID = r.s.citySeq
	r.s.cities[city.ID] = *city
	r.s.citiesByTrip[city.TripID] = append(r.s.citiesByTrip[city.TripID], city.ID)
	return nil
}

func (r *CityRepo) ListByTrip(ctx context.Context, tripID int64) ([]domain.City, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.StoreError{Op: "list cities", Err: err}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := r.s.citiesByTrip[tripID]
	out := make([]domain.City, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.s.cities[id])
	}
	return out, nil
}

// DayRepo implements ports.DayRepository.
type DayRepo struct{ s *Store }

func (r *DayRepo) Insert(ctx context.Context, day *domain.Day) error {
	if err := ctx.Err(); err != nil {
		return &domain.StoreError{Op: "insert day", Err: err}
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.daySeq++
	day.ID = r.s.daySeq
	r.s.days[day.ID] = *day
	r.s.daysByCity[day.CityID] = append(r.s.daysByCity[day.CityID], day.ID)
	return nil
}

func (r *DayRepo) ListByCity(ctx context.Context, cityID int64) ([]domain.Day, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.StoreError{Op: "list days", Err: err}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := r.s.daysByCity[cityID]
	out := make([]domain.Day, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.s.days[id])
	}
	return out, nil
}

// ActivityRepo implements ports.ActivityRepository.
type ActivityRepo struct{ s *Store }

func (r *ActivityRepo) Insert(ctx context.Context, a *domain.Activity) error {
	if err := ctx.Err(); err != nil {
		return &domain.StoreError{Op: "insert activity", Err: err}
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.activitySeq++
	a.ID = r.s.activitySeq
	r.s.activities[a.ID] = *a
	r.s.activitiesByDay[a.DayID] = append(r.s.activitiesByDay[a.DayID], a.ID)
	return nil
}

func (r *ActivityRepo) ListByDay(ctx context.Context, dayID int64) ([]domain.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.StoreError{Op: "list activities", Err: err}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := r.s.activitiesByDay[dayID]
	out := make([]domain.Activity, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.s.activities[id])
	}
	return out, nil
}
