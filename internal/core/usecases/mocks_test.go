package usecases_test

import (
	"context"
	"errors"

	"github.com/globaltrotters/backend/internal/core/domain"
)

// --- Mock repositories ---

type mockTripRepo struct {
	insertFn  func(ctx context.Context, t *domain.Trip) error
	getByIDFn func(ctx context.Context, id int64) (*domain.Trip, error)
}

func (m *mockTripRepo) Insert(ctx context.Context, t *domain.Trip) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, t)
	}
	t.ID = 1
	return nil
}

func (m *mockTripRepo) GetByID(ctx context.Context, id int64) (*domain.Trip, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

type mockCityRepo struct {
	insertFn     func(ctx context.Context, c *domain.City) error
	listByTripFn func(ctx context.Context, tripID int64) ([]domain.City, error)
}

func (m *mockCityRepo) Insert(ctx context.Context, c *domain.City) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, c)
	}
	return nil
}

func (m *mockCityRepo) ListByTrip(ctx context.Context, tripID int64) ([]domain.City, error) {
	if m.listByTripFn != nil {
		return m.listByTripFn(ctx, tripID)
	}
	return nil, nil
}

type mockDayRepo struct {
	insertFn     func(ctx context.Context, d *domain.Day) error
	listByCityFn func(ctx context.Context, cityID int64) ([]domain.Day, error)
}

func (m *mockDayRepo) Insert(ctx context.Context, d *domain.Day) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, d)
	}
	return nil
}

func (m *mockDayRepo) ListByCity(ctx context.Context, cityID int64) ([]domain.Day, error) {
	if m.listByCityFn != nil {
		return m.listByCityFn(ctx, cityID)
	}
	return nil, nil
}

type mockActivityRepo struct {
	insertFn    func(ctx context.Context, a *domain.Activity) error
	listByDayFn func(ctx context.Context, dayID int64) ([]domain.Activity, error)
}

func (m *mockActivityRepo) Insert(ctx context.Context, a *domain.Activity) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, a)
	}
	return nil
}

func (m *mockActivityRepo) ListByDay(ctx context.Context, dayID int64) ([]domain.Activity, error) {
	if m.listByDayFn != nil {
		return m.listByDayFn(ctx, dayID)
	}
	return nil, nil
}

// --- Mock cache and publisher ---

type mockCache struct {
	data map[string][]byte
	sets int
}

func newMockCache() *mockCache {
	return &mockCache{data: map[string][]byte{}}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if b, ok := m.data[key]; ok {
		return b, nil
	}
	return nil, errors.New("miss")
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	m.sets++
	m.data[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

type mockEvents struct {
	created  []*domain.Trip
	imported []*domain.ImportSummary
	err      error
}

func (m *mockEvents) PublishTripCreated(ctx context.Context, t *domain.Trip) error {
	m.created = append(m.created, t)
	return m.err
}

func (m *mockEvents) PublishItineraryImported(ctx context.Context, s *domain.ImportSummary) error {
	m.imported = append(m.imported, s)
	return m.err
}
