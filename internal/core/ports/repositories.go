package ports

import (
	"context"

	"github.com/globaltrotters/backend/internal/core/domain"
)

// The repositories below make up the Entity Store. Insert assigns the
// identifier on the passed entity. List* methods return children of a parent
// ordered by id and an empty slice when the parent has none or does not exist.
// Medium failures are reported as *domain.StoreError.

// TripRepository persists trips.
type TripRepository interface {
	Insert(ctx context.Context, trip *domain.Trip) error
	GetByID(ctx context.Context, id int64) (*domain.Trip, error)
}

// CityRepository persists the cities of a trip.
type CityRepository interface {
	Insert(ctx context.Context, city *domain.City) error
	ListByTrip(ctx context.Context, tripID int64) ([]domain.City, error)
}

// DayRepository persists the days spent in a city.
type DayRepository interface {
	Insert(ctx context.Context, day *domain.Day) error
	ListByCity(ctx context.Context, cityID int64) ([]domain.Day, error)
}

// ActivityRepository persists the activities of a day.
type ActivityRepository interface {
	Insert(ctx context.Context, activity *domain.Activity) error
	ListByDay(ctx context.Context, dayID int64) ([]domain.Activity, error)
}
