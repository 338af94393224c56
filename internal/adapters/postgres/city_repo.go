package postgres

import (
	"context"

	"github.com/globaltrotters/backend/internal/core/domain"
)

// CityRepo implements ports.CityRepository.
type CityRepo struct {
	db *DB
}

func NewCityRepo(db *DB) *CityRepo {
	return &CityRepo{db: db}
}

func (r *CityRepo) Insert(ctx context.Context, city *domain.City) error {
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO cities (trip_id, city_name, arrival_date, departure_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, city.TripID, city.CityName, city.ArrivalDate.Time, city.DepartureDate.Time).Scan(&city.ID)
	if err != nil {
		return storeErr("insert city", err)
	}
	return nil
}

// ListByTrip returns the cities of a trip in insertion order.
func (r *CityRepo) ListByTrip(ctx context.Context, tripID int64) ([]domain.City, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, trip_id, city_name, arrival_date, departure_date
		FROM cities WHERE trip_id = $1 ORDER BY id
	`, tripID)
	if err != nil {
		return nil, storeErr("list cities", err)
	}
	defer rows.Close()

	cities := []domain.City{}
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.ID, &c.TripID, &c.CityName, &c.ArrivalDate.Time, &c.DepartureDate.Time); err != nil {
			return nil, storeErr("list cities", err)
		}
		cities = append(cities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list cities", err)
	}
	return cities, nil
}
