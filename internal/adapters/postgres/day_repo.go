package postgres

import (
	"context"

	"github.com/globaltrotters/backend/internal/core/domain"
)

// DayRepo implements ports.DayRepository.
type DayRepo struct {
	db *DB
}

func NewDayRepo(db *DB) *DayRepo {
	return &DayRepo{db: db}
}

func (r *DayRepo) Insert(ctx context.Context, day *domain.Day) error {
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO days (city_id, travel_date) VALUES ($1, $2) RETURNING id
	`, day.CityID, day.TravelDate.Time).Scan(&day.ID)
	if err != nil {
		return storeErr("insert day", err)
	}
	return nil
}

// ListByCity returns the days of a city in insertion order.
func (r *DayRepo) ListByCity(ctx context.Context, cityID int64) ([]domain.Day, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, city_id, travel_date FROM days WHERE city_id = $1 ORDER BY id
	`, cityID)
	if err != nil {
		return nil, storeErr("list days", err)
	}
	defer rows.Close()

	days := []domain.Day{}
	for rows.Next() {
		var d domain.Day
		if err := rows.Scan(&d.ID, &d.CityID, &d.TravelDate.Time); err != nil {
			return nil, storeErr("list days", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list days", err)
	}
	return days, nil
}
