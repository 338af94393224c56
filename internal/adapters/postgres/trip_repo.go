package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/globaltrotters/backend/internal/core/domain"
)

// TripRepo implements ports.TripRepository.
type TripRepo struct {
	db *DB
}

func NewTripRepo(db *DB) *TripRepo {
	return &TripRepo{db: db}
}

// Insert stores trip and sets its generated id.
func (r *TripRepo) Insert(ctx context.Context, trip *domain.Trip) error {
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO trips (user_id, title, start_date, end_date, total_budget, is_public)
		VALUES ($1, $2, $3, $4, $5::text::numeric, $6)
		RETURNING id
	`, trip.UserID, trip.Title, trip.StartDate.Time, trip.EndDate.Time, trip.TotalBudget.String(), trip.IsPublic).Scan(&trip.ID)
	if err != nil {
		return storeErr("insert trip", err)
	}
	return nil
}

func (r *TripRepo) GetByID(ctx context.Context, id int64) (*domain.Trip, error) {
	var (
		tr     domain.Trip
		budget string
	)
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, user_id, title, start_date, end_date, total_budget::text, is_public
		FROM trips WHERE id = $1
	`, id).Scan(&tr.ID, &tr.UserID, &tr.Title, &tr.StartDate.Time, &tr.EndDate.Time, &budget, &tr.IsPublic)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, storeErr("get trip", err)
	}

	if tr.TotalBudget, err = domain.ParseMoney(budget); err != nil {
		return nil, storeErr("get trip", err)
	}
	return &tr, nil
}
