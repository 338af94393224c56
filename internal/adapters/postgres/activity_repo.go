package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/globaltrotters/backend/internal/core/domain"
)

// ActivityRepo implements ports.ActivityRepository.
type ActivityRepo struct {
	db *DB
}

func NewActivityRepo(db *DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

func (r *ActivityRepo) Insert(ctx context.Context, a *domain.Activity) error {
	at := pgtype.Time{Microseconds: a.ActivityTime.Duration().Microseconds(), Valid: true}
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO activities (day_id, activity_name, activity_time, cost)
		VALUES ($1, $2, $3, $4::text::numeric)
		RETURNING id
	`, a.DayID, a.ActivityName, at, a.Cost.String()).Scan(&a.ID)
	if err != nil {
		return storeErr("insert activity", err)
	}
	return nil
}

// ListByDay returns the activities of a day in insertion order.
func (r *ActivityRepo) ListByDay(ctx context.Context, dayID int64) ([]domain.Activity, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, day_id, activity_name, activity_time, cost::text
		FROM activities WHERE day_id = $1 ORDER BY id
	`, dayID)
	if err != nil {
		return nil, storeErr("list activities", err)
	}
	defer rows.Close()

	activities := []domain.Activity{}
	for rows.Next() {
		var (
			a    domain.Activity
			at   pgtype.Time
			cost string
		)
		if err := rows.Scan(&a.ID, &a.DayID, &a.ActivityName, &at, &cost); err != nil {
			return nil, storeErr("list activities", err)
		}
		if !at.Valid {
			return nil, storeErr("list activities", fmt.Errorf("activity %d has no time", a.ID))
		}
		a.ActivityTime = domain.TimeOfDay(time.Duration(at.Microseconds) * time.Microsecond)
		if a.Cost, err = domain.ParseMoney(cost); err != nil {
			return nil, storeErr("list activities", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list activities", err)
	}
	return activities, nil
}
