package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/globaltrotters/backend/internal/core/domain"
	"github.com/globaltrotters/backend/internal/core/usecases"
)

func TestItineraryService_Build(t *testing.T) {
	cities := &mockCityRepo{
		listByTripFn: func(ctx context.Context, tripID int64) ([]domain.City, error) {
			return []domain.City{
				{ID: 1, TripID: tripID, CityName: "Rome"},
				{ID: 2, TripID: tripID, CityName: "Florence"},
			}, nil
		},
	}
	days := &mockDayRepo{
		listByCityFn: func(ctx context.Context, cityID int64) ([]domain.Day, error) {
			if cityID != 1 {
				return nil, nil
			}
			return []domain.Day{
				{ID: 10, CityID: 1, TravelDate: domain.NewDate(2025, 7, 2)},
				{ID: 11, CityID: 1, TravelDate: domain.NewDate(2025, 7, 3)},
			}, nil
		},
	}
	activities := &mockActivityRepo{
		listByDayFn: func(ctx context.Context, dayID int64) ([]domain.Activity, error) {
			if dayID != 10 {
				return nil, nil
			}
			return []domain.Activity{
				{ID: 100, DayID: 10, ActivityName: "Colosseum", ActivityTime: domain.NewTimeOfDay(9, 0, 0), Cost: domain.MustMoney("25.50")},
				{ID: 101, DayID: 10, ActivityName: "Forum", ActivityTime: domain.NewTimeOfDay(11, 0, 0), Cost: domain.MustMoney("0")},
			}, nil
		},
	}

	svc := usecases.NewItineraryService(cities, days, activities)

	got, err := svc.Build(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 2 || got[0].City != "Rome" || got[1].City != "Florence" {
		t.Fatalf("unexpected cities %+v", got)
	}
	if len(got[0].Days) != 2 {
		t.Fatalf("expected 2 days in Rome, got %d", len(got[0].Days))
	}
	if got[0].Days[0].Date.String() != "2025-07-02" || len(got[0].Days[0].Activities) != 2 {
		t.Errorf("unexpected first day %+v", got[0].Days[0])
	}
	if got[0].Days[0].Activities[0].ActivityName != "Colosseum" || got[0].Days[0].Activities[1].ActivityName != "Forum" {
		t.Errorf("activities out of order: %+v", got[0].Days[0].Activities)
	}
	if got[0].Days[1].Activities == nil || len(got[0].Days[1].Activities) != 0 {
		t.Errorf("expected empty non-nil activities, got %#v", got[0].Days[1].Activities)
	}
	if got[1].Days == nil || len(got[1].Days) != 0 {
		t.Errorf("expected empty non-nil days, got %#v", got[1].Days)
	}
}

func TestItineraryService_Build_NoCities(t *testing.T) {
	svc := usecases.NewItineraryService(&mockCityRepo{}, &mockDayRepo{}, &mockActivityRepo{})

	got, err := svc.Build(context.Background(), 404)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestItineraryService_Build_QueriesPerLevel(t *testing.T) {
	var cityCalls, dayCalls, activityCalls int
	cities := &mockCityRepo{
		listByTripFn: func(ctx context.Context, tripID int64) ([]domain.City, error) {
			cityCalls++
			return []domain.City{{ID: 1}, {ID: 2}, {ID: 3}}, nil
		},
	}
	days := &mockDayRepo{
		listByCityFn: func(ctx context.Context, cityID int64) ([]domain.Day, error) {
			dayCalls++
			return []domain.Day{{ID: cityID * 10}, {ID: cityID*10 + 1}}, nil
		},
	}
	activities := &mockActivityRepo{
		listByDayFn: func(ctx context.Context, dayID int64) ([]domain.Activity, error) {
			activityCalls++
			return nil, nil
		},
	}

	if _, err := usecases.NewItineraryService(cities, days, activities).Build(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if cityCalls != 1 || dayCalls != 3 || activityCalls != 6 {
		t.Errorf("expected 1/3/6 calls, got %d/%d/%d", cityCalls, dayCalls, activityCalls)
	}
}

func TestItineraryService_Build_StoreErrorAnyLevel(t *testing.T) {
	boom := &domain.StoreError{Op: "list", Err: errors.New("connection reset")}
	oneCity := &mockCityRepo{
		listByTripFn: func(ctx context.Context, tripID int64) ([]domain.City, error) {
			return []domain.City{{ID: 1}}, nil
		},
	}
	oneDay := &mockDayRepo{
		listByCityFn: func(ctx context.Context, cityID int64) ([]domain.Day, error) {
			return []domain.Day{{ID: 1}}, nil
		},
	}

	cases := map[string]*usecases.ItineraryService{
		"cities": usecases.NewItineraryService(&mockCityRepo{
			listByTripFn: func(ctx context.Context, tripID int64) ([]domain.City, error) { return nil, boom },
		}, &mockDayRepo{}, &mockActivityRepo{}),
		"days": usecases.NewItineraryService(oneCity, &mockDayRepo{
			listByCityFn: func(ctx context.Context, cityID int64) ([]domain.Day, error) { return nil, boom },
		}, &mockActivityRepo{}),
		"activities": usecases.NewItineraryService(oneCity, oneDay, &mockActivityRepo{
			listByDayFn: func(ctx context.Context, dayID int64) ([]domain.Activity, error) { return nil, boom },
		}),
	}

	for name, svc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := svc.Build(context.Background(), 1)
			if !errors.Is(err, boom) {
				t.Fatalf("expected store error, got %v", err)
			}
			if got != nil {
				t.Errorf("expected no partial result, got %+v", got)
			}
		})
	}
}
