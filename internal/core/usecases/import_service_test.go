package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/globaltrotters/backend/internal/adapters/memory"
	"github.com/globaltrotters/backend/internal/core/domain"
	"github.com/globaltrotters/backend/internal/core/ports"
	"github.com/globaltrotters/backend/internal/core/usecases"
)

func julyTrip(t *testing.T, store *memory.Store) *domain.Trip {
	t.Helper()
	trip := &domain.Trip{
		UserID: 1, Title: "July",
		StartDate: domain.NewDate(2025, 7, 1), EndDate: domain.NewDate(2025, 7, 10),
		TotalBudget: domain.MustMoney("2000"),
	}
	if err := store.Trips().Insert(context.Background(), trip); err != nil {
		t.Fatal(err)
	}
	return trip
}

func newImportService(store *memory.Store, events *mockEvents) *usecases.ImportService {
	var publisher ports.EventPublisher
	if events != nil {
		publisher = events
	}
	return usecases.NewImportService(store.Trips(), store.Cities(), store.Days(), store.Activities(), publisher)
}

func TestImportService_Import(t *testing.T) {
	store := memory.NewStore()
	trip := julyTrip(t, store)
	events := &mockEvents{}

	summary, err := newImportService(store, events).Import(context.Background(), trip.ID, []domain.CityPlan{
		{
			Name: "Rome", ArrivalDate: domain.NewDate(2025, 7, 1), DepartureDate: domain.NewDate(2025, 7, 5),
			Days: []domain.DayPlan{
				{Date: domain.NewDate(2025, 7, 1), Activities: []domain.ActivityPlan{
					{Name: "Vatican", Time: domain.NewTimeOfDay(10, 0, 0), Cost: domain.MustMoney("30")},
				}},
				{Date: domain.NewDate(2025, 7, 2)},
			},
		},
		{Name: "Naples", ArrivalDate: domain.NewDate(2025, 7, 5), DepartureDate: domain.NewDate(2025, 7, 10)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := domain.ImportSummary{TripID: trip.ID, Cities: 2, Days: 2, Activities: 1}
	if *summary != want {
		t.Errorf("got %+v, want %+v", *summary, want)
	}
	if len(events.imported) != 1 {
		t.Errorf("expected one itinerary.imported event, got %d", len(events.imported))
	}

	itinerary, err := usecases.NewItineraryService(store.Cities(), store.Days(), store.Activities()).Build(context.Background(), trip.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(itinerary) != 2 || itinerary[0].Days[0].Activities[0].ActivityName != "Vatican" {
		t.Errorf("imported rows not visible: %+v", itinerary)
	}
}

func TestImportService_UnknownTrip(t *testing.T) {
	store := memory.NewStore()
	_, err := newImportService(store, nil).Import(context.Background(), 9, nil)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestImportService_RejectsWholePlan(t *testing.T) {
	cases := map[string]struct {
		plan  []domain.CityPlan
		field string
	}{
		"missing name": {
			plan:  []domain.CityPlan{{ArrivalDate: domain.NewDate(2025, 7, 1), DepartureDate: domain.NewDate(2025, 7, 2)}},
			field: "cities[0].name",
		},
		"departure before arrival": {
			plan:  []domain.CityPlan{{Name: "Rome", ArrivalDate: domain.NewDate(2025, 7, 5), DepartureDate: domain.NewDate(2025, 7, 2)}},
			field: "cities[0].departure_date",
		},
		"outside trip": {
			plan:  []domain.CityPlan{{Name: "Oslo", ArrivalDate: domain.NewDate(2025, 6, 28), DepartureDate: domain.NewDate(2025, 7, 2)}},
			field: "cities[0]",
		},
		"day outside city": {
			plan: []domain.CityPlan{{
				Name: "Rome", ArrivalDate: domain.NewDate(2025, 7, 1), DepartureDate: domain.NewDate(2025, 7, 3),
				Days: []domain.DayPlan{{Date: domain.NewDate(2025, 7, 2)}, {Date: domain.NewDate(2025, 7, 4)}},
			}},
			field: "cities[0].days[1].date",
		},
		"activity cost too large": {
			plan: []domain.CityPlan{{
				Name: "Rome", ArrivalDate: domain.NewDate(2025, 7, 1), DepartureDate: domain.NewDate(2025, 7, 3),
				Days: []domain.DayPlan{{Date: domain.NewDate(2025, 7, 2), Activities: []domain.ActivityPlan{
					{Name: "Yacht", Cost: domain.MustMoney("1000000.00")},
				}}},
			}},
			field: "cities[0].days[0].activities[0].cost",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			store := memory.NewStore()
			trip := julyTrip(t, store)
			valid := domain.CityPlan{Name: "Milan", ArrivalDate: domain.NewDate(2025, 7, 8), DepartureDate: domain.NewDate(2025, 7, 9)}
			plan := append([]domain.CityPlan{}, tc.plan...)
			plan = append(plan, valid)

			_, err := newImportService(store, nil).Import(context.Background(), trip.ID, plan)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			found := false
			for _, v := range ve.Violations {
				if v.Field == tc.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected violation on %s, got %+v", tc.field, ve.Violations)
			}

			cities, _ := store.Cities().ListByTrip(context.Background(), trip.ID)
			if len(cities) != 0 {
				t.Errorf("nothing may be written on validation failure, found %d cities", len(cities))
			}
		})
	}
}

func TestImportService_StoreErrorStops(t *testing.T) {
	boom := &domain.StoreError{Op: "insert day", Err: errors.New("timeout")}
	trips := &mockTripRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Trip, error) {
			return &domain.Trip{ID: id, StartDate: domain.NewDate(2025, 7, 1), EndDate: domain.NewDate(2025, 7, 10)}, nil
		},
	}
	days := &mockDayRepo{insertFn: func(ctx context.Context, d *domain.Day) error { return boom }}
	events := &mockEvents{}

	svc := usecases.NewImportService(trips, &mockCityRepo{}, days, &mockActivityRepo{}, events)
	summary, err := svc.Import(context.Background(), 1, []domain.CityPlan{{
		Name: "Rome", ArrivalDate: domain.NewDate(2025, 7, 1), DepartureDate: domain.NewDate(2025, 7, 3),
		Days: []domain.DayPlan{{Date: domain.NewDate(2025, 7, 2)}},
	}})
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
	if summary == nil || summary.Cities != 1 || summary.Days != 0 {
		t.Errorf("summary must report what was written: %+v", summary)
	}
	if len(events.imported) != 0 {
		t.Error("no event may be published for a failed import")
	}
}
