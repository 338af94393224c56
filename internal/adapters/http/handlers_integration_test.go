//go:build integration
// +build integration

package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	handler "github.com/globaltrotters/backend/internal/adapters/http"
	"github.com/globaltrotters/backend/internal/adapters/postgres"
	"github.com/globaltrotters/backend/internal/core/domain"
	"github.com/globaltrotters/backend/internal/core/usecases"
	"github.com/globaltrotters/backend/internal/pkg/config"
)

// setupTestDB connects to the database named by the GLOBALTROTTERS_DATABASE_*
// settings. The schema must already be migrated.
func setupTestDB(t *testing.T) *postgres.DB {
	t.Helper()
	cfg, err := config.Load("globaltrotters-test")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := postgres.New(ctx, cfg.Database.DSN(), 4)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)
	return db
}

// setupTestDeps creates dependencies with real repos, no cache and no events.
func setupTestDeps(db *postgres.DB) (*handler.Dependencies, *usecases.ImportService) {
	trips := postgres.NewTripRepo(db)
	cities := postgres.NewCityRepo(db)
	days := postgres.NewDayRepo(db)
	activities := postgres.NewActivityRepo(db)

	deps := &handler.Dependencies{
		Trips:       usecases.NewTripService(trips, nil, nil),
		Itineraries: usecases.NewItineraryService(cities, days, activities),
		DB:          db,
	}
	return deps, usecases.NewImportService(trips, cities, days, activities, nil)
}

func createTrip(t *testing.T, deps *handler.Dependencies, title string) domain.Trip {
	t.Helper()
	body := fmt.Sprintf(`{"user_id":1,"title":%q,"start_date":"2025-07-01","end_date":"2025-07-10","total_budget":"1500.50","is_public":true}`, title)
	req := httptest.NewRequest("POST", "/trips", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := setupApp(deps).Test(req, -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, readBody(t, resp.Body))
	}

	var trip domain.Trip
	if err := json.NewDecoder(resp.Body).Decode(&trip); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return trip
}

func TestCreateTrip_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	deps, _ := setupTestDeps(setupTestDB(t))
	title := "integ " + time.Now().Format("20060102150405")
	trip := createTrip(t, deps, title)

	if trip.ID <= 0 {
		t.Fatalf("expected a positive id, got %d", trip.ID)
	}
	if trip.Title != title || trip.TotalBudget.String() != "1500.50" || !trip.IsPublic {
		t.Errorf("unexpected trip %+v", trip)
	}

	resp, err := setupApp(deps).Test(httptest.NewRequest("GET", fmt.Sprintf("/trips/%d", trip.ID), nil), -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestItinerary_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	deps, importer := setupTestDeps(setupTestDB(t))
	trip := createTrip(t, deps, "itinerary integ")

	plan := []domain.CityPlan{{
		Name:          "Rome",
		ArrivalDate:   domain.NewDate(2025, time.July, 1),
		DepartureDate: domain.NewDate(2025, time.July, 4),
		Days: []domain.DayPlan{{
			Date: domain.NewDate(2025, time.July, 2),
			Activities: []domain.ActivityPlan{
				{Name: "Colosseum", Time: domain.NewTimeOfDay(9, 0, 0), Cost: domain.MustMoney("25.50")},
				{Name: "Dinner", Time: domain.NewTimeOfDay(20, 30, 0), Cost: domain.MustMoney("40")},
			},
		}},
	}}
	if _, err := importer.Import(context.Background(), trip.ID, plan); err != nil {
		t.Fatalf("import: %v", err)
	}

	resp, err := setupApp(deps).Test(httptest.NewRequest("GET", fmt.Sprintf("/itinerary/%d", trip.ID), nil), -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var got []domain.CityItinerary
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 || got[0].City != "Rome" || len(got[0].Days) != 1 {
		t.Fatalf("unexpected itinerary %+v", got)
	}
	acts := got[0].Days[0].Activities
	if len(acts) != 2 || acts[0].ActivityName != "Colosseum" || acts[1].Cost.String() != "40.00" {
		t.Errorf("unexpected activities %+v", acts)
	}
	if acts[0].ActivityTime.String() != "09:00:00" {
		t.Errorf("expected 09:00:00, got %s", acts[0].ActivityTime)
	}
}

func TestItinerary_Integration_Empty(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	deps, _ := setupTestDeps(setupTestDB(t))
	trip := createTrip(t, deps, "empty integ")

	resp, err := setupApp(deps).Test(httptest.NewRequest("GET", fmt.Sprintf("/itinerary/%d", trip.ID), nil), -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body := strings.TrimSpace(string(readBody(t, resp.Body))); body != "[]" {
		t.Errorf("expected [], got %s", body)
	}
}
