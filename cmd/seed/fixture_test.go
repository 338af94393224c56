package main

import (
	"os"
	"path/filepath"
	"testing"
)

const sample = `
trips:
  - user_id: 3
    title: Italy by train
    start_date: 2025-07-01
    end_date: 2025-07-10
    total_budget: "1500.00"
    cities:
      - name: Rome
        arrival_date: 2025-07-01
        departure_date: 2025-07-04
        days:
          - date: 2025-07-02
            activities:
              - name: Colosseum
                time: "09:00"
                cost: "25.50"
              - name: Walk
                time: "18:30"
`

func TestLoadFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trips.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatal(err)
	}

	f, err := loadFixture(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(f.Trips) != 1 {
		t.Fatalf("expected 1 trip, got %d", len(f.Trips))
	}

	in, err := f.Trips[0].newTrip()
	if err != nil {
		t.Fatalf("newTrip: %v", err)
	}
	if *in.UserID != 3 || in.StartDate.String() != "2025-07-01" || in.TotalBudget.String() != "1500.00" || *in.IsPublic {
		t.Errorf("unexpected trip %+v", in)
	}

	plan, err := f.Trips[0].plan()
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	acts := plan[0].Days[0].Activities
	if len(acts) != 2 || acts[0].Time.String() != "09:00:00" || acts[1].Cost.String() != "0.00" {
		t.Errorf("unexpected activities %+v", acts)
	}
}

func TestPlan_BadTime(t *testing.T) {
	tf := tripFixture{Cities: []cityFixture{{
		Name: "Rome", ArrivalDate: "2025-07-01", DepartureDate: "2025-07-02",
		Days: []dayFixture{{Date: "2025-07-01", Activities: []activityFixture{{Name: "x", Time: "noon"}}}},
	}}}
	if _, err := tf.plan(); err == nil {
		t.Fatal("expected an error for an unparseable time")
	}
}
