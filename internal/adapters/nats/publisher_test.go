package natsadapter

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/globaltrotters/backend/internal/core/domain"
)

func TestSubjectItinerary(t *testing.T) {
	if got := SubjectItinerary(42); got != "trips.42.itinerary" {
		t.Errorf("unexpected subject %q", got)
	}
}

func TestNewEvent(t *testing.T) {
	ev, err := NewEvent("itinerary.imported", &domain.ImportSummary{TripID: 3, Cities: 2})
	if err != nil {
		t.Fatalf("new event: %v", err)
	}
	if _, err := uuid.Parse(ev.ID); err != nil {
		t.Errorf("event id is not a uuid: %q", ev.ID)
	}
	if ev.OccurredAt.IsZero() {
		t.Error("occurred_at not set")
	}

	var summary domain.ImportSummary
	if err := json.Unmarshal(ev.Data, &summary); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if summary.TripID != 3 || summary.Cities != 2 {
		t.Errorf("unexpected data: %+v", summary)
	}

	other, _ := NewEvent("itinerary.imported", nil)
	if other.ID == ev.ID {
		t.Error("event ids must differ")
	}
}
