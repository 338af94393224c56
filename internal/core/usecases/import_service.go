package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/globaltrotters/backend/internal/core/domain"
	"github.com/globaltrotters/backend/internal/core/ports"
	"github.com/globaltrotters/backend/internal/pkg/metrics"
	"github.com/globaltrotters/backend/internal/pkg/telemetry"
	"github.com/globaltrotters/backend/internal/pkg/validation"
)

// ImportService writes cities, days and activities under an existing trip.
// It is the only write path for those entities and is driven by the seed CLI.
type ImportService struct {
	trips      ports.TripRepository
	cities     ports.CityRepository
	days       ports.DayRepository
	activities ports.ActivityRepository
	events     ports.EventPublisher
}

// NewImportService creates a new ImportService. events may be nil.
func NewImportService(
	trips ports.TripRepository,
	cities ports.CityRepository,
	days ports.DayRepository,
	activities ports.ActivityRepository,
	events ports.EventPublisher,
) *ImportService {
	return &ImportService{trips: trips, cities: cities, days: days, activities: activities, events: events}
}

// Import validates the whole plan against the trip and then inserts it in
// order. Nothing is written when validation fails. The inserts are not
// wrapped in a transaction, so a store failure midway leaves the rows
// written so far.
func (s *ImportService) Import(ctx context.Context, tripID int64, plan []domain.CityPlan) (*domain.ImportSummary, error) {
	ctx, span := otel.Tracer(telemetry.TracerName).Start(ctx, telemetry.SpanItineraryImport)
	defer span.End()
	span.SetAttributes(attribute.Int64("trip.id", tripID), attribute.Int("plan.cities", len(plan)))

	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("load trip %d: %w", tripID, err)
	}

	if err := checkPlan(trip, plan); err != nil {
		return nil, err
	}

	summary := &domain.ImportSummary{TripID: trip.ID}
	for _, cp := range plan {
		city := &domain.City{
			TripID:        trip.ID,
			CityName:      cp.Name,
			ArrivalDate:   cp.ArrivalDate,
			DepartureDate: cp.DepartureDate,
		}
		if err := s.cities.Insert(ctx, city); err != nil {
			return summary, fmt.Errorf("insert city %q: %w", cp.Name, err)
		}
		summary.Cities++
		metrics.ImportedRows.WithLabelValues("city").Inc()

		for _, dp := range cp.Days {
			day := &domain.Day{CityID: city.ID, TravelDate: dp.Date}
			if err := s.days.Insert(ctx, day); err != nil {
				return summary, fmt.Errorf("insert day %s: %w", dp.Date, err)
			}
			summary.Days++
			metrics.ImportedRows.WithLabelValues("day").Inc()

			for _, ap := range dp.Activities {
				activity := &domain.Activity{
					DayID:        day.ID,
					ActivityName: ap.Name,
					ActivityTime: ap.Time,
					Cost:         ap.Cost,
				}
				if err := s.activities.Insert(ctx, activity); err != nil {
					return summary, fmt.Errorf("insert activity %q: %w", ap.Name, err)
				}
				summary.Activities++
				metrics.ImportedRows.WithLabelValues("activity").Inc()
			}
		}
	}

	if s.events != nil {
		if err := s.events.PublishItineraryImported(ctx, summary); err != nil {
			slog.WarnContext(ctx, "publish itinerary.imported failed", "trip_id", trip.ID, "error", err)
		}
	}

	return summary, nil
}

// checkPlan applies the schema rules to every element and the date-window
// rules: a city stays within its trip, a day falls within its city's stay.
func checkPlan(trip *domain.Trip, plan []domain.CityPlan) error {
	verr := &domain.ValidationError{}

	for i, cp := range plan {
		path := fmt.Sprintf("cities[%d]", i)
		if err := validation.StructAt(path, cp); err != nil {
			ve, ok := err.(*domain.ValidationError)
			if !ok {
				return err
			}
			verr.Violations = append(verr.Violations, ve.Violations...)
			continue
		}

		if cp.DepartureDate.Before(cp.ArrivalDate.Time) {
			verr.Violations = append(verr.Violations, domain.Violation{
				Field:   path + ".departure_date",
				Rule:    "gtefield",
				Message: fmt.Sprintf("departure_date %s is before arrival_date %s", cp.DepartureDate, cp.ArrivalDate),
			})
		}
		if !cp.ArrivalDate.Within(trip.StartDate, trip.EndDate) || !cp.DepartureDate.Within(trip.StartDate, trip.EndDate) {
			verr.Violations = append(verr.Violations, domain.Violation{
				Field:   path,
				Rule:    "within_trip",
				Message: fmt.Sprintf("stay %s..%s is outside the trip %s..%s", cp.ArrivalDate, cp.DepartureDate, trip.StartDate, trip.EndDate),
			})
		}
		for j, dp := range cp.Days {
			if !dp.Date.Within(cp.ArrivalDate, cp.DepartureDate) {
				verr.Violations = append(verr.Violations, domain.Violation{
					Field:   fmt.Sprintf("%s.days[%d].date", path, j),
					Rule:    "within_city",
					Message: fmt.Sprintf("date %s is outside the stay in %s", dp.Date, cp.Name),
				})
			}
		}
	}

	if len(verr.Violations) > 0 {
		return verr
	}
	return nil
}
