package usecases

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/globaltrotters/backend/internal/core/domain"
	"github.com/globaltrotters/backend/internal/core/ports"
	"github.com/globaltrotters/backend/internal/pkg/metrics"
	"github.com/globaltrotters/backend/internal/pkg/telemetry"
)

// ItineraryService assembles the nested city -> day -> activity view of a trip.
type ItineraryService struct {
	cities     ports.CityRepository
	days       ports.DayRepository
	activities ports.ActivityRepository
}

// NewItineraryService creates a new ItineraryService.
func NewItineraryService(cities ports.CityRepository, days ports.DayRepository, activities ports.ActivityRepository) *ItineraryService {
	return &ItineraryService{cities: cities, days: days, activities: activities}
}

// Build returns the itinerary of a trip. A trip without cities and an
// unknown trip both yield an empty, non-nil slice.
//
// Cities, days and activities keep the order the store returns them in
// (ascending id). The store is queried once for the cities, once per city
// and once per day.
func (s *ItineraryService) Build(ctx context.Context, tripID int64) (result []domain.CityItinerary, err error) {
	ctx, span := otel.Tracer(telemetry.TracerName).Start(ctx, telemetry.SpanItineraryBuild)
	defer span.End()
	span.SetAttributes(attribute.Int64("trip.id", tripID))

	calls := 0
	defer func() {
		metrics.ItineraryStoreCalls.Observe(float64(calls))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "itinerary build failed")
		}
	}()

	calls++
	cities, err := s.cities.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("list cities of trip %d: %w", tripID, err)
	}

	result = make([]domain.CityItinerary, 0, len(cities))
	dayCount, activityCount := 0, 0

	for _, city := range cities {
		calls++
		days, err := s.days.ListByCity(ctx, city.ID)
		if err != nil {
			return nil, fmt.Errorf("list days of city %d: %w", city.ID, err)
		}

		dayData := make([]domain.DayItinerary, 0, len(days))
		for _, day := range days {
			calls++
			activities, err := s.activities.ListByDay(ctx, day.ID)
			if err != nil {
				return nil, fmt.Errorf("list activities of day %d: %w", day.ID, err)
			}
			if activities == nil {
				activities = []domain.Activity{}
			}

			dayData = append(dayData, domain.DayItinerary{
				Date:       day.TravelDate,
				Activities: activities,
			})
			activityCount += len(activities)
		}
		dayCount += len(days)

		result = append(result, domain.CityItinerary{
			City: city.CityName,
			Days: dayData,
		})
	}

	span.SetAttributes(
		attribute.Int("itinerary.cities", len(result)),
		attribute.Int("itinerary.days", dayCount),
		attribute.Int("itinerary.activities", activityCount),
	)
	return result, nil
}
