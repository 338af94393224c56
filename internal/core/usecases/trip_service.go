package usecases

import (
	"context"
	"encoding/json"
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

// tripCacheTTL is how long a trip stays cached. Trips are never updated,
// so cached copies cannot go stale.
const tripCacheTTL = 3600

// TripService handles trip creation and lookups.
type TripService struct {
	trips  ports.TripRepository
	cache  ports.CacheService
	events ports.EventPublisher
}

// NewTripService creates a new TripService. cache and events may be nil.
func NewTripService(trips ports.TripRepository, cache ports.CacheService, events ports.EventPublisher) *TripService {
	return &TripService{trips: trips, cache: cache, events: events}
}

// Create validates the payload and stores a new trip.
func (s *TripService) Create(ctx context.Context, in domain.NewTrip) (*domain.Trip, error) {
	ctx, span := otel.Tracer(telemetry.TracerName).Start(ctx, telemetry.SpanTripCreate)
	defer span.End()

	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	trip := in.Trip()
	if err := s.trips.Insert(ctx, trip); err != nil {
		return nil, fmt.Errorf("create trip: %w", err)
	}
	metrics.TripsCreated.Inc()
	span.SetAttributes(attribute.Int64("trip.id", trip.ID))

	s.cacheTrip(ctx, trip)

	if s.events != nil {
		if err := s.events.PublishTripCreated(ctx, trip); err != nil {
			slog.WarnContext(ctx, "publish trip.created failed", "trip_id", trip.ID, "error", err)
		}
	}

	return trip, nil
}

// GetByID returns a single trip.
func (s *TripService) GetByID(ctx context.Context, id int64) (*domain.Trip, error) {
	cacheKey := tripCacheKey(id)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var trip domain.Trip
			if err := json.Unmarshal(data, &trip); err == nil {
				metrics.CacheHits.WithLabelValues("trip").Inc()
				return &trip, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("trip").Inc()
	}

	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cacheTrip(ctx, trip)
	return trip, nil
}

func (s *TripService) cacheTrip(ctx context.Context, trip *domain.Trip) {
	if s.cache == nil {
		return
	}
	if data, err := json.Marshal(trip); err == nil {
		_ = s.cache.Set(ctx, tripCacheKey(trip.ID), data, tripCacheTTL)
	}
}

func tripCacheKey(id int64) string {
	return fmt.Sprintf("trips:id:%d", id)
}
