package ports

import (
	"context"

	"github.com/globaltrotters/backend/internal/core/domain"
)

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishTripCreated(ctx context.Context, trip *domain.Trip) error
	PublishItineraryImported(ctx context.Context, summary *domain.ImportSummary) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
