package http

import (
	"context"

	"github.com/nats-io/nats.go"

	"github.com/globaltrotters/backend/internal/core/usecases"
)

// Pinger is a dependency the readiness probe can check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies holds all services needed by HTTP handlers.
// NATS, DB and Cache are optional; leave them nil when unavailable.
type Dependencies struct {
	Trips       *usecases.TripService
	Itineraries *usecases.ItineraryService
	NATS        *nats.Conn
	DB          Pinger
	Cache       Pinger
}
