package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/globaltrotters/backend/internal/core/domain"
	"github.com/globaltrotters/backend/internal/pkg/metrics"
)

const (
	// StreamName is the JetStream stream holding every trip event.
	StreamName = "TRIPS"

	SubjectTripCreated = "trips.created"
)

// SubjectItinerary is the subject itinerary imports for tripID are published on.
func SubjectItinerary(tripID int64) string {
	return fmt.Sprintf("trips.%d.itinerary", tripID)
}

// Event is the envelope written to every subject.
type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

// NewEvent wraps data in an envelope with a fresh id.
func NewEvent(eventType string, data any) (*Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", eventType, err)
	}
	return &Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Data:       raw,
	}, nil
}

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and enables JetStream.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	cfg := &nats.StreamConfig{
		Name:       StreamName,
		Subjects:   []string{"trips.>"},
		Retention:  nats.LimitsPolicy,
		MaxAge:     7 * 24 * time.Hour,
		Storage:    nats.FileStorage,
		Duplicates: 2 * time.Minute,
	}
	if _, err := js.AddStream(cfg); err != nil {
		// Stream may already exist, try update
		if _, err := js.UpdateStream(cfg); err != nil {
			conn.Close()
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

func (p *Publisher) PublishTripCreated(ctx context.Context, trip *domain.Trip) error {
	return p.publish(ctx, SubjectTripCreated, "trip.created", trip)
}

func (p *Publisher) PublishItineraryImported(ctx context.Context, summary *domain.ImportSummary) error {
	return p.publish(ctx, SubjectItinerary(summary.TripID), "itinerary.imported", summary)
}

func (p *Publisher) publish(ctx context.Context, subject, eventType string, data any) error {
	ev, err := NewEvent(eventType, data)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	// The event id doubles as the JetStream dedup key.
	_, err = p.js.Publish(subject, payload, nats.Context(ctx), nats.MsgId(ev.ID))
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.EventsPublished.WithLabelValues(subject, result).Inc()
	return err
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.Name("globaltrotters"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
