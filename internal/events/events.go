// Package events publishes itinerary lifecycle events
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"TRAVEL_ITINERARY_BACK-END/internal/models"
)

// Event types, also used as subject suffixes
const (
	ItineraryCreated   = "itinerary.created"
	ItineraryGenerated = "itinerary.generated"
	ItineraryUpdated   = "itinerary.updated"
	ItineraryDeleted   = "itinerary.deleted"
)

// Event is the payload of every lifecycle message
type Event struct {
	Type            string    `json:"type"`
	ItineraryID     uuid.UUID `json:"itinerary_id"`
	UserID          uuid.UUID `json:"user_id"`
	Status          string    `json:"status,omitempty"`
	TotalCost       float64   `json:"total_cost"`
	TotalDistanceKm float64   `json:"total_distance_km"`
	Stops           int       `json:"stops"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// NewItineraryEvent builds an event describing it
func NewItineraryEvent(eventType string, it *models.Itinerary) Event {
	return Event{
		Type:            eventType,
		ItineraryID:     it.ID,
		UserID:          it.UserID,
		Status:          string(it.Status),
		TotalCost:       it.TotalCost,
		TotalDistanceKm: it.TotalDistanceKm,
		Stops:           len(it.Destinations),
		OccurredAt:      time.Now().UTC(),
	}
}

// Publisher sends lifecycle events
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close()
}

// NoopPublisher drops every event
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
func (NoopPublisher) Close()                               {}

type msgPublisher interface {
	Publish(subj string, data []byte) error
}

// NATSPublisher publishes events on core NATS subjects
type NATSPublisher struct {
	conn   msgPublisher
	nc     *nats.Conn
	prefix string
}

// Connect dials NATS, retrying with exponential backoff while the server
// starts. It gives up after attempts tries or when ctx is done.
func Connect(ctx context.Context, url, subjectPrefix string, attempts int, wait time.Duration) (*NATSPublisher, error) {
	nc, err := dialWithRetry(ctx, attempts, wait, func() (*nats.Conn, error) {
		return nats.Connect(url, nats.Name("travel-itinerary-backend"))
	})
	if err != nil {
		return nil, err
	}
	return &NATSPublisher{conn: nc, nc: nc, prefix: subjectPrefix}, nil
}

func dialWithRetry[T any](ctx context.Context, attempts int, wait time.Duration, dial func() (T, error)) (T, error) {
	if attempts < 1 {
		attempts = 1
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = wait
	b.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(attempts-1)), ctx)

	var conn T
	err := backoff.RetryNotify(func() error {
		c, err := dial()
		if err != nil {
			return err
		}
		conn = c
		return nil
	}, policy, func(err error, next time.Duration) {
		log.Printf("Waiting for NATS to be ready... (%v, retry in %s)", err, next)
	})
	if err != nil {
		var zero T
		return zero, fmt.Errorf("connect to NATS: %w", err)
	}
	return conn, nil
}

// Subject returns the subject an event type is published on
func (p *NATSPublisher) Subject(eventType string) string {
	return p.prefix + eventType
}

// Publish sends e. Core NATS publishing is fire and forget, ctx is only
// checked before sending.
func (p *NATSPublisher) Publish(ctx context.Context, e Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.conn.Publish(p.Subject(e.Type), data); err != nil {
		return fmt.Errorf("publish %s: %w", e.Type, err)
	}
	return nil
}

// Close drains pending messages and closes the connection
func (p *NATSPublisher) Close() {
	if p.nc == nil {
		return
	}
	if err := p.nc.Drain(); err != nil {
		log.Printf("nats drain: %v", err)
	}
}
