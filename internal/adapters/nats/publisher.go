package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/samirrijal/routeguide/internal/core/domain"
	"github.com/samirrijal/routeguide/internal/core/ports"
	"github.com/samirrijal/routeguide/internal/pkg/metrics"
)

const (
	// StreamName is the JetStream stream holding route events.
	StreamName = "ROUTE_EVENTS"
	// SubjectRouteRecorded carries one RouteRecorded per completed RecordRoute call.
	SubjectRouteRecorded = "routeguide.route.recorded"
)

// RouteRecorded is the payload published for every recorded route.
type RouteRecorded struct {
	ID         string              `json:"id"`
	RecordedAt time.Time           `json:"recorded_at"`
	Summary    domain.RouteSummary `json:"summary"`
}

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
	now  func() time.Time
}

// NewPublisher connects to NATS and ensures the route event stream exists.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := Connect(url)
	if err != nil {
		return nil, err
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	cfg := &nats.StreamConfig{
		Name:      StreamName,
		Subjects:  []string{"routeguide.>"},
		Retention: nats.LimitsPolicy,
		MaxAge:    24 * time.Hour,
		Storage:   nats.FileStorage,
	}
	if _, err := js.AddStream(cfg); err != nil {
		// Stream may already exist, try update
		if _, err := js.UpdateStream(cfg); err != nil {
			conn.Close()
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	return &Publisher{conn: conn, js: js, now: time.Now}, nil
}

// PublishRouteSummary publishes a RouteRecorded event. The event ID doubles
// as the JetStream message ID so redeliveries are deduplicated.
func (p *Publisher) PublishRouteSummary(ctx context.Context, s *domain.RouteSummary) error {
	event := RouteRecorded{
		ID:         uuid.NewString(),
		RecordedAt: p.now().UTC(),
		Summary:    *s,
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if _, err := p.js.Publish(SubjectRouteRecorded, data, nats.Context(ctx), nats.MsgId(event.ID)); err != nil {
		metrics.EventsPublishFailures.Inc()
		return fmt.Errorf("publish %s: %w", SubjectRouteRecorded, err)
	}
	return nil
}

// IsConnected reports whether the underlying connection is up.
func (p *Publisher) IsConnected() bool {
	return p.conn.IsConnected()
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// Connect dials NATS, retrying in the background until the server is up.
func Connect(url string) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return conn, nil
}

var _ ports.EventPublisher = (*Publisher)(nil)
