package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// Subscriber consumes route events from JetStream.
type Subscriber struct {
	conn *nats.Conn
	js   nats.JetStreamContext
	subs []*nats.Subscription
}

// NewSubscriber creates a subscriber with its own NATS connection.
func NewSubscriber(url string) (*Subscriber, error) {
	conn, err := Connect(url)
	if err != nil {
		return nil, err
	}
	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	return &Subscriber{conn: conn, js: js}, nil
}

// SubscribeRouteRecorded delivers every RouteRecorded event to handler.
// A durable name resumes where the previous consumer stopped; an empty one
// creates an ephemeral consumer. Undecodable messages are terminated,
// handler errors are redelivered up to three times.
func (s *Subscriber) SubscribeRouteRecorded(ctx context.Context, durable string, handler func(ctx context.Context, e *RouteRecorded) error) error {
	opts := []nats.SubOpt{
		nats.ManualAck(),
		nats.MaxDeliver(3),
	}
	if durable != "" {
		opts = append(opts, nats.Durable(durable))
	}

	sub, err := s.js.Subscribe(SubjectRouteRecorded, func(msg *nats.Msg) {
		var e RouteRecorded
		if err := json.Unmarshal(msg.Data, &e); err != nil {
			_ = msg.Term()
			return
		}
		if err := handler(ctx, &e); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	}, opts...)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", SubjectRouteRecorded, err)
	}
	s.subs = append(s.subs, sub)
	return nil
}

// Close unsubscribes and drains.
func (s *Subscriber) Close() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	_ = s.conn.Drain()
}
