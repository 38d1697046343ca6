package ports

import (
	"context"

	"github.com/samirrijal/routeguide/internal/core/domain"
)

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishRouteSummary(ctx context.Context, summary *domain.RouteSummary) error
}

// FeatureSink receives features produced by a server-streaming call.
type FeatureSink func(domain.Feature) error

// PointSource returns the next inbound point, or io.EOF once the caller
// has finished sending.
type PointSource func() (domain.Point, error)

// NoteStream is the bidirectional note exchange of a single call.
type NoteStream interface {
	Recv() (domain.RouteNote, error)
	Send(domain.RouteNote) error
}
