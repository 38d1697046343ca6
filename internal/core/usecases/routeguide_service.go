package usecases

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/samirrijal/routeguide/internal/core/domain"
	"github.com/samirrijal/routeguide/internal/core/ports"
	"github.com/samirrijal/routeguide/internal/pkg/geospatial"
	"github.com/samirrijal/routeguide/internal/pkg/logging"
)

// RouteGuideService implements the route guide operations over an
// immutable feature index. Per-call state lives on the handler's stack.
type RouteGuideService struct {
	index  *domain.FeatureIndex
	events ports.EventPublisher
	now    func() time.Time
}

// Option customises a RouteGuideService.
type Option func(*RouteGuideService)

// WithClock overrides the wall clock used for route timing.
func WithClock(now func() time.Time) Option {
	return func(s *RouteGuideService) { s.now = now }
}

// NewRouteGuideService loads the dataset from features exactly once and
// builds the index. events may be nil.
func NewRouteGuideService(ctx context.Context, features ports.FeatureRepository, events ports.EventPublisher, opts ...Option) (*RouteGuideService, error) {
	all, err := features.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load features: %w", err)
	}

	kept := make([]domain.Feature, 0, len(all))
	for _, f := range all {
		// An empty name is the wire-level "no feature" marker.
		if f.Name == "" {
			continue
		}
		kept = append(kept, f)
	}
	if skipped := len(all) - len(kept); skipped > 0 {
		slog.Warn("skipped unnamed features", "count", skipped)
	}

	s := &RouteGuideService{
		index:  domain.NewFeatureIndex(kept),
		events: events,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Index returns the read-only feature index.
func (s *RouteGuideService) Index() *domain.FeatureIndex {
	return s.index
}

// GetFeature returns the feature at p, if any.
func (s *RouteGuideService) GetFeature(_ context.Context, p domain.Point) (domain.Feature, bool) {
	return s.index.Lookup(p)
}

// ListFeatures sends every feature inside rect in index order.
func (s *RouteGuideService) ListFeatures(ctx context.Context, rect domain.Rectangle, send ports.FeatureSink) error {
	for f := range s.index.Within(rect) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := send(f); err != nil {
			return fmt.Errorf("send feature: %w", err)
		}
	}
	return nil
}

// RecordRoute consumes points until recv returns io.EOF and summarises
// the route. No summary is produced if the stream fails or ctx ends.
func (s *RouteGuideService) RecordRoute(ctx context.Context, recv ports.PointSource) (domain.RouteSummary, error) {
	var (
		pointCount   int32
		featureCount int32
		distance     float64
		prev         domain.Point
		start        time.Time
	)

	for {
		if err := ctx.Err(); err != nil {
			return domain.RouteSummary{}, err
		}
		p, err := recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.RouteSummary{}, fmt.Errorf("receive point: %w", err)
		}

		if pointCount == 0 {
			start = s.now()
		} else {
			distance += geospatial.Distance(prev, p)
		}
		pointCount++
		if _, ok := s.index.Lookup(p); ok {
			featureCount++
		}
		prev = p
	}

	var elapsed time.Duration
	if pointCount > 0 {
		elapsed = s.now().Sub(start)
	}

	summary := domain.RouteSummary{
		PointCount:   pointCount,
		FeatureCount: featureCount,
		Distance:     truncInt32(distance),
		ElapsedTime:  truncInt32(elapsed.Seconds()),
	}

	if s.events != nil {
		if err := s.events.PublishRouteSummary(ctx, &summary); err != nil {
			logging.FromContext(ctx).Warn("publish route summary failed", "error", err)
		}
	}

	return summary, nil
}

// RouteChat echoes, for each inbound note, every earlier note of the same
// call at the same location, in the order they were received.
func (s *RouteGuideService) RouteChat(ctx context.Context, stream ports.NoteStream) error {
	var notes []domain.RouteNote

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		note, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("receive note: %w", err)
		}

		for _, prev := range notes {
			if prev.Location != note.Location {
				continue
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := stream.Send(prev); err != nil {
				return fmt.Errorf("send note: %w", err)
			}
		}
		notes = append(notes, note)
	}
}

// truncInt32 truncates toward zero, saturating at the int32 range.
// NaN, produced only by out-of-range coordinates, maps to zero.
func truncInt32(v float64) int32 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	}
	return int32(v)
}
