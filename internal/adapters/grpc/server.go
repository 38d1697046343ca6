package grpcadapter

import (
	"context"

	"github.com/samirrijal/routeguide/internal/core/domain"
	"github.com/samirrijal/routeguide/internal/core/usecases"
	"github.com/samirrijal/routeguide/internal/pkg/metrics"
	pb "github.com/samirrijal/routeguide/internal/routeguidepb"
)

// RouteGuideServer exposes a RouteGuideService over gRPC.
type RouteGuideServer struct {
	pb.UnimplementedRouteGuideServer
	svc *usecases.RouteGuideService
}

// NewRouteGuideServer creates a new RouteGuideServer.
func NewRouteGuideServer(svc *usecases.RouteGuideService) *RouteGuideServer {
	return &RouteGuideServer{svc: svc}
}

// GetFeature answers with the feature at the point, or an unnamed feature
// at that point when there is none.
func (s *RouteGuideServer) GetFeature(ctx context.Context, p *pb.Point) (*pb.Feature, error) {
	point := toPoint(p)
	f, ok := s.svc.GetFeature(ctx, point)
	if !ok {
		metrics.FeatureLookups.WithLabelValues("miss").Inc()
		return missingFeature(point), nil
	}
	metrics.FeatureLookups.WithLabelValues("hit").Inc()
	return fromFeature(f), nil
}

func (s *RouteGuideServer) ListFeatures(rect *pb.Rectangle, stream pb.ListFeaturesServer) error {
	err := s.svc.ListFeatures(stream.Context(), toRectangle(rect), func(f domain.Feature) error {
		return stream.Send(fromFeature(f))
	})
	return toStatus(err)
}

func (s *RouteGuideServer) RecordRoute(stream pb.RecordRouteServer) error {
	summary, err := s.svc.RecordRoute(stream.Context(), func() (domain.Point, error) {
		p, err := stream.Recv()
		if err != nil {
			return domain.Point{}, err
		}
		return toPoint(p), nil
	})
	if err != nil {
		return toStatus(err)
	}

	metrics.RoutePoints.Observe(float64(summary.PointCount))
	metrics.RouteDistance.Observe(float64(summary.Distance))

	return toStatus(stream.SendAndClose(fromSummary(summary)))
}

func (s *RouteGuideServer) RouteChat(stream pb.RouteChatServer) error {
	return toStatus(s.svc.RouteChat(stream.Context(), noteStream{stream}))
}

// noteStream adapts the wire stream to domain notes.
type noteStream struct {
	stream pb.RouteChatServer
}

func (n noteStream) Recv() (domain.RouteNote, error) {
	note, err := n.stream.Recv()
	if err != nil {
		return domain.RouteNote{}, err
	}
	return toNote(note), nil
}

func (n noteStream) Send(note domain.RouteNote) error {
	return n.stream.Send(fromNote(note))
}
