package grpcadapter

import (
	"github.com/samirrijal/routeguide/internal/core/domain"
	pb "github.com/samirrijal/routeguide/internal/routeguidepb"
)

// Missing submessages decode as the zero point, as protobuf getters do.

func toPoint(p *pb.Point) domain.Point {
	return domain.Point{Latitude: p.GetLatitude(), Longitude: p.GetLongitude()}
}

func toRectangle(r *pb.Rectangle) domain.Rectangle {
	return domain.Rectangle{Lo: toPoint(r.GetLo()), Hi: toPoint(r.GetHi())}
}

func toNote(n *pb.RouteNote) domain.RouteNote {
	return domain.RouteNote{Location: toPoint(n.GetLocation()), Message: n.GetMessage()}
}

func fromPoint(p domain.Point) *pb.Point {
	return &pb.Point{Latitude: p.Latitude, Longitude: p.Longitude}
}

func fromFeature(f domain.Feature) *pb.Feature {
	return &pb.Feature{Name: f.Name, Location: fromPoint(f.Location)}
}

// missingFeature is the wire form of "nothing at p": an unnamed feature.
func missingFeature(p domain.Point) *pb.Feature {
	return &pb.Feature{Name: "", Location: fromPoint(p)}
}

func fromNote(n domain.RouteNote) *pb.RouteNote {
	return &pb.RouteNote{Location: fromPoint(n.Location), Message: n.Message}
}

func fromSummary(s domain.RouteSummary) *pb.RouteSummary {
	return &pb.RouteSummary{
		PointCount:   s.PointCount,
		FeatureCount: s.FeatureCount,
		Distance:     s.Distance,
		ElapsedTime:  s.ElapsedTime,
	}
}
