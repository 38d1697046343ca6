package routeguidepb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "routeguide.RouteGuide"

// Full method names, as seen by interceptors.
const (
	GetFeatureMethod   = "/" + ServiceName + "/GetFeature"
	ListFeaturesMethod = "/" + ServiceName + "/ListFeatures"
	RecordRouteMethod  = "/" + ServiceName + "/RecordRoute"
	RouteChatMethod    = "/" + ServiceName + "/RouteChat"
)

// RouteGuideServer is the server API for the RouteGuide service.
type RouteGuideServer interface {
	GetFeature(context.Context, *Point) (*Feature, error)
	ListFeatures(*Rectangle, ListFeaturesServer) error
	RecordRoute(RecordRouteServer) error
	RouteChat(RouteChatServer) error
}

// UnimplementedRouteGuideServer answers every method with codes.Unimplemented.
type UnimplementedRouteGuideServer struct{}

func (UnimplementedRouteGuideServer) GetFeature(context.Context, *Point) (*Feature, error) {
	return nil, status.Error(codes.Unimplemented, "method GetFeature not implemented")
}

func (UnimplementedRouteGuideServer) ListFeatures(*Rectangle, ListFeaturesServer) error {
	return status.Error(codes.Unimplemented, "method ListFeatures not implemented")
}

func (UnimplementedRouteGuideServer) RecordRoute(RecordRouteServer) error {
	return status.Error(codes.Unimplemented, "method RecordRoute not implemented")
}

func (UnimplementedRouteGuideServer) RouteChat(RouteChatServer) error {
	return status.Error(codes.Unimplemented, "method RouteChat not implemented")
}

// RegisterRouteGuideServer registers srv on s. The server must also be
// built with ServerCodec.
func RegisterRouteGuideServer(s grpc.ServiceRegistrar, srv RouteGuideServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ListFeaturesServer is the server side of ListFeatures.
type ListFeaturesServer interface {
	Send(*Feature) error
	grpc.ServerStream
}

type listFeaturesServer struct {
	grpc.ServerStream
}

func (x *listFeaturesServer) Send(m *Feature) error {
	return x.ServerStream.SendMsg(m)
}

// RecordRouteServer is the server side of RecordRoute.
type RecordRouteServer interface {
	SendAndClose(*RouteSummary) error
	Recv() (*Point, error)
	grpc.ServerStream
}

type recordRouteServer struct {
	grpc.ServerStream
}

func (x *recordRouteServer) SendAndClose(m *RouteSummary) error {
	return x.ServerStream.SendMsg(m)
}

func (x *recordRouteServer) Recv() (*Point, error) {
	m := new(Point)
	if err := x.ServerStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// RouteChatServer is the server side of RouteChat.
type RouteChatServer interface {
	Send(*RouteNote) error
	Recv() (*RouteNote, error)
	grpc.ServerStream
}

type routeChatServer struct {
	grpc.ServerStream
}

func (x *routeChatServer) Send(m *RouteNote) error {
	return x.ServerStream.SendMsg(m)
}

func (x *routeChatServer) Recv() (*RouteNote, error) {
	m := new(RouteNote)
	if err := x.ServerStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func getFeatureHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Point)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RouteGuideServer).GetFeature(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetFeatureMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RouteGuideServer).GetFeature(ctx, req.(*Point))
	}
	return interceptor(ctx, in, info, handler)
}

func listFeaturesHandler(srv any, stream grpc.ServerStream) error {
	m := new(Rectangle)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(RouteGuideServer).ListFeatures(m, &listFeaturesServer{stream})
}

func recordRouteHandler(srv any, stream grpc.ServerStream) error {
	return srv.(RouteGuideServer).RecordRoute(&recordRouteServer{stream})
}

func routeChatHandler(srv any, stream grpc.ServerStream) error {
	return srv.(RouteGuideServer).RouteChat(&routeChatServer{stream})
}

// ServiceDesc describes the RouteGuide service for grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RouteGuideServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetFeature", Handler: getFeatureHandler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "ListFeatures", Handler: listFeaturesHandler, ServerStreams: true},
		{StreamName: "RecordRoute", Handler: recordRouteHandler, ClientStreams: true},
		{StreamName: "RouteChat", Handler: routeChatHandler, ServerStreams: true, ClientStreams: true},
	},
	Metadata: "route.proto",
}
