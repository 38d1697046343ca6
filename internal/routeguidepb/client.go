package routeguidepb

import (
	"context"

	"google.golang.org/grpc"
)

// RouteGuideClient is the client API for the RouteGuide service.
// The connection must be dialed with ClientCodec.
type RouteGuideClient interface {
	GetFeature(ctx context.Context, in *Point, opts ...grpc.CallOption) (*Feature, error)
	ListFeatures(ctx context.Context, in *Rectangle, opts ...grpc.CallOption) (ListFeaturesClient, error)
	RecordRoute(ctx context.Context, opts ...grpc.CallOption) (RecordRouteClient, error)
	RouteChat(ctx context.Context, opts ...grpc.CallOption) (RouteChatClient, error)
}

type routeGuideClient struct {
	cc grpc.ClientConnInterface
}

// NewRouteGuideClient returns a client bound to cc.
func NewRouteGuideClient(cc grpc.ClientConnInterface) RouteGuideClient {
	return &routeGuideClient{cc: cc}
}

func (c *routeGuideClient) GetFeature(ctx context.Context, in *Point, opts ...grpc.CallOption) (*Feature, error) {
	out := new(Feature)
	if err := c.cc.Invoke(ctx, GetFeatureMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *routeGuideClient) ListFeatures(ctx context.Context, in *Rectangle, opts ...grpc.CallOption) (ListFeaturesClient, error) {
	stream, err := c.cc.NewStream(ctx, &ServiceDesc.Streams[0], ListFeaturesMethod, opts...)
	if err != nil {
		return nil, err
	}
	x := &listFeaturesClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// ListFeaturesClient is the client side of ListFeatures.
type ListFeaturesClient interface {
	Recv() (*Feature, error)
	grpc.ClientStream
}

type listFeaturesClient struct {
	grpc.ClientStream
}

func (x *listFeaturesClient) Recv() (*Feature, error) {
	m := new(Feature)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *routeGuideClient) RecordRoute(ctx context.Context, opts ...grpc.CallOption) (RecordRouteClient, error) {
	stream, err := c.cc.NewStream(ctx, &ServiceDesc.Streams[1], RecordRouteMethod, opts...)
	if err != nil {
		return nil, err
	}
	return &recordRouteClient{stream}, nil
}

// RecordRouteClient is the client side of RecordRoute.
type RecordRouteClient interface {
	Send(*Point) error
	CloseAndRecv() (*RouteSummary, error)
	grpc.ClientStream
}

type recordRouteClient struct {
	grpc.ClientStream
}

func (x *recordRouteClient) Send(m *Point) error {
	return x.ClientStream.SendMsg(m)
}

func (x *recordRouteClient) CloseAndRecv() (*RouteSummary, error) {
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	m := new(RouteSummary)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *routeGuideClient) RouteChat(ctx context.Context, opts ...grpc.CallOption) (RouteChatClient, error) {
	stream, err := c.cc.NewStream(ctx, &ServiceDesc.Streams[2], RouteChatMethod, opts...)
	if err != nil {
		return nil, err
	}
	return &routeChatClient{stream}, nil
}

// RouteChatClient is the client side of RouteChat.
type RouteChatClient interface {
	Send(*RouteNote) error
	Recv() (*RouteNote, error)
	grpc.ClientStream
}

type routeChatClient struct {
	grpc.ClientStream
}

func (x *routeChatClient) Send(m *RouteNote) error {
	return x.ClientStream.SendMsg(m)
}

func (x *routeChatClient) Recv() (*RouteNote, error) {
	m := new(RouteNote)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}
