package grpcadapter

import (
	"context"
	"fmt"
	"log/slog"

	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/samirrijal/routeguide/internal/core/usecases"
	"github.com/samirrijal/routeguide/internal/pkg/logging"
	"github.com/samirrijal/routeguide/internal/pkg/metrics"
	pb "github.com/samirrijal/routeguide/internal/routeguidepb"
)

// Options configures the gRPC transport.
type Options struct {
	// MaxWorkers bounds the goroutines serving streams; 0 keeps the
	// one-goroutine-per-stream default.
	MaxWorkers uint32
	// MaxConcurrentStreams bounds concurrent calls per connection.
	MaxConcurrentStreams uint32
	// Creds enables TLS; nil serves plaintext.
	Creds credentials.TransportCredentials
}

// Server bundles the grpc.Server with its health service so both can be
// shut down together.
type Server struct {
	*grpc.Server
	health *health.Server
}

// NewServer builds a gRPC server exposing svc as routeguide.RouteGuide.
func NewServer(svc *usecases.RouteGuideService, opts Options) *Server {
	recoveryOpt := grpc_recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
		logging.FromContext(ctx).Error("panic in handler", "panic", fmt.Sprint(p))
		return status.Error(codes.Internal, "internal error")
	})

	serverOpts := []grpc.ServerOption{
		pb.ServerCodec(),
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			metrics.UnaryServerInterceptor(),
			UnaryLogInterceptor(),
			grpc_recovery.UnaryServerInterceptor(recoveryOpt),
		),
		grpc.ChainStreamInterceptor(
			metrics.StreamServerInterceptor(),
			StreamLogInterceptor(),
			grpc_recovery.StreamServerInterceptor(recoveryOpt),
		),
	}
	if opts.MaxWorkers > 0 {
		serverOpts = append(serverOpts, grpc.NumStreamWorkers(opts.MaxWorkers))
	}
	if opts.MaxConcurrentStreams > 0 {
		serverOpts = append(serverOpts, grpc.MaxConcurrentStreams(opts.MaxConcurrentStreams))
	}
	if opts.Creds != nil {
		serverOpts = append(serverOpts, grpc.Creds(opts.Creds))
	}

	s := grpc.NewServer(serverOpts...)
	pb.RegisterRouteGuideServer(s, NewRouteGuideServer(svc))

	hs := health.NewServer()
	hs.SetServingStatus(pb.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, hs)

	return &Server{Server: s, health: hs}
}

// Shutdown marks the service as not serving and stops the server,
// letting in-flight calls finish until ctx ends.
func (s *Server) Shutdown(ctx context.Context) {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		slog.Warn("graceful stop timed out, closing open calls")
		s.Stop()
		<-done
	}
}
