package grpcadapter

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/samirrijal/routeguide/internal/pkg/logging"
)

// UnaryLogInterceptor attaches a call-scoped logger to the context and
// logs every unary call once it completes.
func UnaryLogInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		ctx, logger := callLogger(ctx, info.FullMethod)

		resp, err := handler(ctx, req)
		logCall(ctx, logger, start, err)
		return resp, err
	}
}

// StreamLogInterceptor is the streaming counterpart of UnaryLogInterceptor.
func StreamLogInterceptor() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		ctx, logger := callLogger(ss.Context(), info.FullMethod)

		err := handler(srv, &contextStream{ServerStream: ss, ctx: ctx})
		logCall(ctx, logger, start, err)
		return err
	}
}

func callLogger(ctx context.Context, method string) (context.Context, *slog.Logger) {
	logger := slog.Default().With(
		"call_id", uuid.NewString(),
		"method", method,
	)
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		logger = logger.With("peer", p.Addr.String())
	}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		logger = logger.With("trace_id", sc.TraceID().String())
	}
	return logging.WithLogger(ctx, logger), logger
}

func logCall(ctx context.Context, logger *slog.Logger, start time.Time, err error) {
	code := status.Code(err)
	attrs := []slog.Attr{
		slog.String("code", code.String()),
		slog.String("latency", time.Since(start).String()),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	logger.LogAttrs(ctx, levelFor(code), "rpc finished", attrs...)
}

// levelFor picks a log level from a status code: client-side outcomes
// warn, server faults error.
func levelFor(code codes.Code) slog.Level {
	switch code {
	case codes.OK:
		return slog.LevelInfo
	case codes.Canceled, codes.DeadlineExceeded, codes.InvalidArgument,
		codes.NotFound, codes.ResourceExhausted, codes.Unauthenticated:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// contextStream overrides the context of a server stream.
type contextStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *contextStream) Context() context.Context {
	return s.ctx
}
