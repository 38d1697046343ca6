package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

var (
	// gRPC metrics
	grpcHandledTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "routeguide",
		Subsystem: "grpc",
		Name:      "handled_total",
		Help:      "Total RPCs completed on the server, by method and status code",
	}, []string{"method", "code"})

	grpcHandlingSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "routeguide",
		Subsystem: "grpc",
		Name:      "handling_seconds",
		Help:      "RPC latency in seconds, from start to final status",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
	}, []string{"method"})

	grpcMsgReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "routeguide",
		Subsystem: "grpc",
		Name:      "msg_received_total",
		Help:      "Total stream messages received from clients",
	}, []string{"method"})

	grpcMsgSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "routeguide",
		Subsystem: "grpc",
		Name:      "msg_sent_total",
		Help:      "Total stream messages sent to clients",
	}, []string{"method"})

	ActiveStreams = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "routeguide",
		Subsystem: "grpc",
		Name:      "active_streams",
		Help:      "Current number of in-flight streaming RPCs",
	})

	// HTTP metrics (admin server)
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "routeguide",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total admin HTTP requests processed",
	}, []string{"method", "path", "status"})

	// Route guide metrics
	DatasetFeatures = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "routeguide",
		Subsystem: "dataset",
		Name:      "features",
		Help:      "Number of features in the loaded index",
	})

	FeatureLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "routeguide",
		Subsystem: "features",
		Name:      "lookups_total",
		Help:      "GetFeature lookups by result",
	}, []string{"result"})

	RoutePoints = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "routeguide",
		Subsystem: "route",
		Name:      "points",
		Help:      "Points per recorded route",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	})

	RouteDistance = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "routeguide",
		Subsystem: "route",
		Name:      "distance_meters",
		Help:      "Distance covered per recorded route",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	})

	EventsPublishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "routeguide",
		Subsystem: "events",
		Name:      "publish_failures_total",
		Help:      "Route events that could not be published",
	})
)

// UnaryServerInterceptor records unary RPC metrics.
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		observe(info.FullMethod, start, err)
		return resp, err
	}
}

// StreamServerInterceptor records streaming RPC metrics, including the
// number of messages moved in each direction.
func StreamServerInterceptor() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		ActiveStreams.Inc()
		defer ActiveStreams.Dec()

		err := handler(srv, &countingStream{ServerStream: ss, method: info.FullMethod})
		observe(info.FullMethod, start, err)
		return err
	}
}

func observe(method string, start time.Time, err error) {
	grpcHandledTotal.WithLabelValues(method, status.Code(err).String()).Inc()
	grpcHandlingSeconds.WithLabelValues(method).Observe(time.Since(start).Seconds())
}

type countingStream struct {
	grpc.ServerStream
	method string
}

func (s *countingStream) SendMsg(m any) error {
	err := s.ServerStream.SendMsg(m)
	if err == nil {
		grpcMsgSent.WithLabelValues(s.method).Inc()
	}
	return err
}

func (s *countingStream) RecvMsg(m any) error {
	err := s.ServerStream.RecvMsg(m)
	if err == nil {
		grpcMsgReceived.WithLabelValues(s.method).Inc()
	}
	return err
}

// Middleware records admin HTTP request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		code := strconv.Itoa(c.Response().StatusCode())
		httpRequestsTotal.WithLabelValues(c.Method(), path, code).Inc()

		return err
	}
}

// Handler returns a Fiber handler serving Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}
