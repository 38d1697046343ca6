package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"

	grpcadapter "github.com/samirrijal/routeguide/internal/adapters/grpc"
	"github.com/samirrijal/routeguide/internal/adapters/dataset"
	"github.com/samirrijal/routeguide/internal/adapters/http"
	natsadapter "github.com/samirrijal/routeguide/internal/adapters/nats"
	"github.com/samirrijal/routeguide/internal/adapters/postgres"
	"github.com/samirrijal/routeguide/internal/core/ports"
	"github.com/samirrijal/routeguide/internal/core/usecases"
	"github.com/samirrijal/routeguide/internal/pkg/config"
	"github.com/samirrijal/routeguide/internal/pkg/logging"
	"github.com/samirrijal/routeguide/internal/pkg/metrics"
	"github.com/samirrijal/routeguide/internal/pkg/telemetry"
)

var version = "dev"

func main() {
	cfg, err := config.Load("routeguide")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	deps := &http.Dependencies{Version: version}

	// Dataset
	var source ports.FeatureRepository
	switch cfg.Dataset.Source {
	case config.SourcePostgres:
		db, err := postgres.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
		deps.DB = db
		source = postgres.NewFeatureRepo(db)
	default:
		repo, err := dataset.NewFileRepository(cfg.Dataset.Path, cfg.Dataset.Format)
		if err != nil {
			log.Fatalf("dataset: %v", err)
		}
		source = repo
	}

	// NATS
	var events ports.EventPublisher
	if cfg.NATS.Enabled {
		pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats unavailable, route events disabled", "error", err)
		} else {
			defer pub.Close()
			deps.NATS = pub
			events = pub
		}
	}

	svc, err := usecases.NewRouteGuideService(ctx, source, events)
	if err != nil {
		log.Fatalf("route guide: %v", err)
	}
	index := svc.Index()
	metrics.DatasetFeatures.Set(float64(index.Len()))
	deps.FeatureCount = index.Len
	slog.Info("dataset loaded", "source", cfg.Dataset.Source, "features", index.Len())

	// gRPC
	opts := grpcadapter.Options{
		MaxWorkers:           uint32(cfg.Server.MaxWorkers),
		MaxConcurrentStreams: uint32(cfg.Server.MaxConcurrentStreams),
	}
	if cfg.Server.TLS.Enabled {
		creds, err := credentials.NewServerTLSFromFile(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile)
		if err != nil {
			log.Fatalf("tls: %v", err)
		}
		opts.Creds = creds
	}
	srv := grpcadapter.NewServer(svc, opts)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.Port))
	if err != nil {
		log.Fatalf("listen: %v", err)
	}

	go func() {
		slog.Info("gRPC server starting", "addr", lis.Addr().String(), "tls", cfg.Server.TLS.Enabled)
		if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			log.Fatalf("serve: %v", err)
		}
	}()

	// Admin HTTP
	app := http.NewApp(deps,
		time.Duration(cfg.Admin.ReadTimeout)*time.Second,
		time.Duration(cfg.Admin.WriteTimeout)*time.Second,
	)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Admin.Port)
		slog.Info("admin server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("admin listen: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining calls...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer shutdownCancel()

	srv.Shutdown(shutdownCtx)
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced admin shutdown", "error", err)
	}

	slog.Info("server stopped")
}
