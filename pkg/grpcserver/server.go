// Package grpcserver hosts the storefront's gRPC surface: the standard health
// service driven by a readiness probe, plus reflection for grpcurl.
package grpcserver

import (
	"context"
	"net"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/tair/storefront/pkg/logger"
)

// Probe reports whether the service can serve traffic
type Probe func(ctx context.Context) error

// Server wraps a grpc.Server with a probe-driven health service
type Server struct {
	grpc     *grpc.Server
	health   *health.Server
	probe    Probe
	service  string
	interval time.Duration
}

// New creates a server for the named service. A nil probe always reports SERVING.
func New(service string, probe Probe, interval time.Duration) *Server {
	if interval <= 0 {
		interval = 10 * time.Second
	}

	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(LoggingInterceptor),
	)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	return &Server{
		grpc:     srv,
		health:   hs,
		probe:    probe,
		service:  service,
		interval: interval,
	}
}

// GRPC exposes the underlying server for registering additional services
func (s *Server) GRPC() *grpc.Server {
	return s.grpc
}

// Check runs the probe once and publishes the result for both the named
// service and the overall ("") status.
func (s *Server) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if s.probe != nil {
		if err := s.probe(ctx); err != nil {
			logger.Warn(ctx).Err(err).Str("service", s.service).Msg("Health probe failed")
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}

	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(s.service, status)
	return status
}

// Watch re-runs the probe on an interval until ctx is done
func (s *Server) Watch(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Check(ctx)
		}
	}
}

// Serve blocks serving on lis
func (s *Server) Serve(lis net.Listener) error {
	s.Check(context.Background())
	logger.Logger.Info().Str("addr", lis.Addr().String()).Msg("gRPC server listening")
	return s.grpc.Serve(lis)
}

// Stop marks the service NOT_SERVING and drains in-flight calls
func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}
