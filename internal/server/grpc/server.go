// Package grpc exposes the standard gRPC health service next to the HTTP API
// so orchestrators can probe the process.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/useraccounts/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service entry reported alongside the overall "" entry.
const ServiceName = "useraccounts"

type HealthServer struct {
	address string
	logger  logging.Logger
	health  *health.Server
}

func NewHealthServer(a string, l logging.Logger) *HealthServer {
	return &HealthServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		health:  health.NewServer(),
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *HealthServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis. Both entries report SERVING until ctx is
// done, then NOT_SERVING while in-flight calls drain.
func (s *HealthServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, s.health)

	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
