// Package health is a client for the server's gRPC health endpoint, used by
// the healthcheck probe.
package health

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/useraccounts/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

var (
	ErrNotServing  = errors.New("service not serving")
	ErrUnavailable = errors.New("server unavailable")
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      healthpb.HealthClient
}

// NewGRPCClient connects lazily to endpointURL over plaintext. Extra options
// are appended, so tests can swap the dialer.
func NewGRPCClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}

	return &GRPCClient{
		endpointURL: endpointURL,
		conn:        conn,
		client:      healthpb.NewHealthClient(conn),
	}, nil
}

// Check returns nil when service reports SERVING. An empty service asks for
// the overall server status.
func (s *GRPCClient) Check(ctx context.Context, service string) error {
	resp, err := s.client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return s.mapError(err)
	}

	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("%w: %s", ErrNotServing, resp.GetStatus())
	}
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.NotFound:
		return common.ErrorNotFound
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", ErrUnavailable, s.endpointURL)
	default:
		return err
	}
}
