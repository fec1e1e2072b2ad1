package server

import (
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// NewGRPCServer registers svc and the standard health service on a new gRPC server.
func NewGRPCServer(svc CardScanServer, logger *slog.Logger, opts ...grpc.ServerOption) (*grpc.Server, *health.Server) {
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(UnaryInterceptor(logger))}, opts...)
	grpcServer := grpc.NewServer(opts...)
	RegisterCardScanServer(grpcServer, svc)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	// empty string means overall server health
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(CardScanServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	return grpcServer, healthServer
}
