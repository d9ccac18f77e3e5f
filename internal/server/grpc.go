package server

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/MKhiriev/go-health-keeper/internal/config"
	myGRPC "github.com/MKhiriev/go-health-keeper/internal/handler/grpc"
	"github.com/MKhiriev/go-health-keeper/internal/logger"

	"google.golang.org/grpc"
)

// healthProbeInterval is how often the gRPC health status re-checks the store.
const healthProbeInterval = 15 * time.Second

type grpcServer struct {
	handler *myGRPC.Handler

	server          *grpc.Server
	gRPCNetListener net.Listener

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) (*grpcServer, error) {
	listener, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", cfg.GRPCAddress, err)
	}

	server := grpc.NewServer()
	handler.Register(server)

	return &grpcServer{
		handler:         handler,
		server:          server,
		gRPCNetListener: listener,
		logger:          logger,
	}, nil
}

// WatchHealth keeps the health status in step with the store until ctx is done.
func (g *grpcServer) WatchHealth(ctx context.Context) {
	g.handler.Watch(ctx, healthProbeInterval)
}

func (g *grpcServer) RunServer() {
	if err := g.server.Serve(g.gRPCNetListener); err != nil {
		g.logger.Err(err).Msg("gRPC server Serve")
	}
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("GRPC server Shutdown")
	g.handler.Shutdown()
	g.server.GracefulStop()
}

func (g *grpcServer) addr() string {
	return g.gRPCNetListener.Addr().String()
}
