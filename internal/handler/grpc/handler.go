package grpc

import (
	"context"
	"time"

	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported next to the overall
// server status ("").
const ServiceName = "healthkeeper.Store"

// Pinger reports whether a dependency is reachable. *store.DB satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler is the root gRPC transport handler.
//
// It serves the standard grpc.health.v1.Health service. The status follows
// the store: SERVING while pings succeed, NOT_SERVING otherwise.
type Handler struct {
	health *health.Server
	store  Pinger

	logger *logger.Logger
}

// NewHandler constructs a [Handler] probing store. The status starts as
// NOT_SERVING until the first probe.
func NewHandler(store Pinger, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	h := &Handler{
		health: health.NewServer(),
		store:  store,
		logger: logger,
	}
	h.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)

	return h
}

// Register adds the health service to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
}

// Probe pings the store once and updates the reported status.
func (h *Handler) Probe(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if h.store == nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	} else if err := h.store.Ping(ctx); err != nil {
		h.logger.Err(err).Str("func", "*Handler.Probe").Msg("store ping failed")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	h.setStatus(status)
	return status
}

// Watch probes the store every interval until ctx is done, then marks the
// server as shutting down.
func (h *Handler) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	h.Probe(ctx)
	for {
		select {
		case <-ctx.Done():
			h.health.Shutdown()
			return
		case <-ticker.C:
			h.Probe(ctx)
		}
	}
}

// Shutdown reports NOT_SERVING for every service.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

func (h *Handler) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}
