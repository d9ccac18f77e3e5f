package http

import (
	"net/http"

	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/MKhiriev/go-health-keeper/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handler struct {
	services *service.Services
	metrics  http.Handler

	logger *logger.Logger
}

// NewHandler builds the REST handler. gatherer backs GET /metrics; nil uses
// the default Prometheus gatherer.
func NewHandler(services *service.Services, gatherer prometheus.Gatherer, logger *logger.Logger) *Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		metrics:  promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{DisableCompression: true}),
		logger:   logger,
	}
}
