package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-health-keeper/internal/config"
	"github.com/MKhiriev/go-health-keeper/internal/handler"
	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/MKhiriev/go-health-keeper/internal/metrics"
	"github.com/MKhiriev/go-health-keeper/internal/server"
	"github.com/MKhiriev/go-health-keeper/internal/service"
	"github.com/MKhiriev/go-health-keeper/internal/store"
	"github.com/MKhiriev/go-health-keeper/internal/workers"
	"github.com/MKhiriev/go-health-keeper/models"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger("go-health-server")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	log.Debug().
		Stringer("build", buildInfo).
		Str("http_address", cfg.Server.HTTPAddress).
		Str("grpc_address", cfg.Server.GRPCAddress).
		Dur("request_timeout", cfg.Server.RequestTimeout).
		Msg("received configs")

	db, err := store.NewConnect(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	storages := store.NewStorages(db, log)
	m := metrics.New(prometheus.DefaultRegisterer)

	services, err := service.NewServices(storages, cfg, m, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, db, prometheus.DefaultGatherer, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	background := workers.NewWorkers(services, cfg.Workers, log)

	srv, err := server.NewServer(handlers, background, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(context.Background()); err != nil {
		log.Err(err).Msg("server stopped with error")
	}
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
