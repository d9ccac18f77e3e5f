package main

import (
	"fmt"

	"github.com/MKhiriev/go-health-keeper/internal/adapter"
	"github.com/MKhiriev/go-health-keeper/internal/client"
	"github.com/MKhiriev/go-health-keeper/internal/config"
	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/MKhiriev/go-health-keeper/internal/metrics"
	"github.com/MKhiriev/go-health-keeper/internal/service"
	"github.com/MKhiriev/go-health-keeper/internal/tui"
	"github.com/MKhiriev/go-health-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewClientLogger("go-health-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	// the client exposes no metrics endpoint; counters stay in process
	m := metrics.Nop()

	services, err := service.NewClientServices(serverAdapter, cfg, m, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create client services")
	}

	ui, err := tui.New(services.AuthService, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	var app client.Client
	app, err = client.NewApp(services, ui, cfg.Session, m, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	err = app.Run()
	services.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
