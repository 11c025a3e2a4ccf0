package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/MKhiriev/go-ledger-desk/internal/adapter"
	"github.com/MKhiriev/go-ledger-desk/internal/client"
	"github.com/MKhiriev/go-ledger-desk/internal/config"
	"github.com/MKhiriev/go-ledger-desk/internal/handler"
	handlerhttp "github.com/MKhiriev/go-ledger-desk/internal/handler/http"
	"github.com/MKhiriev/go-ledger-desk/internal/logger"
	"github.com/MKhiriev/go-ledger-desk/internal/server"
	"github.com/MKhiriev/go-ledger-desk/internal/service"
	"github.com/MKhiriev/go-ledger-desk/internal/store"
	"github.com/MKhiriev/go-ledger-desk/internal/tui"
	"github.com/MKhiriev/go-ledger-desk/internal/workers"
	"github.com/MKhiriev/go-ledger-desk/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetClientConfig("ledger-desk", os.Args[1:])
	if err != nil {
		logger.NewConsoleLogger("ledger-desk", "info", os.Stderr).Fatal().Err(err).Msg("error getting configs")
	}

	// the desk owns the terminal, so logs go to a file
	log, logCloser := logger.NewFileLogger("ledger-desk", logger.FileLogConfig{Path: cfg.Log.File, Level: cfg.Log.Level})
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	serverAdapter, err := adapter.NewTCPServerAdapter(cfg.Adapter, adapter.NewMetrics(registry), log)
	if err != nil {
		log.Fatal().Err(err).Msg("create ledger adapter")
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer storages.Close()

	services := service.NewClientServices(storages, serverAdapter, cfg, log)
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	var status workers.Worker
	if cfg.Status.Address != "" {
		handlers, err := handler.NewHandlers(handlerhttp.Dependencies{
			Region:    services.Ledger.Region(),
			Balance:   services.Board,
			History:   services.Ledger,
			Gatherer:  registry,
			BuildInfo: buildInfo,
		}, cfg.Status, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create status handlers")
		}
		statusServer, err := server.NewStatusServer(handlers, cfg.Status, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create status server")
		}
		status = statusServer
	}

	ui := tui.New(services.Ledger, services.Board, buildInfo, log)

	app, err := client.NewApp(services, ui, status, cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
