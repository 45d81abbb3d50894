package main

import (
	"fmt"

	"github.com/MKhiriev/go-shelf-sync/internal/config"
	"github.com/MKhiriev/go-shelf-sync/internal/handler"
	"github.com/MKhiriev/go-shelf-sync/internal/logger"
	"github.com/MKhiriev/go-shelf-sync/internal/server"
	"github.com/MKhiriev/go-shelf-sync/internal/service"
	"github.com/MKhiriev/go-shelf-sync/internal/store"
	"github.com/MKhiriev/go-shelf-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(info)

	log := logger.NewLogger("shelf-sync-server")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = info.BuildVersion()
	}

	log.Debug().
		Str("address", cfg.Server.HTTPAddress).
		Str("backup_dir", cfg.Storage.Files.BackupDir).
		Int("tokens", len(cfg.Server.Tokens)).
		Msg("received configs")

	storages, err := store.NewServerStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	services, err := service.NewServices(storages, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
