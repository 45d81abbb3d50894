package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-shelf-sync/internal/client"
	"github.com/MKhiriev/go-shelf-sync/internal/config"
	"github.com/MKhiriev/go-shelf-sync/internal/logger"
	"github.com/MKhiriev/go-shelf-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.GetClientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		return 2
	}
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	if cfg.App.Version == "" && info.Known() {
		cfg.App.Version = info.BuildVersion()
	}

	log := logger.NewFileLogger("shelf-sync-client", logger.FileOptions{
		Path:       cfg.Log.FilePath,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	logBuildInfo(log, info)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := client.NewApp(ctx, *cfg, os.Stdout, log)
	if err != nil {
		log.Err(err).Msg("init client app error")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer app.Close()

	if err = app.Run(ctx); err != nil {
		log.Err(err).Msg("client run error")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// logBuildInfo keeps build details out of the command output.
func logBuildInfo(log *logger.Logger, info models.AppBuildInfo) {
	log.Info().
		Str("version", info.BuildVersion()).
		Str("date", info.BuildDate()).
		Str("commit", info.BuildCommit()).
		Msg("build info")
}
