package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-shelf-sync/internal/adapter"
	"github.com/MKhiriev/go-shelf-sync/internal/config"
	"github.com/MKhiriev/go-shelf-sync/internal/logger"
	"github.com/MKhiriev/go-shelf-sync/internal/network"
	"github.com/MKhiriev/go-shelf-sync/internal/service"
	"github.com/MKhiriev/go-shelf-sync/internal/store"
	"github.com/MKhiriev/go-shelf-sync/internal/utils"
	"github.com/MKhiriev/go-shelf-sync/models"
)

var _ Client = (*App)(nil)

type App struct {
	cfg      config.ClientConfig
	storages *store.ClientStorages
	services *service.ClientServices
	watcher  *network.Watcher

	out    io.Writer
	logger *logger.Logger
}

// NewApp opens the local store and wires the client services. Command
// output is written to out.
func NewApp(ctx context.Context, cfg config.ClientConfig, out io.Writer, logger *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	deviceID, err := resolveDeviceID(ctx, storages.SyncMeta, cfg.App.DeviceID, utils.NewUUIDGenerator())
	if err != nil {
		_ = storages.Close()
		return nil, err
	}
	cfg.App.DeviceID = deviceID

	api, err := adapter.NewHTTPBackupAPI(cfg.Adapter, cfg.App, logger)
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("create backup api adapter: %w", err)
	}

	gate := network.NewGate(newClassifier(cfg, logger), cfg.Sync.SaveData, logger)

	logger.Info().
		Str("device_id", deviceID).
		Str("base_url", cfg.Adapter.BaseURL).
		Msg("client app created")

	return &App{
		cfg:      cfg,
		storages: storages,
		services: service.NewClientServices(storages, api, gate, cfg, logger),
		watcher:  network.NewWatcher(gate, cfg.Workers.NetworkPollInterval),
		out:      out,
		logger:   logger,
	}, nil
}

func (a *App) Close() error {
	return a.storages.Close()
}

// resolveDeviceID returns the configured device id, else the persisted one,
// else a newly generated and persisted id.
func resolveDeviceID(ctx context.Context, meta store.SyncMetaRepository, configured string, gen *utils.UUIDGenerator) (string, error) {
	if id := strings.TrimSpace(configured); id != "" {
		return id, nil
	}

	id, err := meta.GetDeviceID(ctx)
	if err != nil {
		return "", fmt.Errorf("load device id: %w", err)
	}
	if id != "" {
		return id, nil
	}

	id = gen.Generate()
	if err = meta.SaveDeviceID(ctx, id); err != nil {
		return "", fmt.Errorf("save device id: %w", err)
	}
	return id, nil
}

// newClassifier probes the backup host for reachability and reports the
// configured connection type when it is reachable.
func newClassifier(cfg config.ClientConfig, logger *logger.Logger) network.NetworkClassifier {
	static := network.NewStaticClassifier(models.ParseConnectionType(cfg.Sync.NetworkType))

	addr, err := probeAddress(cfg.Adapter.BaseURL)
	if err != nil {
		logger.Warn().Err(err).Msg("backup host is not probed")
		return static
	}
	return network.NewProbeClassifier(addr, cfg.Adapter.ProbeTimeout, static)
}

// probeAddress derives "host:port" from the backup API base URL.
func probeAddress(baseURL string) (string, error) {
	raw := strings.TrimSpace(baseURL)
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	if u.Hostname() == "" {
		return "", errors.New("base url has no host")
	}

	port := u.Port()
	if port == "" {
		port = "80"
		if strings.EqualFold(u.Scheme, "https") {
			port = "443"
		}
	}
	return net.JoinHostPort(u.Hostname(), port), nil
}
