package service

import (
	"github.com/MKhiriev/go-shelf-sync/internal/adapter"
	"github.com/MKhiriev/go-shelf-sync/internal/config"
	"github.com/MKhiriev/go-shelf-sync/internal/logger"
	"github.com/MKhiriev/go-shelf-sync/internal/store"
)

// ClientServices groups the client runtime services.
type ClientServices struct {
	Credentials CredentialStore
	Coordinator SyncCoordinator
	SyncJob     SyncJob
}

func NewClientServices(
	storages *store.ClientStorages,
	api adapter.BackupAPI,
	gate NetworkGate,
	cfg config.ClientConfig,
	logger *logger.Logger,
) *ClientServices {
	creds := NewCredentialStore(storages.SyncMeta, cfg.Adapter.Token, logger)
	coordinator := NewSyncCoordinator(storages, api, gate, creds, cfg, logger)

	return &ClientServices{
		Credentials: creds,
		Coordinator: coordinator,
		SyncJob:     NewClientSyncJob(coordinator, cfg.Workers.SyncInterval, logger),
	}
}
