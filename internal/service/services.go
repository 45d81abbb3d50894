package service

import (
	"fmt"

	"github.com/MKhiriev/go-shelf-sync/internal/config"
	"github.com/MKhiriev/go-shelf-sync/internal/logger"
	"github.com/MKhiriev/go-shelf-sync/internal/store"
)

// Services groups the backup server services.
type Services struct {
	BackupService  BackupService
	AppInfoService AppInfoService
}

func NewServices(storages *store.ServerStorages, cfg config.ServerConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	return &Services{
		BackupService:  NewBackupService(storages.Backups, logger),
		AppInfoService: appInfo,
	}, nil
}
