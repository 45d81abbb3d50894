package service

import (
	"context"

	"github.com/MKhiriev/go-shelf-sync/models"
)

// BackupService implements the reference backup server: one namespace of
// backup files per owner.
type BackupService interface {
	// Upload stores data under name for owner.
	Upload(ctx context.Context, owner, name string, data []byte) (models.BackupInfo, error)

	// Latest returns the metadata of the canonical latest backup.
	// Returns ErrBackupNotFound when none was uploaded yet.
	Latest(ctx context.Context, owner string) (models.BackupMeta, error)

	List(ctx context.Context, owner string) ([]models.BackupInfo, error)
	Get(ctx context.Context, owner, name string) ([]byte, models.BackupInfo, error)
	Delete(ctx context.Context, owner, name string) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
