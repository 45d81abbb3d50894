package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-shelf-sync/internal/logger"
	"github.com/MKhiriev/go-shelf-sync/internal/store"
	"github.com/MKhiriev/go-shelf-sync/internal/utils"
	"github.com/MKhiriev/go-shelf-sync/models"
)

// latestDownloadURL is where clients fetch the canonical latest backup.
const latestDownloadURL = "/backups/" + latestBackupName

type backupService struct {
	backups store.BackupStorage

	logger *logger.Logger
}

func NewBackupService(backups store.BackupStorage, logger *logger.Logger) BackupService {
	return &backupService{
		backups: backups,
		logger:  logger,
	}
}

func (s *backupService) Upload(ctx context.Context, owner, name string, data []byte) (models.BackupInfo, error) {
	if owner == "" {
		return models.BackupInfo{}, ErrNoOwner
	}
	if len(data) == 0 {
		return models.BackupInfo{}, ErrEmptyBackup
	}

	info, err := s.backups.Save(ctx, owner, name, data)
	if err != nil {
		return models.BackupInfo{}, mapStoreError(err)
	}

	logger.FromContext(ctx).Info().
		Str("func", "backupService.Upload").
		Str("owner", owner).
		Str("name", info.Filename).
		Int64("size", info.Size).
		Msg("backup stored")
	return info, nil
}

// Latest implements BackupService. The ETag is derived from the content so
// that re-uploading identical bytes keeps the validator stable.
func (s *backupService) Latest(ctx context.Context, owner string) (models.BackupMeta, error) {
	if owner == "" {
		return models.BackupMeta{}, ErrNoOwner
	}

	data, info, err := s.backups.Load(ctx, owner, latestBackupName)
	if err != nil {
		return models.BackupMeta{}, mapStoreError(err)
	}

	return models.BackupMeta{
		Modified:    info.Modified,
		DownloadURL: latestDownloadURL,
		Filename:    info.Filename,
		ETag:        utils.WeakETag(utils.SHA256Hex(data)),
	}, nil
}

func (s *backupService) List(ctx context.Context, owner string) ([]models.BackupInfo, error) {
	if owner == "" {
		return nil, ErrNoOwner
	}

	list, err := s.backups.List(ctx, owner)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return list, nil
}

func (s *backupService) Get(ctx context.Context, owner, name string) ([]byte, models.BackupInfo, error) {
	if owner == "" {
		return nil, models.BackupInfo{}, ErrNoOwner
	}

	data, info, err := s.backups.Load(ctx, owner, name)
	if err != nil {
		return nil, models.BackupInfo{}, mapStoreError(err)
	}
	return data, info, nil
}

func (s *backupService) Delete(ctx context.Context, owner, name string) error {
	if owner == "" {
		return ErrNoOwner
	}

	if err := s.backups.Delete(ctx, owner, name); err != nil {
		return mapStoreError(err)
	}

	logger.FromContext(ctx).Info().
		Str("func", "backupService.Delete").
		Str("owner", owner).
		Str("name", name).
		Msg("backup deleted")
	return nil
}

func mapStoreError(err error) error {
	switch {
	case errors.Is(err, store.ErrBackupNotFound):
		return ErrBackupNotFound
	case errors.Is(err, store.ErrInvalidBackupName):
		return fmt.Errorf("%w: %w", ErrInvalidBackupName, err)
	case errors.Is(err, store.ErrInvalidOwner):
		return fmt.Errorf("%w: %w", ErrNoOwner, err)
	}
	return err
}
