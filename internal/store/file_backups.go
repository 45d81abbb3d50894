package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MKhiriev/go-shelf-sync/internal/logger"
	"github.com/MKhiriev/go-shelf-sync/models"
)

// backupFileStorage keeps backups as plain files under root/<owner>/<name>.
// Writes go through a temporary file and a rename, so readers never observe
// a partially written backup.
type backupFileStorage struct {
	root   string
	logger *logger.Logger
}

// NewBackupFileStorage creates the root directory if needed.
func NewBackupFileStorage(root string, logger *logger.Logger) (BackupStorage, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("error creating backup directory: %w", err)
	}
	return &backupFileStorage{root: root, logger: logger}, nil
}

func (s *backupFileStorage) Save(ctx context.Context, owner, name string, data []byte) (models.BackupInfo, error) {
	path, err := s.path(owner, name)
	if err != nil {
		return models.BackupInfo{}, err
	}
	if err = ctx.Err(); err != nil {
		return models.BackupInfo{}, err
	}

	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o750); err != nil {
		return models.BackupInfo{}, fmt.Errorf("error creating owner directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return models.BackupInfo{}, fmt.Errorf("error creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return models.BackupInfo{}, fmt.Errorf("error writing backup: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return models.BackupInfo{}, fmt.Errorf("error closing backup: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		s.logger.Err(err).Str("func", "backupFileStorage.Save").Str("path", path).Msg("failed to move backup into place")
		return models.BackupInfo{}, fmt.Errorf("error storing backup: %w", err)
	}

	return s.Stat(ctx, owner, name)
}

func (s *backupFileStorage) Load(ctx context.Context, owner, name string) ([]byte, models.BackupInfo, error) {
	info, err := s.Stat(ctx, owner, name)
	if err != nil {
		return nil, models.BackupInfo{}, err
	}

	path, _ := s.path(owner, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, models.BackupInfo{}, ErrBackupNotFound
		}
		return nil, models.BackupInfo{}, fmt.Errorf("error reading backup: %w", err)
	}

	return data, info, nil
}

func (s *backupFileStorage) Stat(_ context.Context, owner, name string) (models.BackupInfo, error) {
	path, err := s.path(owner, name)
	if err != nil {
		return models.BackupInfo{}, err
	}

	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.BackupInfo{}, ErrBackupNotFound
		}
		return models.BackupInfo{}, fmt.Errorf("error reading backup info: %w", err)
	}
	if fi.IsDir() {
		return models.BackupInfo{}, ErrBackupNotFound
	}

	return toBackupInfo(fi), nil
}

func (s *backupFileStorage) List(_ context.Context, owner string) ([]models.BackupInfo, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(s.root, owner))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.BackupInfo{}, nil
		}
		return nil, fmt.Errorf("error listing backups: %w", err)
	}

	out := make([]models.BackupInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, toBackupInfo(fi))
	}

	// newest first
	sort.Slice(out, func(i, j int) bool {
		if out[i].Modified != out[j].Modified {
			return out[i].Modified > out[j].Modified
		}
		return out[i].Filename < out[j].Filename
	})

	return out, nil
}

func (s *backupFileStorage) Delete(_ context.Context, owner, name string) error {
	path, err := s.path(owner, name)
	if err != nil {
		return err
	}

	if err = os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrBackupNotFound
		}
		return fmt.Errorf("error deleting backup: %w", err)
	}
	return nil
}

func (s *backupFileStorage) path(owner, name string) (string, error) {
	if err := validateOwner(owner); err != nil {
		return "", err
	}
	if err := ValidateBackupName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.root, owner, name), nil
}

// ValidateBackupName rejects names that could escape the owner directory.
func ValidateBackupName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.HasPrefix(name, ".") ||
		strings.ContainsAny(name, `/\`) ||
		filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidBackupName, name)
	}
	return nil
}

func validateOwner(owner string) error {
	if owner == "" || strings.HasPrefix(owner, ".") || strings.ContainsAny(owner, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidOwner, owner)
	}
	return nil
}

func toBackupInfo(fi fs.FileInfo) models.BackupInfo {
	return models.BackupInfo{
		Filename: fi.Name(),
		Modified: fi.ModTime().UnixMilli(),
		Size:     fi.Size(),
	}
}
